package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/voicenote/pkg/textanalysis"
)

var (
	analyzeStdin bool
	analyzePNG   string
	analyzeJSON  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze the sentiment and emotions of an utterance",
	Long: `Analyze one utterance and print its normalized text, kept tokens,
sentiment label and emotion intensities.

Examples:
  voicenote analyze "I am so happy today"
  echo "this is terrible" | voicenote analyze --stdin
  voicenote analyze "what a surprise" --png chart.png
  voicenote analyze "I feel sad" --json`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeStdin, "stdin", false, "read the utterance from stdin")
	analyzeCmd.Flags().StringVar(&analyzePNG, "png", "", "write the emotion chart to a PNG file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the result as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if analyzeStdin {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("nothing to analyze: pass text or use --stdin")
	}

	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}
	result, err := analyzer.Analyze(text)
	if err != nil {
		return err
	}
	return report(cmd.OutOrStdout(), result)
}

// report prints result in the format selected by --json and writes the chart
// when --png is set.
func report(w io.Writer, result *textanalysis.Result) error {
	if analyzePNG != "" {
		if err := os.WriteFile(analyzePNG, result.Chart.Data, 0o644); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
	}

	if analyzeJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			*textanalysis.Result
			ChartKey string `json:"chart_key"`
		}{result, result.Chart.Key})
	}

	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Normalized:"), result.Normalized)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Tokens:    "), strings.Join(result.Tokens, ", "))
	fmt.Fprintf(w, "%s %s (+%d / -%d)\n", labelStyle.Render("Sentiment: "),
		sentimentStyle(result.Sentiment).Render(result.Sentiment.Title()),
		result.Polarity.Positive, result.Polarity.Negative)
	fmt.Fprintf(w, "%s %s\n\n", labelStyle.Render("Dominant:  "), result.Dominant)
	fmt.Fprint(w, renderBars(result.Emotions, barWidth))

	if analyzePNG != "" {
		fmt.Fprintf(w, "\n%s\n", hintStyle.Render("chart written to "+analyzePNG))
	}
	return nil
}
