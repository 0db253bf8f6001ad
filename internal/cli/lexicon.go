package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/voicenote/pkg/textanalysis"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Inspect lexicon files",
}

var lexiconCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a lexicon YAML file",
	Long: `Validate a lexicon file and print how many entries each list holds.

The file is rejected when it names an unknown emotion category, when an
entry normalizes to nothing, when an emotion or stop-word entry has more than
one word, or when a keyword is both positive and negative.

Examples:
  voicenote lexicon check ./lexicon.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runLexiconCheck,
}

func init() {
	lexiconCmd.AddCommand(lexiconCheckCmd)
}

func runLexiconCheck(cmd *cobra.Command, args []string) error {
	lex, err := textanalysis.LoadLexicon(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Lexicon:"), args[0])
	fmt.Fprintf(out, "  stop words: %d\n", len(lex.StopWords))
	for _, e := range textanalysis.AllEmotions {
		fmt.Fprintf(out, "  %-9s %d\n", string(e)+":", len(lex.Emotions[e]))
	}
	fmt.Fprintf(out, "  positive:  %d\n", len(lex.Sentiment.Positive))
	fmt.Fprintf(out, "  negative:  %d\n", len(lex.Sentiment.Negative))
	fmt.Fprintln(out, sentimentStyle(textanalysis.SentimentPositive).Render("✓ valid"))
	return nil
}
