package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pkgai "github.com/johnquangdev/voicenote/pkg/ai"
	"github.com/johnquangdev/voicenote/pkg/config"
)

// newTranscriber is replaced in tests.
var newTranscriber = func(cfg config.TranscriptionConfig, logger *zap.Logger) pkgai.Transcriber {
	return pkgai.NewAssemblyAIClient(cfg, logger)
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe a recording and analyze it",
	Long: `Transcribe an audio file with AssemblyAI, then analyze the transcript.

Requires ASSEMBLYAI_API_KEY. Accepts the --png and --json flags of analyze.

Examples:
  voicenote transcribe note.wav
  voicenote transcribe note.m4a --png chart.png`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	transcribeCmd.Flags().StringVar(&analyzePNG, "png", "", "write the emotion chart to a PNG file")
	transcribeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the result as JSON")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	audio, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read audio: %w", err)
	}
	if len(audio) == 0 {
		return fmt.Errorf("%s is empty", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, hintStyle.Render("transcribing "+args[0]+"..."))

	tr := newTranscriber(cfg.Transcription, logger).Transcribe(ctx, audio)
	switch tr.Status {
	case pkgai.StatusOK:
	case pkgai.StatusNotUnderstood:
		return fmt.Errorf("could not understand the recording: %s", tr.Reason)
	default:
		return fmt.Errorf("transcription unavailable: %s", tr.Reason)
	}

	result, err := analyzer.Analyze(tr.Text)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Transcript:"), tr.Text)
	return report(out, result)
}
