// Package cli provides the command-line interface for voicenote.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/voicenote/pkg/config"
	pkglogger "github.com/johnquangdev/voicenote/pkg/logger"
	"github.com/johnquangdev/voicenote/pkg/textanalysis"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose     bool
	lexiconPath string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "voicenote",
	Short: "Sentiment and emotion analysis for voice notes",
	Long: `Voicenote turns spoken or typed utterances into a sentiment label and an
emotion intensity chart.

Analyze text directly, transcribe a recording with AssemblyAI first, validate
a custom lexicon, or manage the database schema used by the API server.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&lexiconPath, "lexicon", "", "lexicon YAML file (default: embedded, or ANALYSIS_LEXICON_PATH)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(lexiconCmd)
	rootCmd.AddCommand(migrateCmd)
}

// newLogger returns a console logger at debug level with --verbose and a
// quiet one otherwise.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return pkglogger.New("development", "debug")
	}
	return pkglogger.New("production", "error")
}

// newAnalyzer builds an analyzer from --lexicon, then ANALYSIS_LEXICON_PATH,
// then the embedded lexicon.
func newAnalyzer() (*textanalysis.Analyzer, error) {
	path := lexiconPath
	if path == "" {
		path = os.Getenv("ANALYSIS_LEXICON_PATH")
	}
	if path == "" {
		return textanalysis.NewAnalyzer(textanalysis.DefaultLexicon())
	}

	lex, err := textanalysis.LoadLexicon(path)
	if err != nil {
		return nil, err
	}
	return textanalysis.NewAnalyzer(lex)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
