package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/forPelevin/viralcut/internal/logging"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "viralcut <transcript.json>",
		Short:        "Pick the most clip-worthy moments from a transcript",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logging.Init(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("config", "", "YAML config file (default $VIRALCUT_CONFIG or ./viralcut.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")

	addInputFlags(root)
	addCurationFlags(root)

	root.AddCommand(newServeCommand(), newWatchCommand())
	return root
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("signals", "", "JSON file with face/audio samples")
	cmd.Flags().String("out", "out", "Output directory")
}

// addCurationFlags registers the flags loadConfig layers over the config file.
func addCurationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("threshold", 70, "Minimum viral score (0-100)")
	cmd.Flags().Int("max", 5, "Maximum number of moments")
	cmd.Flags().Bool("no-overlap", false, "Drop moments that overlap a higher-ranked one")
	cmd.Flags().Float64("min-gap", 0, "Seconds required between moments when --no-overlap is set")
	cmd.Flags().Int("workers", 1, "Scoring goroutines")

	// Hidden tuning flag (internal)
	cmd.Flags().StringSlice("keywords", nil, "Override trigger vocabulary")
	_ = cmd.Flags().MarkHidden("keywords")
}
