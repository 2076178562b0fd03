package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/forPelevin/viralcut/internal/config"
	"github.com/forPelevin/viralcut/internal/logging"
	"github.com/forPelevin/viralcut/internal/pipeline"
)

func run(cmd *cobra.Command, transcript string) error {
	cfg, err := buildPipelineConfig(cmd, transcript)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.ManifestPath)
	return nil
}

// loadConfig reads the config file and applies flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}

	f := cmd.Flags()
	cc := &cfg.Curation
	if f.Changed("threshold") {
		cc.Threshold, _ = f.GetFloat64("threshold")
	}
	if f.Changed("max") {
		cc.MaxMoments, _ = f.GetInt("max")
	}
	if f.Changed("no-overlap") {
		cc.SuppressOverlap, _ = f.GetBool("no-overlap")
	}
	if f.Changed("min-gap") {
		cc.MinGapSec, _ = f.GetFloat64("min-gap")
	}
	if f.Changed("workers") {
		cc.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("keywords") {
		cc.Keywords, _ = f.GetStringSlice("keywords")
	}
	if f.Changed("out") {
		cfg.OutDir, _ = f.GetString("out")
	}
	if f.Changed("addr") {
		cfg.Server.Addr, _ = f.GetString("addr")
	}
	return cfg, nil
}

func buildPipelineConfig(cmd *cobra.Command, transcript string) (pipeline.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return pipeline.Config{}, err
	}

	absIn, err := filepath.Abs(transcript)
	if err != nil {
		return pipeline.Config{}, err
	}
	sig, _ := cmd.Flags().GetString("signals")
	if sig != "" {
		if sig, err = filepath.Abs(sig); err != nil {
			return pipeline.Config{}, err
		}
	}

	pc := pipeline.Config{
		Transcript: absIn,
		Signals:    sig,
		OutDir:     cfg.OutDir,
		Curation:   cfg.Curation,
		Log:        logging.WithComponent("pipeline"),
	}
	if err := pc.Validate(); err != nil {
		return pipeline.Config{}, fmt.Errorf("config: %w", err)
	}
	return pc, nil
}
