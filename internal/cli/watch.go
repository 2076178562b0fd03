package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/forPelevin/viralcut/internal/pipeline"
)

const watchDebounce = 300 * time.Millisecond

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <transcript.json>",
		Short: "Re-curate whenever the transcript, signals or config file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pc, err := buildPipelineConfig(cmd, args[0])
			if err != nil {
				return err
			}
			cfgPath, _ := cmd.Flags().GetString("config")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rerun := func() {
				// The config file may have changed, so rebuild from flags.
				next, err := buildPipelineConfig(cmd, args[0])
				if err != nil {
					pc.Log.Error().Err(err).Msg("reload")
					return
				}
				out, err := pipeline.Run(ctx, next)
				if err != nil {
					pc.Log.Error().Err(err).Msg("curation failed")
					return
				}
				fmt.Fprintln(cmd.OutOrStdout(), out.ManifestPath)
			}
			rerun()
			return watchFiles(ctx, []string{pc.Transcript, pc.Signals, cfgPath}, rerun)
		},
	}
	addInputFlags(cmd)
	addCurationFlags(cmd)
	return cmd
}

// watchFiles calls onChange after writes to any of files settle. Directories
// are watched rather than files so that editors replacing the file on save
// are still seen. It blocks until ctx is done.
func watchFiles(ctx context.Context, files []string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{})
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("watch dir %q: %w", d, err)
		}
	}

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := targets[abs]; !ok {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(watchDebounce)
			pending = timer.C
		case <-pending:
			pending = nil
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
