package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/zetaframework/zeta-generator/compiler/gen"
)

// watchDebounce coalesces the bursts of events editors emit on save.
const watchDebounce = 300 * time.Millisecond

// loadWatchConfig loads the watched config. A watch regenerates on every
// save, so the output directory is never opened.
func loadWatchConfig(path string) (*gen.Config, error) {
	cfg, err := gen.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.OpenDir = false
	return cfg, nil
}

// WatchCmd returns the watch command.
func WatchCmd() *cobra.Command {
	var (
		config    string
		templates string
		logLevel  string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the config file changes",
		Long: `Watch runs a generation, then runs it again each time the config file is
saved, until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), logLevel)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			run := func(ctx context.Context) {
				cfg, err := loadWatchConfig(config)
				if err != nil {
					logger.Error("cannot load config", "file", config, "error", err)
					return
				}
				report, err := Generate(ctx, cfg, logger, templates)
				if err != nil {
					logger.Error("generation failed", "error", err)
					return
				}
				printReport(cmd.OutOrStdout(), report)
			}
			return Watch(cmd.Context(), config, logger, run)
		},
	}
	cmd.Flags().StringVarP(&config, "config", "c", DefaultConfigFile, "config file to watch")
	cmd.Flags().StringVar(&templates, "templates", "", "directory of templates overriding the embedded ones")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	return cmd
}

// Watch calls run once, then again after each change of the file, until
// the context is done. The parent directory is watched so that files
// replaced by a rename are still followed.
func Watch(ctx context.Context, file string, logger *slog.Logger, run func(context.Context)) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	run(ctx)
	logger.Info("watching config", "file", abs)

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("config changed", "op", ev.Op.String())
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-timer.C:
			run(ctx)
		}
	}
}
