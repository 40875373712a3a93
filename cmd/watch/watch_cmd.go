package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/LegacyCodeHQ/amalgamate/internal/runner"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := runner.NewOptions()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the amalgamation whenever a source file changes",
		Long: `Build the amalgamation once, then watch the source root, the include
directories and the config file. Any change to a C/C++ file or to the config
rebuilds the whole amalgamation. Rebuild errors are reported and watching
continues until interrupted.

Examples:
  amalgamate watch -c amalgamate.json -s src`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			opts.ConfigureLogging()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runWatch(ctx, cmd, opts)
		},
	}

	opts.BindFlags(cmd.Flags(), false)

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts *runner.Options) error {
	cfg, err := runner.LoadConfig(opts)
	if err != nil {
		return err
	}

	r := &rebuilder{out: cmd.OutOrStdout(), opts: opts}
	if err := r.rebuild(ctx); err != nil {
		return fmt.Errorf("initial amalgamation failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range sourceDirs(cfg) {
		if err := addWatchDirs(watcher, dir); err != nil {
			return fmt.Errorf("failed to watch directories: %w", err)
		}
	}
	if err := watcher.Add(filepath.Dir(canonicalPath(opts.ConfigPath))); err != nil {
		return fmt.Errorf("failed to watch config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", cfg.SourceRoot)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	return watchAndRebuild(ctx, watcher, newChangeFilter(opts.ConfigPath, cfg.Target), r)
}
