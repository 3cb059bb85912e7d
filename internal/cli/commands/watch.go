package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// defaultDebounce collapses the burst of events an editor save produces.
const defaultDebounce = 200 * time.Millisecond

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	ProcessOptions
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <report.htm> <data.01>",
		Short: "Re-run process whenever the report or tabular file changes",
		Long: `Run process once, then again every time either input file is written.
Runs are sequential; a change during a run triggers one more run after it.
Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "Output path (default: <name>_result<ext>)")
	cmd.Flags().StringVar(&opts.XLSX, "xlsx", "", "Also export the merged table to this .xlsx file")
	cmd.Flags().BoolVar(&opts.AllErrors, "all-errors", false, "List every skipped entry")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", defaultDebounce, "Quiet period before re-running")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, markupPath, tabularPath string, opts *WatchOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	p, cleanup, err := cc.NewPipeline(opts.XLSX)
	if err != nil {
		return err
	}
	defer cleanup()

	runOnce := func() {
		result, err := p.Process(ctx, markupPath, tabularPath, opts.Out)
		if err != nil {
			r.Error(err.Error())
			return
		}
		if err := renderProcessResult(r, result, opts.AllErrors); err != nil {
			cc.Logger.Warn("failed to render result", "error", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	targets, err := watchTargets(watcher, markupPath, tabularPath)
	if err != nil {
		return err
	}

	runOnce()
	r.Muted(fmt.Sprintf("Watching %s and %s (Ctrl+C to stop)", markupPath, tabularPath))

	trigger := make(chan string, 1)
	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return watchLoop(egctx, watcher, targets, opts.Debounce, trigger, cc.Logger)
	})

	eg.Go(func() error {
		for {
			select {
			case <-egctx.Done():
				return nil
			case name := <-trigger:
				r.Println("")
				r.Muted(fmt.Sprintf("Change detected: %s", filepath.Base(name)))
				runOnce()
			}
		}
	})

	return eg.Wait()
}

// watchTargets watches the directories holding the given files. Editors
// often replace files by rename, which a watch on the file itself misses.
func watchTargets(watcher *fsnotify.Watcher, paths ...string) (map[string]bool, error) {
	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		targets[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	return targets, nil
}

// watchLoop sends a target path on trigger once events for the targets
// have been quiet for debounce. A pending trigger absorbs new ones.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, targets map[string]bool,
	debounce time.Duration, trigger chan<- string, logger *slog.Logger) error {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only handle events that can change file contents
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			name, err := filepath.Abs(event.Name)
			if err != nil || !targets[name] {
				continue
			}
			logger.Debug("file event", "path", name, "op", event.Op.String())

			// Debounce reruns
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case trigger <- name:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
