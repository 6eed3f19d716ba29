package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/fsnotify/fsnotify"
)

// debounce lets editors finish writing before the file is reloaded.
const debounce = 100 * time.Millisecond

// Watch re-checks the automaton at path every time it changes, until ctx is done.
// Invalid revisions are reported and watching continues.
func Watch(ctx context.Context, w io.Writer, engine *automata.Engine, path string, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	// Watch the directory: editors often replace the file instead of writing to it.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	logger.Info("Watching automaton", "path", target)

	check := func() {
		results, _ := Check(ctx, engine, []string{path}, 1)
		fmt.Fprintf(w, "[%s] ", time.Now().Format(time.TimeOnly))
		_ = PrintCheck(w, results, FormatText)
	}
	check()

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("Change detected", "path", ev.Name, "op", ev.Op.String())
			reload = time.After(debounce)
		case <-reload:
			reload = nil
			fmt.Fprintln(w, tui.NewStyler(w).Muted("change detected, re-checking"))
			check()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "err", err)
		}
	}
}
