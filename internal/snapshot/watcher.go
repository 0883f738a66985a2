package snapshot

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// ReloadFunc receives the blob after an external change to the snapshot file.
type ReloadFunc func(blob []byte)

// Watch observes the snapshot file of fs and calls onReload with its new
// contents whenever it is created or rewritten, until ctx is cancelled.
// Bursts of events are debounced. The directory is watched rather than the
// file so atomic renames are seen.
func Watch(ctx context.Context, fs *FS, logger *slog.Logger, onReload ReloadFunc) error {
	target, err := fs.Path(Key)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(fs.Dir()); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("path", target))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(reloadDebounce)
			timerCh = timer.C
		} else {
			timer.Reset(reloadDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			blob, err := fs.Load(Key)
			if err != nil {
				logger.Warn("watcher: read failed", slog.String("error", err.Error()))
				continue
			}
			onReload(blob)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				logger.Debug("watcher: snapshot changed", slog.String("op", ev.Op.String()))
				schedule()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}
