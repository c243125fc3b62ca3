package compile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	. "github.com/Brahmastra-Labs/logicaffeine-sub001/common"
)

// DefaultDebounce is how long a Watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls OnChange once a burst of changes to any watched file has
// settled. It watches the files' directories, so files replaced by editors
// keep being followed.
type Watcher struct {
	OnChange func(ctx context.Context)

	paths    Set[string]
	debounce time.Duration
	logger   *zap.Logger
}

func NewWatcher(paths []string, debounce time.Duration, logger *zap.Logger, onChange func(ctx context.Context)) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{OnChange: onChange, paths: NewSet[string](), debounce: debounce, logger: logger}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		w.paths.Add(abs)
	}
	return w, nil
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := NewSet[string]()
	for p := range w.paths {
		dirs.Add(filepath.Dir(p))
	}
	for _, dir := range SortedStrings(dirs) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.logger.Debug("watching directory", zap.String("dir", dir))
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
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
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			w.OnChange(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	return err == nil && w.paths.Contains(abs)
}
