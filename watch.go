package postseries

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 300 * time.Millisecond

// ErrNotWatchable is returned by Watch when posts are read from a
// filesystem supplied through WithContentFS.
var ErrNotWatchable = errors.New("content is not read from a directory")

// Watch rebuilds the catalog whenever the content directory changes, until
// ctx is cancelled. Bursts of events are collapsed into one rebuild. A
// rebuild that fails is logged and the previous catalog stays current.
func (a *App) Watch(ctx context.Context) error {
	if a.contentDir == "" {
		return ErrNotWatchable
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(a.contentDir); err != nil {
		return fmt.Errorf("watch %s: %w", a.contentDir, err)
	}
	a.log.Info("watching content", zap.String("dir", a.contentDir))

	reload, trigger := newDebouncer(reloadDebounce)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				a.log.Debug("content changed", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
				trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watcher error", zap.Error(err))
		case <-reload:
			a.reloadCatalog()
		}
	}
}

func (a *App) reloadCatalog() {
	cat, err := a.Catalog.Reload()
	if err != nil {
		a.log.Error("catalog rebuild failed, keeping previous catalog", zap.Error(err))
		return
	}
	a.log.Info("catalog rebuilt", zap.Int("posts", cat.Len()))
}

// newDebouncer returns a channel that fires once per quiet period after the
// last call to trigger.
func newDebouncer(wait time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		})
	}
	return fire, trigger
}
