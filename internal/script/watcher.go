package script

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before reloading.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a Catalog when files in its directory change.
type Watcher struct {
	catalog  *Catalog
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *log.Logger

	// OnReload, if set, is called after every reload with its result.
	OnReload func(err error)
}

// NewWatcher starts watching the catalog's directory. Call Run to process
// events and Close to release the watch.
func NewWatcher(c *Catalog, debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if c.Dir() == "" {
		return nil, errors.New("script: catalog has no directory to watch")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(c.Dir()); err != nil {
		fw.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Watcher{
		catalog:  c,
		watcher:  fw,
		debounce: debounce,
		logger:   logger,
	}, nil
}

// Run processes file events until ctx is done. Bursts of events within the
// debounce window cause a single reload.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("script change", "file", filepath.Base(event.Name), "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("script watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	err := w.catalog.Reload()
	if err != nil {
		w.logger.Warn("script reload", "dir", w.catalog.Dir(), "error", err)
	} else {
		w.logger.Info("scripts reloaded", "dir", w.catalog.Dir(), "count", len(w.catalog.List()))
	}
	if w.OnReload != nil {
		w.OnReload(err)
	}
}

// relevant reports whether an event can change the catalog.
func relevant(event fsnotify.Event) bool {
	if _, err := FormatOf(event.Name); err != nil {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
