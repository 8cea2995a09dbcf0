// Package watch re-runs a callback whenever a file is rewritten.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// DefaultDebounce is how long a burst of write events is collapsed for.
// Image editors tend to save in several writes.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls OnChange after the watched file is written, created or
// renamed into place.
type Watcher struct {
	Path     string
	Debounce time.Duration
	OnChange func(path string)
}

// New returns a Watcher for path with DefaultDebounce.
func New(path string, onChange func(path string)) *Watcher {
	return &Watcher{Path: path, Debounce: DefaultDebounce, OnChange: onChange}
}

// Run blocks until ctx is done or the watcher fails. The parent directory is
// watched rather than the file itself so that atomic saves (write to temp,
// rename over) keep being seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	target := filepath.Clean(w.Path)
	dir := filepath.Dir(target)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.WithField("path", target).Debug("watching for changes")

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !relevant(ev.Op) {
				continue
			}
			log.WithFields(log.Fields{"path": ev.Name, "op": ev.Op.String()}).Debug("file event")
			timer.Reset(debounce)
			pending = true

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")

		case <-timer.C:
			if pending {
				pending = false
				w.OnChange(target)
			}
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}
