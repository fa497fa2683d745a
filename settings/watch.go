package settings

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/oomph-ac/yamato/oerror"
)

// reloadDebounce is the time within which repeated writes to the settings file only reload it once.
const reloadDebounce = 100 * time.Millisecond

// Watch reloads the settings at path every time the file is written and passes the result to fn.
// The directory of the file is watched so that editors replacing the file are noticed as well. Watch
// blocks until ctx is done.
func Watch(ctx context.Context, path string, fn func(Settings, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return oerror.New("error creating settings watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return oerror.New("error resolving settings path: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return oerror.New("error watching settings directory: %w", err)
	}

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if now := time.Now(); now.Sub(last) >= reloadDebounce {
				last = now
				fn(Load(path))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(Settings{}, oerror.New("settings watcher: %w", err))
		}
	}
}
