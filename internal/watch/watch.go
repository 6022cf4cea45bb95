// Package watch notifies when a saved leaderboard page changes on disk.
package watch

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Subscription delivers change notifications for one file. onChange runs on
// the subscription's goroutine, one call at a time.
type Subscription struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	done     chan struct{}
}

// Subscribe watches path's directory, so editors that replace the file
// instead of writing it in place are still seen.
func Subscribe(path string, onChange func()) (*Subscription, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	s := &Subscription{
		watcher:  watcher,
		path:     abs,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	go s.processEvents()

	return s, nil
}

func (s *Subscription) processEvents() {
	defer close(s.done)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				slog.Debug("leaderboard changed", "path", event.Name, "op", event.Op.String())
				s.onChange()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			slog.Error("file watch error", "err", err)
		}
	}
}

// Close stops the watcher and waits for any running onChange to return.
func (s *Subscription) Close() error {
	err := s.watcher.Close()
	<-s.done
	return err
}
