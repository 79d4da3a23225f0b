package cachefile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// EventKind classifies a cache directory change.
type EventKind int

const (
	CacheWritten EventKind = iota
	CacheRemoved
)

// Event reports one cache file appearing, changing, or disappearing.
type Event struct {
	Kind        EventKind
	Fingerprint string
	Path        string
}

// Watch reports cache file changes in dir on the returned channel
// until stop is closed. Non-cache files in the directory are ignored.
// The events channel closes when the watch ends; watcher errors after
// startup are dropped rather than tearing the loop down.
func Watch(stop <-chan struct{}, dir string) (<-chan Event, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch cache dir: %w", err)
	}

	events := make(chan Event)
	go func() {
		defer close(events)
		defer watcher.Close()
		for {
			select {
			case <-stop:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				out, relevant := classify(ev)
				if !relevant {
					continue
				}
				select {
				case events <- out:
				case <-stop:
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return events, nil
}

func classify(ev fsnotify.Event) (Event, bool) {
	fp, ok := fingerprintFromName(filepath.Base(ev.Name))
	if !ok {
		return Event{}, false
	}
	out := Event{Fingerprint: fp, Path: ev.Name}
	switch {
	case ev.Op.Has(fsnotify.Create), ev.Op.Has(fsnotify.Write):
		out.Kind = CacheWritten
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		out.Kind = CacheRemoved
	default:
		return Event{}, false
	}
	return out, true
}
