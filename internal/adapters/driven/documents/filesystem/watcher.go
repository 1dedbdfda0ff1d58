package filesystem

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind classifies a change to a catalog file.
type ChangeKind string

// Change kinds.
const (
	ChangeCreated  ChangeKind = "created"
	ChangeModified ChangeKind = "modified"
	ChangeRemoved  ChangeKind = "removed"
)

// Change is a filesystem event on a catalog file.
type Change struct {
	Name string
	Kind ChangeKind
}

// Watcher reports changes to catalog files in a base directory.
type Watcher struct {
	baseDir string
	names   map[string]struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given catalog names.
func NewWatcher(baseDir string, names []string) *Watcher {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return &Watcher{baseDir: baseDir, names: set}
}

// Watch starts watching the base directory. The channel is closed when ctx
// is cancelled or the underlying watcher fails.
func (w *Watcher) Watch(ctx context.Context) (<-chan Change, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(w.baseDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.baseDir, err)
	}
	w.watcher = fw

	changes := make(chan Change, 16)
	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				change := w.handleFsEvent(event)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case _, ok := <-fw.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}

// handleFsEvent maps an fsnotify event on a catalog file to a Change.
// Events for other files, and chmod-only events, are ignored.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *Change {
	name := filepath.Base(event.Name)
	if _, ok := w.names[name]; !ok {
		return nil
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &Change{Name: name, Kind: ChangeRemoved}
	case event.Has(fsnotify.Create):
		return &Change{Name: name, Kind: ChangeCreated}
	case event.Has(fsnotify.Write):
		return &Change{Name: name, Kind: ChangeModified}
	default:
		return nil
	}
}
