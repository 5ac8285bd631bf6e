// Package watcher monitors served local folders and reports changes via callbacks.
package watcher

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/CageChen/filehub/internal/config"
	"github.com/CageChen/filehub/internal/log"
	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
)

// EventType represents the type of file system event
type EventType int

// File system event types.
const (
	EventCreate EventType = iota
	EventWrite
	EventRemove
	EventRename
)

// String returns the name used on the wire.
func (t EventType) String() string {
	switch t {
	case EventCreate:
		return "create"
	case EventWrite:
		return "update"
	case EventRemove:
		return "remove"
	case EventRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event is a change inside a served folder
type Event struct {
	Type   EventType
	Folder string // folder alias
	Path   string // slash separated, relative to the folder
}

// Callback is a function called when file changes occur
type Callback func(Event)

type root struct {
	path    string
	alias   string
	exclude []string
}

// Watcher monitors every local folder of the configuration
type Watcher struct {
	watcher   *fsnotify.Watcher
	cfg       *config.Config
	roots     []root
	callbacks []Callback
	mu        sync.RWMutex
	done      chan struct{}
	log       logr.Logger
}

// New creates a new file system watcher
func New(cfg *config.Config) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher: w,
		cfg:     cfg,
		done:    make(chan struct{}),
		log:     log.WithName("watcher"),
	}, nil
}

// OnChange registers a callback for file change events
func (w *Watcher) OnChange(cb Callback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

// Start begins watching all configured local folders
func (w *Watcher) Start() error {
	// git ref folders read from the object database and never change on disk
	for _, folder := range w.cfg.Folders {
		if folder.GitRef != "" {
			continue
		}
		w.roots = append(w.roots, root{path: folder.Path, alias: folder.Alias, exclude: folder.Exclude})
		w.addTree(folder.Path)
	}

	go w.eventLoop()
	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

// addTree watches dir and every directory below it
func (w *Watcher) addTree(dir string) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.cfg.IsExcluded(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.log.Info("cannot watch directory", "path", path, "error", err.Error())
		}
		return nil
	})
	if err != nil {
		w.log.Error(err, "failed to walk folder", "path", dir)
	}
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error(err, "watcher error")
		}
	}
}

// locate maps an absolute path to the folder serving it
func (w *Watcher) locate(path string) (root, string, bool) {
	for _, r := range w.roots {
		rel, err := filepath.Rel(r.path, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return r, filepath.ToSlash(rel), true
	}
	return root{}, "", false
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if w.cfg.IsExcluded(event.Name) {
		return
	}
	r, rel, ok := w.locate(event.Name)
	if !ok || w.cfg.IsFolderExcluded(filepath.FromSlash(rel), r.exclude) {
		return
	}

	var eventType EventType
	switch {
	case event.Has(fsnotify.Create):
		eventType = EventCreate
		if isDir(event.Name) {
			w.addTree(event.Name)
		}
	case event.Has(fsnotify.Write):
		eventType = EventWrite
	case event.Has(fsnotify.Remove):
		eventType = EventRemove
	case event.Has(fsnotify.Rename):
		eventType = EventRename
	default:
		return
	}

	e := Event{
		Type:   eventType,
		Folder: r.alias,
		Path:   rel,
	}
	w.log.V(1).Info("change", "type", e.Type.String(), "folder", e.Folder, "path", e.Path)

	w.mu.RLock()
	callbacks := make([]Callback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		cb(e)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
