package api

import (
	"log"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces editor write bursts into a single reload.
const reloadDebounce = 500 * time.Millisecond

// Watcher watches the model directory and triggers a reload callback
// when layer files change.
type Watcher struct {
	fs     *fsnotify.Watcher
	reload func()
	done   chan struct{}
}

// NewWatcher creates a watcher over dir. Run must be called to start
// dispatching events.
func NewWatcher(dir string, reload func()) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, err
	}
	return &Watcher{fs: fs, reload: reload, done: make(chan struct{})}, nil
}

// Run dispatches file events until Close is called. Only YAML layer
// files trigger reloads, and bursts are debounced.
func (w *Watcher) Run() {
	var timer *time.Timer
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !isLayerFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, w.reload)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("Model watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() {
	close(w.done)
	w.fs.Close()
}

func isLayerFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
