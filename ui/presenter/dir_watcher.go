package presenter

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/pixel-label-go/domain/dataset"
)

// DirWatcher polls the open image directory and flags when its listing
// changes, e.g. after a snapshot or an external copy. The flag is consumed
// on the UI goroutine via Changed.
type DirWatcher struct {
	Logger   *slog.Logger
	List     func(dir string) ([]string, error)
	interval time.Duration

	mu      sync.Mutex
	dir     string
	last    []string
	done    chan struct{}
	running atomic.Bool
	changed atomic.Bool
}

// NewDirWatcher constructs a watcher. A nil list uses dataset.ListImages;
// a non-positive interval polls every second.
func NewDirWatcher(logger *slog.Logger, list func(string) ([]string, error), interval time.Duration) *DirWatcher {
	if list == nil {
		list = dataset.ListImages
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &DirWatcher{Logger: logger, List: list, interval: interval}
}

// Watch starts polling dir, replacing any previous directory.
func (w *DirWatcher) Watch(dir string) {
	if w == nil {
		return
	}
	w.Stop()
	initial, err := w.List(dir)
	if err != nil && w.Logger != nil {
		w.Logger.Error("list images", "dir", dir, "error", err)
	}
	w.mu.Lock()
	w.dir = dir
	w.last = initial
	w.done = make(chan struct{})
	done := w.done
	w.mu.Unlock()
	w.changed.Store(false)
	w.running.Store(true)
	go w.loop(done)
}

// Stop ends polling.
func (w *DirWatcher) Stop() {
	if w == nil || !w.running.Load() {
		return
	}
	w.mu.Lock()
	close(w.done)
	w.mu.Unlock()
	w.running.Store(false)
}

// Running reports whether the watcher is polling.
func (w *DirWatcher) Running() bool { return w != nil && w.running.Load() }

// Changed reports and clears a pending listing change.
func (w *DirWatcher) Changed() bool {
	if w == nil {
		return false
	}
	return w.changed.Swap(false)
}

func (w *DirWatcher) loop(done chan struct{}) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.poll()
		case <-done:
			return
		}
	}
}

func (w *DirWatcher) poll() {
	w.mu.Lock()
	dir := w.dir
	w.mu.Unlock()
	images, err := w.List(dir)
	if err != nil {
		if w.Logger != nil {
			w.Logger.Error("list images", "dir", dir, "error", err)
		}
		return
	}
	w.mu.Lock()
	same := slices.Equal(images, w.last)
	if !same {
		w.last = images
	}
	w.mu.Unlock()
	if !same {
		w.changed.Store(true)
		if w.Logger != nil {
			w.Logger.Debug("image directory changed", "dir", dir, "images", len(images))
		}
	}
}
