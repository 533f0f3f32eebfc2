package watcher

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long a dataset's events must stay quiet
// before it is re-mined.
const DefaultDebounce = 2 * time.Second

// Runner re-mines one dataset file. The production runner is built by
// NewReminer; tests inject their own.
type Runner func(path string) error

// Watcher watches the data directory and re-mines datasets whose CSV
// files are created or modified.
type Watcher struct {
	dataDir  string
	runner   Runner
	log      *logrus.Logger
	debounce time.Duration

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	pending map[string]time.Time // path -> time of last event
}

// New creates a Watcher over dataDir. The runner is invoked once per
// settled dataset change.
func New(dataDir string, runner Runner, log *logrus.Logger) (*Watcher, error) {
	if runner == nil {
		return nil, fmt.Errorf("runner cannot be nil")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Watcher{
		dataDir:  dataDir,
		runner:   runner,
		log:      log,
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
		pending:  make(map[string]time.Time),
	}, nil
}

// SetDebounce overrides the debounce window. Must be called before
// Start. Non-positive durations are ignored.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d <= 0 {
		return
	}
	w.debounce = d
}

// Start registers the data directory with fsnotify and begins
// processing events until Stop is called.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(w.dataDir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dataDir, err)
	}
	w.fsw = fsw

	w.log.WithField("dir", w.dataDir).Info("watching data directory")

	w.wg.Add(1)
	go w.run()

	return nil
}

// run consumes fsnotify events and flushes settled datasets on a
// fraction-of-the-debounce ticker.
func (w *Watcher) run() {
	defer w.wg.Done()

	// The flush interval must stay positive even for a tiny debounce;
	// NewTicker panics on zero.
	interval := w.debounce / 4
	if interval <= 0 {
		interval = w.debounce
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.shouldHandle(event) {
				w.mark(event.Name, time.Now())
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("fsnotify error")
		case now := <-ticker.C:
			for _, path := range w.due(now) {
				w.remine(path)
			}
		case <-w.stopCh:
			// Final flush so a change right before shutdown is not lost.
			for _, path := range w.due(time.Now().Add(w.debounce)) {
				w.remine(path)
			}
			return
		}
	}
}

// shouldHandle filters events down to dataset file changes.
func (w *Watcher) shouldHandle(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".csv") {
		return false
	}
	return event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write)
}

// mark records an event for a path, restarting its debounce window.
func (w *Watcher) mark(path string, at time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = at
}

// due returns and clears the paths whose debounce window has elapsed
// as of now.
func (w *Watcher) due(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var paths []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			paths = append(paths, path)
			delete(w.pending, path)
		}
	}
	return paths
}

// remine runs the runner for one settled dataset.
func (w *Watcher) remine(path string) {
	log := w.log.WithField("dataset", path)
	log.Info("dataset changed, re-mining")

	start := time.Now()
	if err := w.runner(path); err != nil {
		log.WithError(err).Error("re-mine failed")
		return
	}
	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("re-mine complete")
}

// Stop halts the watcher, flushing any settled pending datasets first.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	w.wg.Wait()

	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}
