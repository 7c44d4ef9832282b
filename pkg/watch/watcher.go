package watch

import (
	"log"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/matst80/skill-finder/pkg/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var noChanges = promauto.NewCounter(prometheus.CounterOpts{
	Name: "skillfinder_data_changes_total",
	Help: "The total number of debounced data file change batches",
})

// DefaultDelay collects the bursts of events editors and copy tools produce
// for a single save.
const DefaultDelay = 500 * time.Millisecond

// Watcher reports changes to a fixed set of files in one folder. Changes are
// collected until the folder has been quiet for the debounce delay and are
// then passed to the callback in one call.
type Watcher struct {
	watcher   *fsnotify.Watcher
	dir       string
	files     []string
	debouncer *common.Debouncer
	onChange  func(files []string)

	mu      sync.Mutex
	pending []string
	stopCh  chan struct{}
	once    sync.Once
}

// New watches dir for the given base names. The folder is watched rather
// than the files so atomic replacements are seen.
func New(dir string, files []string, delay time.Duration, onChange func(files []string)) (*Watcher, error) {
	w := newWatcher(dir, files, common.NewDebouncer(delay, common.SystemClock), onChange)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	w.watcher = fw
	return w, nil
}

func newWatcher(dir string, files []string, debouncer *common.Debouncer, onChange func(files []string)) *Watcher {
	return &Watcher{
		dir:       dir,
		files:     slices.Clone(files),
		debouncer: debouncer,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
	}
}

func (w *Watcher) Start() {
	go w.watchLoop()
}

func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stopCh)
		w.debouncer.Close()
		if w.watcher != nil {
			_ = w.watcher.Close()
		}
	})
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.Notify(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// Notify records a change to path and restarts the quiet period. Paths
// outside the watched set are ignored.
func (w *Watcher) Notify(path string) bool {
	name := filepath.Base(path)
	if !w.watches(name) {
		return false
	}
	w.mu.Lock()
	if !slices.Contains(w.pending, name) {
		w.pending = append(w.pending, name)
	}
	w.mu.Unlock()
	return w.debouncer.Trigger(w.flush)
}

// watches also matches the gzipped variant of a file.
func (w *Watcher) watches(name string) bool {
	return slices.Contains(w.files, name) || slices.Contains(w.files, stripGz(name))
}

func stripGz(name string) string {
	if filepath.Ext(name) == ".gz" {
		return name[:len(name)-3]
	}
	return name
}

func (w *Watcher) flush() {
	w.mu.Lock()
	changed := w.pending
	w.pending = nil
	w.mu.Unlock()
	if len(changed) == 0 {
		return
	}
	slices.Sort(changed)
	noChanges.Inc()
	w.onChange(changed)
}
