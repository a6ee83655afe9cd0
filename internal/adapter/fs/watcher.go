package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports batches of changed files under a root, after a quiet
// period. Directories named in the ignore set are never watched.
type Watcher struct {
	fw          *fsnotify.Watcher
	root        string
	ignoreNames map[string]bool
	accept      func(path string) bool
	debounce    time.Duration

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer
}

// NewWatcher creates a watcher. accept filters which files may trigger a
// batch; nil accepts everything.
func NewWatcher(ignoreNames []string, accept func(path string) bool, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	names := make(map[string]bool, len(ignoreNames))
	for _, n := range ignoreNames {
		names[n] = true
	}
	return &Watcher{
		fw:          fw,
		ignoreNames: names,
		accept:      accept,
		debounce:    debounce,
		pending:     make(map[string]bool),
	}, nil
}

// Watch adds root recursively and blocks until ctx is done, calling onChange
// with the sorted set of files changed during each quiet period.
func (w *Watcher) Watch(ctx context.Context, root string, onChange func(files []string)) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	w.root = root
	if err := w.addRecursive(root); err != nil {
		return err
	}

	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return w.fw.Close()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			w.handle(event, fire)

		case _, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			// fsnotify keeps running after a read error

		case <-fire:
			w.mu.Lock()
			files := make([]string, 0, len(w.pending))
			for f := range w.pending {
				files = append(files, f)
			}
			w.pending = make(map[string]bool)
			w.mu.Unlock()

			if len(files) > 0 {
				sort.Strings(files)
				onChange(files)
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, fire chan struct{}) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.ignoreNames[info.Name()] {
				w.addRecursive(path)
			}
			return
		}
	}

	if w.ignoredPath(path) {
		return
	}
	if w.accept != nil && !w.accept(path) {
		return
	}
	if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.ignoreNames[d.Name()] {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

// ignoredPath checks the components of path below the watched root.
func (w *Watcher) ignoredPath(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if w.ignoreNames[part] {
			return true
		}
	}
	return false
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
