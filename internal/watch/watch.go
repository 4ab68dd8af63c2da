// Package watch reports debounced changes to a set of files.
//
// Parent directories are watched rather than the files themselves so that
// editors replacing a file through rename keep being noticed.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 100 * time.Millisecond

// Watcher sends on Updates once a watched file has stayed quiet for the
// debounce period. A nil value means "changed"; a non-nil value is a watch
// error. Pending changes coalesce into a single update.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer

	updates   chan error
	done      chan struct{}
	closeOnce sync.Once
}

// Files starts watching files.
func Files(debounce time.Duration, files ...string) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("watch: no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]bool, len(files)),
		debounce: debounce,
		updates:  make(chan error, 1),
		done:     make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch: %w", err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch: adding %s: %w", dir, err)
		}
	}

	go w.process()
	return w, nil
}

// Updates returns the channel changes are reported on.
func (w *Watcher) Updates() <-chan error {
	return w.updates
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) process() {
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.updates <- err:
			case <-w.done:
				return
			}
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.debounceUpdate()
			}
		}
	}
}

func (w *Watcher) debounceUpdate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.updates <- nil:
		default:
			// an update is already pending
		}
	})
}

// Run calls onChange for every update until ctx is done or the watcher is
// closed. Watch errors are passed to onError when it is not nil.
func (w *Watcher) Run(ctx context.Context, onChange func(), onError func(error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case err := <-w.updates:
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			onChange()
		}
	}
}
