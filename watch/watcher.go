// Package watch reports changes to a fixed set of diary files.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

// Watcher calls OnChange when one of its files is written or created and
// OnRemove when it disappears. Directories are watched rather than files so
// that editors replacing a file by rename are noticed.
type Watcher struct {
	OnChange func(path string)
	OnRemove func(path string)

	// OnChange fires once a file has seen no further writes for Debounce,
	// so a burst of writes is reported once, after its last write.
	Debounce time.Duration

	files   map[string]bool
	dirs    []string
	watcher *fsnotify.Watcher
	log     commonlog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func New(paths ...string) (*Watcher, error) {
	w := &Watcher{
		Debounce: 100 * time.Millisecond,
		files:    make(map[string]bool),
		log:      commonlog.GetLogger("diary.watch"),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	seen := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
		w.files[abs] = true
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	w.watcher = watcher
	w.log.Infof("watching %d files in %d directories", len(w.files), len(w.dirs))

	go w.run(ctx)
	return nil
}

// Stop ends watching and waits for pending callbacks to return.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	if w.watcher != nil {
		<-w.done
	}
}

// Done is closed once the watcher has stopped.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// settle marks the end of a quiet period. Generations tell a timer that
// was superseded by a later write from the current one.
type settle struct {
	path string
	gen  int
}

type pendingChange struct {
	timer *time.Timer
	gen   int
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer w.watcher.Close()

	pending := make(map[string]pendingChange)
	settled := make(chan settle)
	defer func() {
		for _, p := range pending {
			p.timer.Stop()
		}
	}()

	gen := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			path := filepath.Clean(event.Name)
			if !w.files[path] {
				continue
			}
			gen++
			w.handle(ctx, path, event.Op, gen, pending, settled)

		case s := <-settled:
			if p, ok := pending[s.path]; !ok || p.gen != s.gen {
				continue
			}
			delete(pending, s.path)
			if w.OnChange != nil {
				w.OnChange(s.path)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watch error: %s", err)
		}
	}
}

// handle restarts the quiet period of path on every write and reports
// removals at once, dropping any change still waiting.
func (w *Watcher) handle(ctx context.Context, path string, op fsnotify.Op, gen int, pending map[string]pendingChange, settled chan<- settle) {
	switch {
	case op.Has(fsnotify.Create) || op.Has(fsnotify.Write):
		w.log.Debugf("%s: %s", path, op)
		if p, ok := pending[path]; ok {
			p.timer.Stop()
		}
		pending[path] = pendingChange{
			timer: time.AfterFunc(w.Debounce, func() {
				select {
				case settled <- settle{path: path, gen: gen}:
				case <-w.stopCh:
				case <-ctx.Done():
				}
			}),
			gen: gen,
		}
	case op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename):
		if p, ok := pending[path]; ok {
			p.timer.Stop()
			delete(pending, path)
		}
		w.log.Debugf("%s: %s", path, op)
		if w.OnRemove != nil {
			w.OnRemove(path)
		}
	}
}
