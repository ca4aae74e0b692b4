package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/signadot/docschema/debug"
)

type Op int

const (
	OpRegister Op = iota
	OpDeregister
	OpError
)

func (op Op) String() string {
	switch op {
	case OpRegister:
		return "register"
	case OpDeregister:
		return "deregister"
	case OpError:
		return "error"
	default:
		return "unknown"
	}
}

// Event reports a change a Watcher made to its registrar.
type Event struct {
	Op   Op
	Path string
	ID   string
	Err  error
}

func (e Event) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s %q", e.Op, e.Path, e.ID)
}

// Watcher keeps a registrar in sync with a directory of schema documents.
type Watcher struct {
	reg  Registrar
	root string
	opts *loadOpts

	fsw    *fsnotify.Watcher
	events chan Event
	wg     sync.WaitGroup

	mu      sync.Mutex
	ids     map[string]string
	running bool
	closed  bool
	cancel  context.CancelFunc
}

// NewWatcher creates a watcher for root. ids holds the files already
// registered, as returned by LoadDir.
func NewWatcher(reg Registrar, root string, ids map[string]string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	w := &Watcher{
		reg:    reg,
		root:   root,
		opts:   options(opts),
		fsw:    fsw,
		events: make(chan Event, 64),
		ids:    map[string]string{},
	}
	for path, id := range ids {
		w.ids[path] = id
	}
	return w, nil
}

// Events returns the event channel. It is closed when the watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start watches the directories under root until ctx is done or Stop is
// called. A watcher cannot be restarted, and one that fails to start is
// closed.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if w.closed {
		return fmt.Errorf("watcher closed")
	}
	if err := w.addDirs(w.root); err != nil {
		w.close()
		return err
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.running = true
	w.wg.Add(1)
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for it to exit. It also releases a
// watcher that was never started.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.close()
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.closed = true
	w.cancel()
	w.mu.Unlock()
	w.wg.Wait()
	return nil
}

// close releases a watcher that is not running. w.mu must be held.
func (w *Watcher) close() {
	if w.closed {
		return
	}
	w.closed = true
	w.fsw.Close()
	close(w.events)
}

func (w *Watcher) addDirs(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && !w.opts.recursive {
			return fs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.events)
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ctx, ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.emit(ctx, Event{Op: OpError, Path: w.root, Err: err})
		}
	}
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	if debug.Load() {
		debug.Logf("watch: %s\n", ev)
	}
	path := ev.Name
	if ev.Has(fsnotify.Create) && w.opts.recursive {
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			if err := w.addDirs(path); err != nil {
				w.emit(ctx, Event{Op: OpError, Path: path, Err: err})
				return
			}
			// files may have been written before the directory was watched
			w.reloadDir(ctx, path)
			return
		}
	}
	if strings.HasSuffix(path, PatchSuffix) {
		// an overlay changed: reload its document
		for _, ext := range []string{".json", ".yaml", ".yml"} {
			doc := strings.TrimSuffix(path, PatchSuffix) + ext
			if _, err := os.Stat(doc); err == nil {
				w.reload(ctx, doc)
			}
		}
		return
	}
	if !IsSchemaFile(path) {
		return
	}
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		w.forget(ctx, path)
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		w.reload(ctx, path)
	}
}

func (w *Watcher) reload(ctx context.Context, path string) {
	id, s, err := load(path, w.opts)
	if err == nil {
		err = w.reg.Register(id, s)
	}
	if err != nil {
		w.emit(ctx, Event{Op: OpError, Path: path, Err: err})
		return
	}
	w.mu.Lock()
	old, had := w.ids[path]
	w.ids[path] = id
	w.mu.Unlock()
	if had && old != id {
		w.reg.Deregister(old)
		w.emit(ctx, Event{Op: OpDeregister, Path: path, ID: old})
	}
	w.emit(ctx, Event{Op: OpRegister, Path: path, ID: id})
}

func (w *Watcher) reloadDir(ctx context.Context, dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !IsSchemaFile(path) {
			return nil
		}
		w.reload(ctx, path)
		return nil
	})
}

func (w *Watcher) forget(ctx context.Context, path string) {
	w.mu.Lock()
	id, had := w.ids[path]
	delete(w.ids, path)
	w.mu.Unlock()
	if !had {
		return
	}
	w.reg.Deregister(id)
	w.emit(ctx, Event{Op: OpDeregister, Path: path, ID: id})
}

func (w *Watcher) emit(ctx context.Context, ev Event) {
	select {
	case w.events <- ev:
	case <-ctx.Done():
	}
}
