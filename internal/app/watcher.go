package app

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeOp classifies an external change to the watched tree file.
type ChangeOp int

const (
	// OpModify indicates the file content changed.
	OpModify ChangeOp = iota
	// OpRemove indicates the file was deleted or renamed away.
	OpRemove
)

func (op ChangeOp) String() string {
	switch op {
	case OpModify:
		return "modify"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Change is one external modification of the watched file.
type Change struct {
	Path string
	Op   ChangeOp
}

// debounceWindow collapses editor save bursts (truncate + write + rename)
// into one notification.
const debounceWindow = 200 * time.Millisecond

// Watcher observes a single tree file for modifications made outside the
// application. It is advisory only: the persistence layer assumes a single
// writer, so a notification means the in-memory tree may be stale and the
// user should be offered a reload.
//
// The parent directory is watched rather than the file itself, so the
// watcher survives editors that replace the file via rename.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan Change
	errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	running bool
}

// NewWatcher builds a watcher for the tree file at path. Call Start to
// begin delivery and Close to release the handle.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return &Watcher{
		watcher: fw,
		path:    abs,
		changes: make(chan Change, 16),
		errors:  make(chan error, 4),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching. The file's parent directory must exist.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}

	w.running = true
	w.wg.Add(1)
	go w.loop()
	return nil
}

// Changes returns the channel delivering debounced change notifications.
// It is closed by Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Errors returns the channel delivering watch errors. It is closed by
// Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops delivery and releases the fsnotify handle. It blocks until
// the event loop has exited and is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	close(w.changes)
	close(w.errors)
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var (
		pending   *Change
		debounce  *time.Timer
		debounced <-chan time.Time
	)
	flush := func() {
		if pending == nil {
			return
		}
		select {
		case w.changes <- *pending:
		case <-w.done:
		}
		pending = nil
		debounced = nil
	}

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change, relevant := w.convert(event)
			if !relevant {
				continue
			}
			// A removal supersedes a pending modify.
			if pending == nil || change.Op == OpRemove {
				pending = &change
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceWindow)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(debounceWindow)
			}
			debounced = debounce.C

		case <-debounced:
			flush()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.done:
				return
			}
		}
	}
}

// convert filters directory events down to those touching the watched file.
func (w *Watcher) convert(event fsnotify.Event) (Change, bool) {
	abs, err := filepath.Abs(event.Name)
	if err != nil || abs != w.path {
		return Change{}, false
	}

	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		return Change{Path: w.path, Op: OpModify}, true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Change{Path: w.path, Op: OpRemove}, true
	default:
		return Change{}, false
	}
}
