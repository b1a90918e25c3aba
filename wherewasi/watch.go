package wherewasi

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay is how long a save file must stay quiet before it is reported.
const DebounceDelay = 100 * time.Millisecond

// Watcher reports the names of save files that changed on disk. A name is
// sent once writes to its file have settled for DebounceDelay.
type Watcher struct {
	Events chan string
	Errors chan error

	store   *Store
	watcher *fsnotify.Watcher

	mu       sync.Mutex
	expected map[string]bool

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches the directory of store, creating it if needed.
func NewWatcher(store *Store) (*Watcher, error) {
	if err := os.MkdirAll(store.Dir(), 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(store.Dir()); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		store:    store,
		watcher:  w,
		expected: make(map[string]bool),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. The channels are left open and simply go quiet.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, ok := w.store.NameFromPath(event.Name)
			if !ok {
				continue
			}
			if t, ok := timers[name]; ok {
				t.Reset(DebounceDelay)
				continue
			}
			timers[name] = time.AfterFunc(DebounceDelay, func() { w.emit(name) })
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Expect marks the next change to name as the process's own write, so it is
// not reported. Call it before writing and Forget if the write fails.
func (w *Watcher) Expect(name string) {
	w.mu.Lock()
	w.expected[name] = true
	w.mu.Unlock()
}

// Forget clears a pending Expect for name.
func (w *Watcher) Forget(name string) {
	w.mu.Lock()
	delete(w.expected, name)
	w.mu.Unlock()
}

func (w *Watcher) emit(name string) {
	w.mu.Lock()
	own := w.expected[name]
	delete(w.expected, name)
	w.mu.Unlock()
	if own {
		return
	}

	select {
	case w.Events <- name:
	case <-w.closeCh:
	}
}
