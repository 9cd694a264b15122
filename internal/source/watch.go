package source

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/alexisbeaulieu97/tokenscope/internal/logger"
)

// DefaultWatchDelay groups the bursts of events editors and generators
// produce when rewriting a file.
const DefaultWatchDelay = 200 * time.Millisecond

// Watcher signals when module files change on disk. Rapid changes are
// coalesced into a single signal.
type Watcher struct {
	watcher *fsnotify.Watcher
	match   func(name string) bool
	delay   time.Duration
	log     *logger.Logger

	changes chan struct{}
	done    chan struct{}

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// Watch starts watching the directories holding the module files.
func (s *FileSource) Watch(delay time.Duration) (*Watcher, error) {
	dirs, err := s.WatchPaths()
	if err != nil {
		return nil, err
	}

	pattern := filepath.Clean(s.Pattern)
	match := func(name string) bool {
		return filepath.Clean(name) == pattern
	}
	if hasGlobMeta(s.Pattern) {
		match = func(name string) bool {
			ok, err := doublestar.PathMatch(pattern, filepath.Clean(name))
			return err == nil && ok
		}
	}

	return newWatcher(dirs, match, delay, s.Logger)
}

func newWatcher(dirs []string, match func(string) bool, delay time.Duration, log *logger.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	if delay <= 0 {
		delay = DefaultWatchDelay
	}

	w := &Watcher{
		watcher: fw,
		match:   match,
		delay:   delay,
		log:     log,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.eventLoop()

	log.With("dirs", dirs).Debug("file watcher started")
	return w, nil
}

// Changes receives a value after each burst of changes. It is closed by
// Close.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.changes)
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	w.log.Debug("file watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error(err, "file watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if !w.match(event.Name) {
		return
	}

	w.log.WithFields(map[string]any{"op": event.Op.String(), "file": event.Name}).Debug("module file event")
	w.schedule()
}

// schedule restarts the quiet-period timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.notify)
}

func (w *Watcher) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
