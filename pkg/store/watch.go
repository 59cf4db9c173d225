package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is emitted by Watch when the stored note may have changed.
type Event struct {
	Key string
}

// Watch streams change events for the note until ctx is cancelled. Callers
// should drain the returned channel; events are dropped rather than blocking
// the watcher. The channel is closed once ctx is done or the watcher fails.
func (g *Gateway) Watch(ctx context.Context) (<-chan Event, error) {
	if g == nil || g.kv == nil {
		return nil, ErrUnavailable
	}
	if g.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(g.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(g.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", g.basePath, err)
	}

	events := make(chan Event, 8)

	go func() {
		var sendMu sync.Mutex
		closed := false
		defer func() {
			sendMu.Lock()
			closed = true
			close(events)
			sendMu.Unlock()
		}()
		defer closeWatcher()

		// send may run on the throttle's timer goroutine.
		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
				// The consumer reloads on the next event anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Treat watcher errors as a change so followers resync.
				throttle.Enqueue(Event{Key: g.key}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !g.ownsPath(evt.Name) {
					continue
				}
				throttle.Enqueue(Event{Key: g.key}, send)
			}
		}
	}()

	return events, nil
}

// ownsPath reports whether a file under the base path holds the note.
func (g *Gateway) ownsPath(path string) bool {
	name := filepath.Base(path)
	switch g.backend {
	case BackendSQLite:
		// Also matches the -wal and -journal companions.
		return strings.HasPrefix(name, sqliteFile)
	default:
		return name == g.key
	}
}

// eventThrottle coalesces the create/write/chmod burst of a single save into
// one event.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending *Event
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending = &ev
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.timer = nil
	t.mu.Unlock()

	if pending != nil {
		send(*pending)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
