package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of configuration change.
type EventType int

// Event types for configuration file changes.
const (
	EventSettingsChanged EventType = iota
	EventCredentialsChanged
	EventStateChanged
)

// Event represents a configuration file change.
type Event struct {
	Type EventType
	Path string
}

// Watcher watches the global AgentScope directory for configuration changes,
// so a login or settings edit in one terminal is picked up by a dashboard
// running in another.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	eventsChan chan Event
	done       chan struct{}
	closeOnce  sync.Once

	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

const debounceDelay = 200 * time.Millisecond

// NewWatcher creates a watcher over the global configuration directory.
func NewWatcher() (*Watcher, error) {
	if err := EnsureGlobalDir(); err != nil {
		return nil, err
	}
	dir, err := GlobalDir()
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		fsWatcher:  fsWatcher,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		debounce:   make(map[string]*time.Timer),
	}
	go w.loop()
	return w, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
	})
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.emitDebounced(ev.Name)
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next poll-style reload catches up.
		}
	}
}

// emitDebounced coalesces bursts of events for the same file. Editors tend to
// write, chmod and rename in quick succession.
func (w *Watcher) emitDebounced(path string) {
	eventType, ok := classify(path)
	if !ok {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounce[path]; exists {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(debounceDelay, func() {
		select {
		case w.eventsChan <- Event{Type: eventType, Path: path}:
		case <-w.done:
		}
	})
}

func classify(path string) (EventType, bool) {
	switch filepath.Base(path) {
	case SettingsFileName:
		return EventSettingsChanged, true
	case CredentialsFileName:
		return EventCredentialsChanged, true
	case StateFileName:
		return EventStateChanged, true
	}
	return 0, false
}
