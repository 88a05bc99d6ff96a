// Package watcher reports changes to the save file made by other processes.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/venom/internal/log"
	"github.com/zjrosen/venom/internal/pubsub"
)

// Config holds watcher configuration options.
type Config struct {
	// Path is the file to watch.
	Path string
	// Debounce coalesces bursts of events into one notification.
	Debounce time.Duration
}

// DefaultConfig watches path with a 300ms debounce.
func DefaultConfig(path string) Config {
	return Config{Path: path, Debounce: 300 * time.Millisecond}
}

// Watcher publishes a pubsub.ChangedEvent with the file path whenever the
// file is written, created or renamed into place, and a RemovedEvent when
// it is deleted. fsnotify errors are published as ErrorEvent with the error
// text as payload.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	names    map[string]bool
	debounce time.Duration
	broker   *pubsub.Broker[string]

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	base := filepath.Base(cfg.Path)
	return &Watcher{
		fsw:  fsw,
		path: cfg.Path,
		// SQLite writes land in the -wal file first.
		names:    map[string]bool{base: true, base + "-wal": true},
		debounce: cfg.Debounce,
		broker:   pubsub.NewBroker[string](),
		done:     make(chan struct{}),
	}, nil
}

// Subscribe returns the event stream for the lifetime of ctx.
func (w *Watcher) Subscribe(ctx context.Context) <-chan pubsub.Event[string] {
	return w.broker.Subscribe(ctx)
}

// Broker exposes the underlying broker for pubsub.NewListener.
func (w *Watcher) Broker() *pubsub.Broker[string] {
	return w.broker
}

// Start watches the file's directory. The directory must exist. Atomic
// saves replace the file, so watching the file itself would lose track of
// it after the first rename.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "watching", "dir", dir, "file", filepath.Base(w.path))
	go w.loop()
	return nil
}

// Stop ends the watch and closes every subscription.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.broker.Close()
	})
	return err
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending pubsub.EventType
	)

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			kind, relevant := w.classify(ev)
			if !relevant {
				continue
			}
			// A later change wins over an earlier removal and vice versa.
			pending = kind
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			log.Debug(log.CatWatcher, "save file changed", "path", w.path, "event", pending)
			w.broker.Publish(pending, w.path)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", w.path)
			w.broker.Publish(pubsub.ErrorEvent, err.Error())

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// classify maps an fsnotify event on the watched directory to a pubsub
// event type.
func (w *Watcher) classify(ev fsnotify.Event) (pubsub.EventType, bool) {
	if !w.names[filepath.Base(ev.Name)] {
		return "", false
	}
	switch {
	case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
		return pubsub.ChangedEvent, true
	case ev.Op&fsnotify.Remove != 0:
		return pubsub.RemovedEvent, true
	default:
		return "", false
	}
}
