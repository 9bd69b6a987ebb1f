package config

import (
	"context"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"dirgrip/internal/eventbus"
)

// Watcher reloads the config file when another program writes it and
// publishes the new history list as a HistoryConfigChangedEvent. Saves made
// by this process are recognized by tracking the last history list seen on
// the bus, so they do not echo back.
type Watcher struct {
	bus  eventbus.EventBus
	svc  ConfigService
	path string

	mu   sync.Mutex
	last []string
}

// NewWatcher creates a watcher for the config file at path. initial is the
// history list currently in effect.
func NewWatcher(bus eventbus.EventBus, svc ConfigService, path string, initial []string) *Watcher {
	w := &Watcher{
		bus:  bus,
		svc:  svc,
		path: path,
		last: append([]string(nil), initial...),
	}

	// Track what this process considers current, so reload can tell an
	// external edit from our own write-back
	bus.Subscribe(eventbus.EventHistoryChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.HistoryChangedEvent); ok {
			w.mu.Lock()
			w.last = append([]string(nil), event.Entries...)
			w.mu.Unlock()
		}
	})
	return w
}

// Start watches the config file until ctx is done. The containing directory
// is watched rather than the file itself, so atomic replace-style saves by
// editors keep being picked up.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return err
	}

	go func() {
		defer fw.Close()
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if event.Name != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				w.reload()

			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Printf("Config watcher error: %v", err)

			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// reload re-reads the config and publishes its history when it differs from
// the last list seen on the bus
func (w *Watcher) reload() {
	cfg, err := w.svc.LoadFromPath(w.path)
	if err != nil {
		log.Printf("Config watcher: reload failed: %v", err)
		return
	}

	w.mu.Lock()
	changed := !equalEntries(cfg.History.Entries, w.last)
	if changed {
		w.last = append([]string(nil), cfg.History.Entries...)
	}
	w.mu.Unlock()

	if changed {
		log.Printf("Config watcher: history edited externally (%d entries)", len(cfg.History.Entries))
		w.bus.Publish(eventbus.HistoryConfigChangedEvent{History: cfg.History.Entries})
	}
}

func equalEntries(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
