// Package monitor watches the credential file and raises a level-triggered
// changed flag the orchestrator polls on its refresh tick.
package monitor

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jcurbo/xfce4-claude-status-plugin/internal/credentials"
)

// Flag is a level-triggered boolean shared between the monitor's worker
// and the polling caller. Any number of qualifying events before the next
// poll collapse into one true reading.
type Flag struct {
	mu  sync.Mutex
	set bool
}

// Set raises the flag.
func (f *Flag) Set() {
	f.mu.Lock()
	f.set = true
	f.mu.Unlock()
}

// TestAndClear returns the current value and resets it to false.
func (f *Flag) TestAndClear() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.set
	f.set = false
	return v
}

// Monitor owns one non-recursive watch and the worker that drains it.
type Monitor struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Start watches path (empty selects the default credential location, ~ is
// expanded) and raises flag on create or write events. Remove, rename and
// chmod events are ignored.
func Start(path string, flag *Flag) (*Monitor, error) {
	if path == "" {
		path = credentials.DefaultPath()
	} else {
		path = credentials.ExpandPath(path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	m := &Monitor{
		watcher: watcher,
		done:    make(chan struct{}),
	}
	go m.run(flag)
	return m, nil
}

// run is the single consumer of the watcher's channels. It exits when the
// watcher closes them.
func (m *Monitor) run(flag *Flag) {
	defer close(m.done)
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				flag.Set()
			}
		case _, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Stop releases the OS watch and joins the worker. After Stop returns no
// event can raise the flag.
func (m *Monitor) Stop() {
	m.watcher.Close()
	<-m.done
}
