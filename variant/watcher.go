// Copyright (c) 2026 Kyradjis
// released under the MIT license

package variant

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is how long the watcher waits after the last file event
// before reloading; data pack updates touch many files in a quick burst and
// should trigger a single reload.
const reloadDebounce = time.Second

// Watcher reloads a Manager's registry when files under its source
// directories change.
type Watcher struct {
	manager *Manager
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching the manager's source directories. The returned
// Watcher must be closed to release the underlying OS watches.
func Watch(m *Manager) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, source := range m.sources {
		if err := fsWatcher.Add(source); err != nil {
			fsWatcher.Close()
			return nil, err
		}
	}
	w := &Watcher{
		manager: m,
		watcher: fsWatcher,
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops watching; pending debounced reloads are dropped.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(reloadDebounce)
			pending = true
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.manager.logger.Warning(logType, "watch error", err.Error())
		case <-timer.C:
			pending = false
			if err := w.manager.Reload(); err != nil {
				w.manager.logger.Warning(logType, "reload after file change failed", err.Error())
			}
		}
	}
}
