package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reports re-parsed configs whenever the watched YAML file changes.
// The directory is watched rather than the file so editors that replace the
// file on save are still observed.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Configs chan DinoConfig
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		Configs: make(chan DinoConfig, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Done is closed once the watcher stops.
func (w *Watcher) Done() <-chan struct{} {
	return w.closeCh
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// run reloads once a burst of events has been quiet for reloadDebounce, so
// an editor that truncates and then writes is only read after the last write.
func (w *Watcher) run() {
	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(reloadDebounce)
		case <-timer.C:
			cfg, err := LoadDino(w.path)
			if err != nil {
				w.send(nil, err)
				continue
			}
			w.send(&cfg, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

// send delivers without blocking the fsnotify loop; a pending stale config
// is replaced by the newer one.
func (w *Watcher) send(cfg *DinoConfig, err error) {
	if err != nil {
		select {
		case w.Errors <- err:
		default:
		}
		return
	}
	for {
		select {
		case w.Configs <- *cfg:
			return
		case <-w.closeCh:
			return
		default:
			select {
			case <-w.Configs:
			default:
			}
		}
	}
}
