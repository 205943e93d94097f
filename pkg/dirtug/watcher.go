package dirtug

import (
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of events into one reload.
const watchDebounce = 200 * time.Millisecond

var newFSWatcher = fsnotify.NewWatcher

var watchDir = func(dir string, onChange func()) (*dirWatcher, error) {
	return startDirWatcher(dir, watchDebounce, onChange)
}

type dirWatcher struct {
	w    *fsnotify.Watcher
	done chan struct{}
}

func startDirWatcher(dir string, debounce time.Duration, onChange func()) (*dirWatcher, error) {
	w, err := newFSWatcher()
	if err != nil {
		return nil, err
	}
	if err = w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	dw := &dirWatcher{w: w, done: make(chan struct{})}
	go dw.loop(debounce, onChange)
	return dw, nil
}

func (dw *dirWatcher) loop(debounce time.Duration, onChange func()) {
	defer close(dw.done)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case event, ok := <-dw.w.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(debounce, onChange)
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-dw.w.Errors:
			if !ok {
				return
			}
			slog.Warn("directory watcher error", "err", err)
		}
	}
}

// Close stops watching and waits for the event loop to exit.
func (dw *dirWatcher) Close() error {
	err := dw.w.Close()
	<-dw.done
	return err
}
