package shader

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/logger"
)

// Watcher reports edits to a set of shader files. Events are coalesced:
// any number of writes between two Changed calls count once.
//
// The parent directories are watched rather than the files themselves,
// because editors often save by writing a new file and renaming it over
// the old one, which drops a watch on the original inode.
type Watcher struct {
	fs      *fsnotify.Watcher
	files   map[string]bool
	changed chan struct{}
	done    chan struct{}
}

// Watch starts watching paths.
func Watch(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		fs:      fw,
		files:   make(map[string]bool, len(paths)),
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			logger.Debug("shader source changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("shader watcher error", zap.Error(err))
		}
	}
}

// Changed reports whether any watched file changed since the last call.
// It never blocks.
func (w *Watcher) Changed() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

// C exposes the notification channel for callers that want to wait.
func (w *Watcher) C() <-chan struct{} {
	return w.changed
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}
