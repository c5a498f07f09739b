package snapshot

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"starsystem/internal/body"
)

// debounce coalesces the burst of write events most editors and atomic-rename
// saves produce into one reload.
const debounce = 50 * time.Millisecond

// Watcher re-loads the snapshot file whenever it changes and delivers parsed
// snapshots on C. A malformed file keeps the last good snapshot: nothing is
// delivered and the scene keeps rendering what it has.
type Watcher struct {
	// C carries complete parsed snapshots. Only the most recent matters;
	// consumers that fall behind see the latest state on the next receive.
	C chan []body.Record

	path string
	fw   *fsnotify.Watcher
	done chan struct{}

	// OnError, if set, is called with load/parse failures (e.g. to log them).
	OnError func(err error)
}

// Watch starts watching path. The file's directory is watched rather than the
// file itself so atomic renames keep working.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{
		C:    make(chan []body.Record, 1),
		path: path,
		fw:   fw,
		done: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	var pending <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(debounce)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	records, err := Load(w.path)
	if err != nil {
		if w.OnError != nil {
			w.OnError(err)
		}
		return
	}
	// Replace any undelivered snapshot; only the newest is relevant.
	select {
	case <-w.C:
	default:
	}
	w.C <- records
}

// Close stops the watcher goroutine and releases the OS watch.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
