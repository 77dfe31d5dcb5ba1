package level

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher hot-reloads level files from a directory into a Registry.
// Only the top level of the directory is watched.
type Watcher struct {
	reg     *Registry
	dir     string
	watcher *fsnotify.Watcher
	logger  *log.Logger

	// files maps a watched path to the definition it last loaded.
	// base holds what the registry had for an ID before any watched file
	// overrode it. Both are owned by the run goroutine after construction.
	files map[string]source
	base  map[string]Definition
	seq   uint64

	// Reloaded receives the ID of every level applied or removed.
	// Sends never block; slow readers miss notifications.
	Reloaded chan string

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

type source struct {
	def Definition
	seq uint64
}

// NewWatcher loads dir into reg and starts watching it for changes.
// A nil logger discards output.
func NewWatcher(reg *Registry, dir string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		reg:      reg,
		dir:      dir,
		watcher:  fw,
		logger:   logger,
		files:    make(map[string]source),
		base:     make(map[string]Definition),
		Reloaded: make(chan string, 16),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		_ = fw.Close()
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() || !IsLevelFile(e.Name()) {
			continue
		}
		w.load(filepath.Join(dir, e.Name()))
	}

	go w.run()
	return w, nil
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Reloaded)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !IsLevelFile(event.Name) {
				continue
			}
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				w.load(event.Name)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.forget(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("level watcher error", "err", err)
		case <-w.closeCh:
			return
		}
	}
}

// load parses path and applies it. Partial writes fail to parse and are
// picked up again by the next write event.
func (w *Watcher) load(path string) {
	def, err := LoadFile(path)
	if err != nil {
		w.logger.Warn("level reload failed", "path", path, "err", err)
		return
	}

	prev, hadPrev := w.files[path]
	shadowed, snapshot := Definition{}, false
	if !w.defines(def.ID) {
		shadowed, snapshot = w.reg.Get(def.ID)
	}
	if err := w.reg.Replace(def); err != nil {
		w.logger.Warn("level rejected", "path", path, "err", err)
		return
	}
	if snapshot {
		w.base[def.ID] = shadowed
	}

	w.seq++
	w.files[path] = source{def: def, seq: w.seq}
	if hadPrev && prev.def.ID != def.ID {
		w.release(prev.def.ID)
	}
	w.logger.Info("level loaded", "id", def.ID, "path", path)
	w.notify(def.ID)
}

func (w *Watcher) forget(path string) {
	src, ok := w.files[path]
	if !ok {
		return
	}
	delete(w.files, path)
	w.release(src.def.ID)
	w.logger.Info("level file removed", "id", src.def.ID, "path", path)
	w.notify(src.def.ID)
}

// defines reports whether any watched file currently provides id.
func (w *Watcher) defines(id string) bool {
	for _, src := range w.files {
		if src.def.ID == id {
			return true
		}
	}
	return false
}

// release settles id after a file stopped providing it: the most recently
// loaded remaining file wins, then the definition it shadowed, and only
// then is the level removed.
func (w *Watcher) release(id string) {
	var next *source
	for _, src := range w.files {
		if src.def.ID == id && (next == nil || src.seq > next.seq) {
			next = &src
		}
	}

	switch base, ok := w.base[id]; {
	case next != nil:
		if err := w.reg.Replace(next.def); err != nil {
			w.logger.Warn("level restore failed", "id", id, "err", err)
		}
	case ok:
		delete(w.base, id)
		if err := w.reg.Replace(base); err != nil {
			w.logger.Warn("level restore failed", "id", id, "err", err)
		}
	default:
		w.reg.Remove(id)
	}
}

func (w *Watcher) notify(id string) {
	select {
	case w.Reloaded <- id:
	default:
	}
}
