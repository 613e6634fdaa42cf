package document

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Op describes what happened to a document.
type Op int

const (
	// OpChanged covers creation and writes, including atomic rename-into-place.
	OpChanged Op = iota
	// OpRemoved covers deletion and renames away.
	OpRemoved
)

func (o Op) String() string {
	switch o {
	case OpChanged:
		return "changed"
	case OpRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event reports a change to a document, or a watcher error in Err.
type Event struct {
	Doc *File
	Op  Op
	Err error
}

// Watch streams document events until ctx is cancelled. New subdirectories
// are picked up as they appear. The returned channel is closed on exit.
func (v *Vault) Watch(ctx context.Context) (<-chan Event, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := v.addTree(w, v.root); err != nil {
		w.Close()
		return nil, err
	}

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				e, ok := v.translate(w, ev)
				if !ok {
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				select {
				case out <- Event{Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (v *Vault) translate(w *fsnotify.Watcher, ev fsnotify.Event) (Event, bool) {
	rel, err := filepath.Rel(v.root, ev.Name)
	if err != nil || hiddenPath(rel) {
		return Event{}, false
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			_ = v.addTree(w, ev.Name)
			return Event{}, false
		}
	}
	if !v.isDocument(rel) {
		return Event{}, false
	}

	doc := &File{root: v.root, rel: rel}
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return Event{Doc: doc, Op: OpRemoved}, true
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		return Event{Doc: doc, Op: OpChanged}, true
	default:
		return Event{}, false
	}
}

func (v *Vault) addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != v.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}

func hiddenPath(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}
