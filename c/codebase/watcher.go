package codebase

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is called after a file was rechecked, or with a nil info once
// a known file disappeared.
type ChangeFunc func(path string, info *FileInfo)

// Watcher keeps a Codebase current with the file system.
type Watcher struct {
	codebase *Codebase
	watcher  *fsnotify.Watcher
	onChange ChangeFunc
}

// NewWatcher watches every directory under the codebase root that a scan
// would enter.
func NewWatcher(c *Codebase, onChange ChangeFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{codebase: c, watcher: fw, onChange: onChange}
	if err := w.addTree(c.RootDir()); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.codebase.skipDir(d.Name()) {
			return filepath.SkipDir
		}
		log.Debugf("watching %s", path)
		return w.watcher.Add(path)
	})
}

// Run handles file system events until ctx is done or the watcher fails.
// The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				log.Warningf("event overflow, rescanning %s", w.codebase.RootDir())
				if err := w.codebase.ScanAll(ctx); err != nil {
					return err
				}
				continue
			}
			return err
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	path := ev.Name
	switch {
	case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
		if w.codebase.RemoveFile(path) {
			log.Infof("%s removed", path)
			w.notify(path, nil)
		}
	case ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write):
		st, err := os.Stat(path)
		if err != nil {
			return
		}
		if st.IsDir() {
			if ev.Has(fsnotify.Create) && !w.codebase.skipDir(filepath.Base(path)) {
				if err := w.addTree(path); err != nil {
					log.Warningf("watch %s: %s", path, err)
				}
				if err := w.scanTree(path); err != nil {
					log.Warningf("scan %s: %s", path, err)
				}
			}
			return
		}
		if !w.codebase.Config().HasSourceExtension(path) {
			return
		}
		w.scan(path)
	}
}

// scanTree checks the files of a directory that appeared after watching
// started.
func (w *Watcher) scanTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warningf("skipping %s: %s", path, err)
			return nil
		}
		if d.IsDir() {
			if path != root && w.codebase.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if w.codebase.Config().HasSourceExtension(path) {
			w.scan(path)
		}
		return nil
	})
}

func (w *Watcher) scan(path string) {
	info, err := w.codebase.ScanFile(path)
	if err != nil {
		log.Warningf("%s", err)
		return
	}
	log.Infof("%s rechecked: %d diagnostics", path, len(info.Diagnostics))
	w.notify(path, info)
}

func (w *Watcher) notify(path string, info *FileInfo) {
	if w.onChange != nil {
		w.onChange(path, info)
	}
}
