package bdata

import (
	"os"
	"runtime/debug"

	"git.thinkinpower.net/cardmeta/file"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

// Watcher reports changes to the files below a directory, including
// directories created after it started.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
	handler func(file.FileEvent)
	done    chan struct{}
}

func WatchDir(dir string, handler func(file.FileEvent)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	w := &Watcher{dir: dir, watcher: fw, handler: handler, done: make(chan struct{})}
	if err := w.addDir(dir); err != nil {
		fw.Close()
		return nil, err
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) addDir(dir string) error {
	dirs, err := file.SearchSubDirs(dir)
	if err != nil {
		return errors.Wrapf(err, "search %s", dir)
	}
	for _, d := range dirs {
		if err := w.watcher.Add(d); err != nil {
			return errors.Wrapf(err, "watch %s", d)
		}
	}
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Errorf("watch %s error: %s", w.dir, err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	defer func() {
		if err := recover(); err != nil {
			logger.Errorf("file event handler panic: %v\n%s", err, debug.Stack())
		}
	}()

	switch {
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			logger.Infof("directory created %s", event.Name)
			w.createdDir(event.Name)
			return
		}
		logger.Infof("file created %s", event.Name)
		w.handler(file.FileEvent{Filepath: event.Name, FileCreated: true})
	case event.Has(fsnotify.Write), event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		logger.Debugf("file changed %s: %s", event.Name, event.Op)
		w.handler(file.FileEvent{Filepath: event.Name})
	}
}

// createdDir watches a new directory and reports the files written into it
// before the watch was in place.
func (w *Watcher) createdDir(dir string) {
	if err := w.addDir(dir); err != nil {
		logger.Errorf("watch new directory error: %s", err)
		return
	}
	filepaths, err := file.SearchDir(dir, nil)
	if err != nil {
		logger.Errorf("search new directory error: %s", err)
		return
	}
	for _, path := range filepaths {
		w.handler(file.FileEvent{Filepath: path, FileCreated: true})
	}
}
