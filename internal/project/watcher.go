package project

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mjanssen/zonegrid/internal/model"
)

// PresetWatcher watches the preset store file and reports reloads.
// Callbacks run on the watcher's goroutine; consumers must marshal the
// new store onto the engine's thread (typically as a PresetLoaded
// event) before touching any container state.
type PresetWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchPresets starts watching the preset file at path. onReload is
// called with the freshly loaded store after each change; stores that
// fail validation are skipped and logged, never delivered.
func WatchPresets(path string, onReload func(model.PresetStore)) (*PresetWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files by rename, which would
	// drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	pw := &PresetWatcher{watcher: watcher, done: make(chan struct{})}
	go pw.loop(path, onReload)
	return pw, nil
}

func (pw *PresetWatcher) loop(path string, onReload func(model.PresetStore)) {
	base := filepath.Base(path)
	for {
		select {
		case <-pw.done:
			return
		case ev, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			store, err := LoadPresets(path)
			if err != nil {
				log.Printf("preset reload skipped: %v", err)
				continue
			}
			onReload(store)
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("preset watcher: %v", err)
		}
	}
}

// Close stops the watcher.
func (pw *PresetWatcher) Close() error {
	close(pw.done)
	return pw.watcher.Close()
}
