package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"eyecare/internal/core/model"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 250 * time.Millisecond

// Watch reloads the configuration whenever the file changes on disk and hands
// the result to onChange. It blocks until ctx is cancelled.
func (store *Store) Watch(ctx context.Context, onChange func(model.ReminderConfig)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so the directory is watched instead.
	dir := filepath.Dir(store.path)
	file := filepath.Base(store.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	reload := func() {
		if ctx.Err() != nil {
			return
		}
		store.mu.Lock()
		langOverride := store.langOverride
		store.mu.Unlock()

		config, err := store.Load(langOverride)
		if err != nil {
			store.options.Logger.Warn(store.catalog().T("config_reload_error"), "path", store.path, "err", err)
			return
		}
		store.options.Logger.Info(store.catalog().T("config_reloaded"), "path", store.path)
		onChange(config)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != file {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, reload)
			timerMu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			store.options.Logger.Warn(store.catalog().T("config_watch_error"), "err", err)
		}
	}
}
