package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchFile runs fn once, then again after every write to path, until ctx
// is done. Errors from fn are logged and do not stop the watch.
func watchFile(ctx context.Context, path string, logger zerolog.Logger, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of
	// writing it in place.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	if err := fn(); err != nil {
		logger.Error().Err(err).Str("file", path).Msg("compile failed")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Info().Str("file", path).Msg("changed, recompiling")
			if err := fn(); err != nil {
				logger.Error().Err(err).Str("file", path).Msg("compile failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watch error")
		}
	}
}
