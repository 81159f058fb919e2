package flagfile

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/akademate/pkg/logger"
)

// Watch calls onChange with the reparsed file every time path is written or
// replaced, until ctx is done. The parent directory is watched so editors
// that save through a rename are picked up. Files that fail to parse are
// logged and skipped.
func Watch(ctx context.Context, path string, log *slog.Logger, onChange func(context.Context, *File) error) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With(logger.Component("flagfile.watch"), slog.String("path", path))

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			f, err := Load(target)
			if err != nil {
				log.WarnContext(ctx, "flag file change ignored", logger.Error(err))
				continue
			}
			if err := onChange(ctx, f); err != nil {
				log.ErrorContext(ctx, "flag file reload failed", logger.Error(err))
				continue
			}
			log.InfoContext(ctx, "flag file reloaded")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				log.WarnContext(ctx, "flag file watcher overflow", logger.Error(err))
				continue
			}
			log.ErrorContext(ctx, "flag file watcher error", logger.Error(err))
		}
	}
}
