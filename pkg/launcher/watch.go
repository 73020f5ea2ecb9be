package launcher

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/james-coso/chatge.ie/pkg/config"
)

// PromptStore holds the prompt catalog served to the widget. Readers never block;
// reloads swap the whole catalog.
type PromptStore struct {
	current atomic.Pointer[config.PromptCatalog]
}

func NewPromptStore(initial config.PromptCatalog) *PromptStore {
	s := &PromptStore{}
	s.current.Store(&initial)
	return s
}

// Get returns the current catalog.
func (s *PromptStore) Get() config.PromptCatalog {
	return *s.current.Load()
}

// Reload re-reads the prompts section of the config file at path. Empty sections
// fall back to the built-in prompts.
func (s *PromptStore) Reload(path string) error {
	cfg, err := config.LoadAppConfigFile(path)
	if err != nil {
		return err
	}
	cfg.ApplyDefaults()
	catalog := cfg.Prompts
	s.current.Store(&catalog)
	return nil
}

// Watch reloads the catalog whenever the config file at path changes, until ctx
// is done. The parent directory is watched so editors that replace the file are
// still picked up. A failed reload keeps the previous catalog.
func (s *PromptStore) Watch(ctx context.Context, path string, logger zerolog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}
	name := filepath.Clean(path)
	logger.Debug().Str("path", name).Msg("Watching prompt catalog")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(path); err != nil {
				logger.Warn().Err(err).Str("path", name).Msg("Failed to reload prompt catalog")
				continue
			}
			logger.Info().Str("path", name).Msg("Reloaded prompt catalog")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("Prompt watcher error")
		}
	}
}
