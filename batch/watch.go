package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch converts the existing files of dir, then keeps converting files that are
// created or written until ctx is cancelled.
//
// Events for a file are debounced so a file being copied in is converted once after
// it settles. A file that fails, typically because it is still incomplete, is logged
// and retried on its next event. Watch returns nil when ctx is cancelled.
func (p *Processor) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger := p.cfg.logger.With(zap.String("dir", dir))
	logger.Info("watching for endf files", zap.Strings("patterns", p.cfg.patterns))

	if _, err := p.RunDir(ctx, dir); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		logger.Warn("initial run incomplete", zap.Error(err))
	}

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(p.cfg.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !p.matches(filepath.Base(event.Name)) {
				continue
			}
			logger.Debug("file event", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < p.cfg.debounce {
					continue
				}
				delete(pending, path)
				p.Process(ctx, path)
			}
		}
	}
}
