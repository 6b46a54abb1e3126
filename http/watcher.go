package http

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatchModels reloads the predictor whenever a model file in dir is
// rewritten, so an out-of-band retrain is picked up without restarting serve
// mode. Blocks until the watcher fails or stop is closed.
func (s *Server) WatchModels(dir string, stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}
	s.logger.Info("watching models", zap.String("dir", dir))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			if err := s.predictor.Reload(dir); err != nil {
				// A retrain writes the two files one after another; the
				// first event can observe a half-written pair, so keep the
				// current models and wait for the next event.
				s.logger.Warn("model reload skipped", zap.String("event", event.Name), zap.Error(err))
				continue
			}
			s.logger.Info("models reloaded", zap.String("trigger", event.Name))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("model watcher error", zap.Error(err))

		case <-stop:
			return nil
		}
	}
}
