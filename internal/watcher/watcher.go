// Package watcher monitors a content directory and triggers snapshot
// rebuilds when markdown documents change.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/elevara-labs/resourcehub/internal/logger"
	"github.com/elevara-labs/resourcehub/internal/manifest"
)

// DefaultDebounce is how long a burst of file events settles before a
// reload fires. Editors save in flurries; one reload per flurry is enough.
const DefaultDebounce = 2 * time.Second

// Watcher reloads content when files under a directory change.
type Watcher struct {
	root     string
	debounce time.Duration
	reload   func()
	log      logger.Logger
}

// New builds a Watcher over root. reload is called after each settled
// burst of markdown changes. A non-positive debounce uses the default;
// a nil log discards.
func New(root string, debounce time.Duration, reload func(), log logger.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Watcher{root: root, debounce: debounce, reload: reload, log: log}
}

// Run watches until ctx is done or the watcher fails. The root and each
// group directory are watched; group directories created later are picked
// up as they appear.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	watched := 1
	for _, group := range manifest.Groups {
		dir := filepath.Join(w.root, group)
		if err := fw.Add(dir); err == nil {
			watched++
		}
	}
	w.log.Info("watching content dir",
		logger.String("root", w.root), logger.Int("dirs", watched))

	var (
		mu    sync.Mutex
		dirty bool
		timer *time.Timer
	)
	flush := func() {
		mu.Lock()
		fire := dirty
		dirty = false
		mu.Unlock()
		if fire {
			w.reload()
		}
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if isGroupDir(w.root, event.Name) {
						if err := fw.Add(event.Name); err != nil {
							w.log.Warn("could not watch new group dir",
								logger.String("dir", event.Name), logger.Error(err))
						}
					}
					continue
				}
			}

			if !strings.HasSuffix(event.Name, ".md") {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.log.Debug("content change",
				logger.String("file", filepath.Base(event.Name)),
				logger.String("op", event.Op.String()))

			mu.Lock()
			dirty = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, flush)
			mu.Unlock()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", logger.Error(err))
		}
	}
}

func isGroupDir(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, g := range manifest.Groups {
		if rel == g {
			return true
		}
	}
	return false
}
