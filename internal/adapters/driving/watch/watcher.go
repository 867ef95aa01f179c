// Package watch batches audio files that appear in a directory.
//
// Files are collected while the directory is busy and released as one
// batch once no relevant event has arrived for the quiet period, so a copy
// of many files becomes a single upload.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/services"
	"github.com/custodia-labs/scribe-cli/internal/logger"
)

// DefaultQuietPeriod is how long the directory must be idle before a batch
// is released.
const DefaultQuietPeriod = 2 * time.Second

// Watcher reports batches of new or rewritten audio files in a directory.
type Watcher struct {
	dir   string
	quiet time.Duration
}

// New creates a watcher for dir. A non-positive quiet period uses the default.
func New(dir string, quiet time.Duration) *Watcher {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Watcher{dir: dir, quiet: quiet}
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Watch starts watching and returns a channel of batches. Each batch is a
// sorted list of paths. The channel is closed when ctx is cancelled or the
// underlying watcher fails.
func (w *Watcher) Watch(ctx context.Context) (<-chan []string, error) {
	info, err := os.Stat(w.dir)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}

	batches := make(chan []string)
	go w.run(ctx, fsw, batches)
	return batches, nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, batches chan<- []string) {
	defer close(batches)
	defer fsw.Close()

	settle := services.NewDebouncer[int](w.quiet)
	defer settle.Stop()

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			path := w.handleFsEvent(event)
			if path == "" {
				continue
			}
			pending[path] = struct{}{}
			settle.Set(len(pending))

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Error("watch %s: %v", w.dir, err)

		case <-settle.C():
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			sort.Strings(batch)
			pending = make(map[string]struct{})

			logger.Debug("watch %s: releasing %d file(s)", w.dir, len(batch))
			select {
			case batches <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}

// handleFsEvent returns the path to upload for event, or "" if the event
// is not a create or write of a visible audio file.
func (w *Watcher) handleFsEvent(event fsnotify.Event) string {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return ""
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return ""
	}
	if !domain.IsAudioFile(event.Name) {
		return ""
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return ""
	}
	return event.Name
}
