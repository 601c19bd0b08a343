// Package watch ingests files dropped into an inbox directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docvault-labs/docvault/internal/core/ports/driving"
	"github.com/docvault-labs/docvault/internal/logger"
)

// defaultSettle is how long a file must go without writes before it is
// considered complete and ingested.
const defaultSettle = 2 * time.Second

// skippedSuffixes are partial-download and editor scratch files.
var skippedSuffixes = []string{".part", ".tmp", ".swp", ".crdownload"}

// Watcher monitors one directory and ingests every file that appears
// in it. Content-hash deduplication makes rescans of files it has
// already seen harmless.
type Watcher struct {
	ingest driving.IngestService
	dir    string
	settle time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatcher creates a watcher for the given directory, which must
// exist.
func NewWatcher(ingest driving.IngestService, dir string) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("inbox directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("inbox path %s is not a directory", dir)
	}

	return &Watcher{
		ingest: ingest,
		dir:    dir,
		settle: defaultSettle,
		timers: make(map[string]*time.Timer),
	}, nil
}

// Run blocks watching the directory until the context is cancelled.
// Files already present at startup are ingested first.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	if err := w.scanExisting(ctx); err != nil {
		return err
	}

	logger.Info("Watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.schedule(ctx, event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// scanExisting ingests files that were already in the inbox.
func (w *Watcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("reading inbox: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.schedule(ctx, filepath.Join(w.dir, entry.Name()))
	}
	return nil
}

// schedule arms (or re-arms) the settle timer for a path. The file is
// ingested once it stops changing for the settle interval.
func (w *Watcher) schedule(ctx context.Context, path string) {
	if skipped(filepath.Base(path)) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.settle)
		return
	}
	w.timers[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		w.ingestFile(ctx, path)
	})
}

// ingestFile reads a settled file and runs it through ingestion.
func (w *Watcher) ingestFile(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Reading %s failed: %v", path, err)
		return
	}

	doc, warnings, err := w.ingest.Ingest(ctx, driving.IngestRequest{
		Data:     data,
		Filename: filepath.Base(path),
	})
	if err != nil {
		logger.Warn("Ingesting %s failed: %v", path, err)
		return
	}

	logger.Info("Ingested %s as %q (%s)", path, doc.Title, doc.ID)
	for _, warning := range warnings {
		logger.Warn("%s: %s", path, warning)
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}

// skipped reports whether a filename should never be ingested.
func skipped(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, suffix := range skippedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
