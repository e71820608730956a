// Package watch rebuilds a tutorial when its sources change.
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

	"github.com/yaklabco/cppdoc/internal/logging"
	"github.com/yaklabco/cppdoc/pkg/fsutil"
)

// DefaultDebounce is the quiet period after the last event before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc is called with the sorted paths that changed since the last
// call. Its error is logged and does not stop the watcher.
type RebuildFunc func(ctx context.Context, changed []string) error

// Options configure a Watcher.
type Options struct {
	// Root is the directory watched recursively.
	Root string

	// Skip lists absolute directories that are not watched, such as the
	// output directory.
	Skip []string

	// Extensions are the file extensions that trigger a rebuild.
	// Defaults to .md, .yml and .yaml.
	Extensions []string

	Debounce time.Duration
}

// Watcher collects file system events under a root directory.
type Watcher struct {
	opts    Options
	fs      *fsnotify.Watcher
	hashes  map[string]fsutil.Digest
	pending map[string]struct{}
}

// New starts watching opts.Root. Events that arrive before Run is called
// are kept.
func New(opts Options) (*Watcher, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	opts.Root = root
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".md", ".yml", ".yaml"}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	w := &Watcher{
		opts:    opts,
		fs:      fsw,
		hashes:  make(map[string]fsutil.Digest),
		pending: make(map[string]struct{}),
	}
	if err := w.addDirsRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run delivers debounced changes to rebuild until ctx is done. Rebuilds
// run on the calling goroutine, so they never overlap.
func (w *Watcher) Run(ctx context.Context, rebuild RebuildFunc) error {
	logger := logging.FromContext(ctx)

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.handle(ctx, ev) {
				timer.Reset(w.opts.Debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)

		case <-timer.C:
			changed := w.drain()
			if len(changed) == 0 {
				continue
			}
			logger.Info("change detected; rebuilding", logging.FieldFiles, len(changed))
			if err := rebuild(ctx, changed); err != nil {
				logger.Warn("rebuild failed", logging.FieldError, err)
			}
		}
	}
}

// handle records ev and reports whether it should schedule a rebuild.
func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) bool {
	if w.skipped(ev.Name) || strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}

	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(ev.Name)
			return false
		}
	}

	if !w.relevant(ev.Name) {
		return false
	}

	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		delete(w.hashes, ev.Name)
	} else if !w.contentChanged(ev.Name) {
		return false
	}

	logging.FromContext(ctx).Debug("file change detected",
		logging.FieldPath, ev.Name,
		logging.FieldEvent, ev.Op.String(),
	)
	w.pending[ev.Name] = struct{}{}
	return true
}

// contentChanged compares the file's fingerprint with the last one seen.
// Editors often write a file several times without changing it.
func (w *Watcher) contentChanged(path string) bool {
	sum, err := fsutil.Fingerprint(path)
	if err != nil {
		return true
	}
	prev, seen := w.hashes[path]
	w.hashes[path] = sum
	return !seen || prev != sum
}

func (w *Watcher) drain() []string {
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	clear(w.pending)
	sort.Strings(changed)
	return changed
}

func (w *Watcher) relevant(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.opts.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (w *Watcher) skipped(path string) bool {
	for _, dir := range w.opts.Skip {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) addDirsRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil //nolint:nilerr // unreadable entries are not watched
		}
		if path != w.opts.Root && (strings.HasPrefix(d.Name(), ".") || w.skipped(path)) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
