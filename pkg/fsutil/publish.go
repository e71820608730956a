package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// PageMode is the permission of published pages.
	PageMode os.FileMode = 0o644

	// DirMode is the permission of created output directories.
	DirMode os.FileMode = 0o755
)

// Publish replaces path with content in one rename. The staging file is a
// dot file next to path, so readers and the watcher never see a partial
// page. A zero mode selects PageMode.
func Publish(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("publish %s: %w", path, err)
	}
	if mode == 0 {
		mode = PageMode
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	staged, err := os.CreateTemp(dir, "."+base+".*.partial")
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	stagedPath := staged.Name()

	err = func() error {
		if _, err := staged.Write(content); err != nil {
			return fmt.Errorf("write staging file: %w", err)
		}
		if err := staged.Sync(); err != nil {
			return fmt.Errorf("sync staging file: %w", err)
		}
		if err := staged.Chmod(mode); err != nil {
			return fmt.Errorf("chmod staging file: %w", err)
		}
		return staged.Close()
	}()
	if err == nil {
		err = os.Rename(stagedPath, path)
	}
	if err != nil {
		_ = staged.Close()
		_ = os.Remove(stagedPath)
		return fmt.Errorf("publish %s: %w", path, err)
	}
	return nil
}

// PublishIfChanged publishes content unless path already holds exactly
// that content. It reports whether the file was written.
func PublishIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("publish %s: %w", path, err)
	}

	if stat, err := os.Stat(path); err == nil && stat.Size() == int64(len(content)) {
		current, err := Fingerprint(path)
		if err != nil {
			return false, err
		}
		if current == Digest(sha256.Sum256(content)) {
			return false, nil
		}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := Publish(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
