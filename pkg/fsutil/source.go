// Package fsutil holds the file system primitives cppdoc builds on:
// reading Markdown sources with a content digest and publishing rendered
// pages without exposing half-written files.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates a directory where a file was expected.
	ErrIsDirectory = errors.New("path is a directory")
)

// Digest is the SHA-256 of a file's content.
type Digest [sha256.Size]byte

// Source is a document read for rendering.
type Source struct {
	Path    string
	Content []byte
	ModTime time.Time
	Digest  Digest
}

// ReadSource reads the document at path.
func ReadSource(ctx context.Context, path string) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, categorize(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, categorize(path, err)
	}

	return &Source{
		Path:    path,
		Content: content,
		ModTime: stat.ModTime(),
		Digest:  sha256.Sum256(content),
	}, nil
}

// Fingerprint hashes the file at path without holding it in memory.
func Fingerprint(path string) (Digest, error) {
	var sum Digest

	f, err := os.Open(path)
	if err != nil {
		return sum, categorize(path, err)
	}
	defer f.Close()

	if stat, err := f.Stat(); err == nil && stat.IsDir() {
		return sum, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return sum, fmt.Errorf("hash %s: %w", path, err)
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

func categorize(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
