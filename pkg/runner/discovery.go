package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// walker carries the state shared by one discovery walk.
type walker struct {
	root       string
	outputDir  string
	extensions []string
	excludes   []string
	gitignore  *ignore.GitIgnore
	follow     bool
}

// Discover finds the Markdown sources under opts.SourceDir. It returns a
// deterministically sorted list of absolute file paths.
//
// Hidden files and directories, the output directory, paths matching
// ExcludeGlobs and paths matched by the ignore file are skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	root, err := resolveDir(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolve source directory: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", root)
	}

	w := &walker{
		root:       root,
		extensions: opts.effectiveExtensions(),
		excludes:   opts.ExcludeGlobs,
		follow:     opts.FollowSymlinks,
	}
	if opts.OutputDir != "" {
		if w.outputDir, err = filepath.Abs(opts.OutputDir); err != nil {
			return nil, fmt.Errorf("resolve output directory: %w", err)
		}
	}
	if w.gitignore, err = loadIgnoreFile(root, opts.IgnoreFile); err != nil {
		return nil, err
	}

	files, err := w.walk(ctx, root)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(files))
	unique := files[:0]
	for _, f := range files {
		if _, ok := seen[f]; !ok {
			seen[f] = struct{}{}
			unique = append(unique, f)
		}
	}

	sort.Strings(unique)
	return unique, nil
}

// resolveDir resolves a directory, defaulting to os.Getwd().
func resolveDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// loadIgnoreFile compiles the gitignore-style file at root/name.
func loadIgnoreFile(root, name string) (*ignore.GitIgnore, error) {
	if name == "" {
		return nil, nil
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, name)
	}

	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load ignore file: %w", err)
	}
	return gi, nil
}

// walk recursively walks dir and returns matching Markdown files.
func (w *walker) walk(ctx context.Context, dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath := w.rel(path)

		if entry.IsDir() {
			if path == dir {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") ||
				(w.outputDir != "" && path == w.outputDir) ||
				w.excluded(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Intentionally skip inaccessible symlink targets
			}
			if info.IsDir() {
				if !w.follow {
					return nil
				}
				// Walk the target; WalkDir uses Lstat on its root.
				subFiles, err := w.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if hasMatchingExtension(path, w.extensions) && !w.excluded(relPath, false) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", dir, err)
	}

	return files, nil
}

func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(relPath)
}

// excluded reports whether relPath is skipped by a glob or the ignore file.
func (w *walker) excluded(relPath string, isDir bool) bool {
	for _, pattern := range w.excludes {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	if w.gitignore == nil {
		return false
	}
	if isDir {
		return w.gitignore.MatchesPath(relPath + "/")
	}
	return w.gitignore.MatchesPath(relPath)
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated relative path against a glob pattern.
// It supports patterns like "*.md", "drafts/**" and "**/old".
func matchGlob(path, pattern string) bool {
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStarPattern(path, pattern)
	}

	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}

	// Patterns without a slash also match the base name.
	if !strings.Contains(pattern, "/") {
		matched, err := filepath.Match(pattern, filepath.Base(path))
		return err == nil && matched
	}
	return false
}

// matchDoubleStarPattern handles "**/x", "x/**" and "a/**/b" patterns.
func matchDoubleStarPattern(path, pattern string) bool {
	parts := strings.SplitN(pattern, "**", 2)
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	if prefix != "" && path != prefix && !strings.HasPrefix(path, prefix+"/") {
		return false
	}
	if suffix == "" {
		return true
	}

	rest := strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
	segments := strings.Split(rest, "/")
	for i := range segments {
		candidate := strings.Join(segments[i:], "/")
		if matched, err := filepath.Match(suffix, candidate); err == nil && matched {
			return true
		}
	}
	return false
}
