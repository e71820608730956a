// Package runner builds a whole tutorial: it discovers the Markdown sources,
// renders them concurrently and writes the pages.
package runner

// Options controls a site build.
type Options struct {
	// SourceDir holds the Markdown files and sidebar.yml.
	// If empty, the current process working directory is used.
	SourceDir string

	// OutputDir receives the rendered pages. A relative path is resolved
	// against the process working directory.
	OutputDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to [".md"] via DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns, relative to SourceDir, used to skip
	// files or directories.
	ExcludeGlobs []string

	// IgnoreFile names a gitignore-style file inside SourceDir. A missing
	// file is not an error.
	IgnoreFile string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}
