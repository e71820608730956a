package runner

import "time"

// PageOutcome describes what happened to one source file.
type PageOutcome struct {
	// Path is the absolute source path.
	Path string

	// Rel is Path relative to the source directory, slash separated.
	Rel string

	// Link is the page's sidebar link, e.g. "/ch01/loops.md".
	Link string

	// Output is the path of the rendered page.
	Output string

	// Written is false when the page on disk was already up to date.
	Written bool

	Duration time.Duration

	// Error is set if the page could not be rendered or written.
	Error error
}

// Stats captures aggregate information about a build.
type Stats struct {
	FilesDiscovered int
	PagesRendered   int
	PagesWritten    int
	PagesUnchanged  int
	PagesFailed     int
}

// Result is the overall build result.
type Result struct {
	// Pages are ordered deterministically (by source path).
	Pages []PageOutcome

	Stats Stats

	Duration time.Duration
}

// HasFailures reports whether any page failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.PagesFailed > 0
}

// Failed returns the outcomes that carry an error.
func (r *Result) Failed() []PageOutcome {
	if r == nil {
		return nil
	}
	var failed []PageOutcome
	for _, p := range r.Pages {
		if p.Error != nil {
			failed = append(failed, p)
		}
	}
	return failed
}

// accumulate updates the result with a page outcome.
func (r *Result) accumulate(outcome PageOutcome) {
	r.Pages = append(r.Pages, outcome)

	if outcome.Error != nil {
		r.Stats.PagesFailed++
		return
	}

	r.Stats.PagesRendered++
	if outcome.Written {
		r.Stats.PagesWritten++
	} else {
		r.Stats.PagesUnchanged++
	}
}
