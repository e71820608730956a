package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/yaklabco/cppdoc/internal/logging"
	"github.com/yaklabco/cppdoc/pkg/fsutil"
	"github.com/yaklabco/cppdoc/pkg/sidebar"
	"github.com/yaklabco/cppdoc/pkg/site"
)

// Runner builds every page of a tutorial with a site.Renderer.
type Runner struct {
	Site *site.Renderer
}

// New creates a new Runner with the given renderer.
func New(renderer *site.Renderer) *Runner {
	return &Runner{Site: renderer}
}

// OutputPath maps a source path relative to the source directory to the
// page it renders to: "x/README.md" becomes "x/index.html" and "x/y.md"
// becomes "x/y.html".
func OutputPath(rel string) string {
	rel = filepath.ToSlash(rel)
	dir, file := path.Split(rel)
	if file == "README.md" {
		return dir + "index.html"
	}
	return strings.TrimSuffix(rel, path.Ext(rel)) + ".html"
}

// LoadSidebar reads sidebar.yml from sourceDir. A missing file yields nil.
func LoadSidebar(sourceDir string) (*sidebar.Sidebar, error) {
	outline, err := sidebar.Load(sourceDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return outline, err
}

// Run discovers the sources under opts.SourceDir and renders them
// concurrently into opts.OutputDir. A page that fails is recorded in its
// outcome; the build carries on with the other pages.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	sourceDir, err := resolveDir(opts.SourceDir)
	if err != nil {
		return nil, err
	}

	outline, err := LoadSidebar(sourceDir)
	if err != nil {
		return nil, err
	}

	result := &Result{Pages: make([]PageOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered sources",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldInput, sourceDir,
	)

	if len(files) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	b := &build{
		site:      r.Site,
		sourceDir: sourceDir,
		outputDir: opts.OutputDir,
		sidebar:   outline,
	}

	workCh := make(chan string)
	outCh := make(chan PageOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, p := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- p:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order.
	outcomes := make(map[string]PageOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, p := range files {
		if outcome, ok := outcomes[p]; ok {
			result.accumulate(outcome)
		}
	}
	result.Duration = time.Since(start)

	if ctx.Err() != nil {
		return result, fmt.Errorf("build cancelled: %w", ctx.Err())
	}

	return result, nil
}

// build is the per-run state shared by the workers. It is read-only.
type build struct {
	site      *site.Renderer
	sourceDir string
	outputDir string
	sidebar   *sidebar.Sidebar
}

func (b *build) worker(ctx context.Context, workCh <-chan string, outCh chan<- PageOutcome) {
	for p := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := b.page(ctx, p)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// page renders and writes one source file.
func (b *build) page(ctx context.Context, p string) (outcome PageOutcome) {
	start := time.Now()

	rel, err := filepath.Rel(b.sourceDir, p)
	if err != nil {
		rel = p
	}
	rel = filepath.ToSlash(rel)

	outcome = PageOutcome{
		Path:   p,
		Rel:    rel,
		Link:   sidebar.LinkFor(rel),
		Output: filepath.Join(b.outputDir, filepath.FromSlash(OutputPath(rel))),
	}
	defer func() { outcome.Duration = time.Since(start) }()
	ctx = logging.WithFields(ctx, logging.FieldPage, rel)

	source, err := fsutil.ReadSource(ctx, p)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	page, err := b.site.Page(ctx, source.Content, site.PageInfo{Link: outcome.Link, Sidebar: b.sidebar})
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", rel, err)
		return outcome
	}

	written, err := fsutil.PublishIfChanged(ctx, outcome.Output, page, fsutil.PageMode)
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", outcome.Output, err)
		return outcome
	}
	outcome.Written = written

	logging.FromContext(ctx).Debug("rendered page",
		logging.FieldOutput, outcome.Output,
		logging.FieldWritten, written,
	)

	return outcome
}
