package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cppdoc/pkg/reporter"
	"github.com/yaklabco/cppdoc/pkg/runner"
	"github.com/yaklabco/cppdoc/pkg/site"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "table reporter", format: reporter.FormatTable},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Pages: []runner.PageOutcome{
			{
				Rel:      "README.md",
				Link:     "/",
				Output:   "/site/dist/index.html",
				Written:  true,
				Duration: 3 * time.Millisecond,
			},
			{
				Rel:    "ch01/loops.md",
				Link:   "/ch01/loops.md",
				Output: "/site/dist/ch01/loops.html",
			},
			{
				Rel:   "ch01/bad.md",
				Link:  "/ch01/bad.md",
				Error: &site.BlockError{Line: 12, Lang: "sdsc", Err: errors.New("unclosed group")},
			},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			PagesRendered:   2,
			PagesWritten:    1,
			PagesUnchanged:  1,
			PagesFailed:     1,
		},
		Duration: 25 * time.Millisecond,
	}
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		Verbose:     true,
		WorkingDir:  "/site",
	})

	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	out := buf.String()
	assert.Contains(t, out, "wrote README.md -> dist/index.html")
	assert.Contains(t, out, "unchanged ch01/loops.md -> dist/ch01/loops.html")
	assert.Contains(t, out, "ch01/bad.md:12  error  unclosed group  (sdsc)")
	assert.Contains(t, out, "Built 2 pages (1 written, 1 unchanged), 1 page failed in 25ms")
}

func TestTextReporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	failed, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Equal(t, "No pages to build.\n", buf.String())
}

func TestTableReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTableReporter(reporter.Options{Writer: &buf, Color: "never", WorkingDir: "/site"})

	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	out := buf.String()
	assert.Contains(t, out, "PAGE")
	assert.Regexp(t, `README\.md\s+dist/index\.html\s+written`, out)
	assert.Contains(t, out, "unclosed group")
}

func TestSummaryReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewSummaryReporter(reporter.Options{Writer: &buf, Color: "never"})

	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Contains(t, buf.String(), "Build failed")
	assert.Contains(t, buf.String(), "ch01/bad.md:12")
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: "/site"})

	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	var got reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	_, err = uuid.Parse(got.RunID)
	require.NoError(t, err, "run id should be a UUID")

	assert.Equal(t, "1.0.0", got.Version)
	require.Len(t, got.Pages, 3)
	assert.Equal(t, reporter.JSONPage{
		Path:       "README.md",
		Link:       "/",
		Output:     "dist/index.html",
		Written:    true,
		DurationMS: 3,
	}, got.Pages[0])
	assert.Equal(t, &reporter.JSONError{Message: "unclosed group", Line: 12, Lang: "sdsc"}, got.Pages[2].Error)
	assert.Equal(t, reporter.JSONSummary{
		FilesDiscovered: 3,
		PagesRendered:   2,
		PagesWritten:    1,
		PagesUnchanged:  1,
		PagesFailed:     1,
		DurationMS:      25,
	}, got.Summary)
}

func TestJSONReporter_FixedRunIDAndCompact(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, RunID: "run-1", Compact: true})

	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"version": "1.0.0",
		"runId": "run-1",
		"pages": [],
		"summary": {
			"filesDiscovered": 0, "pagesRendered": 0, "pagesWritten": 0,
			"pagesUnchanged": 0, "pagesFailed": 0, "durationMs": 0
		}
	}`, buf.String())
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}
