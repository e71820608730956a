package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cppdoc/internal/cli"
	"github.com/yaklabco/cppdoc/pkg/reporter"
	"github.com/yaklabco/cppdoc/pkg/sdsc"
)

const fenceMark = "```"

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func newTutorial(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"README.md": "# C++ 教程\n\nWelcome.\n",
		"ch01/loops.md": "# Loops\n\n" + fenceMark + "cpp\n" +
			"#include <iostream>\nint main() { std::cout << 1; }\n" + fenceMark + "\n",
		"sidebar.yml": "- /\n- /ch01/loops.md\n",
	})
	return dir
}

func TestIntegration_Build(t *testing.T) {
	t.Parallel()

	dir := newTutorial(t)
	dist := filepath.Join(dir, "dist")

	out, err := execute(t, "", "build", "--source", dir, "--output", dist)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Built 2 pages (2 written, 0 unchanged)")

	index, err := os.ReadFile(filepath.Join(dist, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "<h1>C++ 教程</h1>")
	assert.Contains(t, string(index), `<a class="next" href="/ch01/loops.html">Loops</a>`)

	loops, err := os.ReadFile(filepath.Join(dist, "ch01", "loops.html"))
	require.NoError(t, err)
	assert.Contains(t, string(loops), "https://zh.cppreference.com/w/cpp/io/cout")

	// Nothing changed: nothing is rewritten.
	out, err = execute(t, "", "build", "--source", dir, "--output", dist)
	require.NoError(t, err, out)
	assert.Contains(t, out, "(0 written, 2 unchanged)")
}

func TestIntegration_BuildNoAutolink(t *testing.T) {
	t.Parallel()

	dir := newTutorial(t)
	dist := filepath.Join(dir, "dist")

	out, err := execute(t, "", "build", "--source", dir, "--output", dist, "--no-autolink")
	require.NoError(t, err, out)

	loops, err := os.ReadFile(filepath.Join(dist, "ch01", "loops.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(loops), "cppreference.com")
}

func TestIntegration_BuildJSONReport(t *testing.T) {
	t.Parallel()

	dir := newTutorial(t)

	out, err := execute(t, "", "build", "--source", dir, "--output", filepath.Join(dir, "dist"), "--format", "json")
	require.NoError(t, err, out)

	var report reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Summary.PagesWritten)
	require.Len(t, report.Pages, 2)
	assert.Equal(t, "README.md", report.Pages[0].Path)
	assert.Equal(t, "/ch01/loops.md", report.Pages[1].Link)
}

func TestIntegration_BuildFailure(t *testing.T) {
	t.Parallel()

	dir := newTutorial(t)
	writeTree(t, dir, map[string]string{
		"ch01/bad.md": "# Bad\n\n" + fenceMark + "sdsc\n( unclosed\n" + fenceMark + "\n",
	})

	out, err := execute(t, "", "build", "--source", dir, "--output", filepath.Join(dir, "dist"))
	require.ErrorIs(t, err, cli.ErrBuildFailed)
	assert.Equal(t, cli.ExitBuildFailed, cli.ExitCodeFromError(err))
	assert.Contains(t, out, "ch01/bad.md:3  error")
	assert.Contains(t, out, "1 page failed")

	// The other pages are still written.
	_, statErr := os.Stat(filepath.Join(dir, "dist", "ch01", "loops.html"))
	require.NoError(t, statErr)
}

func TestIntegration_BuildInvalidFormat(t *testing.T) {
	t.Parallel()

	dir := newTutorial(t)

	_, err := execute(t, "", "build", "--source", dir, "--format", "sarif")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_Render(t *testing.T) {
	t.Parallel()

	dir := newTutorial(t)

	out, err := execute(t, "", "render", filepath.Join(dir, "ch01", "loops.md"))
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Loops</h1>")
	assert.NotContains(t, out, "<html")

	out, err = execute(t, "Syntax: `@\"if\" ( condition )@`\n", "render", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `<code class="sdsc-inline">`)
}

func TestIntegration_RenderPageToFile(t *testing.T) {
	t.Parallel()

	dir := newTutorial(t)
	target := filepath.Join(t.TempDir(), "page.html")

	_, err := execute(t, "", "render", "--page", "-o", target, filepath.Join(dir, "README.md"))
	require.NoError(t, err)

	page, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<!DOCTYPE html>")
}

func TestIntegration_Grammar(t *testing.T) {
	t.Parallel()

	const expr = `"if" ( condition ) statement`

	out, err := execute(t, "", "grammar", "--format", "html", expr)
	require.NoError(t, err)
	assert.Contains(t, out, `<pre class="sdsc">`)
	assert.Contains(t, out, `<span class="sdsc-placeholder">condition </span>`)

	out, err = execute(t, "", "grammar", "--format", "json", expr)
	require.NoError(t, err)
	var nodes []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &nodes))
	assert.NotEmpty(t, nodes)

	out, err = execute(t, expr+"\n", "grammar", "-")
	require.NoError(t, err)
	assert.Equal(t, sdsc.Format(sdsc.MustParse(expr))+"\n", out)

	_, err = execute(t, "", "grammar", "( a")
	var syntaxErr *sdsc.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)

	_, err = execute(t, "", "grammar", "--format", "yaml", "a")
	var usageErr *cli.UsageError
	require.ErrorAs(t, err, &usageErr)
}

func TestIntegration_Symbols(t *testing.T) {
	t.Parallel()

	code := filepath.Join(t.TempDir(), "main.cpp")
	require.NoError(t, os.WriteFile(code, []byte("std::cout << 1;\n"), 0o644))

	out, err := execute(t, "", "symbols", "--code", code)
	require.NoError(t, err)
	assert.Regexp(t, `0-9\s+std::cout\s+https://zh\.cppreference\.com/w/cpp/io/cout`, out)

	out, err = execute(t, "", "symbols")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "std::cout")
}

func TestIntegration_Sidebar(t *testing.T) {
	t.Parallel()

	dir := newTutorial(t)

	out, err := execute(t, "", "sidebar", "--source", dir)
	require.NoError(t, err)
	assert.Equal(t, "- C++ 教程  /\n- Loops  /ch01/loops.html\n", out)
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "site.yml")

	_, err := execute(t, "", "init", "--output", target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "output: dist")

	_, err = execute(t, "", "init", "--output", target)
	require.Error(t, err, "existing file needs --force")

	_, err = execute(t, "", "init", "--output", target, "--force")
	require.NoError(t, err)
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cppdoc")
	assert.Contains(t, out, "test-version")
}

func TestIntegration_Help(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Build Commands:\n  build ")
	assert.Contains(t, out, "Inspect Commands:")
	assert.Contains(t, out, "Setup Commands:")
	assert.Contains(t, out, "Other Commands:")
	assert.Contains(t, out, "--config string")

	out, err = execute(t, "", "build", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Examples:\n  cppdoc build")
	assert.Contains(t, out, "Build docs/ into public/")
	assert.Contains(t, out, "Global Flags:")
}
