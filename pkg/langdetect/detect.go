// Package langdetect guesses the fence language of unlabeled code blocks.
// Cheap textual patterns are tried first; go-enry's classifier decides the
// rest.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fence languages returned by Detect.
const (
	LangCpp        = "cpp"
	LangC          = "c"
	LangIO         = "io"
	LangText       = "text"
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
)

// classifierCandidates are the languages the classifier chooses among.
var classifierCandidates = []string{
	"C++", "C", "Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "SQL", "JSON", "YAML", "HTML", "CSS",
	"Markdown", "Dockerfile",
}

// detector inspects content and returns a language or "".
type detector func(content, trimmed []byte) string

// detectors run in order; the first non-empty answer wins. C and C++ come
// first since their headers and operators trip the looser checks below.
var detectors = []detector{
	detectTranscript,
	detectCpp,
	detectC,
	detectGo,
	detectPython,
	detectHTML,
	detectJSON,
	detectDockerfile,
	detectSQL,
	detectRust,
	detectJavaScript,
	detectYAML,
}

// Detect returns the fence language for content, or "text" when no
// language is recognized with confidence.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return LangText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	trimmed := bytes.TrimSpace(content)
	for _, detect := range detectors {
		if lang := detect(content, trimmed); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// detectTranscript recognizes io blocks, whose input lines are wrapped in
// "¶" and "↵".
func detectTranscript(content, _ []byte) string {
	if bytes.Contains(content, []byte("¶")) && bytes.Contains(content, []byte("↵")) {
		return LangIO
	}
	return ""
}

var cppMarkers = []string{
	"std::", "using namespace ", "#include <iostream>", "#include <string>",
	"#include <vector>", "template <", "template<", "cout <<", "cin >>", "nullptr",
}

func detectCpp(content, _ []byte) string {
	s := string(content)
	for _, marker := range cppMarkers {
		if strings.Contains(s, marker) {
			return LangCpp
		}
	}
	return ""
}

// detectC accepts C headers and main functions. A main without a C header
// is assumed to be C++.
func detectC(content, _ []byte) string {
	s := string(content)
	hasMain := strings.Contains(s, "int main(")
	switch {
	case strings.Contains(s, "#include <stdio.h>"), strings.Contains(s, "#include <stdlib.h>"):
		return LangC
	case hasMain, strings.Contains(s, "#include"):
		return LangCpp
	}
	return ""
}

func detectGo(_, trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return langGo
	}
	return ""
}

func detectPython(content, _ []byte) string {
	s := string(content)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return langPython
	}
	// Go imports use "import (".
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") {
		if strings.Contains(s, "from ") || strings.HasPrefix(strings.TrimSpace(s), "import ") {
			return langPython
		}
	}
	if strings.Contains(s, "__name__") || strings.Contains(s, "__main__") {
		return langPython
	}
	return ""
}

var htmlMarkers = [][]byte{
	[]byte("<!doctype html"), []byte("<html"), []byte("<head>"), []byte("<body>"),
}

func detectHTML(_, trimmed []byte) string {
	lower := bytes.ToLower(trimmed)
	for _, marker := range htmlMarkers {
		if bytes.Contains(lower, marker) {
			return langHTML
		}
	}
	return ""
}

func detectJSON(_, trimmed []byte) string {
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func detectDockerfile(content, trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY "))) {
		return langDockerfile
	}
	return ""
}

var sqlPrefixes = []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "}

func detectSQL(_, trimmed []byte) string {
	upper := strings.ToUpper(string(trimmed))
	for _, prefix := range sqlPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return langSQL
		}
	}
	return ""
}

func detectRust(content, _ []byte) string {
	s := string(content)
	if strings.Contains(s, "fn main()") || strings.Contains(s, "println!") || strings.Contains(s, "let mut ") {
		return langRust
	}
	return ""
}

func detectJavaScript(content, _ []byte) string {
	s := string(content)
	if strings.Contains(s, "=>") || strings.Contains(s, "const ") ||
		strings.Contains(s, "let ") || strings.Contains(s, "console.log") {
		return langJavaScript
	}
	return ""
}

// detectYAML counts "key: value" lines and root list items.
func detectYAML(content, _ []byte) string {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	if count >= 2 {
		return langYAML
	}
	return ""
}

// normalize converts go-enry language names to fence languages.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return langBash
	case "C++":
		return LangCpp
	}
	return strings.ToLower(lang)
}
