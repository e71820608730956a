// Package autolink links identifiers in highlighted C++ code to reference
// documentation. Resolve finds the link spans in the raw code and Relink
// overlays them onto an already highlighted HTML tree.
package autolink

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Kind classifies an index entry. Namespace rewriting only applies to
// KindSymbol entries.
type Kind string

// Entry kinds.
const (
	KindSymbol    Kind = "symbol"
	KindKeyword   Kind = "keyword"
	KindHeader    Kind = "header"
	KindMacro     Kind = "macro"
	KindAttribute Kind = "attribute"
)

// Entry maps a name as it appears in code to a documentation path.
type Entry struct {
	Name string `json:"name" yaml:"name"`
	Link string `json:"link" yaml:"link"`
	Kind Kind   `json:"type" yaml:"type"`
}

// Index is a read-only list of entries.
type Index struct {
	entries []Entry
}

// NewIndex builds an index from entries. The slice is copied.
func NewIndex(entries []Entry) *Index {
	return &Index{entries: slices.Clone(entries)}
}

// Entries returns a copy of the entries, safe for per-block mutation.
func (idx *Index) Entries() []Entry {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.entries)
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// LoadIndex reads an index file. Files ending in .json are decoded as
// JSON, .yml and .yaml as YAML.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read symbol index: %w", err)
	}

	var entries []Entry
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &entries)
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &entries)
	default:
		return nil, fmt.Errorf("symbol index %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse symbol index %s: %w", path, err)
	}

	for i, e := range entries {
		if e.Name == "" || e.Link == "" {
			return nil, fmt.Errorf("symbol index %s: entry %d needs name and link", path, i)
		}
		if e.Kind == "" {
			entries[i].Kind = KindSymbol
		}
	}

	return &Index{entries: entries}, nil
}

//go:embed index.yml
var defaultIndexData []byte

var defaultIndex = sync.OnceValue(func() *Index {
	var entries []Entry
	if err := yaml.Unmarshal(defaultIndexData, &entries); err != nil {
		panic(fmt.Sprintf("autolink: embedded index: %v", err))
	}
	return &Index{entries: entries}
})

// DefaultIndex returns the embedded index of common standard library
// names and keywords.
func DefaultIndex() *Index {
	return defaultIndex()
}
