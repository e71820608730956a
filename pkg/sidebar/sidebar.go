// Package sidebar loads the site outline from sidebar.yml and derives page
// titles and previous/next navigation from it.
package sidebar

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the outline file inside the source directory.
const FileName = "sidebar.yml"

// ErrInvalidLink is returned for links that are neither a .md file nor a
// directory ending in "/".
var ErrInvalidLink = errors.New("invalid sidebar link")

// Item is one resolved outline entry.
type Item struct {
	Link     string `json:"link"`
	Text     string `json:"text"`
	Children []Item `json:"children,omitempty"`
}

// Sidebar is the resolved outline.
type Sidebar struct {
	Items []Item

	order []string
	items map[string]Item
}

// Load reads and resolves sourceDir/sidebar.yml.
func Load(sourceDir string) (*Sidebar, error) {
	data, err := os.ReadFile(filepath.Join(sourceDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("read sidebar: %w", err)
	}
	return Parse(sourceDir, data)
}

// Parse resolves an outline. Items are a link string, a map with link and
// optional text and children, or a single-key map from a link to its
// children. Missing texts are read from the linked files.
func Parse(sourceDir string, data []byte) (*Sidebar, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse sidebar: %w", err)
	}

	s := &Sidebar{items: make(map[string]Item)}
	if len(doc.Content) == 0 {
		return s, nil
	}

	items, err := resolveList(sourceDir, doc.Content[0])
	if err != nil {
		return nil, err
	}
	s.Items = items
	s.index(items)
	return s, nil
}

type rawItem struct {
	Link     string    `yaml:"link"`
	Text     string    `yaml:"text"`
	Children yaml.Node `yaml:"children"`
}

func resolveList(sourceDir string, node *yaml.Node) ([]Item, error) {
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("sidebar line %d: expected a list", node.Line)
	}

	items := make([]Item, 0, len(node.Content))
	for _, child := range node.Content {
		item, err := resolveItem(sourceDir, child)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func resolveItem(sourceDir string, node *yaml.Node) (Item, error) {
	var (
		link     string
		text     string
		children *yaml.Node
	)

	switch node.Kind {
	case yaml.ScalarNode:
		link = node.Value
	case yaml.MappingNode:
		if hasKey(node, "link") {
			var raw rawItem
			if err := node.Decode(&raw); err != nil {
				return Item{}, fmt.Errorf("sidebar line %d: %w", node.Line, err)
			}
			link, text, children = raw.Link, raw.Text, &raw.Children
			break
		}
		if len(node.Content) != 2 {
			return Item{}, fmt.Errorf("sidebar line %d: expected a single link key", node.Line)
		}
		link, children = node.Content[0].Value, node.Content[1]
	default:
		return Item{}, fmt.Errorf("sidebar line %d: unexpected item", node.Line)
	}

	if text == "" {
		title, err := TitleOf(sourceDir, link)
		if err != nil {
			return Item{}, err
		}
		text = title
	}

	item := Item{Link: link, Text: text}
	if children != nil {
		kids, err := resolveList(sourceDir, children)
		if err != nil {
			return Item{}, err
		}
		item.Children = kids
	}
	return item, nil
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

func (s *Sidebar) index(items []Item) {
	for _, item := range items {
		s.order = append(s.order, item.Link)
		s.items[item.Link] = item
		s.index(item.Children)
	}
}

// Links returns all links in depth-first order.
func (s *Sidebar) Links() []string {
	return append([]string(nil), s.order...)
}

// Lookup returns the item for link.
func (s *Sidebar) Lookup(link string) (Item, bool) {
	item, ok := s.items[link]
	return item, ok
}

// PrevNext returns the neighbors of link in depth-first order. Missing
// neighbors are nil.
func (s *Sidebar) PrevNext(link string) (prev, next *Item) {
	for i, l := range s.order {
		if l != link {
			continue
		}
		if i > 0 {
			item := s.items[s.order[i-1]]
			prev = &item
		}
		if i+1 < len(s.order) {
			item := s.items[s.order[i+1]]
			next = &item
		}
		return prev, next
	}
	return nil, nil
}

// FileFor maps a link to its source file below sourceDir.
func FileFor(sourceDir, link string) (string, error) {
	switch {
	case strings.HasSuffix(link, ".md"):
		return filepath.Join(sourceDir, filepath.FromSlash(link)), nil
	case strings.HasSuffix(link, "/"):
		return filepath.Join(sourceDir, filepath.FromSlash(link), "README.md"), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidLink, link)
	}
}

// LinkFor maps a slash-separated path relative to the source directory to
// its sidebar link.
func LinkFor(rel string) string {
	rel = "/" + strings.TrimPrefix(path.Clean(filepath.ToSlash(rel)), "/")
	if path.Base(rel) == "README.md" {
		return strings.TrimSuffix(rel, "README.md")
	}
	return rel
}

// Href maps a link to the URL of its rendered page.
func Href(link string) string {
	if strings.HasSuffix(link, ".md") {
		return strings.TrimSuffix(link, ".md") + ".html"
	}
	return link
}

var (
	headingRe = regexp.MustCompile(`(?m)^# (.*)$`)
	badgeRe   = regexp.MustCompile(`<Badge [^/]*?text="(.*?)" />`)
)

// Title returns the first level-one heading of a Markdown source with
// badges written as "(text)", or "" when there is none.
func Title(source []byte) string {
	m := headingRe.FindSubmatch(source)
	if m == nil {
		return ""
	}
	return badgeRe.ReplaceAllString(strings.TrimRight(string(m[1]), "\r"), "($1)")
}

// TitleOf reads the title of the file behind link, falling back to link.
func TitleOf(sourceDir, link string) (string, error) {
	file, err := FileFor(sourceDir, link)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read title of %s: %w", link, err)
	}
	if title := Title(data); title != "" {
		return title, nil
	}
	return link, nil
}
