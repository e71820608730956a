package autolink

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

// Span is a half-open byte range of code linked to a documentation path.
type Span struct {
	Begin int    `json:"begin"`
	End   int    `json:"end"`
	Link  string `json:"link"`
}

var (
	usingNamespaceRe = regexp.MustCompile(`(?m)^using namespace ([\w:]+);$`)
	namespaceAliasRe = regexp.MustCompile(`(?m)^namespace ([\w:]+) = (.+);$`)
)

// Resolve finds the link spans of symbols in code. Longer names claim
// text first; a claimed region is blanked so shorter names cannot match
// inside it. The returned spans are disjoint and sorted by Begin.
//
// Claimed bytes are also recorded in a mask. Blanking alone stops names
// made of word characters, but a name containing spaces could match the
// blanked text itself; the mask rejects any match touching a claimed byte.
//
// symbols is not modified.
func Resolve(code string, symbols []Entry) []Span {
	working := rewriteNamespaces(code, slices.Clone(symbols))

	slices.SortStableFunc(working, func(a, b Entry) int {
		return cmp.Compare(len(b.Name), len(a.Name))
	})

	blanked := []byte(code)
	claimed := make([]bool, len(code))

	var spans []Span
	for _, entry := range working {
		if entry.Name == "" {
			continue
		}

		snapshot := string(blanked)
		for _, begin := range findWord(snapshot, entry.Name) {
			end := begin + len(entry.Name)
			if slices.Contains(claimed[begin:end], true) {
				continue
			}
			for i := begin; i < end; i++ {
				blanked[i] = ' '
				claimed[i] = true
			}
			spans = append(spans, Span{Begin: begin, End: end, Link: entry.Link})
		}
	}

	slices.SortFunc(spans, func(a, b Span) int {
		return cmp.Compare(a.Begin, b.Begin)
	})
	return spans
}

// rewriteNamespaces applies "using namespace" and namespace alias lines of
// code to the symbol entries, in order of appearance.
func rewriteNamespaces(code string, entries []Entry) []Entry {
	for _, m := range usingNamespaceRe.FindAllStringSubmatch(code, -1) {
		prefix := m[1] + "::"
		for i := range entries {
			if entries[i].Kind == KindSymbol && strings.HasPrefix(entries[i].Name, prefix) {
				entries[i].Name = entries[i].Name[len(prefix):]
			}
		}
	}

	for _, m := range namespaceAliasRe.FindAllStringSubmatch(code, -1) {
		alias, target := m[1], m[2]
		prefix := target + "::"
		for i := range entries {
			if entries[i].Kind == KindSymbol && strings.HasPrefix(entries[i].Name, prefix) {
				entries[i].Name = alias + entries[i].Name[len(target):]
			}
		}
	}

	return entries
}

// findWord returns the offsets of non-overlapping occurrences of name in s
// that are not preceded or followed by a word character.
func findWord(s, name string) []int {
	var found []int
	for from := 0; from+len(name) <= len(s); {
		idx := strings.Index(s[from:], name)
		if idx < 0 {
			break
		}
		begin := from + idx
		end := begin + len(name)
		if (begin == 0 || !isWordByte(s[begin-1])) && (end == len(s) || !isWordByte(s[end])) {
			found = append(found, begin)
			from = end
			continue
		}
		from = begin + 1
	}
	return found
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}
