package autolink

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/yaklabco/cppdoc/internal/htmlfrag"
)

// Run is a text leaf with the classes of all its ancestors.
type Run struct {
	Content string
	Classes []string
}

// EventKind identifies an Event.
type EventKind int

// Event kinds.
const (
	EventText EventKind = iota
	EventBegin
	EventEnd
)

// Event is one step of the merged run/anchor stream.
type Event struct {
	Kind EventKind

	// Text and Classes are set for EventText.
	Text    string
	Classes []string

	// Link is set for EventBegin.
	Link string
}

// StructuralError reports anchor markup that cannot be rebuilt.
type StructuralError struct {
	Msg string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	return "autolink: " + e.Msg
}

// Flatten returns the text leaves of root in document order. Each run
// carries the ordered union of the classes of the elements between root
// and the leaf.
func Flatten(root *html.Node) []Run {
	var runs []Run
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		runs = flatten(c, nil, runs)
	}
	return runs
}

func flatten(n *html.Node, classes []string, runs []Run) []Run {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return runs
		}
		return append(runs, Run{Content: n.Data, Classes: classes})
	case html.ElementNode:
		inner := unionClasses(classes, htmlfrag.Classes(n))
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			runs = flatten(c, inner, runs)
		}
	}
	return runs
}

func unionClasses(outer, own []string) []string {
	if len(own) == 0 {
		return outer
	}
	merged := slices.Clip(slices.Clone(outer))
	for _, class := range own {
		if !slices.Contains(merged, class) {
			merged = append(merged, class)
		}
	}
	return merged
}

type marker struct {
	offset int
	begin  bool
	link   string
}

// Merge interleaves runs with the begin and end markers of spans, splitting
// runs at marker offsets. Empty spans are ignored.
func Merge(runs []Run, spans []Span) []Event {
	markers := make([]marker, 0, 2*len(spans))
	for _, span := range spans {
		if span.End <= span.Begin {
			continue
		}
		markers = append(markers,
			marker{offset: span.Begin, begin: true, link: span.Link},
			marker{offset: span.End})
	}
	// At equal offsets an end sorts before a begin.
	slices.SortStableFunc(markers, func(a, b marker) int {
		if c := cmp.Compare(a.offset, b.offset); c != 0 {
			return c
		}
		switch {
		case a.begin == b.begin:
			return 0
		case a.begin:
			return 1
		default:
			return -1
		}
	})

	events := make([]Event, 0, len(runs)+len(markers))
	next := 0
	pos := 0

	for _, run := range runs {
		text := run.Content
		for next < len(markers) && markers[next].offset < pos+len(text) {
			if split := markers[next].offset - pos; split > 0 {
				events = append(events, Event{Kind: EventText, Text: text[:split], Classes: run.Classes})
				text = text[split:]
				pos += split
			}
			events = append(events, markerEvent(markers[next]))
			next++
		}
		if text != "" {
			events = append(events, Event{Kind: EventText, Text: text, Classes: run.Classes})
			pos += len(text)
		}
	}

	for ; next < len(markers); next++ {
		events = append(events, markerEvent(markers[next]))
	}

	return events
}

func markerEvent(m marker) Event {
	if m.begin {
		return Event{Kind: EventBegin, Link: m.link}
	}
	return Event{Kind: EventEnd}
}

// Rebuild creates a copy of root without children and fills it from
// events. Text events become <span> leaves carrying their classes, begin
// events open an anchor to hrefFor(link) and end events close it.
func Rebuild(root *html.Node, events []Event, hrefFor func(string) string) (*html.Node, error) {
	if hrefFor == nil {
		hrefFor = func(link string) string { return link }
	}

	out := htmlfrag.ShallowClone(root)
	current := out
	open := false

	for _, ev := range events {
		switch ev.Kind {
		case EventText:
			current.AppendChild(leaf(ev))
		case EventBegin:
			if open {
				return nil, &StructuralError{Msg: "anchor opened inside another anchor"}
			}
			anchor := htmlfrag.Element("a",
				html.Attribute{Key: "href", Val: hrefFor(ev.Link)},
				html.Attribute{Key: "target", Val: "_blank"})
			current.AppendChild(anchor)
			current = anchor
			open = true
		case EventEnd:
			if !open {
				return nil, &StructuralError{Msg: "anchor end without matching begin"}
			}
			current = current.Parent
			open = false
		}
	}

	if open {
		return nil, &StructuralError{Msg: "anchor left open at end of code"}
	}

	return out, nil
}

func leaf(ev Event) *html.Node {
	text := htmlfrag.Text(ev.Text)
	if len(ev.Classes) == 0 {
		return text
	}
	span := htmlfrag.Element("span", html.Attribute{Key: "class", Val: strings.Join(ev.Classes, " ")})
	span.AppendChild(text)
	return span
}

// Relink rebuilds root with an anchor around the text of every span. The
// text content of the result equals that of root. Spans must be disjoint
// and index into the text content of root.
func Relink(root *html.Node, spans []Span, hrefFor func(string) string) (*html.Node, error) {
	if htmlfrag.Find([]*html.Node{root}, htmlfrag.IsElement("a")) != nil {
		return nil, &StructuralError{Msg: "<a> is not allowed inside linked code"}
	}
	return Rebuild(root, Merge(Flatten(root), spans), hrefFor)
}
