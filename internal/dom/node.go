// internal/dom/node.go

// Package dom provides a narrow capability interface over live HTML element
// trees. Extraction strategies are written against Node rather than a
// concrete DOM implementation, so they can be exercised with plain HTML
// fixtures in tests and with a headless browser in production.
package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is a handle on one element of a document tree.
type Node interface {
	// FindFirst returns the first descendant matching the selector, or nil.
	FindFirst(selector string) Node

	// FindAll returns all descendants matching the selector in document order.
	FindAll(selector string) []Node

	// Text returns the trimmed visible text of the element and its subtree.
	Text() string

	// Attr returns the named attribute value and whether it is present.
	Attr(name string) (string, bool)

	// Is reports whether the element itself matches the selector.
	Is(selector string) bool

	// Closest returns the nearest ancestor (or self) matching the selector,
	// or nil.
	Closest(selector string) Node
}

// goqueryNode adapts a goquery selection to the Node interface.
type goqueryNode struct {
	sel *goquery.Selection
}

// ParseDocument parses an HTML document and returns its root node.
func ParseDocument(html string) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &goqueryNode{sel: doc.Selection}, nil
}

// FromSelection wraps an existing goquery selection.
func FromSelection(sel *goquery.Selection) Node {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return &goqueryNode{sel: sel.First()}
}

func (n *goqueryNode) FindFirst(selector string) Node {
	found := n.sel.Find(selector)
	if found.Length() == 0 {
		return nil
	}
	return &goqueryNode{sel: found.First()}
}

func (n *goqueryNode) FindAll(selector string) []Node {
	found := n.sel.Find(selector)
	if found.Length() == 0 {
		return nil
	}
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &goqueryNode{sel: s})
	})
	return nodes
}

func (n *goqueryNode) Text() string {
	return strings.TrimSpace(n.sel.Text())
}

func (n *goqueryNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n *goqueryNode) Is(selector string) bool {
	return n.sel.Is(selector)
}

func (n *goqueryNode) Closest(selector string) Node {
	found := n.sel.Closest(selector)
	if found.Length() == 0 {
		return nil
	}
	return &goqueryNode{sel: found}
}

// FindFirstOf tries each selector in order and returns the first match.
func FindFirstOf(n Node, selectors []string) Node {
	for _, selector := range selectors {
		if found := n.FindFirst(selector); found != nil {
			return found
		}
	}
	return nil
}

// MatchesAny reports whether the node itself matches any of the selectors.
func MatchesAny(n Node, selectors []string) bool {
	for _, selector := range selectors {
		if n.Is(selector) {
			return true
		}
	}
	return false
}
