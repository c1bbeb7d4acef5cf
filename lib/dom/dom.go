// Package dom provides the document primitives hxup builds on: parsing and
// rendering HTML, matching CSS selectors, walking subtrees in document order
// and reading or writing attributes.
//
// Nodes are plain *html.Node values from golang.org/x/net/html. Selectors are
// compiled once with cascadia and cached for the life of the process.
package dom

import (
	"fmt"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	selectorsMu sync.RWMutex
	selectors   = make(map[string]cascadia.SelectorGroup)
)

// Compile parses a selector group such as "a, [up-href]" and caches the result.
func Compile(selector string) (cascadia.SelectorGroup, error) {
	selectorsMu.RLock()
	group, ok := selectors[selector]
	selectorsMu.RUnlock()
	if ok {
		return group, nil
	}

	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid selector %q: %w", selector, err)
	}

	selectorsMu.Lock()
	selectors[selector] = group
	selectorsMu.Unlock()
	return group, nil
}

// Matches reports whether n is an element matching selector.
// An invalid selector matches nothing.
func Matches(n *html.Node, selector string) bool {
	if !IsElement(n) {
		return false
	}
	group, err := Compile(selector)
	if err != nil {
		return false
	}
	return group.Match(n)
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// Walk visits root and its descendants in document order. Nodes in skip, and
// everything below them, are not visited.
func Walk(root *html.Node, skip []*html.Node, fn func(*html.Node)) {
	if root == nil {
		return
	}
	for _, s := range skip {
		if s == root {
			return
		}
	}
	fn(root)
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, skip, fn)
	}
}

// QueryAll returns root and every descendant element matching selector, in
// document order, excluding skipped subtrees.
func QueryAll(root *html.Node, selector string, skip []*html.Node) ([]*html.Node, error) {
	group, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	var matches []*html.Node
	Walk(root, skip, func(n *html.Node) {
		if IsElement(n) && group.Match(n) {
			matches = append(matches, n)
		}
	})
	return matches, nil
}

// Query returns the first element below root (root excluded) matching selector.
func Query(root *html.Node, selector string) *html.Node {
	group, err := Compile(selector)
	if err != nil || root == nil {
		return nil
	}
	return cascadia.Query(root, group)
}

// Closest returns the nearest ancestor-or-self of n matching selector.
func Closest(n *html.Node, selector string) *html.Node {
	group, err := Compile(selector)
	if err != nil {
		return nil
	}
	return ClosestFunc(n, group.Match)
}

// ClosestFunc returns the nearest ancestor-or-self element of n for which
// match returns true.
func ClosestFunc(n *html.Node, match func(*html.Node) bool) *html.Node {
	for ; n != nil; n = n.Parent {
		if IsElement(n) && match(n) {
			return n
		}
	}
	return nil
}

// Contains reports whether n is ancestor or a descendant of it.
func Contains(ancestor, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// ByID returns the element below root whose id attribute equals id.
func ByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	Walk(root, nil, func(n *html.Node) {
		if found == nil && IsElement(n) && Attr(n, "id") == id {
			found = n
		}
	})
	return found
}

// Parse parses a complete HTML document.
func Parse(s string) (*html.Node, error) {
	return htmlquery.Parse(strings.NewReader(s))
}

// ParseFragment parses s in a <body> context and returns a document node
// holding the resulting top-level nodes.
func ParseFragment(s string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// Render returns the HTML serialization of n, including n itself.
func Render(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.DocumentNode {
		return htmlquery.OutputHTML(n, false)
	}
	return htmlquery.OutputHTML(n, true)
}
