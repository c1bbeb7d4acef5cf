package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of the named attribute, or "" if absent.
func Attr(n *html.Node, name string) string {
	v, _ := LookupAttr(n, name)
	return v
}

// LookupAttr returns the value of the named attribute and whether it is present.
func LookupAttr(n *html.Node, name string) (string, bool) {
	if !IsElement(n) {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func HasAttr(n *html.Node, name string) bool {
	_, ok := LookupAttr(n, name)
	return ok
}

// SetAttr sets the named attribute, replacing any existing value.
func SetAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// SetMissingAttr sets the named attribute only if it is not present yet.
// It reports whether the attribute was written.
func SetMissingAttr(n *html.Node, name, value string) bool {
	if HasAttr(n, name) {
		return false
	}
	SetAttr(n, name, value)
	return true
}

// RemoveAttr deletes the named attribute if present.
func RemoveAttr(n *html.Node, name string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Toggle is the value of an attribute that can be used as a boolean or as a
// string. <a up-history> and <a up-history="true"> are enabled without a value,
// <a up-history="false"> is disabled, and <a up-history="#main"> is enabled
// with the value "#main".
type Toggle struct {
	Enabled bool
	Value   string
}

// AttrToggle reads a dual-mode boolean/string attribute.
// The second return value is false if the attribute is absent.
func AttrToggle(n *html.Node, name string) (Toggle, bool) {
	v, ok := LookupAttr(n, name)
	if !ok {
		return Toggle{}, false
	}
	switch strings.TrimSpace(v) {
	case "", "true", name:
		return Toggle{Enabled: true}, true
	case "false":
		return Toggle{}, true
	}
	return Toggle{Enabled: true, Value: v}, true
}
