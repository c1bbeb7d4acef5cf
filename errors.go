package hxup

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/pthm/hxup/lib/dom"
)

// Sentinel errors for engine operations.
var (
	ErrConfiguration = errors.New("hxup: configuration error")
	ErrDataParse     = errors.New("hxup: malformed data attribute")
	ErrCallback      = errors.New("hxup: callback failed")
	ErrNotFollowable = errors.New("hxup: element is not followable")
)

// IsConfigurationError checks if err is a registry misconfiguration.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsDataParseError checks if err is a malformed data payload.
func IsDataParseError(err error) bool {
	return errors.Is(err, ErrDataParse)
}

// IsCallbackError checks if err was raised by a rule callback or a destructor.
func IsCallbackError(err error) bool {
	return errors.Is(err, ErrCallback)
}

// ElementError attributes a failure to the element being processed.
//
// Errors local to one element never abort processing of its siblings; the
// engine wraps them in ElementError and passes them to OnError.
type ElementError struct {
	Op       string // "data", "compile" or "destroy"
	Selector string // selector of the rule being applied, if any
	Element  *html.Node
	Err      error
}

func (e *ElementError) Error() string {
	desc := describe(e.Element)
	if e.Selector != "" {
		return fmt.Sprintf("hxup: %s %s on %s: %v", e.Op, e.Selector, desc, e.Err)
	}
	return fmt.Sprintf("hxup: %s on %s: %v", e.Op, desc, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// describe renders a short element description like a#id.class for messages.
func describe(n *html.Node) string {
	if !dom.IsElement(n) {
		return "<document>"
	}
	desc := n.Data
	if id := dom.Attr(n, "id"); id != "" {
		desc += "#" + id
	}
	if class := dom.Attr(n, "class"); class != "" {
		for _, c := range strings.Fields(class) {
			desc += "." + c
		}
	}
	return desc
}
