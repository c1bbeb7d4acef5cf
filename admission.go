package hxup

import (
	"golang.org/x/net/html"

	"github.com/pthm/hxup/lib/dom"
)

// EventType names the document events the engine listens to.
type EventType string

const (
	EventClick     EventType = "click"
	EventMouseDown EventType = "mousedown"
	EventMouseOver EventType = "mouseover"
	EventSubmit    EventType = "submit"
)

// Mouse buttons as reported by Event.Button.
const (
	ButtonPrimary   = 0
	ButtonAuxiliary = 1
	ButtonSecondary = 2
)

// Event is a user interaction delivered to the engine by the host.
type Event struct {
	Type EventType

	// Target is the element the interaction originated on.
	Target *html.Node

	Button   int
	ShiftKey bool
	CtrlKey  bool
	MetaKey  bool
	AltKey   bool

	defaultPrevented bool
}

// PreventDefault tells the host to suppress the browser's native handling.
func (ev *Event) PreventDefault() {
	ev.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool {
	return ev.defaultPrevented
}

// isPointer reports whether the event carries button and modifier state.
func (ev *Event) isPointer() bool {
	return ev.Type == EventClick || ev.Type == EventMouseDown
}

// ShouldProcessEvent decides whether the engine should intercept ev on el.
//
// Non-primary buttons and Shift/Ctrl/Meta modifiers are left to the browser
// so "open in new tab" keeps working. When the event originated inside el,
// a closer link or form field between the target and el handles its own
// event.
func (e *Engine) ShouldProcessEvent(ev *Event, el *html.Node) bool {
	if ev.isPointer() {
		if ev.Button != ButtonPrimary || ev.ShiftKey || ev.CtrlKey || ev.MetaKey {
			return false
		}
	}

	if ev.Target == el {
		return true
	}

	interactive := dom.Closest(ev.Target, "a, [up-href], "+e.config.FieldSelector)
	return interactive == nil || interactive == el
}
