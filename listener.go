package hxup

import (
	"context"

	"golang.org/x/net/html"

	"github.com/pthm/hxup/lib/dom"
)

// Handle is the document-level listener. The host calls it for every click,
// mousedown, mouseover and submit event; Handle routes the event to the follow
// variant owning the closest followable element.
//
//   - click: follow, unless the element has up-instant (already followed on
//     mousedown), in which case the click is only prevented.
//   - mousedown: follow elements with up-instant.
//   - mouseover: preload elements with up-preload.
//   - submit: follow the closest followable form.
//
// A Result for which Handled is false means the engine left the event alone.
func (e *Engine) Handle(ctx context.Context, ev *Event) Result {
	el := e.closestFollowable(ev)
	if el == nil || !e.ShouldProcessEvent(ev, el) {
		return Result{}
	}

	instant := dom.HasAttr(el, "up-instant")

	switch ev.Type {
	case EventClick:
		ev.PreventDefault()
		if instant {
			return Skip().withVariant(e.variants.For(el, true))
		}
		return e.Follow(ctx, el, FollowOptions{})

	case EventMouseDown:
		if !instant {
			return Result{}
		}
		ev.PreventDefault()
		return e.Follow(ctx, el, FollowOptions{})

	case EventMouseOver:
		if !dom.HasAttr(el, "up-preload") {
			return Result{}
		}
		return e.Preload(ctx, el, FollowOptions{})

	case EventSubmit:
		ev.PreventDefault()
		return e.Follow(ctx, el, FollowOptions{})
	}
	return Result{}
}

func (e *Engine) closestFollowable(ev *Event) *html.Node {
	if ev.Type == EventSubmit {
		form := dom.Closest(ev.Target, "form")
		if form == nil || !e.IsFollowable(form) {
			return nil
		}
		return form
	}
	return dom.ClosestFunc(ev.Target, func(n *html.Node) bool {
		return n.Data != "form" && e.IsFollowable(n)
	})
}
