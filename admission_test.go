package hxup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxup/lib/dom"
)

const admissionHTML = `
<div id="card" up-href="/card" up-follow>
  <span id="text">Title</span>
  <a id="nested" href="/other">Other</a>
  <input id="field" type="text">
  <input id="submit" type="submit">
</div>
<a id="link" href="/x" up-target=".main"><b id="bold">x</b></a>`

func TestShouldProcessEvent(t *testing.T) {
	e := newTestEngine(t)
	root := mustFragment(t, admissionHTML)
	card := dom.ByID(root, "card")
	link := dom.ByID(root, "link")

	tests := []struct {
		name   string
		ev     Event
		el     string
		expect bool
	}{
		{"plain click on element", Event{Type: EventClick, Target: link}, "link", true},
		{"right click", Event{Type: EventClick, Target: link, Button: ButtonSecondary}, "link", false},
		{"middle click", Event{Type: EventClick, Target: link, Button: ButtonAuxiliary}, "link", false},
		{"ctrl click", Event{Type: EventClick, Target: link, CtrlKey: true}, "link", false},
		{"shift click", Event{Type: EventClick, Target: link, ShiftKey: true}, "link", false},
		{"meta click", Event{Type: EventClick, Target: link, MetaKey: true}, "link", false},
		{"alt click", Event{Type: EventClick, Target: link, AltKey: true}, "link", true},
		{"click on child of link", Event{Type: EventClick, Target: dom.ByID(root, "bold")}, "link", true},
		{"click on text in area", Event{Type: EventClick, Target: dom.ByID(root, "text")}, "card", true},
		{"click on nested anchor", Event{Type: EventClick, Target: dom.ByID(root, "nested")}, "card", false},
		{"click on nested field", Event{Type: EventClick, Target: dom.ByID(root, "field")}, "card", false},
		{"click on nested submit", Event{Type: EventClick, Target: dom.ByID(root, "submit")}, "card", true},
		{"mousedown ctrl", Event{Type: EventMouseDown, Target: link, CtrlKey: true}, "link", false},
		{"mouseover ignores buttons", Event{Type: EventMouseOver, Target: link, Button: ButtonSecondary}, "link", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := card
			if tt.el == "link" {
				el = link
			}
			ev := tt.ev
			assert.Equal(t, tt.expect, e.ShouldProcessEvent(&ev, el))
		})
	}
}

func TestHandleClick(t *testing.T) {
	frags := &RecordingFragments{}
	e := newTestEngine(t, WithFragments(frags))
	root := mustFragment(t, admissionHTML)

	ev := &Event{Type: EventClick, Target: dom.ByID(root, "bold")}
	res := e.Handle(context.Background(), ev)

	assert.True(t, res.Handled())
	assert.True(t, ev.DefaultPrevented())
	require.Len(t, frags.Navigated(), 1)
	assert.Equal(t, "/x", frags.Navigated()[0].URL)
}

func TestHandleClickOnNestedAnchorIsLeftAlone(t *testing.T) {
	frags := &RecordingFragments{}
	e := newTestEngine(t, WithFragments(frags))
	root := mustFragment(t, admissionHTML)

	ev := &Event{Type: EventClick, Target: dom.ByID(root, "nested")}
	res := e.Handle(context.Background(), ev)

	assert.False(t, res.Handled())
	assert.False(t, ev.DefaultPrevented())
	assert.Empty(t, frags.Navigated())
}

func TestHandleModifiedClickIsLeftAlone(t *testing.T) {
	frags := &RecordingFragments{}
	e := newTestEngine(t, WithFragments(frags))
	root := mustFragment(t, admissionHTML)

	ev := &Event{Type: EventClick, Target: dom.ByID(root, "link"), MetaKey: true}
	assert.False(t, e.Handle(context.Background(), ev).Handled())
	assert.False(t, ev.DefaultPrevented())
}

func TestHandleUnfollowable(t *testing.T) {
	e := newTestEngine(t)
	root := mustFragment(t, `<a id="plain" href="/">x</a>`)

	ev := &Event{Type: EventClick, Target: dom.ByID(root, "plain")}
	assert.False(t, e.Handle(context.Background(), ev).Handled())
}

func TestHandleInstant(t *testing.T) {
	frags := &RecordingFragments{}
	e := newTestEngine(t, WithFragments(frags))
	root := mustFragment(t, `<a id="l" href="/fast" up-target=".main" up-instant>x</a>`)
	link := dom.ByID(root, "l")

	down := &Event{Type: EventMouseDown, Target: link}
	assert.True(t, e.Handle(context.Background(), down).Handled())
	assert.True(t, down.DefaultPrevented())

	click := &Event{Type: EventClick, Target: link}
	res := e.Handle(context.Background(), click)
	assert.True(t, res.Handled())
	assert.True(t, res.ShouldSkip())
	assert.True(t, click.DefaultPrevented())

	assert.Len(t, frags.Navigated(), 1)
}

func TestHandleMouseDownWithoutInstant(t *testing.T) {
	frags := &RecordingFragments{}
	e := newTestEngine(t, WithFragments(frags))
	root := mustFragment(t, `<a id="l" href="/" up-follow>x</a>`)

	ev := &Event{Type: EventMouseDown, Target: dom.ByID(root, "l")}
	assert.False(t, e.Handle(context.Background(), ev).Handled())
	assert.Empty(t, frags.Navigated())
}

func TestHandlePreloadOnHover(t *testing.T) {
	frags := &RecordingFragments{}
	e := newTestEngine(t, WithFragments(frags))
	root := mustFragment(t, `<a id="p" href="/p" up-follow up-preload>x</a><a id="n" href="/n" up-follow>y</a>`)

	e.Handle(context.Background(), &Event{Type: EventMouseOver, Target: dom.ByID(root, "p")})
	e.Handle(context.Background(), &Event{Type: EventMouseOver, Target: dom.ByID(root, "n")})

	require.Len(t, frags.Preloaded(), 1)
	assert.Equal(t, "/p", frags.Preloaded()[0].URL)
	assert.Empty(t, frags.Navigated())
}

func TestHandleSubmit(t *testing.T) {
	frags := &RecordingFragments{}
	e := newTestEngine(t, WithFragments(frags))
	root := mustFragment(t, `
		<form id="f" action="/save" method="post" up-target=".result"><input id="name" name="name"></form>
		<form id="plain" action="/native"><input id="other"></form>`)

	ev := &Event{Type: EventSubmit, Target: dom.ByID(root, "f")}
	assert.True(t, e.Handle(context.Background(), ev).Handled())
	assert.True(t, ev.DefaultPrevented())

	native := &Event{Type: EventSubmit, Target: dom.ByID(root, "plain")}
	assert.False(t, e.Handle(context.Background(), native).Handled())

	require.Len(t, frags.Navigated(), 1)
	assert.Equal(t, "/save", frags.Navigated()[0].URL)
	assert.Equal(t, "POST", frags.Navigated()[0].Method)
}

func TestHandleRoutesToExplicitVariant(t *testing.T) {
	e := newTestEngine(t)
	rec := &Recorder{}
	e.AddFollowVariant("[up-modal]", recordingVariant(rec, "modal"), nil)
	root := mustFragment(t, `<a id="m" href="/m" up-modal=".dialog">x</a>`)

	res := e.Handle(context.Background(), &Event{Type: EventClick, Target: dom.ByID(root, "m")})
	assert.True(t, res.Handled())
	assert.Equal(t, []string{"modal"}, rec.Calls())
}
