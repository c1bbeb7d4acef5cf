package hxup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestTestCompile(t *testing.T) {
	e := newBootedEngine(t)

	result, err := TestCompile(e, `<a id="home" href="/" up-dash="#main">Home</a>`)
	require.NoError(t, err)

	assert.True(t, result.HTMLContains(`up-target="#main"`))
	assert.True(t, result.HTMLContainsAll(`up-preload=""`, `up-instant=""`))
	assert.False(t, result.HTMLContains("up-dash"))
	assert.False(t, result.HasErrors())
	assert.NotNil(t, result.ByID("home"))
}

func TestTestCompileReportsErrors(t *testing.T) {
	e := newTestEngine(t)
	e.OnError = func(error) {}
	e.Registry().Compiler(".x", func(_ *html.Node, _ Data) ([]Destructor, error) {
		return nil, errors.New("broken")
	})

	result, err := TestCompile(e, `<div class="x"></div>`)
	require.NoError(t, err)
	assert.True(t, result.HasErrors())
	assert.True(t, IsCallbackError(result.Errors[0]))
}

func TestResultClick(t *testing.T) {
	frags := &RecordingFragments{}
	e := newBootedEngine(t, WithFragments(frags))

	result, err := TestCompile(e, `<a id="l" href="/x" up-dash=".main">x</a>`)
	require.NoError(t, err)

	ev := result.Click("l")
	ev.Type = EventMouseDown
	assert.True(t, e.Handle(context.Background(), ev).Handled())
	require.Len(t, frags.Navigated(), 1)
	assert.Equal(t, ".main", frags.Navigated()[0].Target)
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	fns, err := rec.Compile("a", "a1", "a2")(nil, nil)
	require.NoError(t, err)
	require.Len(t, fns, 2)

	for _, fn := range fns {
		require.NoError(t, fn())
	}
	assert.Equal(t, []string{"a", "a1", "a2"}, rec.Calls())
}
