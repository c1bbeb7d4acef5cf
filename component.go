package hxup

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"github.com/pthm/hxup/lib/dom"
)

// CompileComponent renders a templ component, parses the output as a
// fragment and compiles it. The returned node is a document node whose
// children are the fragment's top-level nodes.
//
// Use it to insert server-rendered fragments into a document held by the
// host:
//
//	frag, errs, err := e.CompileComponent(ctx, userCard(user))
func (e *Engine) CompileComponent(ctx context.Context, comp templ.Component) (*html.Node, []error, error) {
	var buf bytes.Buffer
	if err := comp.Render(ctx, &buf); err != nil {
		return nil, nil, fmt.Errorf("hxup: render component: %w", err)
	}

	frag, err := dom.ParseFragment(buf.String())
	if err != nil {
		return nil, nil, fmt.Errorf("hxup: parse fragment: %w", err)
	}

	errs := e.Compile(frag, CompileOptions{})
	return frag, errs, nil
}
