package hxup

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"

	"github.com/pthm/hxup/lib/dom"
)

// KeepAttribute marks elements the fragment layer should preserve across swaps.
const KeepAttribute = "up-keep"

// CompileOptions narrows a compile pass.
type CompileOptions struct {
	// Skip lists subtrees that are compiled independently. Nothing inside
	// them is matched.
	Skip []*html.Node

	// Rule restricts the pass to a single rule, e.g. to recompile one element
	// after a macro expanded it.
	Rule *Rule
}

// Compile applies every registered macro and compiler to root and its
// descendants. Call it exactly once per newly inserted fragment, before the
// fragment is considered live.
//
// Rules run in snapshot order: all macros, then all compilers, by descending
// priority with ties in registration order. Each rule queries the fragment
// when its turn comes, so attributes written by earlier macros are visible.
// Matches are processed in document order.
//
// Failures are local to one element: they are reported through OnError and
// returned, and compilation continues with the next element or rule.
func (e *Engine) Compile(root *html.Node, opts CompileOptions) []error {
	rules := []*Rule{opts.Rule}
	if opts.Rule == nil {
		rules = e.registry.Snapshot()
	}

	var errs []error
	fail := func(err error) {
		errs = append(errs, err)
		e.report(err)
	}

	for _, rule := range rules {
		matches, err := dom.QueryAll(root, rule.Selector, opts.Skip)
		if err != nil {
			fail(fmt.Errorf("%w: %v", ErrConfiguration, err))
			continue
		}
		if len(matches) == 0 {
			continue
		}

		if rule.Keep {
			for _, el := range matches {
				dom.SetMissingAttr(el, KeepAttribute, "")
			}
		}

		if rule.Batch {
			if err := e.apply(rule, matches); err != nil {
				fail(err)
			}
			continue
		}
		for _, el := range matches {
			if err := e.apply(rule, []*html.Node{el}); err != nil {
				fail(err)
			}
		}
	}

	e.logger.Debug("hxup: compiled fragment", "root", describe(root), "rules", len(rules), "errors", len(errs))
	return errs
}

// apply runs rule on els and registers the returned destructors with the
// first element.
func (e *Engine) apply(rule *Rule, els []*html.Node) error {
	first := els[0]

	data, err := ReadData(first, e.config.DataAttribute)
	if err != nil {
		var elErr *ElementError
		if errors.As(err, &elErr) {
			elErr.Selector = rule.Selector
		}
		return err
	}

	fns, err := invoke(rule, els, data)
	if err != nil {
		return &ElementError{Op: "compile", Selector: rule.Selector, Element: first, Err: err}
	}
	e.destructors.Register(first, fns...)
	return nil
}

// invoke calls the rule callback, turning a panic into an error.
func invoke(rule *Rule, els []*html.Node, data Data) (fns []Destructor, err error) {
	defer func() {
		if r := recover(); r != nil {
			fns = nil
			err = fmt.Errorf("%w: panic: %v", ErrCallback, r)
		}
	}()
	fns, err = rule.call(els, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCallback, err)
	}
	return fns, nil
}

// Clean runs the destructors of every compiled element in fragment. Call it
// exactly once per fragment, immediately before the fragment is removed.
func (e *Engine) Clean(fragment *html.Node) []error {
	return e.destructors.CleanSubtree(fragment)
}
