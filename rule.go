package hxup

import (
	"golang.org/x/net/html"
)

// Kind distinguishes macros from compilers.
type Kind int

const (
	// KindCompiler rules run after every macro, in priority order.
	KindCompiler Kind = iota

	// KindMacro rules run before all compilers. Macros typically rewrite
	// attributes into the canonical form compilers read.
	KindMacro
)

func (k Kind) String() string {
	if k == KindMacro {
		return "macro"
	}
	return "compiler"
}

// Destructor undoes side effects set up by a rule when its element is about
// to be discarded.
type Destructor func() error

// CompileFunc runs once per matching element. It may return destructors
// (nil for none) to run when the element is cleaned.
type CompileFunc func(el *html.Node, data Data) ([]Destructor, error)

// BatchFunc runs once per compile pass with every matching element, in
// document order. Data is read from the first element.
type BatchFunc func(els []*html.Node, data Data) ([]Destructor, error)

// Rule is a registered compiler or macro. Rules are immutable once registered.
type Rule struct {
	Selector string
	Kind     Kind
	Priority int

	// IsDefault is set for rules registered during the boot phase.
	// Reset keeps default rules and drops the rest.
	IsDefault bool

	// Batch rules receive all matches of a pass in a single call.
	Batch bool

	// Keep marks matching elements as persistent across fragment swaps.
	Keep bool

	fn BatchFunc
}

// call invokes the rule on els. Non-batch rules are always called with a
// single element.
func (r *Rule) call(els []*html.Node, data Data) ([]Destructor, error) {
	return r.fn(els, data)
}

// RuleOption configures a rule at registration.
type RuleOption func(*ruleOptions)

type ruleOptions struct {
	priority    int
	hasPriority bool
	keep        bool
}

// Priority sets the rule's priority. Higher priorities run first within
// their kind; the default is 0.
func Priority(p int) RuleOption {
	return func(o *ruleOptions) {
		o.priority = p
		o.hasPriority = true
	}
}

// Keep marks every element the rule matches with the up-keep attribute so
// the fragment layer can preserve it across swaps.
func Keep() RuleOption {
	return func(o *ruleOptions) {
		o.keep = true
	}
}

// eachFunc adapts a CompileFunc to the batch calling convention.
func eachFunc(fn CompileFunc) BatchFunc {
	return func(els []*html.Node, data Data) ([]Destructor, error) {
		return fn(els[0], data)
	}
}
