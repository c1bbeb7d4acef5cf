package hxup

import (
	"fmt"
	"sync"

	"golang.org/x/net/html"

	"github.com/pthm/hxup/lib/dom"
)

// DestructorRegistry owns the cleanup callbacks of compiled elements.
//
// An element is marked the first time a destructor is registered for it.
// Only marked elements take part in CleanSubtree, which runs and then forgets
// their destructors, so each destructor runs at most once and the registry
// holds no reference to discarded fragments.
type DestructorRegistry struct {
	mu      sync.Mutex
	entries map[*html.Node][]Destructor

	// OnError receives every destructor failure. Nil means ignore.
	OnError func(error)
}

// NewDestructorRegistry creates an empty destructor registry.
func NewDestructorRegistry() *DestructorRegistry {
	return &DestructorRegistry{entries: make(map[*html.Node][]Destructor)}
}

// Register appends fns to el's cleanup sequence. Nil destructors are dropped.
func (d *DestructorRegistry) Register(el *html.Node, fns ...Destructor) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, fn := range fns {
		if fn != nil {
			d.entries[el] = append(d.entries[el], fn)
		}
	}
}

// Marked reports whether el has ever been given a destructor.
func (d *DestructorRegistry) Marked(el *html.Node) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.entries[el]
	return ok
}

// Len returns the number of marked elements.
func (d *DestructorRegistry) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Count returns the number of destructors registered for el.
func (d *DestructorRegistry) Count(el *html.Node) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries[el])
}

// CleanSubtree runs the destructors of root and every marked descendant, in
// document order and registration order, and unmarks them. A failing destructor is reported
// and does not stop the others. It returns the reported errors.
func (d *DestructorRegistry) CleanSubtree(root *html.Node) []error {
	type pending struct {
		el  *html.Node
		fns []Destructor
	}

	var queue []pending
	d.mu.Lock()
	if len(d.entries) > 0 {
		dom.Walk(root, nil, func(n *html.Node) {
			if fns, ok := d.entries[n]; ok {
				queue = append(queue, pending{el: n, fns: fns})
				delete(d.entries, n)
			}
		})
	}
	d.mu.Unlock()

	var errs []error
	for _, p := range queue {
		for _, fn := range p.fns {
			if err := runDestructor(fn); err != nil {
				err = &ElementError{Op: "destroy", Element: p.el, Err: err}
				errs = append(errs, err)
				if d.OnError != nil {
					d.OnError(err)
				}
			}
		}
	}
	return errs
}

// runDestructor calls fn, turning a panic into an error.
func runDestructor(fn Destructor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrCallback, r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("%w: %w", ErrCallback, err)
	}
	return nil
}
