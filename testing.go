package hxup

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/pthm/hxup/lib/dom"
)

// TestResult holds the outcome of compiling a fragment for testing.
//
// Provides convenience methods for asserting on the compiled HTML, the
// errors the pass reported and the elements it touched.
type TestResult struct {
	HTML   string
	Root   *html.Node
	Errors []error
}

// TestCompile parses src as a fragment, compiles it with e and returns
// testable output. The engine's OnError handler still runs for each error.
//
//	result, err := hxup.TestCompile(e, `<a up-dash="#main" href="/">Home</a>`)
//	if !result.HTMLContains(`up-target="#main"`) {
//	    t.Fatal("up-dash was not expanded")
//	}
func TestCompile(e *Engine, src string) (*TestResult, error) {
	root, err := dom.ParseFragment(src)
	if err != nil {
		return nil, err
	}
	errs := e.Compile(root, CompileOptions{})
	return &TestResult{
		HTML:   dom.Render(root),
		Root:   root,
		Errors: errs,
	}, nil
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// ByID returns the compiled element with the given id.
func (r *TestResult) ByID(id string) *html.Node {
	return dom.ByID(r.Root, id)
}

// HasErrors checks if the pass reported any error.
func (r *TestResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Click builds a plain primary-button click on the element with id.
func (r *TestResult) Click(id string) *Event {
	return &Event{Type: EventClick, Target: r.ByID(id)}
}

// Recorder logs rule callback and destructor invocations in call order.
//
// Use it to assert ordering:
//
//	rec := &hxup.Recorder{}
//	reg.Macro("[a]", rec.Compile("A"), hxup.Priority(-100))
//	reg.Compiler("[c]", rec.Compile("C"))
//	// ... compile ...
//	rec.Calls() // ["A", "C"]
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

// Record appends name to the call log.
func (rec *Recorder) Record(name string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.calls = append(rec.calls, name)
}

// Calls returns a copy of the call log.
func (rec *Recorder) Calls() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]string(nil), rec.calls...)
}

// Compile returns a CompileFunc that records name and any returned
// destructors that record name + ":" + suffix when run.
func (rec *Recorder) Compile(name string, destructors ...string) CompileFunc {
	return func(el *html.Node, data Data) ([]Destructor, error) {
		rec.Record(name)
		return rec.Destructors(destructors...), nil
	}
}

// Destructors returns destructors that record their names when run.
func (rec *Recorder) Destructors(names ...string) []Destructor {
	var fns []Destructor
	for _, name := range names {
		name := name
		fns = append(fns, func() error {
			rec.Record(name)
			return nil
		})
	}
	return fns
}

// RecordingFragments is a Fragments collaborator that records the requests
// it receives.
type RecordingFragments struct {
	mu        sync.Mutex
	navigated []Request
	preloaded []Request

	// Err, if set, is returned from Navigate and Preload.
	Err error
}

// Navigate implements Fragments.
func (f *RecordingFragments) Navigate(ctx context.Context, req Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.navigated = append(f.navigated, req)
	return f.Err
}

// Preload implements Fragments.
func (f *RecordingFragments) Preload(ctx context.Context, req Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.preloaded = append(f.preloaded, req)
	return f.Err
}

// Navigated returns the requests passed to Navigate.
func (f *RecordingFragments) Navigated() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.navigated...)
}

// Preloaded returns the requests passed to Preload.
func (f *RecordingFragments) Preloaded() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.preloaded...)
}
