package hxup

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/pthm/hxup/lib/dom"
)

// FollowFunc implements following (or preloading) a link.
type FollowFunc func(ctx context.Context, el *html.Node, opts FollowOptions) Result

// FollowVariant is a strategy that owns following links matching Selector.
//
// Features such as modals or popups add a variant for their own attribute
// (e.g. "[up-modal]") and receive every follow of a matching link without
// the engine knowing they exist.
type FollowVariant struct {
	Selector string
	Follow   FollowFunc
	Preload  FollowFunc

	isDefault bool
}

// Matches reports whether el is owned by this variant.
func (v *FollowVariant) Matches(el *html.Node) bool {
	return dom.Matches(el, v.Selector)
}

// IsDefault reports whether v is the engine's default variant.
func (v *FollowVariant) IsDefault() bool {
	return v.isDefault
}

// Variants is the ordered registry of follow variants.
//
// Lookup is first match in registration order. The default variant is
// always tried last, so an explicit variant wins over it even for a link
// that also matches the default selector.
type Variants struct {
	mu   sync.RWMutex
	list []*FollowVariant
	def  *FollowVariant
}

// NewVariants creates an empty variant registry.
func NewVariants() *Variants {
	return &Variants{}
}

// Add appends a variant and returns its handle.
func (vs *Variants) Add(selector string, follow, preload FollowFunc) *FollowVariant {
	v := &FollowVariant{Selector: selector, Follow: follow, Preload: preload}
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.list = append(vs.list, v)
	return v
}

// MarkDefault makes v, which must have been returned by Add, the default
// variant.
func (vs *Variants) MarkDefault(v *FollowVariant) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	if vs.def != nil {
		vs.def.isDefault = false
	}
	v.isDefault = true
	vs.def = v
}

// Default returns the default variant, or nil if none is set.
func (vs *Variants) Default() *FollowVariant {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	return vs.def
}

// For returns the variant owning el: the first explicit variant whose
// selector matches, then the default variant if its selector matches.
// If nothing matches, For returns the default variant when includeDefault is
// set and nil otherwise.
func (vs *Variants) For(el *html.Node, includeDefault bool) *FollowVariant {
	vs.mu.RLock()
	defer vs.mu.RUnlock()

	for _, v := range vs.list {
		if v != vs.def && v.Matches(el) {
			return v
		}
	}
	if vs.def == nil {
		return nil
	}
	if includeDefault || vs.def.Matches(el) {
		return vs.def
	}
	return nil
}

// Reset drops every variant except the default one.
func (vs *Variants) Reset() {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.list = vs.list[:0:0]
	if vs.def != nil {
		vs.list = append(vs.list, vs.def)
	}
}

// Len returns the number of registered variants, the default included.
func (vs *Variants) Len() int {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	return len(vs.list)
}

// Selector returns the union of all variant selectors.
func (vs *Variants) Selector() string {
	vs.mu.RLock()
	defer vs.mu.RUnlock()

	parts := make([]string, 0, len(vs.list))
	for _, v := range vs.list {
		parts = append(parts, v.Selector)
	}
	return strings.Join(parts, ", ")
}

// FollowOptions override what a link's attributes say. Zero fields are
// filled from the element.
type FollowOptions struct {
	URL        string
	Method     string
	Target     string
	FailTarget string
	Layer      string
	Confirm    string
	Transition string
	History    *dom.Toggle
	Cache      *dom.Toggle

	// Preload is set when the follow is a preload.
	Preload bool
}

// Request is the fully resolved description of a follow, handed to the
// fragment layer.
type Request struct {
	FollowOptions

	// Origin is the element being followed.
	Origin *html.Node

	// Data is the origin's data payload.
	Data Data
}

// RequestFor resolves el's link attributes into a Request. Non-zero fields
// in opts take precedence over attributes.
func (e *Engine) RequestFor(el *html.Node, opts FollowOptions) (Request, error) {
	data, err := ReadData(el, e.config.DataAttribute)
	if err != nil {
		return Request{}, err
	}

	req := Request{FollowOptions: opts, Origin: el, Data: data}
	isForm := dom.IsElement(el) && el.Data == "form"

	if req.URL == "" {
		req.URL = firstAttr(el, "up-href", "href")
		if req.URL == "" && isForm {
			req.URL = dom.Attr(el, "action")
		}
	}
	if req.Method == "" {
		req.Method = firstAttr(el, "up-method", "data-method")
		if req.Method == "" && isForm {
			req.Method = dom.Attr(el, "method")
		}
	}
	req.Method = strings.ToUpper(strings.TrimSpace(req.Method))
	if req.Method == "" {
		req.Method = "GET"
	}

	fill(&req.Target, el, "up-target")
	fill(&req.FailTarget, el, "up-fail-target")
	fill(&req.Layer, el, "up-layer")
	fill(&req.Confirm, el, "up-confirm")
	fill(&req.Transition, el, "up-transition")

	if req.History == nil {
		if t, ok := dom.AttrToggle(el, "up-history"); ok {
			req.History = &t
		}
	}
	if req.Cache == nil {
		if t, ok := dom.AttrToggle(el, "up-cache"); ok {
			req.Cache = &t
		}
	}
	return req, nil
}

func firstAttr(el *html.Node, names ...string) string {
	for _, name := range names {
		if v := dom.Attr(el, name); v != "" {
			return v
		}
	}
	return ""
}

func fill(field *string, el *html.Node, name string) {
	if *field == "" {
		*field = dom.Attr(el, name)
	}
}

// VariantFor returns the variant that owns el, or nil. See Variants.For.
func (e *Engine) VariantFor(el *html.Node, includeDefault bool) *FollowVariant {
	return e.variants.For(el, includeDefault)
}

// IsFollowable reports whether a variant, the default included, claims el
// by selector.
func (e *Engine) IsFollowable(el *html.Node) bool {
	return e.variants.For(el, false) != nil
}

// AddFollowVariant registers a follow strategy for links matching selector.
func (e *Engine) AddFollowVariant(selector string, follow, preload FollowFunc) *FollowVariant {
	e.logger.Debug("hxup: follow variant added", "selector", selector)
	return e.variants.Add(selector, follow, preload)
}

// Follow resolves the variant that owns el and runs its follow behavior.
// Elements no variant claims fall back to the default variant.
func (e *Engine) Follow(ctx context.Context, el *html.Node, opts FollowOptions) Result {
	v := e.variants.For(el, true)
	if v == nil {
		return Err(fmt.Errorf("%w: %s", ErrNotFollowable, describe(el)))
	}
	e.logger.Debug("hxup: follow", "element", describe(el), "variant", v.Selector)
	if v.Follow == nil {
		return Skip().withVariant(v)
	}
	return v.Follow(ctx, el, opts).withVariant(v)
}

// Preload resolves the variant that owns el and runs its preload behavior.
func (e *Engine) Preload(ctx context.Context, el *html.Node, opts FollowOptions) Result {
	opts.Preload = true
	v := e.variants.For(el, true)
	if v == nil {
		return Err(fmt.Errorf("%w: %s", ErrNotFollowable, describe(el)))
	}
	e.logger.Debug("hxup: preload", "element", describe(el), "variant", v.Selector)
	if v.Preload == nil {
		return Skip().withVariant(v)
	}
	return v.Preload(ctx, el, opts).withVariant(v)
}

// followDefault is the default variant's follow behavior: resolve the
// request, confirm it, and pass it to the fragment layer.
func (e *Engine) followDefault(ctx context.Context, el *html.Node, opts FollowOptions) Result {
	req, err := e.RequestFor(el, opts)
	if err != nil {
		return Err(err)
	}
	if req.URL == "" {
		return Err(fmt.Errorf("%w: %s has no URL", ErrNotFollowable, describe(el)))
	}

	if !req.Preload && req.Confirm != "" && e.confirmer != nil {
		if !e.confirmer.Confirm(ctx, req.Confirm) {
			return Skip()
		}
	}

	if e.fragments == nil {
		return Requested(req)
	}

	if req.Preload {
		err = e.fragments.Preload(ctx, req)
	} else {
		err = e.fragments.Navigate(ctx, req)
	}
	if err != nil {
		res := Err(err)
		res.request = &req
		return res
	}
	return Requested(req)
}
