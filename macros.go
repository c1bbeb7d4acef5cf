package hxup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/pthm/hxup/lib/dom"
)

// Boot registers the built-in macros and compilers, then ends the boot phase
// of the engine's registry. Rules registered by Boot survive Reset.
//
// Boot fails with ErrConfiguration if the registry has already completed
// its boot phase.
func (e *Engine) Boot() (err error) {
	if !e.registry.Booting() {
		return fmt.Errorf("%w: registry already booted", ErrConfiguration)
	}

	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = rerr
		}
	}()

	reg := e.registry
	reg.Macro("[up-dash]", e.expandDash)
	reg.Macro("[up-expand]", e.expandArea)
	reg.Macro("a[data-method]", expandDataMethod)
	reg.Macro("[data-confirm]", expandDataConfirm)
	reg.Compiler("[up-keep]", normalizeKeep)

	reg.BootComplete()
	e.logger.Info("hxup: booted", "rules", reg.Len())
	return nil
}

// normalizeKeep rewrites up-keep into the two forms the fragment layer reads:
// an empty value, or a partner selector. up-keep="false" is removed.
func normalizeKeep(el *html.Node, _ Data) ([]Destructor, error) {
	toggle, _ := dom.AttrToggle(el, KeepAttribute)
	switch {
	case !toggle.Enabled:
		dom.RemoveAttr(el, KeepAttribute)
	case toggle.Value == "":
		dom.SetAttr(el, KeepAttribute, "")
	default:
		dom.SetAttr(el, KeepAttribute, strings.TrimSpace(toggle.Value))
	}
	return nil, nil
}

// expandDash turns <a up-dash="#main"> into a preloading, instant link
// targeting #main. An empty or "true" value follows without a target.
func (e *Engine) expandDash(el *html.Node, _ Data) ([]Destructor, error) {
	target := strings.TrimSpace(dom.Attr(el, "up-dash"))
	dom.SetMissingAttr(el, "up-preload", "")
	dom.SetMissingAttr(el, "up-instant", "")
	if target == "" || target == "true" {
		dom.SetMissingAttr(el, "up-follow", "")
	} else {
		dom.SetMissingAttr(el, "up-target", target)
	}
	dom.RemoveAttr(el, "up-dash")
	return nil, nil
}

// expandArea makes a larger area (e.g. a table row) behave like the first
// link inside it. The link's href and up-* attributes are copied onto the
// area without overwriting attributes the area already has.
func (e *Engine) expandArea(el *html.Node, _ Data) ([]Destructor, error) {
	selector := strings.TrimSpace(dom.Attr(el, "up-expand"))
	if selector == "" || selector == "true" {
		selector = "a, [up-href]"
	}

	link := dom.Query(el, selector)
	if link == nil {
		return nil, nil
	}

	for _, a := range link.Attr {
		switch {
		case a.Key == "href":
			dom.SetMissingAttr(el, "up-href", a.Val)
		case strings.HasPrefix(a.Key, "up-"):
			dom.SetMissingAttr(el, a.Key, a.Val)
		}
	}
	if !e.IsFollowable(el) {
		dom.SetAttr(el, "up-follow", "")
	}
	return nil, nil
}

// expandDataMethod maps Rails UJS data-method links to up-method.
func expandDataMethod(el *html.Node, _ Data) ([]Destructor, error) {
	dom.SetMissingAttr(el, "up-method", dom.Attr(el, "data-method"))
	if !dom.HasAttr(el, "up-target") {
		dom.SetMissingAttr(el, "up-follow", "")
	}
	return nil, nil
}

// expandDataConfirm maps Rails UJS data-confirm to up-confirm.
func expandDataConfirm(el *html.Node, _ Data) ([]Destructor, error) {
	dom.SetMissingAttr(el, "up-confirm", dom.Attr(el, "data-confirm"))
	return nil, nil
}
