// Package hxup attaches behavior to server-rendered HTML through attributes.
//
// Fragments of a document declare, with attributes, which logic should run
// when they are inserted and how their links should be followed. hxup is the
// engine behind that: it decides which registered behavior runs for a given
// element and when cleanup happens. It performs no network I/O and never
// decides what HTML replaces what; those belong to the fragment layer, which
// the engine reaches through the Fragments interface.
//
// # Compilers and Macros
//
// Rules are registered against a CSS selector:
//
//	reg := e.Registry()
//	reg.Compiler(".clock", func(el *html.Node, data hxup.Data) ([]hxup.Destructor, error) {
//	    stop := startClock(el, data["zone"])
//	    return []hxup.Destructor{stop}, nil
//	})
//
// Macros run before every compiler and typically rewrite attributes into the
// canonical form compilers read:
//
//	reg.Macro("[up-dash]", expandDash, hxup.Priority(-200))
//
// Within a kind, rules run by descending Priority, ties in registration
// order. Matches are processed in document order. A batch rule
// (BatchCompiler) receives all its matches in a single call.
//
// # Fragment Lifecycle
//
// The fragment layer calls Compile once per inserted fragment and Clean once
// per fragment about to be removed:
//
//	e.Compile(fragment, hxup.CompileOptions{})
//	// ...
//	e.Clean(fragment)
//
// Destructors returned by rules are run by Clean in registration order. A
// failing rule or destructor is reported through OnError and never stops its
// siblings: one broken compiler degrades one feature on one element.
//
// # Follow Variants
//
// Follow variants compete to own links. The default variant follows
// [up-target] and [up-follow] links by handing a Request to the fragment
// layer. Other features claim their own links without the engine knowing
// about them:
//
//	e.AddFollowVariant("[up-modal]", openModal, preloadModal)
//
// The first variant whose selector matches wins; the default variant is
// always tried last.
//
// # Events
//
// The host forwards document events to Handle, which applies
// ShouldProcessEvent (primary button, no modifiers, no closer interactive
// element) and routes the event to the owning variant.
//
// # Boot and Reset
//
// Rules registered before the registry's boot phase ends are defaults.
// Boot registers the built-in macros (up-dash, up-expand, data-method,
// data-confirm) and ends the boot phase. Reset returns the registry to its
// post-boot state and drops every follow variant but the default one, which
// is how tests isolate themselves.
package hxup
