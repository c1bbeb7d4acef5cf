package hxup

import "context"

// Fragments is implemented by the fragment-exchange layer that performs the
// network request and swaps the response into the document.
//
// The default follow variant hands it the resolved Request and returns as
// soon as the call returns. Navigate and Preload should not block on the
// network: they start the exchange and report back out of band.
//
// Example:
//
//	type fetcher struct{ client *http.Client }
//
//	func (f *fetcher) Navigate(ctx context.Context, req hxup.Request) error {
//	    go f.fetchAndSwap(ctx, req)
//	    return nil
//	}
type Fragments interface {
	Navigate(ctx context.Context, req Request) error
	Preload(ctx context.Context, req Request) error
}

// Confirmer asks the user to confirm a follow that carries up-confirm.
// Returning false cancels the follow.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, message string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool {
	return f(ctx, message)
}
