package hxup

// Result is returned from follow and preload behaviors to report what the
// behavior did with the link.
//
// Example patterns:
//
//	// The request was handed to the fragment layer (or is ready to be)
//	return hxup.Requested(req)
//
//	// The behavior handled the link itself, or the user cancelled
//	return hxup.Skip()
//
//	// The link could not be followed
//	return hxup.Err(err)
//
// The engine records which variant produced the result; read it with Variant.
type Result struct {
	request *Request
	err     error
	skip    bool
	variant *FollowVariant
}

// Requested creates a result carrying the request that was sent, or would
// be sent when no Fragments collaborator is configured.
func Requested(req Request) Result {
	return Result{request: &req}
}

// Err creates a failed result.
func Err(err error) Result {
	return Result{err: err}
}

// Skip creates a result indicating nothing was requested. Use it when the
// behavior handled the link without the fragment layer, or when a
// confirmation was declined.
func Skip() Result {
	return Result{skip: true}
}

// withVariant returns a copy of r attributed to v.
func (r Result) withVariant(v *FollowVariant) Result {
	r.variant = v
	return r
}

// GetRequest returns the request, or nil if none was made.
func (r Result) GetRequest() *Request {
	return r.request
}

// GetErr returns the error from the result.
func (r Result) GetErr() error {
	return r.err
}

// ShouldSkip returns whether the behavior declined to make a request.
func (r Result) ShouldSkip() bool {
	return r.skip
}

// Variant returns the follow variant that produced the result.
func (r Result) Variant() *FollowVariant {
	return r.variant
}

// Handled reports whether an engine behavior took ownership of the event
// or link, whether or not it succeeded.
func (r Result) Handled() bool {
	return r.variant != nil
}
