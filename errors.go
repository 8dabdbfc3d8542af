package anchorfix

import "errors"

var (
	// ErrCapabilityUnavailable is returned when none of a strategy's
	// probes resolves to a callable capability.
	ErrCapabilityUnavailable = errors.New("capability unavailable")

	// ErrCapabilityPanicked wraps a panic recovered from a capability call.
	ErrCapabilityPanicked = errors.New("capability panicked")

	// ErrSmoothScrollUnsupported is returned by Document.ScrollTo when
	// smooth scrolling is requested but the host does not support it.
	ErrSmoothScrollUnsupported = errors.New("smooth scrolling unsupported")

	// ErrNotElement is returned when a mutation targets a node that cannot
	// have element children.
	ErrNotElement = errors.New("node is not an element")
)
