package gbm

import "github.com/cockroachdb/errors"

// Backends mark their errors with one of these so callers can classify failures with
// errors.Is regardless of the wrapped platform error.
var (
	// ErrFatalInit is returned when a backend cannot be brought up on a device
	ErrFatalInit = errors.New("backend initialization failed")
	// ErrInvalidArgument is returned for a format, usage, or modifier the backend cannot satisfy
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAllocation is returned when the kernel rejects an object creation or tiling request
	ErrAllocation = errors.New("buffer allocation failed")
	// ErrUnsupportedOperation is returned for a request the backend never services, such as
	// mapping a compressed buffer
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
