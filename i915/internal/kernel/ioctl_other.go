//go:build !linux

package kernel

import "github.com/cockroachdb/errors"

// NewDriver issues ioctls against an open DRM device file descriptor. DRM devices only exist on
// linux, so elsewhere every call fails.
func NewDriver(fd uintptr) Driver {
	return NewStaticDriver(StaticDevice{Err: errors.New("i915 devices are only supported on linux")})
}
