package gbm

import (
	"os"
	"runtime"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// DRM_IOCTL_VERSION
const ioctlVersion = 0xc0406400

type drmVersion struct {
	versionMajor      int32
	versionMinor      int32
	versionPatchlevel int32
	nameLen           uint64
	name              uintptr
	dateLen           uint64
	date              uintptr
	descLen           uint64
	desc              uintptr
}

func driverName(device *os.File) (string, error) {
	name := make([]byte, 64)
	version := drmVersion{
		nameLen: uint64(len(name)),
		name:    uintptr(unsafe.Pointer(&name[0])),
	}

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, device.Fd(), ioctlVersion, uintptr(unsafe.Pointer(&version)))
	runtime.KeepAlive(name)
	if errno != 0 {
		return "", errors.Wrap(errno, "DRM_IOCTL_VERSION")
	}

	if version.nameLen > uint64(len(name)) {
		version.nameLen = uint64(len(name))
	}
	return string(name[:version.nameLen]), nil
}
