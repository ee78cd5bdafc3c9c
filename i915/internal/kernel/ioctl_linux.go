//go:build linux

package kernel

import (
	"runtime"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

const (
	ioctlGetCap              = 0xc010640c
	ioctlGemClose            = 0x40086409
	ioctlPrimeFDToHandle     = 0xc00c642e
	ioctlI915GetParam        = 0xc0106446
	ioctlI915GemCreate       = 0xc010645b
	ioctlI915PrelimCreateExt = 0xc018645b
	ioctlI915GemMmap         = 0xc028645e
	ioctlI915GemSetDomain    = 0x400c645f
	ioctlI915GemSetTiling    = 0xc0106461
	ioctlI915GemGetTiling    = 0xc0106462
	ioctlI915GemMmapGTT      = 0xc0106464
	ioctlI915GemMmapOffset   = 0xc0206464
	ioctlI915Query           = 0xc0106479
	ioctlI915GemCreateExt    = 0xc018647c
)

type drmGetCap struct {
	capability uint64
	value      uint64
}

type drmGemClose struct {
	handle uint32
	pad    uint32
}

type drmPrimeHandle struct {
	handle uint32
	flags  uint32
	fd     int32
}

type i915GetParam struct {
	param int32
	_     int32
	value uint64
}

type i915GemCreate struct {
	size   uint64
	handle uint32
	pad    uint32
}

type i915GemCreateExt struct {
	size       uint64
	handle     uint32
	flags      uint32
	extensions uint64
}

type i915GemMmap struct {
	handle  uint32
	pad     uint32
	offset  uint64
	size    uint64
	addrPtr uint64
	flags   uint64
}

type i915GemMmapGTT struct {
	handle uint32
	pad    uint32
	offset uint64
}

type i915GemMmapOffset struct {
	handle     uint32
	pad        uint32
	offset     uint64
	flags      uint64
	extensions uint64
}

type i915GemSetDomain struct {
	handle      uint32
	readDomains uint32
	writeDomain uint32
}

type i915GemTiling struct {
	handle      uint32
	tilingMode  uint32
	stride      uint32
	swizzleMode uint32
}

type i915QueryItem struct {
	queryID uint64
	length  int32
	flags   uint32
	dataPtr uint64
}

type i915Query struct {
	numItems uint32
	flags    uint32
	itemsPtr uint64
}

type linuxDriver struct {
	fd uintptr
}

// NewDriver issues ioctls against an open DRM device file descriptor. The descriptor stays
// owned by the caller.
func NewDriver(fd uintptr) Driver {
	return &linuxDriver{fd: fd}
}

func (d *linuxDriver) ioctl(request uintptr, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, d.fd, request, uintptr(arg))
		if errno == unix.EINTR || errno == unix.EAGAIN {
			continue
		}
		if errno != 0 {
			return errno
		}
		return nil
	}
}

func (d *linuxDriver) GetParam(param Param) (int32, error) {
	value := int32(-1)
	gp := i915GetParam{
		param: int32(param),
		value: uint64(uintptr(unsafe.Pointer(&value))),
	}

	err := d.ioctl(ioctlI915GetParam, unsafe.Pointer(&gp))
	runtime.KeepAlive(&value)
	if err != nil {
		return -1, errors.Wrapf(err, "DRM_IOCTL_I915_GETPARAM(%d)", param)
	}
	return value, nil
}

func (d *linuxDriver) GetCap(capability Capability) (uint64, error) {
	gc := drmGetCap{capability: uint64(capability)}
	if err := d.ioctl(ioctlGetCap, unsafe.Pointer(&gc)); err != nil {
		return 0, errors.Wrapf(err, "DRM_IOCTL_GET_CAP(%#x)", uint64(capability))
	}
	return gc.value, nil
}

func (d *linuxDriver) Query(queryID QueryID, data []byte) (int32, error) {
	item := i915QueryItem{queryID: uint64(queryID)}
	if len(data) > 0 {
		item.length = int32(len(data))
		item.dataPtr = uint64(uintptr(unsafe.Pointer(&data[0])))
	}

	query := i915Query{
		numItems: 1,
		itemsPtr: uint64(uintptr(unsafe.Pointer(&item))),
	}

	err := d.ioctl(ioctlI915Query, unsafe.Pointer(&query))
	runtime.KeepAlive(&item)
	runtime.KeepAlive(data)
	if err != nil {
		return 0, errors.Wrapf(err, "DRM_IOCTL_I915_QUERY(%#x)", uint64(queryID))
	}
	return item.length, nil
}

func (d *linuxDriver) GemCreate(size uint64) (uint32, error) {
	create := i915GemCreate{size: size}
	if err := d.ioctl(ioctlI915GemCreate, unsafe.Pointer(&create)); err != nil {
		return 0, errors.Wrapf(err, "DRM_IOCTL_I915_GEM_CREATE (size=%d)", size)
	}
	return create.handle, nil
}

func (d *linuxDriver) GemCreateExt(size uint64, flags CreateExtFlags, chain *ExtensionChain) (uint32, error) {
	encoded := chain.encode()
	create := i915GemCreateExt{
		size:       size,
		flags:      uint32(flags),
		extensions: encoded.head,
	}

	err := d.ioctl(ioctlI915GemCreateExt, unsafe.Pointer(&create))
	runtime.KeepAlive(encoded)
	if err != nil {
		return 0, errors.Wrapf(err, "DRM_IOCTL_I915_GEM_CREATE_EXT (size=%d)", size)
	}
	return create.handle, nil
}

func (d *linuxDriver) PrelimGemCreateExt(size uint64, chain *ExtensionChain) (uint32, error) {
	encoded := chain.encode()
	// the preview layout has a pad word where the upstream one has flags
	create := i915GemCreateExt{
		size:       size,
		extensions: encoded.head,
	}

	err := d.ioctl(ioctlI915PrelimCreateExt, unsafe.Pointer(&create))
	runtime.KeepAlive(encoded)
	if err != nil {
		return 0, errors.Wrapf(err, "PRELIM_DRM_IOCTL_I915_GEM_CREATE_EXT (size=%d)", size)
	}
	return create.handle, nil
}

func (d *linuxDriver) GemSetTiling(handle uint32, tiling uint32, stride uint32) error {
	st := i915GemTiling{
		handle:     handle,
		tilingMode: tiling,
		stride:     stride,
	}
	if err := d.ioctl(ioctlI915GemSetTiling, unsafe.Pointer(&st)); err != nil {
		return errors.Wrapf(err, "DRM_IOCTL_I915_GEM_SET_TILING (handle=%d)", handle)
	}
	return nil
}

func (d *linuxDriver) GemGetTiling(handle uint32) (uint32, error) {
	gt := i915GemTiling{handle: handle}
	if err := d.ioctl(ioctlI915GemGetTiling, unsafe.Pointer(&gt)); err != nil {
		return 0, errors.Wrapf(err, "DRM_IOCTL_I915_GEM_GET_TILING (handle=%d)", handle)
	}
	return gt.tilingMode, nil
}

func (d *linuxDriver) GemClose(handle uint32) error {
	gc := drmGemClose{handle: handle}
	if err := d.ioctl(ioctlGemClose, unsafe.Pointer(&gc)); err != nil {
		return errors.Wrapf(err, "DRM_IOCTL_GEM_CLOSE (handle=%d)", handle)
	}
	return nil
}

func (d *linuxDriver) PrimeFDToHandle(fd int) (uint32, error) {
	ph := drmPrimeHandle{fd: int32(fd)}
	if err := d.ioctl(ioctlPrimeFDToHandle, unsafe.Pointer(&ph)); err != nil {
		return 0, errors.Wrapf(err, "DRM_IOCTL_PRIME_FD_TO_HANDLE (fd=%d)", fd)
	}
	return ph.handle, nil
}

func (d *linuxDriver) GemMmapOffset(handle uint32, flags MmapOffsetFlags) (uint64, error) {
	mo := i915GemMmapOffset{
		handle: handle,
		flags:  uint64(flags),
	}
	if err := d.ioctl(ioctlI915GemMmapOffset, unsafe.Pointer(&mo)); err != nil {
		return 0, errors.Wrapf(err, "DRM_IOCTL_I915_GEM_MMAP_OFFSET (handle=%d, flags=%d)", handle, flags)
	}
	return mo.offset, nil
}

func (d *linuxDriver) GemMmapGTT(handle uint32) (uint64, error) {
	mg := i915GemMmapGTT{handle: handle}
	if err := d.ioctl(ioctlI915GemMmapGTT, unsafe.Pointer(&mg)); err != nil {
		return 0, errors.Wrapf(err, "DRM_IOCTL_I915_GEM_MMAP_GTT (handle=%d)", handle)
	}
	return mg.offset, nil
}

func (d *linuxDriver) GemMmap(handle uint32, size uint64, flags MmapFlags) ([]byte, error) {
	mm := i915GemMmap{
		handle: handle,
		size:   size,
		flags:  uint64(flags),
	}
	if err := d.ioctl(ioctlI915GemMmap, unsafe.Pointer(&mm)); err != nil {
		return nil, errors.Wrapf(err, "DRM_IOCTL_I915_GEM_MMAP (handle=%d)", handle)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(mm.addrPtr))), size), nil
}

func (d *linuxDriver) Mmap(offset uint64, size uint64, prot int) ([]byte, error) {
	addr, err := unix.MmapPtr(int(d.fd), int64(offset), nil, uintptr(size), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap (offset=%#x, size=%d)", offset, size)
	}
	return unsafe.Slice((*byte)(addr), size), nil
}

func (d *linuxDriver) Munmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := unix.MunmapPtr(unsafe.Pointer(&data[0]), uintptr(len(data))); err != nil {
		return errors.Wrap(err, "munmap")
	}
	return nil
}

func (d *linuxDriver) GemSetDomain(handle uint32, readDomains Domain, writeDomain Domain) error {
	sd := i915GemSetDomain{
		handle:      handle,
		readDomains: uint32(readDomains),
		writeDomain: uint32(writeDomain),
	}
	if err := d.ioctl(ioctlI915GemSetDomain, unsafe.Pointer(&sd)); err != nil {
		return errors.Wrapf(err, "DRM_IOCTL_I915_GEM_SET_DOMAIN (handle=%d)", handle)
	}
	return nil
}
