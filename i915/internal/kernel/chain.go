package kernel

import (
	"encoding/binary"
	"unsafe"
)

const (
	// size of struct i915_user_extension
	extensionHeaderSize = 32
	regionEntrySize     = 4

	ExtensionMemoryRegions   uint32 = 0
	ExtensionPrelimSetParam  uint32 = 1<<16 | 1
	PrelimObjectParam        uint64 = 1 << 48
	PrelimParamMemoryRegions uint64 = 1<<16 | 1
)

// Extension is one typed parameter block of a GEM_CREATE_EXT extension chain
type Extension interface {
	Name() uint32
	payloadSize() int
	encodePayload(payload []byte, pin func([]byte) uint64)
}

// MemoryRegionsExtension restricts an object to the listed regions, in order of preference
type MemoryRegionsExtension struct {
	Regions []MemoryRegion
}

func (e MemoryRegionsExtension) Name() uint32 {
	return ExtensionMemoryRegions
}

func (e MemoryRegionsExtension) payloadSize() int {
	// pad, num_regions, regions
	return 16
}

func (e MemoryRegionsExtension) encodePayload(payload []byte, pin func([]byte) uint64) {
	binary.NativeEndian.PutUint32(payload[4:8], uint32(len(e.Regions)))
	binary.NativeEndian.PutUint64(payload[8:16], pin(encodeRegionList(e.Regions)))
}

// PrelimSetParamExtension sets an object parameter at creation time on kernels exposing the
// preview uAPI. Only the memory region parameter is used.
type PrelimSetParamExtension struct {
	Param   uint64
	Regions []MemoryRegion
}

func (e PrelimSetParamExtension) Name() uint32 {
	return ExtensionPrelimSetParam
}

func (e PrelimSetParamExtension) payloadSize() int {
	// handle, size, param, data
	return 24
}

func (e PrelimSetParamExtension) encodePayload(payload []byte, pin func([]byte) uint64) {
	binary.NativeEndian.PutUint32(payload[4:8], uint32(len(e.Regions)))
	binary.NativeEndian.PutUint64(payload[8:16], e.Param)
	binary.NativeEndian.PutUint64(payload[16:24], pin(encodeRegionList(e.Regions)))
}

func encodeRegionList(regions []MemoryRegion) []byte {
	if len(regions) == 0 {
		return nil
	}

	data := make([]byte, len(regions)*regionEntrySize)
	for i, region := range regions {
		binary.NativeEndian.PutUint16(data[i*regionEntrySize:], uint16(region.Class))
		binary.NativeEndian.PutUint16(data[i*regionEntrySize+2:], region.Instance)
	}
	return data
}

// ExtensionChain is an ordered list of creation extensions. It is serialized into the kernel's
// singly linked list only for the duration of the ioctl that consumes it.
type ExtensionChain struct {
	extensions []Extension
}

func NewExtensionChain(extensions ...Extension) *ExtensionChain {
	return &ExtensionChain{extensions: extensions}
}

func (c *ExtensionChain) Append(extension Extension) *ExtensionChain {
	c.extensions = append(c.extensions, extension)
	return c
}

func (c *ExtensionChain) Extensions() []Extension {
	if c == nil {
		return nil
	}
	return c.extensions
}

func (c *ExtensionChain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.extensions)
}

// encodedChain holds the serialized blocks. Every buffer must stay reachable until the ioctl
// has returned.
type encodedChain struct {
	head   uint64
	blocks [][]byte
	pinned [][]byte
}

func (c *ExtensionChain) encode() *encodedChain {
	encoded := &encodedChain{}
	pin := func(data []byte) uint64 {
		if len(data) == 0 {
			return 0
		}
		encoded.pinned = append(encoded.pinned, data)
		return uint64(uintptr(unsafe.Pointer(&data[0])))
	}

	count := c.Len()
	encoded.blocks = make([][]byte, count)

	var next uint64
	for i := count - 1; i >= 0; i-- {
		extension := c.extensions[i]
		block := make([]byte, extensionHeaderSize+extension.payloadSize())

		binary.NativeEndian.PutUint64(block[0:8], next)
		binary.NativeEndian.PutUint32(block[8:12], extension.Name())
		extension.encodePayload(block[extensionHeaderSize:], pin)

		encoded.blocks[i] = block
		next = uint64(uintptr(unsafe.Pointer(&block[0])))
	}

	encoded.head = next
	return encoded
}
