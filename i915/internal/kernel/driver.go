package kernel

//go:generate mockgen -source driver.go -destination ./mocks/driver.go -package mocks

// Param is an I915_PARAM_* identifier for GetParam
type Param int32

const (
	ParamChipsetID      Param = 4
	ParamHasLLC         Param = 17
	ParamMmapGTTVersion Param = 40
)

// Capability is a DRM_CAP_* identifier for GetCap
type Capability uint64

const (
	CapCursorWidth  Capability = 0x8
	CapCursorHeight Capability = 0x9
)

// QueryID is a DRM_I915_QUERY_* item identifier
type QueryID uint64

const (
	QueryMemoryRegions       QueryID = 4
	QueryPrelimMemoryRegions QueryID = 1<<16 | 4
)

// CreateExtFlags are the flags accepted by GEM_CREATE_EXT
type CreateExtFlags uint32

const (
	// CreateExtNeedsCPUAccess keeps a device-local object in the CPU-visible part of device memory
	CreateExtNeedsCPUAccess CreateExtFlags = 1 << 0
)

// MmapOffsetFlags select the caching mode of a GEM_MMAP_OFFSET mapping
type MmapOffsetFlags uint64

const (
	MmapOffsetGTT   MmapOffsetFlags = 0
	MmapOffsetWC    MmapOffsetFlags = 1
	MmapOffsetWB    MmapOffsetFlags = 2
	MmapOffsetUC    MmapOffsetFlags = 3
	MmapOffsetFixed MmapOffsetFlags = 4
)

// MmapFlags are the flags accepted by the legacy GEM_MMAP call
type MmapFlags uint64

const (
	MmapWC MmapFlags = 1 << 0
)

// Page protection bits accepted by Mmap, matching PROT_READ and PROT_WRITE
const (
	ProtRead  = 0x1
	ProtWrite = 0x2
)

// Domain is an I915_GEM_DOMAIN_* cache domain
type Domain uint32

const (
	DomainCPU Domain = 0x1
	DomainGTT Domain = 0x40
)

// MemoryClass is an I915_MEMORY_CLASS_* value
type MemoryClass uint16

const (
	MemoryClassSystem MemoryClass = 0
	MemoryClassDevice MemoryClass = 1
)

// MemoryRegion identifies one memory region of the device. It is only ever passed back to the
// kernel.
type MemoryRegion struct {
	Class    MemoryClass
	Instance uint16
}

type RegionInfo struct {
	Region          MemoryRegion
	ProbedSize      uint64
	UnallocatedSize uint64
}

// Driver is the set of i915 ioctls the backend issues against an open device. Every call
// returns the kernel's errno wrapped in the error chain on failure.
type Driver interface {
	GetParam(param Param) (int32, error)
	GetCap(capability Capability) (uint64, error)
	// Query runs a single-item DRM_I915_QUERY. With a nil data buffer it returns the length the
	// item needs; otherwise it fills data. A negative length is the kernel rejecting the item.
	Query(queryID QueryID, data []byte) (int32, error)

	GemCreate(size uint64) (uint32, error)
	GemCreateExt(size uint64, flags CreateExtFlags, chain *ExtensionChain) (uint32, error)
	PrelimGemCreateExt(size uint64, chain *ExtensionChain) (uint32, error)
	GemSetTiling(handle uint32, tiling uint32, stride uint32) error
	GemGetTiling(handle uint32) (uint32, error)
	GemClose(handle uint32) error
	PrimeFDToHandle(fd int) (uint32, error)

	GemMmapOffset(handle uint32, flags MmapOffsetFlags) (uint64, error)
	GemMmapGTT(handle uint32) (uint64, error)
	// GemMmap maps an object through the legacy CPU mmap call, which creates the mapping itself
	GemMmap(handle uint32, size uint64, flags MmapFlags) ([]byte, error)
	// Mmap maps a fake offset returned by GemMmapOffset or GemMmapGTT
	Mmap(offset uint64, size uint64, prot int) ([]byte, error)
	Munmap(data []byte) error
	GemSetDomain(handle uint32, readDomains Domain, writeDomain Domain) error
}
