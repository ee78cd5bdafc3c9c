package i915

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bufmgr/gbm"
	"github.com/vkngwrapper/bufmgr/i915/internal/kernel"
	"github.com/vkngwrapper/bufmgr/memutils"
	"golang.org/x/exp/slog"
)

// Objects in device memory are created in 64KiB pages
const localMemoryPageSize = 0x10000

// needsLocalMemory reports whether a buffer may live in device memory. Buffers the CPU touches
// directly stay in system memory.
func needsLocalMemory(use gbm.UseFlags) bool {
	return use&(gbm.UseSWReadRarely|gbm.UseSWReadOften|gbm.UseSWWriteRarely|gbm.UseSWWriteOften) == 0
}

// selectHeap picks the pool a buffer with the given usage is placed in
func (b *Backend) selectHeap(use gbm.UseFlags) gbm.Heap {
	if !needsLocalMemory(use) || !b.desc.HasLocalMemory {
		return gbm.HeapSystem
	}

	if b.session.Variant == QueryPrelim {
		if b.desc.ForceLocalMemory {
			return gbm.HeapDeviceLocalPreferred
		}
		return gbm.HeapSystem
	}

	if b.desc.Local.Size > 0 {
		return gbm.HeapDeviceLocalPreferred
	}
	return gbm.HeapSystem
}

// heapRegions lists the regions an object in heap may be placed in, most preferred first
func (b *Backend) heapRegions(heap gbm.Heap) []kernel.MemoryRegion {
	switch heap {
	case gbm.HeapDeviceLocalPreferred:
		// System memory stays available as a fallback for device memory
		return []kernel.MemoryRegion{b.desc.Local.Region, b.desc.System.Region}
	case gbm.HeapDeviceLocal:
		return []kernel.MemoryRegion{b.desc.Local.Region}
	default:
		return []kernel.MemoryRegion{b.desc.System.Region}
	}
}

// createObject asks the kernel for an object large enough to hold meta and returns its handle
// and the heap it was placed in
func (b *Backend) createObject(meta *gbm.Metadata) (uint32, gbm.Heap, error) {
	heap := b.selectHeap(meta.UseFlags)

	if !needsLocalMemory(meta.UseFlags) || !b.desc.HasLocalMemory {
		handle, err := b.drv.GemCreate(meta.TotalSize)
		if err != nil {
			return 0, heap, errors.Wrapf(err, "failed to create a %d byte object", meta.TotalSize)
		}
		return handle, heap, nil
	}

	size := memutils.AlignUp[uint64](meta.TotalSize, localMemoryPageSize)

	if b.session.Variant == QueryPrelim {
		chain := kernel.NewExtensionChain(kernel.PrelimSetParamExtension{
			Param:   kernel.PrelimObjectParam | kernel.PrelimParamMemoryRegions,
			Regions: b.heapRegions(heap),
		})

		handle, err := b.drv.PrelimGemCreateExt(size, chain)
		if err != nil {
			return 0, heap, errors.Wrapf(err, "failed to create a %d byte object with the prelim uAPI", size)
		}
		return handle, heap, nil
	}

	var flags kernel.CreateExtFlags
	if heap == gbm.HeapDeviceLocalPreferred {
		flags |= kernel.CreateExtNeedsCPUAccess
	}

	chain := kernel.NewExtensionChain(kernel.MemoryRegionsExtension{Regions: b.heapRegions(heap)})
	handle, err := b.drv.GemCreateExt(size, flags, chain)
	if err != nil {
		return 0, heap, errors.Wrapf(err, "failed to create a %d byte object in %s", size, heap)
	}
	return handle, heap, nil
}

// CreateFromMetadata creates a kernel object for a layout computed by ComputeMetadata
func (b *Backend) CreateFromMetadata(meta gbm.Metadata) (*gbm.BufferObject, error) {
	b.logger.Debug("Backend::CreateFromMetadata",
		slog.String("Format", meta.Format.String()),
		slog.String("Modifier", meta.Modifier.String()),
		slog.Uint64("TotalSize", meta.TotalSize),
	)

	handle, heap, err := b.createObject(&meta)
	if err != nil {
		b.stats.AddFailure(heap)
		b.metrics.recordFailure(heap)
		b.logger.Error("object creation failed", slog.Any("error", err))
		return nil, errors.Mark(err, gbm.ErrAllocation)
	}

	if b.desc.SupportsFenceTiling() {
		err = b.drv.GemSetTiling(handle, uint32(meta.Tiling), meta.Strides[0])
		if err != nil {
			closeErr := b.drv.GemClose(handle)
			if closeErr != nil {
				b.logger.Error("error attempting to close object after failing to set tiling", slog.Any("error", closeErr))
			}

			b.stats.AddFailure(heap)
			b.metrics.recordFailure(heap)
			return nil, errors.Mark(errors.Wrapf(err, "failed to set %s on object %d", meta.Tiling, handle), gbm.ErrAllocation)
		}
	}

	b.stats.AddObject(heap, meta.TotalSize)
	b.metrics.recordAllocation(heap, meta.TotalSize)

	return &gbm.BufferObject{
		Meta:   meta,
		Handle: handle,
		Heap:   heap,
		Mapped: gbm.NewMapping(b.useMutex),
	}, nil
}

// Destroy closes the kernel object backing bo. The object must not be mapped.
func (b *Backend) Destroy(bo *gbm.BufferObject) error {
	b.logger.Debug("Backend::Destroy", slog.Int("Handle", int(bo.Handle)), slog.Bool("Imported", bo.Imported))

	if bo.Mapped != nil && bo.Mapped.References() > 0 {
		return errors.Newf("object %d is still mapped %d times", bo.Handle, bo.Mapped.References())
	}

	err := b.drv.GemClose(bo.Handle)
	if err != nil {
		return errors.Wrapf(err, "failed to close object %d", bo.Handle)
	}

	if !bo.Imported {
		b.stats.RemoveObject(bo.Heap, bo.Meta.TotalSize)
		b.metrics.recordFree(bo.Heap, bo.Meta.TotalSize)
	}
	return nil
}
