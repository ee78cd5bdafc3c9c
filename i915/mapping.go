package i915

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bufmgr/gbm"
	"github.com/vkngwrapper/bufmgr/i915/internal/kernel"
	"golang.org/x/exp/slog"
)

var flushCacheRange = kernel.FlushCacheRange

// useWriteCombining reports whether CPU mappings of a buffer should bypass the CPU cache. Buffers
// headed for the display benefit unless the CPU also reads them back heavily.
func useWriteCombining(use gbm.UseFlags) bool {
	return use&gbm.UseScanout != 0 &&
		use&(gbm.UseRenderscript|gbm.UseCameraRead|gbm.UseCameraWrite|gbm.UseSWReadOften) == 0
}

// mmapOffsetPolicies lists the caching modes to try for an offset mapping, in order
func (b *Backend) mmapOffsetPolicies(use gbm.UseFlags) []kernel.MmapOffsetFlags {
	preferred, alternate := kernel.MmapOffsetWB, kernel.MmapOffsetWC
	if useWriteCombining(use) {
		preferred, alternate = kernel.MmapOffsetWC, kernel.MmapOffsetWB
	}

	// Device memory objects have a single fixed caching mode
	if b.desc.HasLocalMemory {
		return []kernel.MmapOffsetFlags{kernel.MmapOffsetFixed, preferred, alternate}
	}
	return []kernel.MmapOffsetFlags{preferred, alternate}
}

func mapProtection(flags gbm.MapFlags) int {
	var prot int
	if flags&gbm.MapRead != 0 {
		prot |= kernel.ProtRead
	}
	if flags&gbm.MapWrite != 0 {
		prot |= kernel.ProtWrite
	}
	return prot
}

func (b *Backend) mapObject(bo *gbm.BufferObject, flags gbm.MapFlags) ([]byte, error) {
	size := bo.Meta.TotalSize

	if b.desc.HasMmapOffset {
		var offset uint64
		var err error
		for _, policy := range b.mmapOffsetPolicies(bo.Meta.UseFlags) {
			offset, err = b.drv.GemMmapOffset(bo.Handle, policy)
			if err == nil {
				break
			}
			b.logger.Debug("    mmap offset rejected", slog.Int("Policy", int(policy)), slog.Any("error", err))
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get a mapping offset for object %d", bo.Handle)
		}

		return b.drv.Mmap(offset, size, kernel.ProtRead|kernel.ProtWrite)
	}

	var mmapFlags kernel.MmapFlags
	if useWriteCombining(bo.Meta.UseFlags) {
		mmapFlags |= kernel.MmapWC
	}

	if bo.Meta.Tiling == TilingNone {
		return b.drv.GemMmap(bo.Handle, size, mmapFlags)
	}

	// Tiled objects are detiled through the aperture, unless the object has no aperture
	// mapping, as is the case for imported dma-bufs
	offset, err := b.drv.GemMmapGTT(bo.Handle)
	if err != nil {
		b.logger.Debug("    gtt mapping rejected, mapping directly", slog.Any("error", err))
		return b.drv.GemMmap(bo.Handle, size, mmapFlags)
	}

	return b.drv.Mmap(offset, size, mapProtection(flags))
}

// Map maps bo into the CPU address space. Maps of the same object share one mapping until the
// last Unmap.
func (b *Backend) Map(bo *gbm.BufferObject, flags gbm.MapFlags) (*gbm.Mapping, error) {
	b.logger.Debug("Backend::Map", slog.Int("Handle", int(bo.Handle)), slog.String("Flags", flags.String()))

	if hasControlSurface(bo.Meta.Modifier) {
		return nil, errors.Mark(
			errors.Newf("objects with modifier %s cannot be mapped", bo.Meta.Modifier),
			gbm.ErrUnsupportedOperation)
	}

	if bo.Mapped == nil {
		bo.Mapped = gbm.NewMapping(b.useMutex)
	}

	_, err := bo.Mapped.Acquire(flags, func() ([]byte, error) {
		return b.mapObject(bo, flags)
	})
	if err != nil {
		b.logger.Error("mapping failed", slog.Int("Handle", int(bo.Handle)), slog.Any("error", err))
		return nil, err
	}

	return bo.Mapped, nil
}

func (b *Backend) Unmap(bo *gbm.BufferObject, mapping *gbm.Mapping) error {
	b.logger.Debug("Backend::Unmap", slog.Int("Handle", int(bo.Handle)))

	return mapping.Release(func(data []byte) error {
		return b.drv.Munmap(data)
	})
}

// Invalidate moves bo into the CPU cache domain before the CPU accesses it through mapping
func (b *Backend) Invalidate(bo *gbm.BufferObject, mapping *gbm.Mapping) error {
	if !b.desc.NeedsDomainSync() {
		return nil
	}

	domain := kernel.DomainGTT
	if bo.Meta.Tiling == TilingNone {
		domain = kernel.DomainCPU
	}

	var writeDomain kernel.Domain
	if mapping.Flags()&gbm.MapWrite != 0 {
		writeDomain = domain
	}

	err := b.drv.GemSetDomain(bo.Handle, domain, writeDomain)
	if err != nil {
		return errors.Wrapf(err, "failed to move object %d to the cpu domain", bo.Handle)
	}
	return nil
}

// Flush writes CPU caches back over the mapped range when the GPU does not snoop them
func (b *Backend) Flush(bo *gbm.BufferObject, mapping *gbm.Mapping) error {
	if !b.desc.HasLLC && bo.Meta.Tiling == TilingNone {
		flushCacheRange(mapping.Data())
	}
	return nil
}
