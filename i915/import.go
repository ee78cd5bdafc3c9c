package i915

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"github.com/vkngwrapper/bufmgr/gbm"
	"golang.org/x/exp/slog"
)

// Import creates a buffer object from dma-buf file descriptors exported by another device or
// process. Every plane must share the object referenced by the first descriptor.
func (b *Backend) Import(data gbm.ImportData) (*gbm.BufferObject, error) {
	b.logger.Debug("Backend::Import",
		slog.String("Format", data.Format.String()),
		slog.String("Modifier", data.Modifier.String()),
	)

	numPlanes := b.NumPlanesFromModifier(data.Format, data.Modifier)
	if numPlanes == 0 {
		return nil, errors.Mark(errors.Newf("cannot import unknown format %s", data.Format), gbm.ErrInvalidArgument)
	}

	handle, err := b.drv.PrimeFDToHandle(data.FDs[0])
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to import dma-buf %d", data.FDs[0]), gbm.ErrAllocation)
	}

	meta := gbm.Metadata{
		Width:     data.Width,
		Height:    data.Height,
		Format:    data.Format,
		UseFlags:  data.UseFlags,
		Tiling:    data.Tiling,
		Modifier:  data.Modifier,
		NumPlanes: numPlanes,
		Strides:   data.Strides,
		Offsets:   data.Offsets,
	}

	if b.desc.SupportsFenceTiling() {
		tiling, err := b.drv.GemGetTiling(handle)
		if err != nil {
			closeErr := b.drv.GemClose(handle)
			if closeErr != nil {
				b.logger.Error("error attempting to close object after failing to get tiling", slog.Any("error", closeErr))
			}
			return nil, errors.Mark(
				errors.Wrapf(err, "failed to read the tiling of imported object %d", handle),
				gbm.ErrAllocation)
		}
		meta.Tiling = gbm.Tiling(tiling)
	}

	fillImportedSizes(&meta)

	return &gbm.BufferObject{
		Meta:     meta,
		Handle:   handle,
		Heap:     gbm.HeapSystem,
		Imported: true,
		Mapped:   gbm.NewMapping(b.useMutex),
	}, nil
}

// fillImportedSizes derives plane sizes from the plane offsets, treating the last plane as
// running to the end of the rows it covers
func fillImportedSizes(meta *gbm.Metadata) {
	var end uint64
	for plane := 0; plane < meta.NumPlanes; plane++ {
		var size uint64
		if plane+1 < meta.NumPlanes && meta.Offsets[plane+1] > meta.Offsets[plane] {
			size = uint64(meta.Offsets[plane+1] - meta.Offsets[plane])
		} else {
			rows := fourcc.Height(meta.Format, meta.Height, plane)
			if rows == 0 {
				rows = meta.Height
			}
			size = uint64(meta.Strides[plane]) * uint64(rows)
		}
		if size > uint64(^uint32(0)) {
			size = uint64(^uint32(0))
		}

		meta.Sizes[plane] = uint32(size)
		if planeEnd := uint64(meta.Offsets[plane]) + size; planeEnd > end {
			end = planeEnd
		}
	}
	meta.TotalSize = end
}
