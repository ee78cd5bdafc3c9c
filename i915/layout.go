package i915

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"github.com/vkngwrapper/bufmgr/gbm"
	"github.com/vkngwrapper/bufmgr/memutils"
)

const (
	tileWidth  = 128
	tileHeight = 32
	tileSize   = 4096

	// Compressed main surfaces are placed on 64KiB boundaries
	compressedSurfaceAlignment = 65536
	// One control surface byte tracks 256 bytes of main surface
	controlSurfaceRatio = 256
)

func checkFits(value uint64, what string) error {
	if value > math.MaxUint32 {
		return errors.Wrapf(memutils.OverflowError, "%s is %d", what, value)
	}
	return nil
}

// computeLayout fills in the plane geometry of meta from its format, dimensions, tiling
// and modifier
func (b *Backend) computeLayout(meta *gbm.Metadata) error {
	if fourcc.NumPlanes(meta.Format) == 0 {
		return errors.Mark(errors.Wrapf(fourcc.ErrUnknownFormat, "format %s", meta.Format), gbm.ErrInvalidArgument)
	}

	var err error
	switch {
	case meta.Format == fourcc.FormatYVU420Android:
		err = b.androidYVULayout(meta)
	case meta.Modifier == fourcc.ModifierYTiledCCS:
		err = b.yTiledCCSLayout(meta)
	case meta.Modifier == fourcc.ModifierYTiledGen12RCCCS:
		err = b.gen12CCSLayout(meta)
	case meta.Modifier == fourcc.Modifier4TiledMTLRCCCS:
		err = b.mtlCCSLayout(meta)
	default:
		err = b.planarLayout(meta)
	}
	if err != nil {
		return errors.Mark(err, gbm.ErrInvalidArgument)
	}

	memutils.DebugValidate(meta)
	return nil
}

// alignment returns the stride and row alignment a plane needs under a tiling mode
func (b *Backend) alignment(format fourcc.Format, tiling gbm.Tiling, planeHeight uint32) (uint32, uint32) {
	switch tiling {
	case TilingX:
		return 512, 8
	case TilingY, Tiling4:
		return tileWidth, tileHeight
	}

	params := tiers[b.desc.Tier]
	horizontal, vertical := params.LinearStrideAlignment, params.LinearHeightAlignment
	if b.cfg.LinearAlign256 {
		horizontal = 256
	}

	// A one-row R8 buffer is a data blob, which the hardware allows without row padding
	if format == fourcc.FormatR8 && planeHeight == 1 {
		vertical = 1
	}

	return horizontal, vertical
}

// needsLCUAlignment reports whether a plane is aligned to the largest coded unit of the
// media engine, which reads the chroma plane in 64-row blocks
func (b *Backend) needsLCUAlignment(format fourcc.Format, plane int) bool {
	switch format {
	case fourcc.FormatNV12, fourcc.FormatP010, fourcc.FormatP016:
		return plane == 1 && (b.desc.GraphicsVersion == 11 || b.desc.GraphicsVersion == 12)
	}
	return false
}

func (b *Backend) planarLayout(meta *gbm.Metadata) error {
	numPlanes := fourcc.NumPlanes(meta.Format)

	var offset uint64
	for plane := 0; plane < numPlanes; plane++ {
		stride := fourcc.Stride(meta.Format, meta.Width, plane)
		planeHeight := fourcc.Height(meta.Format, meta.Height, plane)

		horizontal, vertical := b.alignment(meta.Format, meta.Tiling, planeHeight)
		planeHeight = memutils.AlignUp(planeHeight, vertical)
		// R8 blobs are sized by the caller byte for byte
		if meta.Format != fourcc.FormatR8 {
			stride = memutils.AlignUp(stride, horizontal)
		}

		if b.needsLCUAlignment(meta.Format, plane) {
			planeHeight = memutils.AlignUp[uint32](planeHeight, 64)
		}

		size := uint64(stride) * uint64(planeHeight)
		if err := checkFits(size, "plane size"); err != nil {
			return err
		}
		if err := checkFits(offset, "plane offset"); err != nil {
			return err
		}

		meta.Strides[plane] = stride
		meta.Sizes[plane] = uint32(size)
		meta.Offsets[plane] = uint32(offset)
		offset += size
	}

	meta.NumPlanes = numPlanes
	meta.TotalSize = memutils.AlignUp(offset, b.pageSize)
	return nil
}

// androidYVULayout lays out the Android flavor of YV12, whose chroma strides are derived from a
// luma stride aligned to 32 bytes. The format is only ever sampled linearly.
func (b *Backend) androidYVULayout(meta *gbm.Metadata) error {
	meta.Tiling = TilingNone
	meta.Modifier = fourcc.ModifierLinear

	layout, err := fourcc.LayoutFromStride(meta.Format, memutils.AlignUp[uint32](meta.Width, 32), meta.Height)
	if err != nil {
		return err
	}

	meta.NumPlanes = layout.NumPlanes
	meta.Strides = layout.Strides
	meta.Offsets = layout.Offsets
	meta.Sizes = layout.Sizes
	meta.TotalSize = memutils.AlignUp(layout.TotalSize, b.pageSize)
	return nil
}

// controlSurface places the compression control plane directly after a main surface
func (b *Backend) controlSurface(meta *gbm.Metadata, mainStride uint32, mainSize uint64) error {
	controlSize := memutils.AlignUp(mainSize/controlSurfaceRatio, b.pageSize)
	if err := checkFits(mainSize, "main surface size"); err != nil {
		return err
	}
	if err := checkFits(controlSize, "control surface size"); err != nil {
		return err
	}

	meta.NumPlanes = b.NumPlanesFromModifier(meta.Format, meta.Modifier)
	meta.Strides[0] = mainStride
	meta.Offsets[0] = 0
	meta.Sizes[0] = uint32(mainSize)

	meta.Strides[1] = mainStride / 8
	meta.Offsets[1] = uint32(mainSize)
	meta.Sizes[1] = uint32(controlSize)

	meta.TotalSize = memutils.AlignUp(mainSize+controlSize, b.pageSize)
	return nil
}

// yTiledCCSLayout sizes the main surface in whole Y tiles
func (b *Backend) yTiledCCSLayout(meta *gbm.Metadata) error {
	stride := fourcc.Stride(meta.Format, meta.Width, 0)
	widthInTiles := uint64(memutils.DivRoundUp[uint32](stride, tileWidth))
	heightInTiles := uint64(memutils.DivRoundUp[uint32](meta.Height, tileHeight))

	mainStride := widthInTiles * tileWidth
	if err := checkFits(mainStride, "stride"); err != nil {
		return err
	}

	return b.controlSurface(meta, uint32(mainStride), widthInTiles*heightInTiles*tileSize)
}

func (b *Backend) gen12CCSLayout(meta *gbm.Metadata) error {
	stride := uint64(memutils.AlignUp[uint32](fourcc.Stride(meta.Format, meta.Width, 0), 512))
	height := uint64(memutils.AlignUp[uint32](fourcc.Height(meta.Format, meta.Height, 0), tileHeight))

	// Display 13 fetches compressed surfaces in power of two strides
	if b.desc.IsXeLPD && stride > 1 {
		stride = memutils.NextPow2(stride)
		height = memutils.AlignUp[uint64](height, 128)
	}

	if err := checkFits(stride, "stride"); err != nil {
		return err
	}

	return b.controlSurface(meta, uint32(stride), memutils.AlignUp[uint64](stride*height, compressedSurfaceAlignment))
}

func (b *Backend) mtlCCSLayout(meta *gbm.Metadata) error {
	stride := memutils.AlignUp[uint32](fourcc.Stride(meta.Format, meta.Width, 0), 512)
	stride = memutils.AlignUp[uint32](stride, 256)
	height := memutils.AlignUp[uint32](fourcc.Height(meta.Format, meta.Height, 0), tileHeight)

	mainSize := memutils.AlignUp(uint64(stride)*uint64(height), compressedSurfaceAlignment)
	if err := b.controlSurface(meta, stride, mainSize); err != nil {
		return err
	}

	meta.NumPlanes = 2
	return nil
}
