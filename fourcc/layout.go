package fourcc

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bufmgr/memutils"
)

const MaxPlanes = 4

type planarLayout struct {
	numPlanes           int
	horizontalSubsample [MaxPlanes]uint32
	verticalSubsample   [MaxPlanes]uint32
	bytesPerPixel       [MaxPlanes]uint32
}

var (
	packed1bpp = planarLayout{numPlanes: 1, horizontalSubsample: [MaxPlanes]uint32{1}, verticalSubsample: [MaxPlanes]uint32{1}, bytesPerPixel: [MaxPlanes]uint32{1}}
	packed2bpp = planarLayout{numPlanes: 1, horizontalSubsample: [MaxPlanes]uint32{1}, verticalSubsample: [MaxPlanes]uint32{1}, bytesPerPixel: [MaxPlanes]uint32{2}}
	packed3bpp = planarLayout{numPlanes: 1, horizontalSubsample: [MaxPlanes]uint32{1}, verticalSubsample: [MaxPlanes]uint32{1}, bytesPerPixel: [MaxPlanes]uint32{3}}
	packed4bpp = planarLayout{numPlanes: 1, horizontalSubsample: [MaxPlanes]uint32{1}, verticalSubsample: [MaxPlanes]uint32{1}, bytesPerPixel: [MaxPlanes]uint32{4}}
	packed8bpp = planarLayout{numPlanes: 1, horizontalSubsample: [MaxPlanes]uint32{1}, verticalSubsample: [MaxPlanes]uint32{1}, bytesPerPixel: [MaxPlanes]uint32{8}}

	biplanarYUV420 = planarLayout{
		numPlanes:           2,
		horizontalSubsample: [MaxPlanes]uint32{1, 2},
		verticalSubsample:   [MaxPlanes]uint32{1, 2},
		bytesPerPixel:       [MaxPlanes]uint32{1, 2},
	}
	biplanarYUV422 = planarLayout{
		numPlanes:           2,
		horizontalSubsample: [MaxPlanes]uint32{1, 2},
		verticalSubsample:   [MaxPlanes]uint32{1, 1},
		bytesPerPixel:       [MaxPlanes]uint32{1, 2},
	}
	biplanarYUV420Bpp2 = planarLayout{
		numPlanes:           2,
		horizontalSubsample: [MaxPlanes]uint32{1, 2},
		verticalSubsample:   [MaxPlanes]uint32{1, 2},
		bytesPerPixel:       [MaxPlanes]uint32{2, 4},
	}
	triplanarYUV420 = planarLayout{
		numPlanes:           3,
		horizontalSubsample: [MaxPlanes]uint32{1, 2, 2},
		verticalSubsample:   [MaxPlanes]uint32{1, 2, 2},
		bytesPerPixel:       [MaxPlanes]uint32{1, 1, 1},
	}
	triplanarYUV422 = planarLayout{
		numPlanes:           3,
		horizontalSubsample: [MaxPlanes]uint32{1, 2, 2},
		verticalSubsample:   [MaxPlanes]uint32{1, 1, 1},
		bytesPerPixel:       [MaxPlanes]uint32{1, 1, 1},
	}
	triplanarYUV444 = planarLayout{
		numPlanes:           3,
		horizontalSubsample: [MaxPlanes]uint32{1, 1, 1},
		verticalSubsample:   [MaxPlanes]uint32{1, 1, 1},
		bytesPerPixel:       [MaxPlanes]uint32{1, 1, 1},
	}
)

var planarLayouts = map[Format]planarLayout{
	FormatR8:              packed1bpp,
	FormatR16:             packed2bpp,
	FormatRGB565:          packed2bpp,
	FormatYUYV:            packed2bpp,
	FormatYVYU:            packed2bpp,
	FormatUYVY:            packed2bpp,
	FormatVYUY:            packed2bpp,
	FormatBGR888:          packed3bpp,
	FormatRGB888:          packed3bpp,
	FormatXRGB8888:        packed4bpp,
	FormatXBGR8888:        packed4bpp,
	FormatARGB8888:        packed4bpp,
	FormatABGR8888:        packed4bpp,
	FormatXRGB2101010:     packed4bpp,
	FormatXBGR2101010:     packed4bpp,
	FormatARGB2101010:     packed4bpp,
	FormatABGR2101010:     packed4bpp,
	FormatABGR16161616F:   packed8bpp,
	FormatNV12:            biplanarYUV420,
	FormatNV21:            biplanarYUV420,
	FormatNV12YTiledIntel: biplanarYUV420,
	FormatNV16:            biplanarYUV422,
	FormatP010:            biplanarYUV420Bpp2,
	FormatP016:            biplanarYUV420Bpp2,
	FormatP010Intel:       biplanarYUV420Bpp2,
	FormatYUV420:          triplanarYUV420,
	FormatYVU420:          triplanarYUV420,
	FormatYVU420Android:   triplanarYUV420,
	FormatYUV422:          triplanarYUV422,
	FormatYUV444:          triplanarYUV444,
}

// ErrUnknownFormat is returned for a format with no registered plane layout
var ErrUnknownFormat = errors.New("no plane layout for pixel format")

func layoutFor(format Format) (planarLayout, error) {
	layout, ok := planarLayouts[format]
	if !ok {
		return planarLayout{}, errors.Wrapf(ErrUnknownFormat, "format %s", format)
	}
	return layout, nil
}

// NumPlanes returns the number of memory planes the format uses, or zero for an unknown format
func NumPlanes(format Format) int {
	layout, ok := planarLayouts[format]
	if !ok {
		return 0
	}
	return layout.numPlanes
}

// Stride returns the minimum number of bytes per row of the given plane for an image width
func Stride(format Format, width uint32, plane int) uint32 {
	layout, err := layoutFor(format)
	if err != nil || plane >= layout.numPlanes {
		return 0
	}

	planeWidth := memutils.DivRoundUp(width, layout.horizontalSubsample[plane])
	stride := planeWidth * layout.bytesPerPixel[plane]

	if format == FormatYVU420Android {
		if plane == 0 {
			stride = memutils.AlignUp[uint32](stride, 32)
		} else {
			stride = memutils.AlignUp[uint32](stride, 16)
		}
	}

	return stride
}

// Height returns the number of rows in the given plane for an image height
func Height(format Format, height uint32, plane int) uint32 {
	layout, err := layoutFor(format)
	if err != nil || plane >= layout.numPlanes {
		return 0
	}

	return memutils.DivRoundUp(height, layout.verticalSubsample[plane])
}

// SubsampleStride derives the stride of a chroma plane from the luma stride for the
// three-plane formats whose chroma planes share one allocation with the luma plane.
func SubsampleStride(format Format, stride uint32, plane int) uint32 {
	if plane == 0 {
		return stride
	}

	switch format {
	case FormatYVU420, FormatYUV420, FormatYVU420Android:
		stride = memutils.DivRoundUp(stride, 2)
	}

	if format == FormatYVU420Android {
		stride = memutils.AlignUp[uint32](stride, 16)
	}

	return stride
}

// PlaneLayout describes how each plane of an image is placed in one contiguous allocation
type PlaneLayout struct {
	NumPlanes int
	Strides   [MaxPlanes]uint32
	Offsets   [MaxPlanes]uint32
	Sizes     [MaxPlanes]uint32
	TotalSize uint64
}

// LayoutFromStride places every plane of format back to back given the stride of the first plane
// and the aligned height of the image.
func LayoutFromStride(format Format, stride, alignedHeight uint32) (PlaneLayout, error) {
	layout, err := layoutFor(format)
	if err != nil {
		return PlaneLayout{}, err
	}

	out := PlaneLayout{NumPlanes: layout.numPlanes}
	var offset uint64
	for plane := 0; plane < layout.numPlanes; plane++ {
		planeStride := SubsampleStride(format, stride, plane)

		size := uint64(planeStride) * uint64(Height(format, alignedHeight, plane))
		if offset > 0xffffffff || size > 0xffffffff {
			return PlaneLayout{}, errors.Wrapf(memutils.OverflowError, "plane %d of %s", plane, format)
		}

		out.Strides[plane] = planeStride
		out.Offsets[plane] = uint32(offset)
		out.Sizes[plane] = uint32(size)
		offset += size
	}

	out.TotalSize = offset
	return out, nil
}
