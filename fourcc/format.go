package fourcc

import (
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"
)

// Format is a DRM four-character pixel format code
type Format uint32

func code(a, b, c, d byte) Format {
	return Format(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

var (
	FormatR8            = code('R', '8', ' ', ' ')
	FormatR16           = code('R', '1', '6', ' ')
	FormatRGB565        = code('R', 'G', '1', '6')
	FormatBGR888        = code('B', 'G', '2', '4')
	FormatRGB888        = code('R', 'G', '2', '4')
	FormatXRGB8888      = code('X', 'R', '2', '4')
	FormatXBGR8888      = code('X', 'B', '2', '4')
	FormatARGB8888      = code('A', 'R', '2', '4')
	FormatABGR8888      = code('A', 'B', '2', '4')
	FormatXRGB2101010   = code('X', 'R', '3', '0')
	FormatXBGR2101010   = code('X', 'B', '3', '0')
	FormatARGB2101010   = code('A', 'R', '3', '0')
	FormatABGR2101010   = code('A', 'B', '3', '0')
	FormatABGR16161616F = code('A', 'B', '4', 'H')

	FormatYUYV = code('Y', 'U', 'Y', 'V')
	FormatYVYU = code('Y', 'V', 'Y', 'U')
	FormatUYVY = code('U', 'Y', 'V', 'Y')
	FormatVYUY = code('V', 'Y', 'U', 'Y')

	FormatNV12   = code('N', 'V', '1', '2')
	FormatNV21   = code('N', 'V', '2', '1')
	FormatNV16   = code('N', 'V', '1', '6')
	FormatP010   = code('P', '0', '1', '0')
	FormatP016   = code('P', '0', '1', '6')
	FormatYUV420 = code('Y', 'U', '1', '2')
	FormatYVU420 = code('Y', 'V', '1', '2')
	FormatYUV422 = code('Y', 'U', '1', '6')
	FormatYUV444 = code('Y', 'U', '2', '4')

	// FormatYVU420Android is YV12 with the chroma stride constraints of the Android HAL
	FormatYVU420Android = code('9', '9', '9', '7')
	// FormatNV12YTiledIntel is NV12 in the media engine's vertically tiled layout
	FormatNV12YTiledIntel = code('9', '9', '9', '6')
	// FormatP010Intel is the media engine's private P010 layout
	FormatP010Intel = code('9', '9', '9', '5')
)

var formatNames = map[Format]string{
	FormatR8:              "R8",
	FormatR16:             "R16",
	FormatRGB565:          "RGB565",
	FormatBGR888:          "BGR888",
	FormatRGB888:          "RGB888",
	FormatXRGB8888:        "XRGB8888",
	FormatXBGR8888:        "XBGR8888",
	FormatARGB8888:        "ARGB8888",
	FormatABGR8888:        "ABGR8888",
	FormatXRGB2101010:     "XRGB2101010",
	FormatXBGR2101010:     "XBGR2101010",
	FormatARGB2101010:     "ARGB2101010",
	FormatABGR2101010:     "ABGR2101010",
	FormatABGR16161616F:   "ABGR16161616F",
	FormatYUYV:            "YUYV",
	FormatYVYU:            "YVYU",
	FormatUYVY:            "UYVY",
	FormatVYUY:            "VYUY",
	FormatNV12:            "NV12",
	FormatNV21:            "NV21",
	FormatNV16:            "NV16",
	FormatP010:            "P010",
	FormatP016:            "P016",
	FormatYUV420:          "YUV420",
	FormatYVU420:          "YVU420",
	FormatYUV422:          "YUV422",
	FormatYUV444:          "YUV444",
	FormatYVU420Android:   "YVU420_ANDROID",
	FormatNV12YTiledIntel: "NV12_Y_TILED_INTEL",
	FormatP010Intel:       "P010_INTEL",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}

	b := []byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)}
	return strings.TrimRight(string(b), " ")
}

// ParseFormat accepts either a format name such as "NV12" or a raw four-character code
func ParseFormat(str string) (Format, error) {
	for format, name := range formatNames {
		if strings.EqualFold(name, str) {
			return format, nil
		}
	}

	if len(str) > 0 && len(str) <= 4 {
		padded := str + strings.Repeat(" ", 4-len(str))
		return code(padded[0], padded[1], padded[2], padded[3]), nil
	}

	return 0, errors.Newf("unrecognized pixel format %q", str)
}

// KnownFormats returns every format this package has a plane layout for
func KnownFormats() []Format {
	formats := make([]Format, 0, len(planarLayouts))
	for format := range planarLayouts {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}
