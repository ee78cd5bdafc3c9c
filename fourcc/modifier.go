package fourcc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Modifier is a DRM format modifier describing the tiling and compression of a buffer
type Modifier uint64

const (
	vendorNone  uint64 = 0
	vendorIntel uint64 = 0x01
)

func modifierCode(vendor, value uint64) Modifier {
	return Modifier(vendor<<56 | value&0x00ffffffffffffff)
}

var (
	ModifierLinear  = modifierCode(vendorNone, 0)
	ModifierInvalid = modifierCode(vendorNone, 0x00ffffffffffffff)

	ModifierXTiled             = modifierCode(vendorIntel, 1)
	ModifierYTiled             = modifierCode(vendorIntel, 2)
	ModifierYfTiled            = modifierCode(vendorIntel, 3)
	ModifierYTiledCCS          = modifierCode(vendorIntel, 4)
	ModifierYfTiledCCS         = modifierCode(vendorIntel, 5)
	ModifierYTiledGen12RCCCS   = modifierCode(vendorIntel, 6)
	ModifierYTiledGen12MCCCS   = modifierCode(vendorIntel, 7)
	ModifierYTiledGen12RCCCSCC = modifierCode(vendorIntel, 8)
	Modifier4Tiled             = modifierCode(vendorIntel, 9)
	Modifier4TiledDG2RCCCS     = modifierCode(vendorIntel, 10)
	Modifier4TiledDG2MCCCS     = modifierCode(vendorIntel, 11)
	Modifier4TiledDG2RCCCSCC   = modifierCode(vendorIntel, 12)
	Modifier4TiledMTLRCCCS     = modifierCode(vendorIntel, 13)
	Modifier4TiledMTLMCCCS     = modifierCode(vendorIntel, 14)
	Modifier4TiledMTLRCCCSCC   = modifierCode(vendorIntel, 15)
)

var modifierNames = map[Modifier]string{
	ModifierLinear:             "LINEAR",
	ModifierInvalid:            "INVALID",
	ModifierXTiled:             "I915_X_TILED",
	ModifierYTiled:             "I915_Y_TILED",
	ModifierYfTiled:            "I915_Yf_TILED",
	ModifierYTiledCCS:          "I915_Y_TILED_CCS",
	ModifierYfTiledCCS:         "I915_Yf_TILED_CCS",
	ModifierYTiledGen12RCCCS:   "I915_Y_TILED_GEN12_RC_CCS",
	ModifierYTiledGen12MCCCS:   "I915_Y_TILED_GEN12_MC_CCS",
	ModifierYTiledGen12RCCCSCC: "I915_Y_TILED_GEN12_RC_CCS_CC",
	Modifier4Tiled:             "I915_4_TILED",
	Modifier4TiledDG2RCCCS:     "I915_4_TILED_DG2_RC_CCS",
	Modifier4TiledDG2MCCCS:     "I915_4_TILED_DG2_MC_CCS",
	Modifier4TiledDG2RCCCSCC:   "I915_4_TILED_DG2_RC_CCS_CC",
	Modifier4TiledMTLRCCCS:     "I915_4_TILED_MTL_RC_CCS",
	Modifier4TiledMTLMCCCS:     "I915_4_TILED_MTL_MC_CCS",
	Modifier4TiledMTLRCCCSCC:   "I915_4_TILED_MTL_RC_CCS_CC",
}

func (m Modifier) String() string {
	if name, ok := modifierNames[m]; ok {
		return name
	}
	return fmt.Sprintf("0x%016x", uint64(m))
}

// Vendor returns the vendor namespace stored in the top byte of the modifier
func (m Modifier) Vendor() uint8 {
	return uint8(uint64(m) >> 56)
}

// ParseModifier accepts a modifier name with or without the I915_ prefix, or a numeric value
func ParseModifier(str string) (Modifier, error) {
	upper := strings.ToUpper(str)
	for modifier, name := range modifierNames {
		if strings.ToUpper(name) == upper || strings.TrimPrefix(strings.ToUpper(name), "I915_") == upper {
			return modifier, nil
		}
	}

	value, err := strconv.ParseUint(str, 0, 64)
	if err != nil {
		return ModifierInvalid, errors.Wrapf(err, "unrecognized format modifier %q", str)
	}
	return Modifier(value), nil
}

// IsCompressed reports whether the modifier carries an auxiliary compression control surface
func (m Modifier) IsCompressed() bool {
	switch m {
	case ModifierYTiledCCS, ModifierYfTiledCCS,
		ModifierYTiledGen12RCCCS, ModifierYTiledGen12MCCCS, ModifierYTiledGen12RCCCSCC,
		Modifier4TiledDG2RCCCS, Modifier4TiledDG2MCCCS, Modifier4TiledDG2RCCCSCC,
		Modifier4TiledMTLRCCCS, Modifier4TiledMTLMCCCS, Modifier4TiledMTLRCCCSCC:
		return true
	}
	return false
}
