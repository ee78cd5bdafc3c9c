package i915

import (
	"github.com/vkngwrapper/bufmgr/fourcc"
)

// Tier groups hardware generations that share a preferred modifier order and linear alignment
type Tier int

const (
	TierLegacy Tier = iota
	TierGen11
	TierGen12
	// TierTile4 is every part from graphics version 12.5 on, which replaces Y tiling with 4 tiling
	TierTile4
)

var tierNames = map[Tier]string{
	TierLegacy: "legacy",
	TierGen11:  "gen11",
	TierGen12:  "gen12",
	TierTile4:  "tile4",
}

func (t Tier) String() string {
	return tierNames[t]
}

type tierParams struct {
	// ModifierOrder lists modifiers from most to least preferred
	ModifierOrder []fourcc.Modifier

	LinearStrideAlignment uint32
	LinearHeightAlignment uint32
}

var tiers = map[Tier]tierParams{
	TierLegacy: {
		ModifierOrder: []fourcc.Modifier{
			fourcc.ModifierYTiledCCS,
			fourcc.ModifierYTiled,
			fourcc.ModifierXTiled,
			fourcc.ModifierLinear,
		},
		LinearStrideAlignment: 64,
		LinearHeightAlignment: 4,
	},
	TierGen11: {
		ModifierOrder: []fourcc.Modifier{
			fourcc.ModifierYTiled,
			fourcc.ModifierXTiled,
			fourcc.ModifierLinear,
		},
		LinearStrideAlignment: 64,
		LinearHeightAlignment: 4,
	},
	TierGen12: {
		ModifierOrder: []fourcc.Modifier{
			fourcc.ModifierYTiledGen12RCCCS,
			fourcc.ModifierYTiled,
			fourcc.ModifierXTiled,
			fourcc.ModifierLinear,
		},
		LinearStrideAlignment: 64,
		LinearHeightAlignment: 4,
	},
	TierTile4: {
		ModifierOrder: []fourcc.Modifier{
			fourcc.Modifier4TiledMTLRCCCS,
			fourcc.Modifier4Tiled,
			fourcc.ModifierXTiled,
			fourcc.ModifierLinear,
		},
		LinearStrideAlignment: 4,
		LinearHeightAlignment: 4,
	},
}

func tierFor(graphicsVersion, subVersion uint32) Tier {
	switch {
	case graphicsVersion*10+subVersion >= 125:
		return TierTile4
	case graphicsVersion == 12:
		return TierGen12
	case graphicsVersion == 11:
		return TierGen11
	default:
		return TierLegacy
	}
}
