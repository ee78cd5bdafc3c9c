package i915

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"github.com/vkngwrapper/bufmgr/gbm"
	"golang.org/x/exp/slices"
)

const wideBufferWidth = 4096

// videoFormats keep their tiled layout on wide buffers because media engines only produce them
// tiled
var videoFormats = []fourcc.Format{fourcc.FormatNV12, fourcc.FormatP010}

// resolveModifier picks the layout of a new buffer. With a candidate list the first entry of the
// device's preference order that the caller accepts wins; without one the combination table
// decides.
func (b *Backend) resolveModifier(width uint32, format fourcc.Format, use gbm.UseFlags, modifiers []fourcc.Modifier) (fourcc.Modifier, error) {
	var modifier fourcc.Modifier

	if modifiers != nil {
		var ok bool
		modifier, ok = firstSupported(b.desc.ModifierOrder, format, modifiers)
		if !ok {
			return fourcc.ModifierInvalid, errors.Mark(
				errors.Newf("none of the %d requested modifiers is supported for %s", len(modifiers), format),
				gbm.ErrInvalidArgument)
		}
	} else {
		combo, ok := b.combos.Lookup(format, use)
		if !ok {
			return fourcc.ModifierInvalid, errors.Mark(
				errors.Newf("no layout of %s supports usage %s", format, use),
				gbm.ErrInvalidArgument)
		}
		modifier = combo.Metadata.Modifier
	}

	// Pre-gen11 display engines cannot scan out Y tiled surfaces this wide
	if b.desc.GraphicsVersion < 11 && width >= wideBufferWidth && !slices.Contains(videoFormats, format) &&
		modifier != fourcc.ModifierXTiled && modifier != fourcc.ModifierLinear {
		modifier = fallback(modifiers, fourcc.ModifierXTiled)
	}

	if b.cfg.NoCompression {
		switch modifier {
		case fourcc.ModifierYTiledCCS, fourcc.ModifierYTiledGen12RCCCS:
			modifier = fallback(modifiers, fourcc.ModifierYTiled)
		case fourcc.Modifier4TiledMTLRCCCS:
			modifier = fallback(modifiers, fourcc.Modifier4Tiled)
		}
	}

	// Gen8 and older cannot texture from tiled ARGB8888
	if b.desc.GraphicsVersion <= 8 && format == fourcc.FormatARGB8888 {
		modifier = fourcc.ModifierLinear
	}

	return modifier, nil
}

// firstSupported walks the device order. Control surfaces are only laid out after a single image
// plane, so compressed layouts never match multi-planar formats.
func firstSupported(order []fourcc.Modifier, format fourcc.Format, candidates []fourcc.Modifier) (fourcc.Modifier, bool) {
	singlePlane := fourcc.NumPlanes(format) == 1
	for _, modifier := range order {
		if hasControlSurface(modifier) && !singlePlane {
			continue
		}
		if slices.Contains(candidates, modifier) {
			return modifier, true
		}
	}
	return fourcc.ModifierInvalid, false
}

// fallback returns preferred if the caller would accept it, otherwise linear
func fallback(candidates []fourcc.Modifier, preferred fourcc.Modifier) fourcc.Modifier {
	if slices.Contains(candidates, preferred) {
		return preferred
	}
	return fourcc.ModifierLinear
}

// tilingForModifier returns the kernel tiling mode the object must be programmed with for
// a modifier
func tilingForModifier(modifier fourcc.Modifier) (gbm.Tiling, error) {
	switch modifier {
	case fourcc.ModifierLinear:
		return TilingNone, nil
	case fourcc.ModifierXTiled:
		return TilingX, nil
	case fourcc.ModifierYTiled, fourcc.ModifierYTiledCCS, fourcc.ModifierYfTiled, fourcc.ModifierYfTiledCCS,
		fourcc.ModifierYTiledGen12RCCCS:
		return TilingY, nil
	case fourcc.Modifier4Tiled, fourcc.Modifier4TiledMTLRCCCS:
		return Tiling4, nil
	}

	return TilingNone, errors.Mark(errors.Newf("modifier %s has no tiling mode", modifier), gbm.ErrInvalidArgument)
}

// NumPlanesFromModifier returns the number of planes a buffer of format has when laid out with
// modifier. Compressed layouts carry a control surface plane after the image planes.
func (b *Backend) NumPlanesFromModifier(format fourcc.Format, modifier fourcc.Modifier) int {
	numPlanes := fourcc.NumPlanes(format)
	if hasControlSurface(modifier) && numPlanes == 1 {
		return 2
	}
	return numPlanes
}

// hasControlSurface reports whether the modifier is a compressed layout this backend can
// allocate
func hasControlSurface(modifier fourcc.Modifier) bool {
	switch modifier {
	case fourcc.ModifierYTiledCCS, fourcc.ModifierYTiledGen12RCCCS, fourcc.Modifier4TiledMTLRCCCS:
		return true
	}
	return false
}
