package i915

import "github.com/vkngwrapper/bufmgr/gbm"

// Kernel tiling modes, as programmed through the legacy tiling calls
const (
	TilingNone gbm.Tiling = 0
	TilingX    gbm.Tiling = 1
	TilingY    gbm.Tiling = 2
	Tiling4    gbm.Tiling = 9
)

func init() {
	TilingNone.Register("linear")
	TilingX.Register("tiling-x")
	TilingY.Register("tiling-y")
	Tiling4.Register("tiling-4")
}
