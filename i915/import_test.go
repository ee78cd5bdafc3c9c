package i915

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"github.com/vkngwrapper/bufmgr/gbm"
	"go.uber.org/mock/gomock"
)

func nv12ImportData() gbm.ImportData {
	return gbm.ImportData{
		Width:    1920,
		Height:   1080,
		Format:   fourcc.FormatNV12,
		Modifier: fourcc.ModifierYTiled,
		UseFlags: gbm.UseTexture,
		FDs:      [fourcc.MaxPlanes]int{7, 7},
		Strides:  [fourcc.MaxPlanes]uint32{1920, 1920},
		Offsets:  [fourcc.MaxPlanes]uint32{0, 2088960},
	}
}

func TestImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, integratedSetup)

	drv.EXPECT().PrimeFDToHandle(7).Return(uint32(12), nil)
	drv.EXPECT().GemGetTiling(uint32(12)).Return(uint32(TilingY), nil)

	bo, err := backend.Import(nv12ImportData())
	require.NoError(t, err)

	require.Equal(t, uint32(12), bo.Handle)
	require.Equal(t, gbm.HeapSystem, bo.Heap)
	require.True(t, bo.Imported)
	require.NotNil(t, bo.Mapped)
	require.Equal(t, TilingY, bo.Meta.Tiling)
	require.Equal(t, 2, bo.Meta.NumPlanes)
	require.Equal(t, [fourcc.MaxPlanes]uint32{2088960, 1036800}, bo.Meta.Sizes)
	require.Equal(t, uint64(3125760), bo.Meta.TotalSize)
	require.NoError(t, bo.Meta.Validate())

	drv.EXPECT().GemClose(uint32(12)).Return(nil)
	require.NoError(t, backend.Destroy(bo))
	require.Equal(t, 0, backend.stats.Total().ObjectCount)
	require.Equal(t, 0, backend.stats.Total().ObjectBytes)
}

func TestImport_TilingQueryFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, integratedSetup)

	gomock.InOrder(
		drv.EXPECT().PrimeFDToHandle(7).Return(uint32(12), nil),
		drv.EXPECT().GemGetTiling(uint32(12)).Return(uint32(0), errors.New("EINVAL")),
		drv.EXPECT().GemClose(uint32(12)).Return(nil),
	)

	_, err := backend.Import(nv12ImportData())
	require.True(t, errors.Is(err, gbm.ErrAllocation))
	require.ErrorContains(t, err, "EINVAL")
}

func TestImport_TilingFromCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, discreteSetup)

	data := nv12ImportData()
	data.Modifier = fourcc.Modifier4Tiled
	data.Tiling = Tiling4

	drv.EXPECT().PrimeFDToHandle(7).Return(uint32(13), nil)

	bo, err := backend.Import(data)
	require.NoError(t, err)
	require.Equal(t, Tiling4, bo.Meta.Tiling)
	require.Equal(t, gbm.HeapSystem, bo.Heap)
}

func TestImport_UnknownFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, backend := readyBackend(t, ctrl, integratedSetup)

	data := nv12ImportData()
	data.Format = fourcc.Format(0x20202020)

	_, err := backend.Import(data)
	require.True(t, errors.Is(err, gbm.ErrInvalidArgument))
}

func TestImport_PrimeFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, integratedSetup)

	drv.EXPECT().PrimeFDToHandle(7).Return(uint32(0), errors.New("EBADF"))

	_, err := backend.Import(nv12ImportData())
	require.True(t, errors.Is(err, gbm.ErrAllocation))
	require.ErrorContains(t, err, "EBADF")
}

func TestFillImportedSizes(t *testing.T) {
	testCases := map[string]struct {
		Meta      gbm.Metadata
		Sizes     [fourcc.MaxPlanes]uint32
		TotalSize uint64
	}{
		"SinglePlane": {
			Meta: gbm.Metadata{
				Format: fourcc.FormatXRGB8888, Height: 100, NumPlanes: 1,
				Strides: [fourcc.MaxPlanes]uint32{4096},
			},
			Sizes:     [fourcc.MaxPlanes]uint32{409600},
			TotalSize: 409600,
		},
		"PlanesOutOfOrder": {
			Meta: gbm.Metadata{
				Format: fourcc.FormatNV12, Height: 100, NumPlanes: 2,
				Strides: [fourcc.MaxPlanes]uint32{128, 128},
				Offsets: [fourcc.MaxPlanes]uint32{8192, 0},
			},
			Sizes:     [fourcc.MaxPlanes]uint32{12800, 6400},
			TotalSize: 20992,
		},
		"ControlSurface": {
			Meta: gbm.Metadata{
				Format: fourcc.FormatXRGB8888, Height: 64, NumPlanes: 2,
				Strides: [fourcc.MaxPlanes]uint32{512, 64},
				Offsets: [fourcc.MaxPlanes]uint32{0, 65536},
			},
			Sizes:     [fourcc.MaxPlanes]uint32{65536, 4096},
			TotalSize: 69632,
		},
		"Capped": {
			Meta: gbm.Metadata{
				Format: fourcc.FormatXRGB8888, Height: 0x20000, NumPlanes: 1,
				Strides: [fourcc.MaxPlanes]uint32{0x40000},
			},
			Sizes:     [fourcc.MaxPlanes]uint32{0xffffffff},
			TotalSize: 0xffffffff,
		},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			meta := testCase.Meta
			fillImportedSizes(&meta)

			require.Equal(t, testCase.Sizes, meta.Sizes)
			require.Equal(t, testCase.TotalSize, meta.TotalSize)
		})
	}
}
