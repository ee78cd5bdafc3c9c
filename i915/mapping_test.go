package i915

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"github.com/vkngwrapper/bufmgr/gbm"
	"github.com/vkngwrapper/bufmgr/i915/internal/kernel"
	"go.uber.org/mock/gomock"
)

func testObject(handle uint32, tiling gbm.Tiling, modifier fourcc.Modifier, use gbm.UseFlags) *gbm.BufferObject {
	return &gbm.BufferObject{
		Handle: handle,
		Meta: gbm.Metadata{
			Width:     32,
			Height:    32,
			Format:    fourcc.FormatXRGB8888,
			UseFlags:  use,
			Tiling:    tiling,
			Modifier:  modifier,
			NumPlanes: 1,
			Strides:   [fourcc.MaxPlanes]uint32{128},
			Sizes:     [fourcc.MaxPlanes]uint32{4096},
			TotalSize: 4096,
		},
		Mapped: gbm.NewMapping(false),
	}
}

func TestMap_CompressedUnsupported(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, backend := readyBackend(t, ctrl, integratedSetup)

	for _, modifier := range []fourcc.Modifier{fourcc.ModifierYTiledCCS, fourcc.ModifierYTiledGen12RCCCS, fourcc.Modifier4TiledMTLRCCCS} {
		_, err := backend.Map(testObject(1, TilingY, modifier, gbm.UseRendering), gbm.MapRead)
		require.True(t, errors.Is(err, gbm.ErrUnsupportedOperation))
	}
}

var mapOffsetTestCases = map[string]struct {
	Setup    DeviceSetup
	Use      gbm.UseFlags
	Rejected []kernel.MmapOffsetFlags
	Accepted kernel.MmapOffsetFlags
}{
	"WriteBack": {
		Setup:    integratedSetup,
		Use:      gbm.UseRendering | gbm.UseSWReadOften,
		Accepted: kernel.MmapOffsetWB,
	},
	"WriteCombinedScanout": {
		Setup:    integratedSetup,
		Use:      gbm.UseScanout | gbm.UseSWWriteRarely,
		Accepted: kernel.MmapOffsetWC,
	},
	"ScanoutReadBack": {
		Setup:    integratedSetup,
		Use:      gbm.UseScanout | gbm.UseSWReadOften,
		Accepted: kernel.MmapOffsetWB,
	},
	"FallbackToAlternate": {
		Setup:    integratedSetup,
		Use:      gbm.UseScanout,
		Rejected: []kernel.MmapOffsetFlags{kernel.MmapOffsetWC},
		Accepted: kernel.MmapOffsetWB,
	},
	"DeviceMemoryFixed": {
		Setup:    discreteSetup,
		Use:      gbm.UseRendering,
		Accepted: kernel.MmapOffsetFixed,
	},
	"DeviceMemoryFixedRejected": {
		Setup:    discreteSetup,
		Use:      gbm.UseScanout,
		Rejected: []kernel.MmapOffsetFlags{kernel.MmapOffsetFixed},
		Accepted: kernel.MmapOffsetWC,
	},
}

func TestMap_MmapOffset(t *testing.T) {
	for testName, testCase := range mapOffsetTestCases {
		t.Run(testName, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			drv, backend := readyBackend(t, ctrl, testCase.Setup)

			bo := testObject(3, TilingNone, fourcc.ModifierLinear, testCase.Use)
			data := make([]byte, 4096)

			var calls []*gomock.Call
			for _, policy := range testCase.Rejected {
				calls = append(calls, drv.EXPECT().GemMmapOffset(uint32(3), policy).Return(uint64(0), errors.New("ENODEV")))
			}
			calls = append(calls,
				drv.EXPECT().GemMmapOffset(uint32(3), testCase.Accepted).Return(uint64(0x100000), nil),
				drv.EXPECT().Mmap(uint64(0x100000), uint64(4096), kernel.ProtRead|kernel.ProtWrite).Return(data, nil),
			)
			for i := 1; i < len(calls); i++ {
				calls[i].After(calls[i-1])
			}

			mapping, err := backend.Map(bo, gbm.MapRead)
			require.NoError(t, err)
			require.Equal(t, data, mapping.Data())
			require.Equal(t, 1, mapping.References())
		})
	}
}

func TestMap_MmapOffsetExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, integratedSetup)

	drv.EXPECT().GemMmapOffset(uint32(3), gomock.Any()).Return(uint64(0), errors.New("ENODEV")).Times(2)

	bo := testObject(3, TilingNone, fourcc.ModifierLinear, gbm.UseRendering)
	_, err := backend.Map(bo, gbm.MapRead)
	require.Error(t, err)
	require.Equal(t, 0, bo.Mapped.References())
}

func TestMap_SharedMapping(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, integratedSetup)

	bo := testObject(4, TilingNone, fourcc.ModifierLinear, gbm.UseRendering)
	data := make([]byte, 4096)

	drv.EXPECT().GemMmapOffset(uint32(4), kernel.MmapOffsetWB).Return(uint64(0x2000), nil)
	drv.EXPECT().Mmap(uint64(0x2000), uint64(4096), kernel.ProtRead|kernel.ProtWrite).Return(data, nil)

	first, err := backend.Map(bo, gbm.MapReadWrite)
	require.NoError(t, err)
	second, err := backend.Map(bo, gbm.MapRead)
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 2, first.References())
	require.Equal(t, gbm.MapReadWrite, first.Flags())

	require.NoError(t, backend.Unmap(bo, first))
	require.Equal(t, 1, first.References())

	drv.EXPECT().Munmap(data).Return(nil)
	require.NoError(t, backend.Unmap(bo, second))
	require.Equal(t, 0, first.References())
	require.Nil(t, first.Data())

	require.Error(t, backend.Unmap(bo, first))
}

func TestMap_CreatesMissingMapping(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, integratedSetup)

	bo := testObject(4, TilingNone, fourcc.ModifierLinear, gbm.UseRendering)
	bo.Mapped = nil

	drv.EXPECT().GemMmapOffset(uint32(4), kernel.MmapOffsetWB).Return(uint64(0x2000), nil)
	drv.EXPECT().Mmap(uint64(0x2000), uint64(4096), kernel.ProtRead|kernel.ProtWrite).Return(make([]byte, 4096), nil)

	mapping, err := backend.Map(bo, gbm.MapRead)
	require.NoError(t, err)
	require.Same(t, bo.Mapped, mapping)
}

func legacyMapSetup() DeviceSetup {
	setup := integratedSetup
	setup.MmapGTTVersion = 3
	return setup
}

func TestMap_LegacyLinear(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, legacyMapSetup())
	require.False(t, backend.Descriptor().HasMmapOffset)

	data := make([]byte, 4096)
	drv.EXPECT().GemMmap(uint32(5), uint64(4096), kernel.MmapFlags(0)).Return(data, nil)

	mapping, err := backend.Map(testObject(5, TilingNone, fourcc.ModifierLinear, gbm.UseRendering), gbm.MapRead)
	require.NoError(t, err)
	require.Equal(t, data, mapping.Data())
}

func TestMap_LegacyLinearScanout(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, legacyMapSetup())

	drv.EXPECT().GemMmap(uint32(5), uint64(4096), kernel.MmapWC).Return(make([]byte, 4096), nil)

	_, err := backend.Map(testObject(5, TilingNone, fourcc.ModifierLinear, gbm.UseScanout), gbm.MapWrite)
	require.NoError(t, err)
}

func TestMap_LegacyTiled(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, legacyMapSetup())

	drv.EXPECT().GemMmapGTT(uint32(6)).Return(uint64(0x3000), nil)
	drv.EXPECT().Mmap(uint64(0x3000), uint64(4096), kernel.ProtRead).Return(make([]byte, 4096), nil)

	_, err := backend.Map(testObject(6, TilingX, fourcc.ModifierXTiled, gbm.UseRendering), gbm.MapRead)
	require.NoError(t, err)
}

func TestMap_LegacyTiledCannotAddWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, legacyMapSetup())

	drv.EXPECT().GemMmapGTT(uint32(6)).Return(uint64(0x3000), nil).Times(1)
	drv.EXPECT().Mmap(uint64(0x3000), uint64(4096), kernel.ProtRead).Return(make([]byte, 4096), nil).Times(1)

	bo := testObject(6, TilingX, fourcc.ModifierXTiled, gbm.UseRendering)
	mapping, err := backend.Map(bo, gbm.MapRead)
	require.NoError(t, err)

	_, err = backend.Map(bo, gbm.MapReadWrite)
	require.True(t, errors.Is(err, gbm.ErrUnsupportedOperation))
	require.Equal(t, gbm.MapRead, mapping.Flags())
	require.Equal(t, 1, mapping.References())
}

func TestMap_LegacyTiledWithoutAperture(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, legacyMapSetup())

	gomock.InOrder(
		drv.EXPECT().GemMmapGTT(uint32(6)).Return(uint64(0), errors.New("ENODEV")),
		drv.EXPECT().GemMmap(uint32(6), uint64(4096), kernel.MmapFlags(0)).Return(make([]byte, 4096), nil),
	)

	_, err := backend.Map(testObject(6, TilingY, fourcc.ModifierYTiled, gbm.UseRendering), gbm.MapReadWrite)
	require.NoError(t, err)
}

var invalidateTestCases = map[string]struct {
	Tiling      gbm.Tiling
	Flags       gbm.MapFlags
	ReadDomain  kernel.Domain
	WriteDomain kernel.Domain
}{
	"LinearRead": {
		Tiling:     TilingNone,
		Flags:      gbm.MapRead,
		ReadDomain: kernel.DomainCPU,
	},
	"LinearWrite": {
		Tiling:      TilingNone,
		Flags:       gbm.MapReadWrite,
		ReadDomain:  kernel.DomainCPU,
		WriteDomain: kernel.DomainCPU,
	},
	"TiledRead": {
		Tiling:     TilingY,
		Flags:      gbm.MapRead,
		ReadDomain: kernel.DomainGTT,
	},
	"TiledWrite": {
		Tiling:      TilingX,
		Flags:       gbm.MapWrite,
		ReadDomain:  kernel.DomainGTT,
		WriteDomain: kernel.DomainGTT,
	},
}

func TestInvalidate(t *testing.T) {
	for testName, testCase := range invalidateTestCases {
		t.Run(testName, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			drv, backend := readyBackend(t, ctrl, integratedSetup)

			bo := testObject(7, testCase.Tiling, fourcc.ModifierLinear, gbm.UseRendering)
			_, err := bo.Mapped.Acquire(testCase.Flags, func() ([]byte, error) { return make([]byte, 4096), nil })
			require.NoError(t, err)

			drv.EXPECT().GemSetDomain(uint32(7), testCase.ReadDomain, testCase.WriteDomain).Return(nil)
			require.NoError(t, backend.Invalidate(bo, bo.Mapped))
		})
	}
}

func TestInvalidate_SkippedOnCoherentDevice(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, backend := readyBackend(t, ctrl, discreteSetup)

	bo := testObject(7, TilingNone, fourcc.ModifierLinear, gbm.UseRendering)
	require.NoError(t, backend.Invalidate(bo, bo.Mapped))
}

func TestInvalidate_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	drv, backend := readyBackend(t, ctrl, integratedSetup)

	bo := testObject(7, TilingNone, fourcc.ModifierLinear, gbm.UseRendering)
	drv.EXPECT().GemSetDomain(uint32(7), kernel.DomainCPU, kernel.Domain(0)).Return(errors.New("EIO"))
	require.Error(t, backend.Invalidate(bo, bo.Mapped))
}

func stubFlushCacheRange(t *testing.T) *[][]byte {
	var flushed [][]byte
	previous := flushCacheRange
	flushCacheRange = func(data []byte) {
		flushed = append(flushed, data)
	}
	t.Cleanup(func() { flushCacheRange = previous })
	return &flushed
}

func TestFlush(t *testing.T) {
	noLLC := integratedSetup
	noLLC.HasLLC = false

	testCases := map[string]struct {
		Setup   DeviceSetup
		Tiling  gbm.Tiling
		Flushed bool
	}{
		"NoLLCLinear": {Setup: noLLC, Tiling: TilingNone, Flushed: true},
		"NoLLCTiled":  {Setup: noLLC, Tiling: TilingY},
		"LLCLinear":   {Setup: integratedSetup, Tiling: TilingNone},
	}

	for testName, testCase := range testCases {
		t.Run(testName, func(t *testing.T) {
			flushed := stubFlushCacheRange(t)

			ctrl := gomock.NewController(t)
			_, backend := readyBackend(t, ctrl, testCase.Setup)

			bo := testObject(8, testCase.Tiling, fourcc.ModifierLinear, gbm.UseRendering)
			data := make([]byte, 4096)
			_, err := bo.Mapped.Acquire(gbm.MapWrite, func() ([]byte, error) { return data, nil })
			require.NoError(t, err)

			require.NoError(t, backend.Flush(bo, bo.Mapped))
			if testCase.Flushed {
				require.Equal(t, [][]byte{data}, *flushed)
			} else {
				require.Empty(t, *flushed)
			}
		})
	}
}
