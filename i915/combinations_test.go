package i915

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/bufmgr/config"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"github.com/vkngwrapper/bufmgr/gbm"
)

func configWith(modify func(cfg *config.Config)) config.Config {
	cfg := config.Default()
	modify(&cfg)
	return cfg
}

var combinationLookupTestCases = map[string]struct {
	ChipID int32
	Config config.Config
	Format fourcc.Format
	Use    gbm.UseFlags

	Found    bool
	Modifier fourcc.Modifier
}{
	"SkylakeRenderScanoutPrefersY": {
		ChipID:   chipSkylake,
		Config:   config.Default(),
		Format:   fourcc.FormatXRGB8888,
		Use:      gbm.UseRendering | gbm.UseScanout,
		Found:    true,
		Modifier: fourcc.ModifierYTiled,
	},
	"SkylakeCursorIsLinear": {
		ChipID:   chipSkylake,
		Config:   config.Default(),
		Format:   fourcc.FormatARGB8888,
		Use:      gbm.UseCursor,
		Found:    true,
		Modifier: fourcc.ModifierLinear,
	},
	"SoftwareAccessIsLinear": {
		ChipID:   chipSkylake,
		Config:   config.Default(),
		Format:   fourcc.FormatXRGB8888,
		Use:      gbm.UseRendering | gbm.UseSWWriteOften,
		Found:    true,
		Modifier: fourcc.ModifierLinear,
	},
	"BGR888IsSoftwareOnly": {
		ChipID: chipSkylake,
		Config: config.Default(),
		Format: fourcc.FormatBGR888,
		Use:    gbm.UseRendering,
		Found:  false,
	},
	"BGR888Software": {
		ChipID:   chipSkylake,
		Config:   config.Default(),
		Format:   fourcc.FormatBGR888,
		Use:      gbm.UseSWReadOften | gbm.UseSWWriteOften,
		Found:    true,
		Modifier: fourcc.ModifierLinear,
	},
	"NV12DecodeScanoutLinearWithoutYScanout": {
		ChipID:   chipTigerlake,
		Config:   configWith(func(cfg *config.Config) { cfg.NoScanoutYTiled = true }),
		Format:   fourcc.FormatNV12,
		Use:      gbm.UseHWVideoDecoder | gbm.UseScanout,
		Found:    true,
		Modifier: fourcc.ModifierLinear,
	},
	"NV12DecodeScanoutIsY": {
		ChipID:   chipTigerlake,
		Config:   config.Default(),
		Format:   fourcc.FormatNV12,
		Use:      gbm.UseHWVideoDecoder | gbm.UseScanout,
		Found:    true,
		Modifier: fourcc.ModifierYTiled,
	},
	"NV12DecodeScanoutZeroConfig": {
		ChipID:   chipTigerlake,
		Config:   config.Config{},
		Format:   fourcc.FormatNV12,
		Use:      gbm.UseHWVideoDecoder | gbm.UseScanout,
		Found:    true,
		Modifier: fourcc.ModifierYTiled,
	},
	"NV12DecodeIsTiled": {
		ChipID:   chipTigerlake,
		Config:   config.Default(),
		Format:   fourcc.FormatNV12,
		Use:      gbm.UseHWVideoDecoder | gbm.UseTexture,
		Found:    true,
		Modifier: fourcc.ModifierYTiled,
	},
	"R8Blob": {
		ChipID:   chipTigerlake,
		Config:   config.Default(),
		Format:   fourcc.FormatR8,
		Use:      gbm.UseGPUDataBuffer | gbm.UseSensorDirectData,
		Found:    true,
		Modifier: fourcc.ModifierLinear,
	},
	"YUYVCamera": {
		ChipID:   chipTigerlake,
		Config:   config.Default(),
		Format:   fourcc.FormatYUYV,
		Use:      gbm.UseCameraWrite | gbm.UseRendering,
		Found:    true,
		Modifier: fourcc.ModifierLinear,
	},
	"LinearSourceVideoIsX": {
		ChipID:   chipTigerlake,
		Config:   config.Default(),
		Format:   fourcc.FormatNV16,
		Use:      gbm.UseTexture | gbm.UseCameraRead,
		Found:    true,
		Modifier: fourcc.ModifierXTiled,
	},
	"IntelSourceFormatsAreY": {
		ChipID:   chipTigerlake,
		Config:   config.Default(),
		Format:   fourcc.FormatNV12YTiledIntel,
		Use:      gbm.UseNonGPUHW,
		Found:    true,
		Modifier: fourcc.ModifierYTiled,
	},
	"DG2RenderIs4Tiled": {
		ChipID:   chipDG2,
		Config:   config.Default(),
		Format:   fourcc.FormatXRGB8888,
		Use:      gbm.UseRendering,
		Found:    true,
		Modifier: fourcc.Modifier4Tiled,
	},
	"DG2ScanoutIsX": {
		ChipID:   chipDG2,
		Config:   config.Default(),
		Format:   fourcc.FormatXRGB8888,
		Use:      gbm.UseRendering | gbm.UseScanout,
		Found:    true,
		Modifier: fourcc.ModifierXTiled,
	},
	"DG2NV12Scanout": {
		ChipID:   chipDG2,
		Config:   config.Default(),
		Format:   fourcc.FormatNV12,
		Use:      gbm.UseHWVideoDecoder | gbm.UseScanout | gbm.UseProtected,
		Found:    true,
		Modifier: fourcc.Modifier4Tiled,
	},
	"DG2NV12ScanoutDisabled": {
		ChipID:   chipDG2,
		Config:   configWith(func(cfg *config.Config) { cfg.NoScanout4Tiled = true }),
		Format:   fourcc.FormatNV12,
		Use:      gbm.UseHWVideoDecoder | gbm.UseScanout | gbm.UseProtected,
		Found:    true,
		Modifier: fourcc.ModifierLinear,
	},
	"DG2WithIGPUOnlyRendersX": {
		ChipID:   chipDG2,
		Config:   configWith(func(cfg *config.Config) { cfg.GPUGroup = config.GPUGroupIntelIGPU }),
		Format:   fourcc.FormatXRGB8888,
		Use:      gbm.UseRendering,
		Found:    true,
		Modifier: fourcc.ModifierXTiled,
	},
	"MeteorlakeIgnoresGPUGroup": {
		ChipID:   chipMeteorlake,
		Config:   configWith(func(cfg *config.Config) { cfg.GPUGroup = config.GPUGroupIntelIGPU }),
		Format:   fourcc.FormatXRGB8888,
		Use:      gbm.UseRendering,
		Found:    true,
		Modifier: fourcc.Modifier4Tiled,
	},
	"TigerlakeWithDGPUOnlyRendersX": {
		ChipID:   chipTigerlake,
		Config:   configWith(func(cfg *config.Config) { cfg.GPUGroup = config.GPUGroupIntelDGPU }),
		Format:   fourcc.FormatXRGB8888,
		Use:      gbm.UseRendering,
		Found:    true,
		Modifier: fourcc.ModifierXTiled,
	},
	"UnknownFormat": {
		ChipID: chipTigerlake,
		Config: config.Default(),
		Format: fourcc.FormatP016,
		Use:    gbm.UseTexture,
		Found:  false,
	},
}

func TestCombinations_Lookup(t *testing.T) {
	for testName, testCase := range combinationLookupTestCases {
		t.Run(testName, func(t *testing.T) {
			backend := offlineBackend(t, testCase.ChipID, testCase.Config)

			combo, found := backend.Combinations().Lookup(testCase.Format, testCase.Use)
			require.Equal(t, testCase.Found, found)
			if found {
				require.Equal(t, testCase.Modifier, combo.Metadata.Modifier)
			}
		})
	}
}

func TestCombinations_P010ScanoutNeedsGen11(t *testing.T) {
	cfg := config.Default()

	skylake := offlineBackend(t, chipSkylake, cfg)
	_, found := skylake.Combinations().Lookup(fourcc.FormatP010Intel, gbm.UseHWVideoDecoder|gbm.UseScanout)
	require.False(t, found)

	icelake := offlineBackend(t, chipIcelake, cfg)
	combo, found := icelake.Combinations().Lookup(fourcc.FormatP010Intel, gbm.UseHWVideoDecoder|gbm.UseScanout)
	require.True(t, found)
	require.Equal(t, fourcc.ModifierYTiled, combo.Metadata.Modifier)
}

func TestCombinations_OneEntryPerLayout(t *testing.T) {
	for _, chipID := range []int32{chipBroadwell, chipSkylake, chipIcelake, chipTigerlake, chipDG2, chipMeteorlake} {
		backend := offlineBackend(t, chipID, config.Default())
		combos := backend.Combinations()

		for _, format := range combos.Formats() {
			seen := map[gbm.FormatMetadata]bool{}
			for _, entry := range combos.Entries(format) {
				key := gbm.FormatMetadata{Tiling: entry.Metadata.Tiling, Modifier: entry.Metadata.Modifier}
				require.False(t, seen[key], "%s has two %s entries", format, entry.Metadata.Modifier)
				seen[key] = true

				tiling, err := tilingForModifier(entry.Metadata.Modifier)
				require.NoError(t, err)
				require.Equal(t, tiling, entry.Metadata.Tiling)
			}
		}
	}
}

func TestCombinations_EveryEntryResolves(t *testing.T) {
	for _, chipID := range []int32{chipSkylake, chipIcelake, chipTigerlake, chipDG2} {
		backend := offlineBackend(t, chipID, config.Default())
		combos := backend.Combinations()

		for _, format := range combos.Formats() {
			for _, entry := range combos.Entries(format) {
				meta, err := backend.ComputeMetadata(256, 256, format, entry.UseFlags, nil)
				require.NoError(t, err, "%s with %s", format, entry.UseFlags)
				require.NotZero(t, meta.TotalSize)
				require.Zero(t, meta.TotalSize%testPageSize)
			}
		}
	}
}

func TestCombinations_LinearCursorWidening(t *testing.T) {
	backend := offlineBackend(t, chipTigerlake, config.Default())

	for _, format := range []fourcc.Format{fourcc.FormatXRGB8888, fourcc.FormatARGB8888, fourcc.FormatABGR8888} {
		entries := backend.Combinations().Entries(format)
		require.NotEmpty(t, entries)
		require.Equal(t, fourcc.ModifierLinear, entries[0].Metadata.Modifier)
		require.True(t, entries[0].UseFlags.Contains(gbm.UseCursor|gbm.UseScanout), format.String())
	}
}
