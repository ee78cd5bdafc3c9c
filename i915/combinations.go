package i915

import (
	"github.com/vkngwrapper/bufmgr/config"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"github.com/vkngwrapper/bufmgr/gbm"
)

var (
	scanoutRenderFormats = []fourcc.Format{
		fourcc.FormatABGR2101010, fourcc.FormatABGR8888, fourcc.FormatARGB2101010,
		fourcc.FormatARGB8888, fourcc.FormatRGB565, fourcc.FormatXBGR2101010,
		fourcc.FormatXBGR8888, fourcc.FormatXRGB2101010, fourcc.FormatXRGB8888,
	}

	renderFormats = []fourcc.Format{fourcc.FormatABGR16161616F}

	textureOnlyFormats = []fourcc.Format{
		fourcc.FormatR8, fourcc.FormatNV12, fourcc.FormatP010,
		fourcc.FormatYVU420, fourcc.FormatYVU420Android, fourcc.FormatYUYV,
	}

	// linearSourceFormats are produced by media and camera pipelines
	linearSourceFormats = []fourcc.Format{
		fourcc.FormatR16, fourcc.FormatNV16, fourcc.FormatYUV420, fourcc.FormatYUV422,
		fourcc.FormatYUV444, fourcc.FormatNV21, fourcc.FormatP010,
	}

	sourceFormats = []fourcc.Format{fourcc.FormatP010Intel, fourcc.FormatNV12YTiledIntel}

	packedYUVFormats = []fourcc.Format{fourcc.FormatYUYV, fourcc.FormatVYUY, fourcc.FormatUYVY, fourcc.FormatYVYU}
)

const (
	// cameraUsage is everything a camera pipeline does with a buffer, including showing it
	cameraUsage = gbm.UseCameraRead | gbm.UseScanout | gbm.UseCameraWrite

	// linearOnlyUsage can only be served by a linear layout
	linearOnlyUsage = gbm.UseRenderscript | gbm.UseLinear | gbm.UseSWReadOften |
		gbm.UseSWWriteOften | gbm.UseSWReadRarely | gbm.UseSWWriteRarely
)

var (
	metadataLinear = gbm.FormatMetadata{Tiling: TilingNone, Priority: 1, Modifier: fourcc.ModifierLinear}
	metadataX      = gbm.FormatMetadata{Tiling: TilingX, Priority: 2, Modifier: fourcc.ModifierXTiled}
	metadataY      = gbm.FormatMetadata{Tiling: TilingY, Priority: 3, Modifier: fourcc.ModifierYTiled}
	metadata4      = gbm.FormatMetadata{Tiling: Tiling4, Priority: 3, Modifier: fourcc.Modifier4Tiled}
)

// buildCombinations lists every format, layout and usage the device supports
func buildCombinations(desc *Descriptor, cfg config.Config) *gbm.Combinations {
	combos := gbm.NewCombinations()

	scanoutAndRender := gbm.UseRenderMask | gbm.UseScanout
	render := gbm.UseRenderMask
	textureOnly := gbm.UseTextureMask

	var hwProtected gbm.UseFlags
	if desc.HasHWProtection {
		hwProtected = gbm.UseProtected | gbm.UseScanout
	}

	combos.AddAll(scanoutRenderFormats, metadataLinear, scanoutAndRender)
	combos.AddAll(renderFormats, metadataLinear, render)
	combos.AddAll(textureOnlyFormats, metadataLinear, textureOnly)

	// Every device can show a linear 32-bit buffer on the cursor plane
	combos.Modify(fourcc.FormatXRGB8888, metadataLinear, gbm.UseCursor|gbm.UseScanout)
	combos.Modify(fourcc.FormatARGB8888, metadataLinear, gbm.UseCursor|gbm.UseScanout)

	combos.Modify(fourcc.FormatNV12, metadataLinear,
		gbm.UseCameraRead|gbm.UseCameraWrite|gbm.UseScanout|gbm.UseHWVideoDecoder|gbm.UseHWVideoEncoder|hwProtected)

	combos.Add(fourcc.FormatBGR888, metadataLinear, gbm.UseSWMask)
	combos.Modify(fourcc.FormatABGR2101010, metadataLinear, gbm.UseSWMask)
	combos.Add(fourcc.FormatRGB888, metadataLinear, gbm.UseSWMask)

	// R8 backs opaque blobs such as JPEG snapshots and codec bitstreams
	combos.Modify(fourcc.FormatR8, metadataLinear,
		gbm.UseCameraRead|gbm.UseCameraWrite|gbm.UseHWVideoDecoder|gbm.UseHWVideoEncoder|
			gbm.UseGPUDataBuffer|gbm.UseSensorDirectData)

	combos.Modify(fourcc.FormatABGR8888, metadataLinear, gbm.UseCursor|gbm.UseScanout)
	combos.Modify(fourcc.FormatNV12, metadataLinear, gbm.UseRendering|gbm.UseTexture|cameraUsage)
	combos.ModifyAll(packedYUVFormats, metadataLinear, gbm.UseTexture|cameraUsage|gbm.UseRendering)
	combos.Modify(fourcc.FormatYVU420Android, metadataLinear, gbm.UseTexture|cameraUsage)

	combos.AddAll(linearSourceFormats, metadataLinear, textureOnly|cameraUsage)

	renderNotLinear := render &^ (linearOnlyUsage | gbm.UseCameraMask)
	scanoutAndRenderNotLinear := renderNotLinear | gbm.UseScanout
	textureVideo := textureOnly &^ (gbm.UseRenderscript | gbm.UseSWWriteOften | gbm.UseSWReadOften | gbm.UseLinear)

	combos.AddAll(renderFormats, metadataX, renderNotLinear)
	combos.AddAll(scanoutRenderFormats, metadataX, scanoutAndRenderNotLinear)
	combos.AddAll(linearSourceFormats, metadataX, textureVideo|cameraUsage)

	if desc.HasTile4() {
		// A 12.5 part sharing buffers with an integrated or virtual GPU only renders X-tiled
		if cfg.GPUGroup&(config.GPUGroupIntelIGPU|config.GPUGroupVirtioGPUBlob) != 0 && desc.GenX10() == 125 {
			return combos
		}

		nv12Usage := gbm.UseTexture | gbm.UseHWVideoDecoder
		p010Usage := nv12Usage
		if !cfg.NoScanout4Tiled {
			nv12Usage |= gbm.UseScanout | hwProtected
			p010Usage = nv12Usage
		}

		combos.Add(fourcc.FormatNV12, metadata4, nv12Usage)
		combos.Add(fourcc.FormatP010, metadata4, p010Usage)
		combos.Add(fourcc.FormatP010Intel, metadata4, p010Usage)
		combos.AddAll(renderFormats, metadata4, renderNotLinear)
		combos.AddAll(scanoutRenderFormats, metadata4, renderNotLinear)
		combos.AddAll(sourceFormats, metadata4, textureOnly|gbm.UseNonGPUHW)
		return combos
	}

	if cfg.GPUGroup&(config.GPUGroupIntelDGPU|config.GPUGroupVirtioGPUBlobP2P) != 0 {
		return combos
	}

	nv12Usage := gbm.UseTexture | gbm.UseHWVideoDecoder
	p010Usage := nv12Usage
	if !cfg.NoScanoutYTiled {
		nv12Usage |= gbm.UseScanout | hwProtected
		p010Usage |= hwProtected
		if desc.GraphicsVersion >= 11 {
			p010Usage |= gbm.UseScanout
		}
	}

	combos.Add(fourcc.FormatNV12, metadataY, nv12Usage)
	combos.Add(fourcc.FormatP010, metadataY, p010Usage)
	combos.Add(fourcc.FormatP010Intel, metadataY, p010Usage)
	combos.AddAll(renderFormats, metadataY, renderNotLinear)
	combos.AddAll(scanoutRenderFormats, metadataY, scanoutAndRenderNotLinear)
	combos.AddAll(sourceFormats, metadataY, textureOnly|gbm.UseNonGPUHW)

	return combos
}
