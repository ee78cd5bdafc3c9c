package gbm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUseFlagsString(t *testing.T) {
	require.Equal(t, "Scanout|Texture", (UseScanout | UseTexture).String())
	require.Equal(t, "None", UseNone.String())
	require.Equal(t, "Scanout", (UseScanout | UseFlags(1<<30)).String())
}

func TestMapFlagsString(t *testing.T) {
	require.Equal(t, "Read|Write", MapReadWrite.String())
	require.Equal(t, "Write", MapWrite.String())
}

func TestParseUseFlags(t *testing.T) {
	flags, err := ParseUseFlags("scanout,HWVideoDecoder|texture")
	require.NoError(t, err)
	require.Equal(t, UseScanout|UseHWVideoDecoder|UseTexture, flags)

	flags, err = ParseUseFlags("")
	require.NoError(t, err)
	require.Equal(t, UseNone, flags)

	_, err = ParseUseFlags("scanout,teleport")
	require.ErrorContains(t, err, "teleport")
}

func TestUseMasks(t *testing.T) {
	require.True(t, UseRenderMask.Contains(UseTextureMask))
	require.False(t, UseTextureMask.Contains(UseRendering))
	require.True(t, UseSWMask.Contains(UseFrontRendering))
	require.Equal(t, UseRenderMask&^UseRendering, UseTextureMask)
}

func TestHeapString(t *testing.T) {
	require.Equal(t, "System", HeapSystem.String())
	require.Equal(t, "DeviceLocalPreferred", HeapDeviceLocalPreferred.String())
}
