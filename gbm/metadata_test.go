package gbm

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/bufmgr/fourcc"
)

func TestMetadataValidate(t *testing.T) {
	meta := Metadata{
		Format:    fourcc.FormatNV12,
		NumPlanes: 2,
		Strides:   [fourcc.MaxPlanes]uint32{128, 128},
		Offsets:   [fourcc.MaxPlanes]uint32{0, 8192},
		Sizes:     [fourcc.MaxPlanes]uint32{8192, 4096},
		TotalSize: 12288,
	}
	require.NoError(t, meta.Validate())

	overlapping := meta
	overlapping.Offsets[1] = 4096
	require.ErrorContains(t, overlapping.Validate(), "overlaps")

	truncated := meta
	truncated.TotalSize = 8192
	require.ErrorContains(t, truncated.Validate(), "only 8192 bytes")

	noPlanes := meta
	noPlanes.NumPlanes = 0
	require.Error(t, noPlanes.Validate())
}
