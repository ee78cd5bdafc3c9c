package kernel

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func blockAddress(block []byte) uint64 {
	return uint64(uintptr(unsafe.Pointer(&block[0])))
}

func TestExtensionChain_Empty(t *testing.T) {
	var chain *ExtensionChain
	require.Equal(t, 0, chain.Len())
	require.Nil(t, chain.Extensions())

	encoded := NewExtensionChain().encode()
	require.Equal(t, uint64(0), encoded.head)
	require.Empty(t, encoded.blocks)
}

func TestExtensionChain_MemoryRegions(t *testing.T) {
	chain := NewExtensionChain().Append(MemoryRegionsExtension{
		Regions: []MemoryRegion{
			{Class: MemoryClassDevice, Instance: 0},
			{Class: MemoryClassSystem, Instance: 0},
		},
	})
	require.Equal(t, 1, chain.Len())

	encoded := chain.encode()
	require.Len(t, encoded.blocks, 1)
	require.Len(t, encoded.pinned, 1)

	block := encoded.blocks[0]
	require.Equal(t, blockAddress(block), encoded.head)
	require.Len(t, block, extensionHeaderSize+16)
	require.Equal(t, uint64(0), binary.NativeEndian.Uint64(block[0:8]))
	require.Equal(t, ExtensionMemoryRegions, binary.NativeEndian.Uint32(block[8:12]))
	require.Equal(t, uint32(2), binary.NativeEndian.Uint32(block[extensionHeaderSize+4:]))
	require.Equal(t, blockAddress(encoded.pinned[0]), binary.NativeEndian.Uint64(block[extensionHeaderSize+8:]))

	require.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, encoded.pinned[0])
}

func TestExtensionChain_Linked(t *testing.T) {
	chain := NewExtensionChain(
		MemoryRegionsExtension{Regions: []MemoryRegion{{Class: MemoryClassSystem}}},
		PrelimSetParamExtension{
			Param:   PrelimObjectParam | PrelimParamMemoryRegions,
			Regions: []MemoryRegion{{Class: MemoryClassDevice, Instance: 1}},
		},
	)

	encoded := chain.encode()
	require.Len(t, encoded.blocks, 2)
	require.Equal(t, blockAddress(encoded.blocks[0]), encoded.head)
	require.Equal(t, blockAddress(encoded.blocks[1]), binary.NativeEndian.Uint64(encoded.blocks[0][0:8]))
	require.Equal(t, uint64(0), binary.NativeEndian.Uint64(encoded.blocks[1][0:8]))

	prelim := encoded.blocks[1]
	require.Equal(t, ExtensionPrelimSetParam, binary.NativeEndian.Uint32(prelim[8:12]))
	require.Equal(t, uint32(1), binary.NativeEndian.Uint32(prelim[extensionHeaderSize+4:]))
	require.Equal(t, PrelimObjectParam|PrelimParamMemoryRegions, binary.NativeEndian.Uint64(prelim[extensionHeaderSize+8:]))
}
