package kernel

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

const (
	regionsHeaderSize = 16
	regionInfoSize    = 88
)

// DecodeMemoryRegions reads the payload of a memory region query. The standard and preview
// query items share this layout.
func DecodeMemoryRegions(data []byte) ([]RegionInfo, error) {
	if len(data) < regionsHeaderSize {
		return nil, errors.Newf("memory region query returned %d bytes", len(data))
	}

	count := int(binary.NativeEndian.Uint32(data[0:4]))
	if len(data) < regionsHeaderSize+count*regionInfoSize {
		return nil, errors.Newf("memory region query reports %d regions but returned %d bytes", count, len(data))
	}

	regions := make([]RegionInfo, 0, count)
	for i := 0; i < count; i++ {
		entry := data[regionsHeaderSize+i*regionInfoSize:]
		regions = append(regions, RegionInfo{
			Region: MemoryRegion{
				Class:    MemoryClass(binary.NativeEndian.Uint16(entry[0:2])),
				Instance: binary.NativeEndian.Uint16(entry[2:4]),
			},
			ProbedSize:      binary.NativeEndian.Uint64(entry[8:16]),
			UnallocatedSize: binary.NativeEndian.Uint64(entry[16:24]),
		})
	}

	return regions, nil
}

// EncodeMemoryRegions produces a memory region query payload
func EncodeMemoryRegions(regions []RegionInfo) []byte {
	data := make([]byte, regionsHeaderSize+len(regions)*regionInfoSize)
	binary.NativeEndian.PutUint32(data[0:4], uint32(len(regions)))

	for i, region := range regions {
		entry := data[regionsHeaderSize+i*regionInfoSize:]
		binary.NativeEndian.PutUint16(entry[0:2], uint16(region.Region.Class))
		binary.NativeEndian.PutUint16(entry[2:4], region.Region.Instance)
		binary.NativeEndian.PutUint64(entry[8:16], region.ProbedSize)
		binary.NativeEndian.PutUint64(entry[16:24], region.UnallocatedSize)
	}

	return data
}
