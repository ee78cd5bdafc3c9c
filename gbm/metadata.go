package gbm

import (
	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/bufmgr/fourcc"
)

// Metadata is the complete memory layout of a buffer object: the plane geometry the kernel
// object must hold and the tiling/modifier the consumers will interpret it with.
type Metadata struct {
	Width    uint32
	Height   uint32
	Format   fourcc.Format
	UseFlags UseFlags

	Tiling    Tiling
	Modifier  fourcc.Modifier
	NumPlanes int
	Strides   [fourcc.MaxPlanes]uint32
	Offsets   [fourcc.MaxPlanes]uint32
	Sizes     [fourcc.MaxPlanes]uint32
	TotalSize uint64
}

// Validate checks that every plane sits inside the object and that no two planes overlap
func (m *Metadata) Validate() error {
	if m.NumPlanes < 1 || m.NumPlanes > fourcc.MaxPlanes {
		return errors.Newf("buffer has %d planes", m.NumPlanes)
	}

	var end uint64
	for plane := 0; plane < m.NumPlanes; plane++ {
		if m.Strides[plane] == 0 {
			return errors.Newf("plane %d has a zero stride", plane)
		}

		offset := uint64(m.Offsets[plane])
		if offset < end {
			return errors.Newf("plane %d at offset %d overlaps the previous plane ending at %d", plane, offset, end)
		}

		end = offset + uint64(m.Sizes[plane])
	}

	if end > m.TotalSize {
		return errors.Newf("planes end at %d but the object is only %d bytes", end, m.TotalSize)
	}

	return nil
}

func (m *Metadata) PrintJson(json *jwriter.ObjectState) {
	json.Name("Width").Int(int(m.Width))
	json.Name("Height").Int(int(m.Height))
	json.Name("Format").String(m.Format.String())
	json.Name("UseFlags").String(m.UseFlags.String())
	json.Name("Tiling").String(m.Tiling.String())
	json.Name("Modifier").String(m.Modifier.String())
	json.Name("TotalSize").Int(int(m.TotalSize))

	planes := json.Name("Planes").Array()
	defer planes.End()

	for plane := 0; plane < m.NumPlanes; plane++ {
		obj := planes.Object()
		obj.Name("Offset").Int(int(m.Offsets[plane]))
		obj.Name("Stride").Int(int(m.Strides[plane]))
		obj.Name("Size").Int(int(m.Sizes[plane]))
		obj.End()
	}
}
