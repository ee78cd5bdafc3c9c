package gbm

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/bufmgr/fourcc"
)

// BufferObject is a kernel memory object created or imported by a Backend
type BufferObject struct {
	Meta   Metadata
	Handle uint32
	Heap   Heap
	// Imported is set for objects created from another process's dma-buf
	Imported bool

	// Mapped tracks the CPU mapping of the object
	Mapped *Mapping
}

func (bo *BufferObject) PrintJson(json *jwriter.ObjectState) {
	json.Name("Handle").Int(int(bo.Handle))
	json.Name("Heap").String(bo.Heap.String())
	json.Name("Imported").Bool(bo.Imported)
	if bo.Mapped != nil {
		json.Name("MapReferences").Int(bo.Mapped.References())
	}

	meta := json.Name("Metadata").Object()
	bo.Meta.PrintJson(&meta)
	meta.End()
}

// ImportData describes a buffer shared from another process or device as a set of dma-buf
// file descriptors.
type ImportData struct {
	Width    uint32
	Height   uint32
	Format   fourcc.Format
	Modifier fourcc.Modifier
	UseFlags UseFlags
	// Tiling is used as-is on devices that cannot report an object's tiling mode
	Tiling Tiling

	FDs     [fourcc.MaxPlanes]int
	Strides [fourcc.MaxPlanes]uint32
	Offsets [fourcc.MaxPlanes]uint32
}
