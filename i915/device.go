package i915

import (
	"fmt"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"github.com/vkngwrapper/bufmgr/i915/internal/kernel"
)

const defaultCursorSize = 64

// MemoryPool is one of the memory regions reported by the kernel. Region is only ever passed back
// to the kernel when requesting placement.
type MemoryPool struct {
	Region kernel.MemoryRegion
	Size   uint64
}

// Descriptor is everything the capability prober learned about the device. It is built once
// before any buffer exists and never changes afterward.
type Descriptor struct {
	ChipID          uint16
	Chipset         string
	GraphicsVersion uint32
	SubVersion      uint32
	IsXeLPD         bool
	Tier            Tier

	// ModifierOrder lists the layouts the device can produce, most preferred first
	ModifierOrder []fourcc.Modifier

	HasLLC          bool
	HasMmapOffset   bool
	HasHWProtection bool

	HasLocalMemory bool
	// ForceLocalMemory is set when the device has local memory and the process configuration asks
	// for buffers to prefer it
	ForceLocalMemory bool
	System           MemoryPool
	Local            MemoryPool

	CursorWidth  uint32
	CursorHeight uint32
}

// GenX10 returns the graphics version scaled by ten, so that 12.5 compares as 125
func (d *Descriptor) GenX10() uint32 {
	return d.GraphicsVersion*10 + d.SubVersion
}

func (d *Descriptor) HasTile4() bool {
	return d.Tier == TierTile4
}

// SupportsFenceTiling reports whether the legacy tiling get/set calls are available. They were
// removed from the kernel for 12.5 and Meteor Lake parts.
func (d *Descriptor) SupportsFenceTiling() bool {
	return d.GenX10() != 125 && d.GraphicsVersion != 14
}

// NeedsDomainSync reports whether CPU access must be bracketed by cache domain transitions
func (d *Descriptor) NeedsDomainSync() bool {
	return d.GenX10() != 125
}

func (d *Descriptor) PrintJson(json *jwriter.ObjectState) {
	json.Name("ChipID").String(fmt.Sprintf("%#06x", d.ChipID))
	json.Name("Chipset").String(d.Chipset)
	json.Name("GraphicsVersion").Int(int(d.GraphicsVersion))
	json.Name("SubVersion").Int(int(d.SubVersion))
	json.Name("IsXeLPD").Bool(d.IsXeLPD)
	json.Name("Tier").String(d.Tier.String())

	modifiers := json.Name("ModifierOrder").Array()
	for _, modifier := range d.ModifierOrder {
		modifiers.String(modifier.String())
	}
	modifiers.End()

	json.Name("HasLLC").Bool(d.HasLLC)
	json.Name("HasMmapOffset").Bool(d.HasMmapOffset)
	json.Name("HasHWProtection").Bool(d.HasHWProtection)
	json.Name("HasLocalMemory").Bool(d.HasLocalMemory)
	json.Name("ForceLocalMemory").Bool(d.ForceLocalMemory)

	pools := json.Name("Pools").Object()
	printPool(&pools, "System", d.System)
	printPool(&pools, "Local", d.Local)
	pools.End()

	json.Name("CursorWidth").Int(int(d.CursorWidth))
	json.Name("CursorHeight").Int(int(d.CursorHeight))
}

func printPool(json *jwriter.ObjectState, name string, pool MemoryPool) {
	obj := json.Name(name).Object()
	obj.Name("Class").Int(int(pool.Region.Class))
	obj.Name("Instance").Int(int(pool.Region.Instance))
	obj.Name("Size").Float64(float64(pool.Size))
	obj.End()
}
