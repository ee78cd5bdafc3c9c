package kernel

import (
	"github.com/cockroachdb/errors"
)

// ErrNoDevice is returned by a static driver for every call that needs real hardware
var ErrNoDevice = errors.New("no device behind this driver")

// queryItemInvalid is the length the kernel reports for a query item it does not recognize
const queryItemInvalid int32 = -22

// StaticDevice describes the capabilities a static driver reports
type StaticDevice struct {
	ChipID         int32
	HasLLC         bool
	MmapGTTVersion int32
	// Regions are reported through the standard memory region query. Leave empty to model a
	// kernel without the query.
	Regions      []RegionInfo
	CursorWidth  uint64
	CursorHeight uint64

	// Err, when set, is returned from every call
	Err error
}

type staticDriver struct {
	device StaticDevice
}

// NewStaticDriver answers capability queries from a fixed description and refuses to create or
// map objects. It lets layouts be computed for a chipset without opening a device.
func NewStaticDriver(device StaticDevice) Driver {
	return &staticDriver{device: device}
}

func (d *staticDriver) GetParam(param Param) (int32, error) {
	if d.device.Err != nil {
		return -1, d.device.Err
	}

	switch param {
	case ParamChipsetID:
		return d.device.ChipID, nil
	case ParamHasLLC:
		if d.device.HasLLC {
			return 1, nil
		}
		return 0, nil
	case ParamMmapGTTVersion:
		return d.device.MmapGTTVersion, nil
	}
	return -1, errors.Newf("param %d is not described", param)
}

func (d *staticDriver) GetCap(capability Capability) (uint64, error) {
	if d.device.Err != nil {
		return 0, d.device.Err
	}

	var value uint64
	switch capability {
	case CapCursorWidth:
		value = d.device.CursorWidth
	case CapCursorHeight:
		value = d.device.CursorHeight
	}

	if value == 0 {
		return 0, errors.Newf("capability %#x is not described", uint64(capability))
	}
	return value, nil
}

func (d *staticDriver) Query(queryID QueryID, data []byte) (int32, error) {
	if d.device.Err != nil {
		return 0, d.device.Err
	}

	if queryID != QueryMemoryRegions || len(d.device.Regions) == 0 {
		return queryItemInvalid, nil
	}

	payload := EncodeMemoryRegions(d.device.Regions)
	if len(data) == 0 {
		return int32(len(payload)), nil
	}
	return int32(copy(data, payload)), nil
}

func (d *staticDriver) fail() error {
	if d.device.Err != nil {
		return d.device.Err
	}
	return ErrNoDevice
}

func (d *staticDriver) GemCreate(size uint64) (uint32, error) {
	return 0, d.fail()
}

func (d *staticDriver) GemCreateExt(size uint64, flags CreateExtFlags, chain *ExtensionChain) (uint32, error) {
	return 0, d.fail()
}

func (d *staticDriver) PrelimGemCreateExt(size uint64, chain *ExtensionChain) (uint32, error) {
	return 0, d.fail()
}

func (d *staticDriver) GemSetTiling(handle uint32, tiling uint32, stride uint32) error {
	return d.fail()
}

func (d *staticDriver) GemGetTiling(handle uint32) (uint32, error) {
	return 0, d.fail()
}

func (d *staticDriver) GemClose(handle uint32) error {
	return d.fail()
}

func (d *staticDriver) PrimeFDToHandle(fd int) (uint32, error) {
	return 0, d.fail()
}

func (d *staticDriver) GemMmapOffset(handle uint32, flags MmapOffsetFlags) (uint64, error) {
	return 0, d.fail()
}

func (d *staticDriver) GemMmapGTT(handle uint32) (uint64, error) {
	return 0, d.fail()
}

func (d *staticDriver) GemMmap(handle uint32, size uint64, flags MmapFlags) ([]byte, error) {
	return nil, d.fail()
}

func (d *staticDriver) Mmap(offset uint64, size uint64, prot int) ([]byte, error) {
	return nil, d.fail()
}

func (d *staticDriver) Munmap(data []byte) error {
	return d.fail()
}

func (d *staticDriver) GemSetDomain(handle uint32, readDomains Domain, writeDomain Domain) error {
	return d.fail()
}
