package gbm

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bufmgr/internal/utils"
	"github.com/vkngwrapper/core/v2/common"
)

// UseFlags describes every way a caller intends to use a buffer. Backends pick a layout
// that satisfies all of them at once.
type UseFlags uint32

var useFlagsMapping = common.NewFlagStringMapping[UseFlags]()
var useFlagsNames = utils.NewNameIndex[UseFlags]()

func (f UseFlags) Register(str string) {
	useFlagsMapping.Register(f, str)
	useFlagsNames.Register(f, str)
}
func (f UseFlags) String() string {
	return useFlagsMapping.FlagsToString(f)
}

// Contains reports whether every flag in other is also set in f
func (f UseFlags) Contains(other UseFlags) bool {
	return f&other == other
}

const (
	UseNone UseFlags = 0
	// UseScanout marks a buffer that will be presented by the display engine
	UseScanout UseFlags = 1 << 0
	// UseCursor marks a buffer used as a hardware cursor plane
	UseCursor    UseFlags = 1 << 1
	UseRendering UseFlags = 1 << 2
	// UseLinear forces a linear layout regardless of other usage
	UseLinear           UseFlags = 1 << 4
	UseTexture          UseFlags = 1 << 5
	UseCameraWrite      UseFlags = 1 << 6
	UseCameraRead       UseFlags = 1 << 7
	UseProtected        UseFlags = 1 << 8
	UseSWReadOften      UseFlags = 1 << 9
	UseSWReadRarely     UseFlags = 1 << 10
	UseSWWriteOften     UseFlags = 1 << 11
	UseSWWriteRarely    UseFlags = 1 << 12
	UseHWVideoDecoder   UseFlags = 1 << 13
	UseHWVideoEncoder   UseFlags = 1 << 14
	UseTestAlloc        UseFlags = 1 << 15
	UseFrontRendering   UseFlags = 1 << 16
	UseRenderscript     UseFlags = 1 << 17
	UseGPUDataBuffer    UseFlags = 1 << 18
	UseSensorDirectData UseFlags = 1 << 19
	// UseNonGPUHW marks a buffer consumed by a fixed-function block other than the GPU
	UseNonGPUHW UseFlags = 1 << 20

	UseSWMask = UseSWReadOften | UseSWReadRarely | UseSWWriteOften | UseSWWriteRarely | UseFrontRendering
	// UseRenderMask is every usage a renderable layout can serve
	UseRenderMask = UseLinear | UseRendering | UseRenderscript | UseSWReadOften | UseSWWriteOften |
		UseSWReadRarely | UseSWWriteRarely | UseTexture | UseFrontRendering
	// UseTextureMask is every usage a sample-only layout can serve
	UseTextureMask = UseLinear | UseRenderscript | UseSWReadOften | UseSWWriteOften |
		UseSWReadRarely | UseSWWriteRarely | UseTexture | UseFrontRendering
	UseCameraMask = UseCameraRead | UseCameraWrite
)

func init() {
	UseScanout.Register("Scanout")
	UseCursor.Register("Cursor")
	UseRendering.Register("Rendering")
	UseLinear.Register("Linear")
	UseTexture.Register("Texture")
	UseCameraWrite.Register("CameraWrite")
	UseCameraRead.Register("CameraRead")
	UseProtected.Register("Protected")
	UseSWReadOften.Register("SWReadOften")
	UseSWReadRarely.Register("SWReadRarely")
	UseSWWriteOften.Register("SWWriteOften")
	UseSWWriteRarely.Register("SWWriteRarely")
	UseHWVideoDecoder.Register("HWVideoDecoder")
	UseHWVideoEncoder.Register("HWVideoEncoder")
	UseTestAlloc.Register("TestAlloc")
	UseFrontRendering.Register("FrontRendering")
	UseRenderscript.Register("Renderscript")
	UseGPUDataBuffer.Register("GPUDataBuffer")
	UseSensorDirectData.Register("SensorDirectData")
	UseNonGPUHW.Register("NonGPUHW")
}

// ParseUseFlags reads a comma-separated list of usage names, as printed by UseFlags.String
func ParseUseFlags(str string) (UseFlags, error) {
	var flags UseFlags
	for _, name := range strings.FieldsFunc(str, func(r rune) bool { return r == ',' || r == '|' }) {
		flag, ok := useFlagsNames.Lookup(strings.TrimSpace(name))
		if !ok {
			return 0, errors.Newf("unknown use flag %q, expected one of %s", name, strings.Join(useFlagsNames.Names(), ", "))
		}
		flags |= flag
	}
	return flags, nil
}

// MapFlags describes the CPU access requested when mapping a buffer
type MapFlags uint32

var mapFlagsMapping = common.NewFlagStringMapping[MapFlags]()

func (f MapFlags) Register(str string) {
	mapFlagsMapping.Register(f, str)
}
func (f MapFlags) String() string {
	return mapFlagsMapping.FlagsToString(f)
}

const (
	MapNone      MapFlags = 0
	MapRead      MapFlags = 1 << 0
	MapWrite     MapFlags = 1 << 1
	MapReadWrite = MapRead | MapWrite
)

func init() {
	MapRead.Register("Read")
	MapWrite.Register("Write")
}

// Heap is the memory pool a buffer object was placed in
type Heap int32

var heapMapping = make(map[Heap]string)

func (h Heap) Register(str string) {
	heapMapping[h] = str
}
func (h Heap) String() string {
	return heapMapping[h]
}

const (
	HeapSystem Heap = iota
	HeapDeviceLocal
	// HeapDeviceLocalPreferred prefers device memory but may migrate to system memory, and
	// stays CPU accessible
	HeapDeviceLocalPreferred
	HeapCount = 3
)

func init() {
	HeapSystem.Register("System")
	HeapDeviceLocal.Register("DeviceLocal")
	HeapDeviceLocalPreferred.Register("DeviceLocalPreferred")
}

// Tiling is the kernel tiling mode programmed on a buffer object. Backends register the names of
// the modes they support.
type Tiling uint32

var tilingMapping = make(map[Tiling]string)

func (t Tiling) Register(str string) {
	tilingMapping[t] = str
}
func (t Tiling) String() string {
	return tilingMapping[t]
}

// Feature is an optional device capability a backend may report
type Feature uint64

const (
	// FeatureDiscreteGPU is reported by backends driving a device with its own memory
	FeatureDiscreteGPU Feature = iota + 1
)
