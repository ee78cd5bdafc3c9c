package i915

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/bufmgr/config"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"github.com/vkngwrapper/bufmgr/gbm"
	"github.com/vkngwrapper/bufmgr/i915/internal/kernel"
	"github.com/vkngwrapper/bufmgr/memutils"
	"golang.org/x/exp/slog"
)

const DriverName = "i915"

func init() {
	gbm.RegisterBackend(DriverName, func(logger *slog.Logger, device *os.File, options gbm.CreateOptions) (gbm.Backend, error) {
		backend, err := Open(logger, device, options)
		if err != nil {
			return nil, err
		}
		return backend, nil
	})
}

// Backend lays out and allocates buffers on Intel GPUs driven by the i915 kernel driver
type Backend struct {
	useMutex bool
	logger   *slog.Logger
	device   *os.File
	drv      kernel.Driver

	cfg      config.Config
	pageSize uint64
	desc     *Descriptor
	session  Session
	combos   *gbm.Combinations

	stats   *heapStatistics
	metrics *backendMetrics
}

var _ gbm.Backend = &Backend{}

// Open creates a backend for an open i915 device. The backend takes ownership of device and
// closes it in Close.
func Open(logger *slog.Logger, device *os.File, options gbm.CreateOptions) (*Backend, error) {
	backend, err := newBackend(logger, kernel.NewDriver(device.Fd()), options)
	if err != nil {
		_ = device.Close()
		return nil, err
	}

	backend.device = device
	return backend, nil
}

// OfflineDevice describes a device for a backend that computes layouts without hardware
type OfflineDevice struct {
	ChipID int32
	HasLLC bool
	// LocalMemory is the size of the device's own memory, zero for integrated parts
	LocalMemory  uint64
	SystemMemory uint64
}

// OpenOffline creates a backend that answers capability and layout questions for a chipset.
// It cannot create, import, or map buffers.
func OpenOffline(logger *slog.Logger, device OfflineDevice, options gbm.CreateOptions) (*Backend, error) {
	static := kernel.StaticDevice{
		ChipID:         device.ChipID,
		HasLLC:         device.HasLLC,
		MmapGTTVersion: 4,
		CursorWidth:    defaultCursorSize,
		CursorHeight:   defaultCursorSize,
	}

	if device.LocalMemory > 0 {
		static.Regions = []kernel.RegionInfo{
			{
				Region:          kernel.MemoryRegion{Class: kernel.MemoryClassSystem},
				ProbedSize:      device.SystemMemory,
				UnallocatedSize: device.SystemMemory,
			},
			{
				Region:          kernel.MemoryRegion{Class: kernel.MemoryClassDevice},
				ProbedSize:      device.LocalMemory,
				UnallocatedSize: device.LocalMemory,
			},
		}
	}

	return newBackend(logger, kernel.NewStaticDriver(static), options)
}

func newBackend(logger *slog.Logger, drv kernel.Driver, options gbm.CreateOptions) (*Backend, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard))
	}

	pageSize := options.PageSize
	if pageSize == 0 {
		pageSize = os.Getpagesize()
	}
	if err := memutils.CheckPow2(pageSize, "page size"); err != nil {
		return nil, errors.Mark(err, gbm.ErrFatalInit)
	}

	useMutex := options.Flags&gbm.CreateExternallySynchronized == 0
	backend := &Backend{
		useMutex: useMutex,
		logger:   logger,
		drv:      drv,
		cfg:      options.Config,
		pageSize: uint64(pageSize),
		stats:    newHeapStatistics(useMutex),
	}

	var err error
	backend.desc, backend.session, err = probe(logger, drv, options.Config)
	if err != nil {
		return nil, err
	}

	backend.metrics, err = newBackendMetrics(options.Registerer)
	if err != nil {
		return nil, errors.Mark(err, gbm.ErrFatalInit)
	}

	backend.combos = buildCombinations(backend.desc, options.Config)

	logger.Debug("Backend::newBackend",
		slog.String("Chipset", backend.desc.Chipset),
		slog.Int("Combinations", backend.combos.Len()),
	)
	return backend, nil
}

func (b *Backend) Name() string {
	return DriverName
}

func (b *Backend) Close() error {
	b.logger.Debug("Backend::Close")

	if b.device == nil {
		return nil
	}

	err := b.device.Close()
	b.device = nil
	return err
}

// Descriptor returns what was learned about the device when the backend was created
func (b *Backend) Descriptor() *Descriptor {
	return b.desc
}

// Session returns the uAPI choices made when the backend was created
func (b *Backend) Session() Session {
	return b.session
}

func (b *Backend) Combinations() *gbm.Combinations {
	return b.combos
}

func (b *Backend) IsFeatureSupported(feature gbm.Feature) bool {
	switch feature {
	case gbm.FeatureDiscreteGPU:
		return b.desc.HasLocalMemory
	}
	return false
}

// ComputeMetadata picks a layout for a new buffer and computes its plane geometry
func (b *Backend) ComputeMetadata(width, height uint32, format fourcc.Format, use gbm.UseFlags, modifiers []fourcc.Modifier) (gbm.Metadata, error) {
	b.logger.Debug("Backend::ComputeMetadata",
		slog.Int("Width", int(width)),
		slog.Int("Height", int(height)),
		slog.String("Format", format.String()),
		slog.String("UseFlags", use.String()),
		slog.Int("Modifiers", len(modifiers)),
	)

	if width == 0 || height == 0 {
		return gbm.Metadata{}, errors.Mark(errors.Newf("invalid buffer size %dx%d", width, height), gbm.ErrInvalidArgument)
	}

	modifier, err := b.resolveModifier(width, format, use, modifiers)
	if err != nil {
		return gbm.Metadata{}, err
	}

	tiling, err := tilingForModifier(modifier)
	if err != nil {
		return gbm.Metadata{}, err
	}

	if use&gbm.UseScanout != 0 {
		b.logger.Debug("    using tiling mode for scanout buffer",
			slog.String("Tiling", tiling.String()),
			slog.String("Modifier", modifier.String()),
		)
	}

	meta := gbm.Metadata{
		Width:    width,
		Height:   height,
		Format:   format,
		UseFlags: use,
		Tiling:   tiling,
		Modifier: modifier,
	}

	err = b.computeLayout(&meta)
	if err != nil {
		return gbm.Metadata{}, err
	}

	return meta, nil
}

// BuildStatsString writes a JSON document describing the device and the objects created on it
func (b *Backend) BuildStatsString(writer *jwriter.Writer) {
	b.logger.Debug("Backend::BuildStatsString")

	obj := writer.Object()
	defer obj.End()

	obj.Name("Backend").String(DriverName)
	obj.Name("QueryVariant").String(b.session.Variant.String())

	device := obj.Name("Device").Object()
	b.desc.PrintJson(&device)
	device.End()

	stats := obj.Name("Statistics").Object()
	b.stats.PrintJson(&stats)
	stats.End()
}
