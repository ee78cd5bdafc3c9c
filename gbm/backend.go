package gbm

import (
	"io"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vkngwrapper/bufmgr/config"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"golang.org/x/exp/slog"
)

// Backend is the device-specific half of the buffer manager. A backend is created for one open
// DRM device and answers every layout and allocation question for it.
type Backend interface {
	Name() string
	Close() error

	// Combinations returns the table of every (format, layout, usage) the device supports
	Combinations() *Combinations
	IsFeatureSupported(feature Feature) bool
	NumPlanesFromModifier(format fourcc.Format, modifier fourcc.Modifier) int

	// ComputeMetadata resolves the layout of a new buffer. If modifiers is non-nil the layout
	// is chosen from that list, otherwise from the combination table.
	ComputeMetadata(width, height uint32, format fourcc.Format, use UseFlags, modifiers []fourcc.Modifier) (Metadata, error)
	CreateFromMetadata(meta Metadata) (*BufferObject, error)
	Import(data ImportData) (*BufferObject, error)
	Destroy(bo *BufferObject) error

	Map(bo *BufferObject, flags MapFlags) (*Mapping, error)
	Unmap(bo *BufferObject, mapping *Mapping) error
	Invalidate(bo *BufferObject, mapping *Mapping) error
	Flush(bo *BufferObject, mapping *Mapping) error

	BuildStatsString(writer *jwriter.Writer)
}

// CreateFlags exposes options that apply to every backend
type CreateFlags int32

const (
	// CreateExternallySynchronized promises that the caller serializes every call on a backend
	// and the buffers it returns, so no internal locking is done
	CreateExternallySynchronized CreateFlags = 1 << iota
)

type CreateOptions struct {
	Flags  CreateFlags
	Config config.Config
	// PageSize overrides the system page size used to round object sizes
	PageSize int
	// Registerer receives the backend's allocation metrics. Metrics are not collected if nil.
	Registerer prometheus.Registerer
}

// Factory creates a backend for an opened device. The backend takes ownership of device.
type Factory func(logger *slog.Logger, device *os.File, options CreateOptions) (Backend, error)

var (
	registryMutex sync.RWMutex
	registry      = map[string]Factory{}
)

// RegisterBackend makes a factory available to Open for devices whose kernel driver is
// driverName.
func RegisterBackend(driverName string, factory Factory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	registry[driverName] = factory
}

func lookupBackend(driverName string) (Factory, bool) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	factory, ok := registry[driverName]
	return factory, ok
}

// Open opens a DRM device node and creates the backend registered for its kernel driver
func Open(logger *slog.Logger, path string, options CreateOptions) (Backend, error) {
	device, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "could not open %s", path), ErrFatalInit)
	}

	driverName, err := driverName(device)
	if err != nil {
		_ = device.Close()
		return nil, errors.Mark(errors.Wrapf(err, "could not identify the driver of %s", path), ErrFatalInit)
	}

	return create(logger, device, path, driverName, options)
}

// create hands an open device to the factory registered for driverName. The device is closed if
// no factory is registered.
func create(logger *slog.Logger, device *os.File, path, driverName string, options CreateOptions) (Backend, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard))
	}

	factory, ok := lookupBackend(driverName)
	if !ok {
		_ = device.Close()
		return nil, errors.Mark(errors.Newf("no backend is registered for driver %q", driverName), ErrFatalInit)
	}

	logger.Debug("gbm::Open", slog.String("path", path), slog.String("driver", driverName))
	return factory(logger, device, options)
}
