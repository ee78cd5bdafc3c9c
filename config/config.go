package config

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	// PropForceMem set to "local" places buffers in device memory when the device has any
	PropForceMem = "sys.icr.gralloc.force_mem"
	// PropDebug is a comma-separated list of debug switches. "nocompression" disables
	// compressed layouts.
	PropDebug          = "gbm.debug"
	PropScanoutYTiled  = "gbm.i915.scanout_y_tiled"
	PropScanout4Tiled  = "gbm.i915.scanout_4_tiled"
	PropLinearAlign256 = "gbm.linear_align_256"
	PropGPUGroup       = "gbm.gpu_group"
)

// GPUGroup describes the other devices sharing buffers with this one
type GPUGroup uint32

const (
	GPUGroupIntelIGPU GPUGroup = 1 << iota
	GPUGroupIntelDGPU
	GPUGroupVirtioGPUBlob
	GPUGroupVirtioGPUBlobP2P
)

var gpuGroupNames = map[string]GPUGroup{
	"igpu":            GPUGroupIntelIGPU,
	"dgpu":            GPUGroupIntelDGPU,
	"virtio-blob":     GPUGroupVirtioGPUBlob,
	"virtio-blob-p2p": GPUGroupVirtioGPUBlobP2P,
}

func ParseGPUGroup(str string) (GPUGroup, error) {
	var group GPUGroup
	for _, name := range strings.Split(str, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}

		bit, ok := gpuGroupNames[name]
		if !ok {
			return 0, errors.Newf("unknown gpu group member %q", name)
		}
		group |= bit
	}
	return group, nil
}

// Config is the resolved process configuration a backend is created with. The zero Config
// is the default configuration.
type Config struct {
	// ForceMem set to "system" keeps buffers out of device memory. Empty means "local".
	ForceMem        string
	NoCompression   bool
	NoScanoutYTiled bool
	NoScanout4Tiled bool
	LinearAlign256  bool
	GPUGroup        GPUGroup
}

func Default() Config {
	return Config{ForceMem: "local"}
}

// ForceLocalMemory reports whether buffers should prefer device memory over system memory
func (c Config) ForceLocalMemory() bool {
	return c.ForceMem == "" || c.ForceMem == "local"
}

// Load resolves a Config from a property source, starting from Default
func Load(props Properties) (Config, error) {
	cfg := Default()
	if props == nil {
		return cfg, nil
	}

	if value, ok := props.Get(PropForceMem); ok {
		cfg.ForceMem = strings.TrimSpace(value)
	}

	if value, ok := props.Get(PropDebug); ok {
		for _, flag := range strings.Split(value, ",") {
			if strings.TrimSpace(flag) == "nocompression" {
				cfg.NoCompression = true
			}
		}
	}

	scanoutYTiled, err := loadBool(props, PropScanoutYTiled, !cfg.NoScanoutYTiled)
	if err != nil {
		return cfg, err
	}
	cfg.NoScanoutYTiled = !scanoutYTiled

	scanout4Tiled, err := loadBool(props, PropScanout4Tiled, !cfg.NoScanout4Tiled)
	if err != nil {
		return cfg, err
	}
	cfg.NoScanout4Tiled = !scanout4Tiled

	cfg.LinearAlign256, err = loadBool(props, PropLinearAlign256, cfg.LinearAlign256)
	if err != nil {
		return cfg, err
	}

	if value, ok := props.Get(PropGPUGroup); ok {
		cfg.GPUGroup, err = ParseGPUGroup(value)
		if err != nil {
			return cfg, errors.Wrapf(err, "property %s", PropGPUGroup)
		}
	}

	return cfg, nil
}

func loadBool(props Properties, key string, fallback bool) (bool, error) {
	value, ok := props.Get(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback, errors.Wrapf(err, "property %s", key)
	}
	return parsed, nil
}
