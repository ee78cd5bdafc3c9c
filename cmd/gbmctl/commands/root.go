package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/bufmgr/config"
	"github.com/vkngwrapper/bufmgr/gbm"
	"github.com/vkngwrapper/bufmgr/i915"
	"golang.org/x/exp/slog"
)

type rootOptions struct {
	devicePath  string
	chipset     string
	localMemory uint64
	configFile  string
	verbose     bool
}

var options rootOptions

var rootCmd = &cobra.Command{
	Use:   "gbmctl",
	Short: "Inspect and exercise the graphics buffer manager",
	Long: `gbmctl answers layout questions for Intel graphics devices.

Against a DRM device node it probes the device and can allocate and map buffers. With
--chipset it computes layouts for any supported PCI device id without the hardware.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&options.devicePath, "device", "/dev/dri/renderD128", "DRM device node to open")
	rootCmd.PersistentFlags().StringVar(&options.chipset, "chipset", "", "PCI device id to model instead of opening a device, e.g. 0x9a49")
	rootCmd.PersistentFlags().Uint64Var(&options.localMemory, "local-memory", 0, "device memory in bytes of the modelled chipset")
	rootCmd.PersistentFlags().StringVar(&options.configFile, "config", "", "yaml or toml property file layered under the environment")
	rootCmd.PersistentFlags().BoolVarP(&options.verbose, "verbose", "v", false, "log backend calls to stderr")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if options.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.HandlerOptions{Level: level}.NewTextHandler(os.Stderr))
}

func loadConfig() (config.Config, error) {
	props := config.Env()
	if options.configFile != "" {
		file, err := config.LoadFile(options.configFile)
		if err != nil {
			return config.Config{}, err
		}
		props = config.Layered(props, file)
	}
	return config.Load(props)
}

// openBackend opens the device named by --device, or models the chipset named by --chipset
func openBackend() (gbm.Backend, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	createOptions := gbm.CreateOptions{Config: cfg, Flags: gbm.CreateExternallySynchronized}
	logger := newLogger()

	if options.chipset == "" {
		return gbm.Open(logger, options.devicePath, createOptions)
	}

	chipID, err := strconv.ParseUint(options.chipset, 0, 16)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid chipset id %q", options.chipset)
	}

	offline := i915.OfflineDevice{ChipID: int32(chipID), HasLLC: options.localMemory == 0}
	if options.localMemory > 0 {
		offline.LocalMemory = options.localMemory
		offline.SystemMemory = options.localMemory
	}
	return i915.OpenOffline(logger, offline, createOptions)
}

func closeBackend(backend gbm.Backend) {
	if err := backend.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close backend: %v\n", err)
	}
}
