package gbm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func openTempDevice(t *testing.T) (*os.File, string) {
	path := filepath.Join(t.TempDir(), "card0")
	device, err := os.Create(path)
	require.NoError(t, err)
	return device, path
}

func TestCreate_NilLogger(t *testing.T) {
	var received *slog.Logger
	var receivedDevice *os.File
	RegisterBackend("gbm-create-test", func(logger *slog.Logger, device *os.File, options CreateOptions) (Backend, error) {
		received = logger
		receivedDevice = device
		return nil, nil
	})

	device, path := openTempDevice(t)
	defer device.Close()

	_, err := create(nil, device, path, "gbm-create-test", CreateOptions{})
	require.NoError(t, err)
	require.NotNil(t, received)
	require.Same(t, device, receivedDevice)
}

func TestCreate_UnknownDriver(t *testing.T) {
	device, path := openTempDevice(t)

	_, err := create(nil, device, path, "gbm-unregistered", CreateOptions{})
	require.True(t, errors.Is(err, ErrFatalInit))
	require.ErrorContains(t, err, "gbm-unregistered")

	// The device was closed on failure
	require.Error(t, device.Close())
}

func TestOpen_MissingDevice(t *testing.T) {
	_, err := Open(nil, filepath.Join(t.TempDir(), "missing"), CreateOptions{})
	require.True(t, errors.Is(err, ErrFatalInit))
}
