package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/bufmgr/gbm"
)

var (
	allocOptions bufferOptions
	allocMap     bool
)

var allocCmd = &cobra.Command{
	Use:   "alloc <format> <width> <height>",
	Short: "Allocate a buffer on the device and release it again",
	Long: `Allocate a buffer on a real device and print the resulting object.

With --map the buffer is also mapped, cleared through the CPU, flushed and unmapped.`,
	Example: "  gbmctl alloc XRGB8888 1920 1080 --use Scanout,Rendering --map",
	Args:    cobra.ExactArgs(3),
	RunE:    runAlloc,
}

func init() {
	addBufferFlags(allocCmd, &allocOptions)
	allocCmd.Flags().BoolVar(&allocMap, "map", false, "map and clear the buffer through the CPU")
	rootCmd.AddCommand(allocCmd)
}

func runAlloc(cmd *cobra.Command, args []string) error {
	request, err := parseBufferRequest(args, &allocOptions)
	if err != nil {
		return err
	}

	backend, err := openBackend()
	if err != nil {
		return err
	}
	defer closeBackend(backend)

	meta, err := backend.ComputeMetadata(request.width, request.height, request.format, request.use, request.modifiers)
	if err != nil {
		return err
	}

	bo, err := backend.CreateFromMetadata(meta)
	if err != nil {
		return err
	}

	if allocMap {
		err = clearBuffer(backend, bo)
		if err != nil {
			return errors.CombineErrors(err, backend.Destroy(bo))
		}
	}

	writer := jwriter.NewWriter()
	obj := writer.Object()
	bo.PrintJson(&obj)
	obj.End()
	fmt.Fprintln(cmd.OutOrStdout(), string(writer.Bytes()))

	return backend.Destroy(bo)
}

func clearBuffer(backend gbm.Backend, bo *gbm.BufferObject) error {
	mapping, err := backend.Map(bo, gbm.MapReadWrite)
	if err != nil {
		return err
	}

	err = backend.Invalidate(bo, mapping)
	if err != nil {
		return errors.CombineErrors(err, backend.Unmap(bo, mapping))
	}

	clear(mapping.Data())

	err = backend.Flush(bo, mapping)
	if err != nil {
		return errors.CombineErrors(err, backend.Unmap(bo, mapping))
	}

	return backend.Unmap(bo, mapping)
}
