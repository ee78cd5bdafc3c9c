package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"github.com/vkngwrapper/bufmgr/gbm"
)

type bufferOptions struct {
	use       string
	modifiers []string
}

var layoutOptions bufferOptions

var layoutCmd = &cobra.Command{
	Use:     "layout <format> <width> <height>",
	Short:   "Compute the memory layout of a buffer",
	Example: "  gbmctl layout NV12 1920 1080 --use HWVideoDecoder,Scanout --chipset 0x9a49",
	Args:    cobra.ExactArgs(3),
	RunE:    runLayout,
}

func init() {
	addBufferFlags(layoutCmd, &layoutOptions)
	rootCmd.AddCommand(layoutCmd)
}

func addBufferFlags(cmd *cobra.Command, opts *bufferOptions) {
	cmd.Flags().StringVar(&opts.use, "use", "Rendering", "comma-separated use flags")
	cmd.Flags().StringSliceVar(&opts.modifiers, "modifier", nil, "acceptable format modifiers; the combination table decides if omitted")
}

type bufferRequest struct {
	format    fourcc.Format
	width     uint32
	height    uint32
	use       gbm.UseFlags
	modifiers []fourcc.Modifier
}

func parseBufferRequest(args []string, opts *bufferOptions) (bufferRequest, error) {
	var request bufferRequest

	format, err := fourcc.ParseFormat(args[0])
	if err != nil {
		return request, err
	}
	request.format = format

	width, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return request, errors.Wrapf(err, "invalid width %q", args[1])
	}
	height, err := strconv.ParseUint(args[2], 10, 32)
	if err != nil {
		return request, errors.Wrapf(err, "invalid height %q", args[2])
	}
	request.width, request.height = uint32(width), uint32(height)

	request.use, err = gbm.ParseUseFlags(opts.use)
	if err != nil {
		return request, err
	}

	for _, name := range opts.modifiers {
		modifier, err := fourcc.ParseModifier(strings.TrimSpace(name))
		if err != nil {
			return request, err
		}
		request.modifiers = append(request.modifiers, modifier)
	}

	return request, nil
}

func runLayout(cmd *cobra.Command, args []string) error {
	request, err := parseBufferRequest(args, &layoutOptions)
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

	writer := jwriter.NewWriter()
	obj := writer.Object()
	meta.PrintJson(&obj)
	obj.End()
	fmt.Fprintln(cmd.OutOrStdout(), string(writer.Bytes()))
	return nil
}
