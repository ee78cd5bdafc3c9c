package commands

import (
	"fmt"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/spf13/cobra"
	"github.com/vkngwrapper/bufmgr/fourcc"
	"github.com/vkngwrapper/bufmgr/gbm"
)

var combosCmd = &cobra.Command{
	Use:   "combos [format] [use-flags]",
	Short: "Print the supported format combinations",
	Long: `Print every (format, layout, usage) combination the device supports.

With a format and a comma-separated list of use flags, print only the combination a new
buffer would be laid out with.`,
	Example: "  gbmctl combos --chipset 0x9a49\n  gbmctl combos NV12 Scanout,HWVideoDecoder --chipset 0x9a49",
	Args:    cobra.RangeArgs(0, 2),
	RunE:    runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)
}

func runCombos(cmd *cobra.Command, args []string) error {
	backend, err := openBackend()
	if err != nil {
		return err
	}
	defer closeBackend(backend)

	combos := backend.Combinations()
	if len(args) == 0 {
		writer := jwriter.NewWriter()
		combos.PrintJson(&writer)
		fmt.Fprintln(cmd.OutOrStdout(), string(writer.Bytes()))
		return nil
	}

	format, err := fourcc.ParseFormat(args[0])
	if err != nil {
		return err
	}

	var use gbm.UseFlags
	if len(args) > 1 {
		use, err = gbm.ParseUseFlags(args[1])
		if err != nil {
			return err
		}
	}

	combo, ok := combos.Lookup(format, use)
	if !ok {
		return fmt.Errorf("%s does not support usage %s", format, use)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s priority %d\n",
		format, combo.Metadata.Modifier, combo.Metadata.Tiling, combo.Metadata.Priority)
	return nil
}
