package commands

import (
	"fmt"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Print the device capabilities and allocation statistics",
	Args:  cobra.NoArgs,
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	backend, err := openBackend()
	if err != nil {
		return err
	}
	defer closeBackend(backend)

	writer := jwriter.NewWriter()
	backend.BuildStatsString(&writer)
	fmt.Fprintln(cmd.OutOrStdout(), string(writer.Bytes()))
	return nil
}
