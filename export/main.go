package main

import (
	"fmt"
	"os"

	hardware "github.com/so-obs/hardware_go/pkg"
	"github.com/spf13/cobra"
)

var logger hardware.Logger

func init() {
	logger = hardware.NewLogger()
	hardware.SetLogger(logger)
}

func newCommand() *cobra.Command {
	var (
		hardwareFile string
		out          string
		overwrite    bool
	)

	cmd := &cobra.Command{
		Use:   "so_hardware_export",
		Short: "Export the focalplane of a hardware file to HDF5",
		Long: "Read a hardware file and export its detector tables and pointing\n" +
			"quaternions to an HDF5 file for downstream analysis tools.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !overwrite {
				if _, err := os.Stat(out); err == nil {
					return fmt.Errorf("file %q already exists, not overwriting", out)
				}
			}

			hw, err := hardware.Load(hardwareFile)
			if err != nil {
				return err
			}
			return exportHardware(hw, out)
		},
	}

	cmd.Flags().StringVar(&hardwareFile, "hardware", "", "Input hardware file")
	cmd.Flags().StringVar(&out, "out", "focalplane.h5", "Output HDF5 file name")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Allow overwriting an existing output file")
	cmd.MarkFlagRequired("hardware")
	return cmd
}

// exportHardware drives the HDF5 writer. The low-level helpers panic on
// HDF5 errors, so failures are recovered into a regular error here.
func exportHardware(hw *hardware.Hardware, out string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("export failed: %v", r)
		}
	}()

	writer := hardware.NewWriter(out)
	writer.WriteHardware(hw)
	return writer.Close()
}

func main() {
	if err := newCommand().Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
