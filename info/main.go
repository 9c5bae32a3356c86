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
	cmd := &cobra.Command{
		Use:          "so_hardware_info <hardware file> [<hardware file> ...]",
		Short:        "Read one or more hardware files and print a summary",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				hw, err := hardware.Load(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n%s\n", path, hw.SummaryText())
			}
			return nil
		},
	}
	return cmd
}

func main() {
	if err := newCommand().Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
