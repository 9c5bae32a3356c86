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
		out        string
		plain      bool
		overwrite  bool
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "so_hardware_sim",
		Short: "Simulate the nominal hardware model and write it to disk",
		Long: "Simulate the current nominal hardware model, including detectors\n" +
			"for the configured telescopes, and write it to disk.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configuration, err := hardware.LoadConfiguration(configFile)
			if err != nil {
				return fmt.Errorf("error reading configuration file: %w", err)
			}
			hardware.SetConfiguration(configuration)
			if configuration.Verbosity > 0 {
				printConfiguration(configuration, logger)
			}

			path := out + hardware.Extension(plain)

			hw := hardware.SimNominal()
			for _, tele := range configuration.Telescopes {
				if configuration.Verbosity > 0 {
					message := fmt.Sprintf("Simulating detectors for %s", tele)
					logger.Info(message, "sim")
				}
				if err := hardware.SimDetectors(hw, tele); err != nil {
					return err
				}
			}

			return hw.Dump(path, plain, overwrite)
		},
	}

	cmd.Flags().StringVar(&out, "out", "hardware", "Output file base name (extension appended by the tool)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Write the file uncompressed instead of gzipped")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Allow overwriting an existing output file")
	cmd.Flags().StringVar(&configFile, "config", "", "Configuration file path")
	return cmd
}

func main() {
	if err := newCommand().Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
