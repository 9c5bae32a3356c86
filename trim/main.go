package main

import (
	"fmt"
	"os"
	"strings"

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
		plain        bool
		overwrite    bool
		telescopes   []string
		tubes        []string
		wafers       []string
		match        []string
	)

	cmd := &cobra.Command{
		Use:   "so_hardware_trim",
		Short: "Select a subset of a hardware model and write it to disk",
		Long: "Read a hardware file, select a subset of its detectors, and\n" +
			"write the trimmed model to disk. Selections combine: named\n" +
			"telescopes, tubes and wafers restrict the hierarchy, and --match\n" +
			"filters detectors by property with anchored regular expressions\n" +
			"(for example --match band=.*f090 --match pol=A).",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			matchMap, err := parseMatch(match)
			if err != nil {
				return err
			}

			hw, err := hardware.Load(hardwareFile)
			if err != nil {
				return err
			}

			trimmed, err := hw.Select(hardware.Selection{
				Telescopes: telescopes,
				Tubes:      tubes,
				Wafers:     wafers,
				Match:      matchMap,
			})
			if err != nil {
				return err
			}

			path := out + hardware.Extension(plain)
			return trimmed.Dump(path, plain, overwrite)
		},
	}

	cmd.Flags().StringVar(&hardwareFile, "hardware", "", "Input hardware file")
	cmd.Flags().StringVar(&out, "out", "trimmed", "Output file base name (extension appended by the tool)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Write the file uncompressed instead of gzipped")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Allow overwriting an existing output file")
	cmd.Flags().StringSliceVar(&telescopes, "telescopes", nil, "Telescopes to keep")
	cmd.Flags().StringSliceVar(&tubes, "tubes", nil, "Tubes to keep")
	cmd.Flags().StringSliceVar(&wafers, "wafers", nil, "Wafers to keep")
	cmd.Flags().StringArrayVar(&match, "match", nil, "Detector property filter, property=regex (repeatable)")
	cmd.MarkFlagRequired("hardware")
	return cmd
}

func parseMatch(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	match := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		prop, expr, found := strings.Cut(pair, "=")
		if !found || prop == "" {
			return nil, fmt.Errorf("invalid match %q, expected property=regex", pair)
		}
		match[prop] = expr
	}
	return match, nil
}

func main() {
	if err := newCommand().Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
