package main

import (
	"math"
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
		width        float64
		height       float64
		labels       bool
	)

	cmd := &cobra.Command{
		Use:   "so_hardware_plot",
		Short: "Read a hardware file and plot its detectors",
		Long: "Read a hardware file and plot its detectors to a PDF.\n" +
			"Detectors should be pre-selected with so_hardware_trim first;\n" +
			"plotting a full hardware model produces a very crowded figure.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			hw, err := hardware.Load(hardwareFile)
			if err != nil {
				return err
			}

			if out == "" {
				out = defaultPlotName(hardwareFile)
			}
			if width <= 0 || height <= 0 {
				w, h := autoExtent(hw)
				if width <= 0 {
					width = w
				}
				if height <= 0 {
					height = h
				}
			}

			return hardware.PlotDetectors(hw, out, width, height, labels)
		},
	}

	cmd.Flags().StringVar(&hardwareFile, "hardware", "", "Input hardware file")
	cmd.Flags().StringVar(&out, "out", "", "Output PDF file name (default: hardware file name with .pdf)")
	cmd.Flags().Float64Var(&width, "width", 0, "Plot width in degrees (default: fitted to the detectors)")
	cmd.Flags().Float64Var(&height, "height", 0, "Plot height in degrees (default: fitted to the detectors)")
	cmd.Flags().BoolVar(&labels, "labels", false, "Annotate the plot with pixel and polarization labels")
	cmd.MarkFlagRequired("hardware")
	return cmd
}

func defaultPlotName(hardwareFile string) string {
	base := hardwareFile
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".toml")
	return base + ".pdf"
}

// autoExtent fits the plotted area to the detector positions with a 10%
// margin on each side.
func autoExtent(hw *hardware.Hardware) (width, height float64) {
	const deg = math.Pi / 180
	maxXi, maxEta := 0.0, 0.0
	for _, det := range hw.Detectors {
		xi, eta, _ := hardware.QuatToXiEta(det.Quat)
		maxXi = math.Max(maxXi, math.Abs(xi)/deg)
		maxEta = math.Max(maxEta, math.Abs(eta)/deg)
	}
	if maxXi == 0 {
		maxXi = 1
	}
	if maxEta == 0 {
		maxEta = 1
	}
	return 2.4 * maxXi, 2.4 * maxEta
}

func main() {
	if err := newCommand().Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
