package hardware

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PlotDetectors writes a focalplane plot of the model's detectors to
// path (format taken from the extension, normally PDF). Width and
// height are the plotted extent in degrees, centered on the boresight.
// Markers are colored per band; polarization A detectors are drawn as
// circles, B as crosses. With labels, each detector is annotated with
// its pixel and polarization.
func PlotDetectors(hw *Hardware, path string, width, height float64, labels bool) error {
	if len(hw.Detectors) == 0 {
		return fmt.Errorf("hardware model has no detectors to plot")
	}

	p := plot.New()
	p.Title.Text = "Detectors"
	p.X.Label.Text = "Xi (degrees)"
	p.Y.Label.Text = "Eta (degrees)"
	p.X.Min, p.X.Max = -width/2, width/2
	p.Y.Min, p.Y.Max = -height/2, height/2

	type key struct {
		band string
		pol  string
	}
	points := make(map[key]plotter.XYs)
	var labelPoints plotter.XYs
	var labelTexts []string

	for _, name := range hw.DetectorNames() {
		det := hw.Detectors[name]
		xi, eta, _ := QuatToXiEta(det.Quat)
		x, y := xi/degree, eta/degree

		k := key{band: det.Band, pol: det.Pol}
		points[k] = append(points[k], plotter.XY{X: x, Y: y})

		if labels && det.Pol == "A" {
			labelPoints = append(labelPoints, plotter.XY{X: x, Y: y})
			labelTexts = append(labelTexts, fmt.Sprintf("p%03d", det.Pixel))
		}
	}

	bands := sortedKeys(hw.Bands)
	bandColor := make(map[string]int, len(bands))
	for i, band := range bands {
		bandColor[band] = i
	}

	for _, band := range bands {
		for _, pol := range polNames {
			xys, ok := points[key{band: band, pol: pol}]
			if !ok {
				continue
			}
			scatter, err := plotter.NewScatter(xys)
			if err != nil {
				return fmt.Errorf("error building scatter for band %s: %w", band, err)
			}
			scatter.GlyphStyle.Color = plotutil.Color(bandColor[band])
			scatter.GlyphStyle.Radius = vg.Points(1.5)
			if pol == "A" {
				scatter.GlyphStyle.Shape = draw.CircleGlyph{}
			} else {
				scatter.GlyphStyle.Shape = draw.CrossGlyph{}
			}
			p.Add(scatter)
			p.Legend.Add(fmt.Sprintf("%s %s", band, pol), scatter)
		}
	}

	if labels {
		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    labelPoints,
			Labels: labelTexts,
		})
		if err != nil {
			return fmt.Errorf("error building labels: %w", err)
		}
		p.Add(lbl)
	}

	p.Legend.Top = true
	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("error writing plot %q: %w", path, err)
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Wrote detector plot to %s", path)
		logger.Info(message, "plot")
	}
	return nil
}
