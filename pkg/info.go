package hardware

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// SummaryText renders a terminal summary of the model: per-table counts,
// the band properties, and the detector breakdown per band.
func (hw *Hardware) SummaryText() string {
	var sb strings.Builder

	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Telescopes:\t%d\t%s\n", len(hw.Telescopes), joinKeys(hw.Telescopes, 8))
	fmt.Fprintf(w, "Tubes:\t%d\t%s\n", len(hw.Tubes), joinKeys(hw.Tubes, 8))
	fmt.Fprintf(w, "Wafers:\t%d\t%s\n", len(hw.Wafers), joinKeys(hw.Wafers, 8))
	fmt.Fprintf(w, "Cards:\t%d\t%s\n", len(hw.Cards), joinKeys(hw.Cards, 8))
	fmt.Fprintf(w, "Crates:\t%d\t%s\n", len(hw.Crates), joinKeys(hw.Crates, 8))
	fmt.Fprintf(w, "Bands:\t%d\t%s\n", len(hw.Bands), joinKeys(hw.Bands, 8))
	fmt.Fprintf(w, "Detectors:\t%d\t\n", len(hw.Detectors))
	w.Flush()

	if len(hw.Bands) > 0 {
		perBand := make(map[string]int)
		for _, det := range hw.Detectors {
			perBand[det.Band]++
		}

		sb.WriteString("\n")
		bw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		fmt.Fprintf(bw, "Band\tCenter (GHz)\tLow\tHigh\tFWHM (arcmin)\tDetectors\n")
		for _, name := range sortedKeys(hw.Bands) {
			band := hw.Bands[name]
			fmt.Fprintf(bw, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%d\n",
				name, band.Center, band.Low, band.High, band.FWHM, perBand[name])
		}
		bw.Flush()
	}

	return sb.String()
}

// joinKeys lists up to max sorted keys, eliding the rest.
func joinKeys[V any](table map[string]V, max int) string {
	keys := sortedKeys(table)
	if len(keys) > max {
		return strings.Join(keys[:max], " ") + " ..."
	}
	return strings.Join(keys, " ")
}
