package hardware

import "fmt"

// Nominal band properties. Centers and widths in GHz, NET in uK sqrt(s),
// fknee/fmin in mHz, FWHM in arcmin.
type bandProps struct {
	center, low, high float64
	net, fknee, fmin  float64
	alpha             float64
	fwhm              float64
}

var latBands = map[string]bandProps{
	"LAT_f030": {25.7, 21.7, 29.7, 205, 50, 10, 3.5, 7.4},
	"LAT_f040": {38.9, 30.9, 46.9, 240, 50, 10, 3.5, 5.1},
	"LAT_f090": {92.0, 79.0, 105.0, 270, 50, 10, 3.5, 2.2},
	"LAT_f150": {148.0, 130.0, 166.0, 300, 50, 10, 3.5, 1.4},
	"LAT_f230": {227.0, 198.0, 256.0, 1200, 50, 10, 3.5, 1.0},
	"LAT_f290": {285.5, 256.0, 315.0, 2900, 50, 10, 3.5, 0.9},
}

var satBands = map[string]bandProps{
	"SAT_f030": {25.7, 21.7, 29.7, 165, 15, 1, 3.5, 91.0},
	"SAT_f040": {38.9, 30.9, 46.9, 195, 15, 1, 3.5, 63.0},
	"SAT_f090": {92.0, 79.0, 105.0, 230, 15, 1, 3.5, 30.0},
	"SAT_f150": {148.0, 130.0, 166.0, 250, 15, 1, 3.5, 17.0},
	"SAT_f230": {227.0, 198.0, 256.0, 730, 15, 1, 3.5, 11.0},
	"SAT_f290": {285.5, 256.0, 315.0, 1700, 15, 1, 3.5, 9.0},
}

// Wafer geometry per type. Pixel pitch and rhombus gap are in degrees
// on the sky and get rescaled per telescope when detectors are simulated.
type waferProps struct {
	rhombusDim int
	bands      [2]string
}

var waferTypes = map[string]waferProps{
	"LF":  {6, [2]string{"f030", "f040"}},
	"MF":  {12, [2]string{"f090", "f150"}},
	"UHF": {12, [2]string{"f230", "f290"}},
}

// Tube types for the nominal large-aperture telescope, by location.
var latTubeTypes = []string{"UHF", "UHF", "MF", "MF", "MF", "MF", "LF"}

// SimNominal builds the nominal hardware model without detectors:
// telescopes, tubes, wafer slots, readout cards and crates, and bands.
// Detectors are added per telescope with SimDetectors.
func SimNominal() *Hardware {
	hw := newHardware()

	for name, props := range latBands {
		hw.Bands[name] = bandFromProps("LAT", props)
	}
	for name, props := range satBands {
		hw.Bands[name] = bandFromProps("SAT", props)
	}

	// Large aperture: seven tubes of three wafers each.
	latTubes := make([]string, len(latTubeTypes))
	for i, tubeType := range latTubeTypes {
		tube := fmt.Sprintf("LT%d", i)
		latTubes[i] = tube
		hw.Tubes[tube] = Tube{
			Telescope:    "LAT",
			Type:         tubeType,
			WaferSlots:   addWafers(hw, "LAT", tube, tubeType, 3),
			WaferSpacing: 0.7,
			Location:     i,
		}
	}
	hw.Telescopes["LAT"] = Telescope{
		TubeSlots:   latTubes,
		TubeSpacing: 1.8,
		FWHMBand:    "LAT_f150",
	}

	// Small aperture: one tube of seven wafers per telescope.
	satTubeTypes := map[string]string{
		"SAT1": "MF",
		"SAT2": "UHF",
		"SAT3": "LF",
	}
	for i, tele := range []string{"SAT1", "SAT2", "SAT3"} {
		tubeType := satTubeTypes[tele]
		tube := fmt.Sprintf("ST%d", i+1)
		hw.Tubes[tube] = Tube{
			Telescope:    tele,
			Type:         tubeType,
			WaferSlots:   addWafers(hw, tele, tube, tubeType, 7),
			WaferSpacing: 10.5,
			Location:     0,
		}
		hw.Telescopes[tele] = Telescope{
			TubeSlots:   []string{tube},
			TubeSpacing: 0,
			FWHMBand:    fmt.Sprintf("SAT_%s", waferTypes[tubeType].bands[0]),
		}
	}

	return hw
}

func bandFromProps(tele string, p bandProps) Band {
	return Band{
		Telescope: tele,
		Center:    p.center,
		Low:       p.low,
		High:      p.high,
		NET:       p.net,
		FKnee:     p.fknee,
		FMin:      p.fmin,
		Alpha:     p.alpha,
		FWHM:      p.fwhm,
	}
}

// Wafer and card slots are numbered globally in creation order so that
// names stay unique across tubes.
func addWafers(hw *Hardware, tele, tube, tubeType string, n int) []string {
	props := waferTypes[tubeType]
	pitch, gap := waferScale(tele)

	slots := make([]string, n)
	for i := 0; i < n; i++ {
		index := len(hw.Wafers)
		wafer := fmt.Sprintf("w%02d", index)
		card := fmt.Sprintf("c%02d", index)
		slots[i] = wafer

		crate := fmt.Sprintf("crate%d", index/6)
		ct, ok := hw.Crates[crate]
		if !ok {
			ct = Crate{}
		}
		ct.CardSlots = append(ct.CardSlots, card)
		hw.Crates[crate] = ct

		hw.Cards[card] = Card{
			Crate:    crate,
			NBias:    12,
			NCoax:    2,
			NChannel: 2000,
		}

		dim := props.rhombusDim
		hw.Wafers[wafer] = Wafer{
			Type:        tubeType,
			NPixel:      3 * dim * dim,
			RhombusDim:  dim,
			RhombusGap:  gap,
			PixelPitch:  pitch,
			Bands:       scopedBands(tele, props.bands),
			Card:        card,
			Tube:        tube,
			WaferOffset: i,
		}
	}
	return slots
}

// Angular pixel scale on the sky. The small aperture telescopes map the
// same physical wafer onto a much wider field of view.
func waferScale(tele string) (pitch, gap float64) {
	if tele == "LAT" {
		return 0.028, 0.014
	}
	return 0.42, 0.21
}

func scopedBands(tele string, bands [2]string) []string {
	prefix := "SAT"
	if tele == "LAT" {
		prefix = "LAT"
	}
	return []string{
		fmt.Sprintf("%s_%s", prefix, bands[0]),
		fmt.Sprintf("%s_%s", prefix, bands[1]),
	}
}
