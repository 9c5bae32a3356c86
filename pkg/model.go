package hardware

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Hardware is the full instrument model. Every table is keyed by the
// element name; detectors reference the other tables by name.
type Hardware struct {
	Telescopes map[string]Telescope `toml:"telescopes"`
	Tubes      map[string]Tube      `toml:"tubes"`
	Wafers     map[string]Wafer     `toml:"wafers"`
	Cards      map[string]Card      `toml:"cards"`
	Crates     map[string]Crate     `toml:"crates"`
	Bands      map[string]Band      `toml:"bands"`
	Detectors  map[string]Detector  `toml:"detectors"`
}

type Telescope struct {
	TubeSlots   []string `toml:"tube_slots"`
	TubeSpacing float64  `toml:"tube_spacing"` // degrees between tube centers
	FWHMBand    string   `toml:"fwhm_band"`
}

type Tube struct {
	Telescope    string   `toml:"telescope"`
	Type         string   `toml:"type"` // LF / MF / UHF
	WaferSlots   []string `toml:"wafer_slots"`
	WaferSpacing float64  `toml:"wafer_spacing"` // degrees between wafer centers
	Location     int      `toml:"location"`
}

type Wafer struct {
	Type        string   `toml:"type"`
	NPixel      int      `toml:"npixel"`
	RhombusDim  int      `toml:"rhombus_dim"`
	RhombusGap  float64  `toml:"rhombus_gap"` // degrees between rhombi
	PixelPitch  float64  `toml:"pixel_pitch"` // degrees between pixel centers
	Bands       []string `toml:"bands"`
	Card        string   `toml:"card"`
	Tube        string   `toml:"tube"`
	WaferOffset int      `toml:"wafer_offset"` // slot index within the tube
}

type Card struct {
	Crate    string `toml:"crate"`
	NBias    int    `toml:"nbias"`
	NCoax    int    `toml:"ncoax"`
	NChannel int    `toml:"nchannel"`
}

type Crate struct {
	CardSlots []string `toml:"card_slots"`
}

type Band struct {
	Telescope string  `toml:"telescope"`
	Center    float64 `toml:"center"` // GHz
	Low       float64 `toml:"low"`
	High      float64 `toml:"high"`
	NET       float64 `toml:"net"`   // uK sqrt(s)
	FKnee     float64 `toml:"fknee"` // mHz
	FMin      float64 `toml:"fmin"`
	Alpha     float64 `toml:"alpha"`
	FWHM      float64 `toml:"fwhm"` // arcmin
}

type Detector struct {
	Wafer   string  `toml:"wafer"`
	UID     int32   `toml:"uid"`
	Pixel   int     `toml:"pixel"`
	Band    string  `toml:"band"`
	Pol     string  `toml:"pol"` // A or B
	Card    string  `toml:"card"`
	Channel int     `toml:"channel"`
	Coax    int     `toml:"coax"`
	Bias    int     `toml:"bias"`
	FWHM    float64 `toml:"fwhm"`
	Quat    Quat    `toml:"quat"`
}

// sortedKeys gives a stable iteration order over any of the model tables.
func sortedKeys[V any](table map[string]V) []string {
	keys := maps.Keys(table)
	slices.Sort(keys)
	return keys
}

// TelescopeNames returns the telescope names in sorted order.
func (hw *Hardware) TelescopeNames() []string {
	return sortedKeys(hw.Telescopes)
}

// DetectorNames returns the detector names in sorted order.
func (hw *Hardware) DetectorNames() []string {
	return sortedKeys(hw.Detectors)
}

func newHardware() *Hardware {
	return &Hardware{
		Telescopes: make(map[string]Telescope),
		Tubes:      make(map[string]Tube),
		Wafers:     make(map[string]Wafer),
		Cards:      make(map[string]Card),
		Crates:     make(map[string]Crate),
		Bands:      make(map[string]Band),
		Detectors:  make(map[string]Detector),
	}
}
