package hardware

import (
	"fmt"
	"regexp"
	"strconv"
)

// Selection narrows a hardware model. Telescopes, tubes and wafers name
// hierarchy elements to keep; Match maps detector properties (wafer,
// band, pol, card, pixel) to anchored regular expressions that must all
// match. Empty fields select everything.
type Selection struct {
	Telescopes []string
	Tubes      []string
	Wafers     []string
	Match      map[string]string
}

// Select returns a new hardware model containing only the detectors
// accepted by the selection plus the tables they reference. The
// receiver is not modified.
func (hw *Hardware) Select(sel Selection) (*Hardware, error) {
	keepWafers, err := hw.selectWafers(sel)
	if err != nil {
		return nil, err
	}

	match := make(map[string]*regexp.Regexp, len(sel.Match))
	for prop, expr := range sel.Match {
		re, err := regexp.Compile("^(?:" + expr + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid match expression for %q: %w", prop, err)
		}
		match[prop] = re
	}

	out := newHardware()
	for _, name := range hw.DetectorNames() {
		det := hw.Detectors[name]
		if !keepWafers[det.Wafer] {
			continue
		}
		ok, err := matchDetector(det, match)
		if err != nil {
			return nil, err
		}
		if ok {
			out.Detectors[name] = det
		}
	}

	// With detectors present, keep only wafers that still have one.
	if len(hw.Detectors) > 0 {
		used := make(map[string]bool)
		for _, det := range out.Detectors {
			used[det.Wafer] = true
		}
		keepWafers = used
	}

	hw.copyHierarchy(out, keepWafers)
	return out, nil
}

func (hw *Hardware) selectWafers(sel Selection) (map[string]bool, error) {
	keepTele := toSet(sel.Telescopes)
	keepTube := toSet(sel.Tubes)
	keepWafer := toSet(sel.Wafers)

	for _, name := range sel.Telescopes {
		if _, ok := hw.Telescopes[name]; !ok {
			return nil, fmt.Errorf("unknown telescope %q", name)
		}
	}
	for _, name := range sel.Tubes {
		if _, ok := hw.Tubes[name]; !ok {
			return nil, fmt.Errorf("unknown tube %q", name)
		}
	}
	for _, name := range sel.Wafers {
		if _, ok := hw.Wafers[name]; !ok {
			return nil, fmt.Errorf("unknown wafer %q", name)
		}
	}

	wafers := make(map[string]bool)
	for _, waferName := range sortedKeys(hw.Wafers) {
		wafer := hw.Wafers[waferName]
		tube := hw.Tubes[wafer.Tube]

		if len(keepTele) > 0 && !keepTele[tube.Telescope] {
			continue
		}
		if len(keepTube) > 0 && !keepTube[wafer.Tube] {
			continue
		}
		if len(keepWafer) > 0 && !keepWafer[waferName] {
			continue
		}
		wafers[waferName] = true
	}
	return wafers, nil
}

func matchDetector(det Detector, match map[string]*regexp.Regexp) (bool, error) {
	for prop, re := range match {
		var value string
		switch prop {
		case "wafer":
			value = det.Wafer
		case "band":
			value = det.Band
		case "pol":
			value = det.Pol
		case "card":
			value = det.Card
		case "pixel":
			value = strconv.Itoa(det.Pixel)
		default:
			return false, fmt.Errorf("unknown detector property %q", prop)
		}
		if !re.MatchString(value) {
			return false, nil
		}
	}
	return true, nil
}

// copyHierarchy fills out with the wafers in keep and everything
// reachable from them: tubes, telescopes, cards, crates and the bands
// the wafers observe. Slot lists are filtered down to survivors.
func (hw *Hardware) copyHierarchy(out *Hardware, keep map[string]bool) {
	tubes := make(map[string]bool)
	for waferName := range keep {
		wafer := hw.Wafers[waferName]
		out.Wafers[waferName] = wafer
		tubes[wafer.Tube] = true

		if card, ok := hw.Cards[wafer.Card]; ok {
			out.Cards[wafer.Card] = card
			if crate, ok := hw.Crates[card.Crate]; ok {
				out.Crates[card.Crate] = crate
			}
		}
		for _, bandName := range wafer.Bands {
			if band, ok := hw.Bands[bandName]; ok {
				out.Bands[bandName] = band
			}
		}
	}

	teles := make(map[string]bool)
	for tubeName := range tubes {
		tube, ok := hw.Tubes[tubeName]
		if !ok {
			continue
		}
		tube.WaferSlots = filterNames(tube.WaferSlots, keep)
		out.Tubes[tubeName] = tube
		teles[tube.Telescope] = true
	}

	for teleName := range teles {
		tele, ok := hw.Telescopes[teleName]
		if !ok {
			continue
		}
		tele.TubeSlots = filterNames(tele.TubeSlots, tubes)
		out.Telescopes[teleName] = tele
	}

	for crateName := range out.Crates {
		crate := hw.Crates[crateName]
		crate.CardSlots = filterNames(crate.CardSlots, nameSet(out.Cards))
		out.Crates[crateName] = crate
	}
}

func filterNames(names []string, keep map[string]bool) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if keep[name] {
			out = append(out, name)
		}
	}
	return out
}

func nameSet[V any](table map[string]V) map[string]bool {
	set := make(map[string]bool, len(table))
	for name := range table {
		set[name] = true
	}
	return set
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
