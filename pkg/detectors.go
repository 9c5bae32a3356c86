package hardware

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

const degree = math.Pi / 180

var polNames = [2]string{"A", "B"}

// SimDetectors populates hw.Detectors for every wafer of every tube of
// the given telescope. Wafers are laid out concurrently by a worker
// pool sized from the configuration. Existing detectors from other
// telescopes are kept.
func SimDetectors(hw *Hardware, telescope string) error {
	tele, ok := hw.Telescopes[telescope]
	if !ok {
		return fmt.Errorf("unknown telescope %q", telescope)
	}

	readout, err := loadReadout(hw, telescope)
	if err != nil {
		return err
	}

	var queue []WaferJob
	for _, tubeName := range tele.TubeSlots {
		tube := hw.Tubes[tubeName]
		for _, waferName := range tube.WaferSlots {
			wafer := hw.Wafers[waferName]
			queue = append(queue, WaferJob{
				Telescope:   telescope,
				TubeName:    tubeName,
				Tube:        tube,
				TubeSpacing: tele.TubeSpacing,
				WaferName:   waferName,
				Wafer:       wafer,
				Bands:       hw.Bands,
				Readout:     readout[wafer.Type],
			})
		}
	}

	numWorkers := configuration.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}
	// Jobs buffered to the whole queue, so a dead worker cannot strand
	// the sender.
	jobs := make(chan WaferJob, len(queue))
	results := make(chan WaferResult, len(queue))

	for w := 1; w <= numWorkers; w++ {
		go waferWorker(w, jobs, results)
	}
	sendWafersToWorkers(jobs, queue)

	if hw.Detectors == nil {
		hw.Detectors = make(map[string]Detector)
	}
	for range queue {
		result := <-results
		if result.Error {
			return fmt.Errorf("wafer simulation failed for telescope %q", telescope)
		}
		for name, det := range result.Detectors {
			hw.Detectors[name] = det
		}
	}
	return nil
}

// loadReadout fetches the per-pixel channel assignment from the channel
// mapping database when configured. The nominal computed layout is used
// otherwise, signalled by nil maps.
func loadReadout(hw *Hardware, telescope string) (map[string]ReadoutMap, error) {
	readout := make(map[string]ReadoutMap)
	if configuration.NoDB {
		return readout, nil
	}

	db, err := ConnectToDatabase(configuration.User, configuration.Passwd,
		configuration.Host, configuration.DBName)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	for _, tubeName := range hw.Telescopes[telescope].TubeSlots {
		tubeType := hw.Tubes[tubeName].Type
		if _, ok := readout[tubeType]; ok {
			continue
		}
		m, err := GetReadoutFromDB(db, tubeType)
		if err != nil {
			return nil, err
		}
		readout[tubeType] = m
	}
	return readout, nil
}

func simWafer(job WaferJob) WaferResult {
	wafer := job.Wafer

	tubeXi, tubeEta := tubeOffset(job.TubeSpacing, job.Tube)
	waferXi, waferEta := waferOffset(job.Tube, wafer.WaferOffset)

	dets := make(map[string]Detector, 4*wafer.NPixel)
	for _, bandName := range wafer.Bands {
		band, ok := job.Bands[bandName]
		if !ok {
			panic(fmt.Sprintf("wafer %s references unknown band %s", job.WaferName, bandName))
		}
		for pixel := 0; pixel < wafer.NPixel; pixel++ {
			pixXi, pixEta, rhombusAng := pixelOffset(wafer, pixel)
			xi := tubeXi + waferXi + pixXi
			eta := tubeEta + waferEta + pixEta

			for polIdx, pol := range polNames {
				gamma := rhombusAng + float64(polIdx)*90*degree
				name := detectorName(job.Telescope, job.TubeName, job.WaferName, pixel, bandName, pol)
				det := Detector{
					Wafer: job.WaferName,
					UID:   detectorUID(name),
					Pixel: pixel,
					Band:  bandName,
					Pol:   pol,
					Card:  wafer.Card,
					FWHM:  band.FWHM,
					Quat:  XiEtaToQuat(xi*degree, eta*degree, gamma),
				}
				assignReadout(&det, job.Readout, wafer.NPixel, pixel, polIdx)
				dets[name] = det
			}
		}
	}
	return WaferResult{WaferName: job.WaferName, Detectors: dets}
}

func detectorName(tele, tube, wafer string, pixel int, band, pol string) string {
	short := band
	if i := strings.LastIndex(band, "_"); i >= 0 {
		short = band[i+1:]
	}
	return fmt.Sprintf("%s_%s_%s_p%03d_%s_%s", tele, tube, wafer, pixel, short, pol)
}

// detectorUID derives a stable positive identifier from the detector
// name, so UIDs survive re-simulation.
func detectorUID(name string) int32 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return int32(h.Sum32() & 0x7fffffff)
}

func assignReadout(det *Detector, readout ReadoutMap, nPixel, pixel, polIdx int) {
	if readout != nil {
		if entry, ok := readout[ReadoutKey{Pixel: pixel, Pol: polNames[polIdx]}]; ok {
			det.Channel = entry.Channel
			det.Coax = entry.Coax
			det.Bias = entry.Bias
			return
		}
	}
	// Nominal layout: two channels per pixel, coax split across wafer
	// halves, bias lines cycling through the card.
	det.Channel = pixel*2 + polIdx
	det.Coax = det.Channel / nPixel
	det.Bias = pixel % 12
}

// Tube centers: location 0 is the boresight, locations 1-6 sit on a
// hexagonal ring with the telescope's tube spacing as radius.
func tubeOffset(spacing float64, tube Tube) (xi, eta float64) {
	if tube.Location == 0 {
		return 0, 0
	}
	ang := 60 * float64(tube.Location-1) * degree
	return spacing * math.Cos(ang), spacing * math.Sin(ang)
}

// Wafer centers within a tube: three slots on a ring, or one center
// slot plus six on a ring.
func waferOffset(tube Tube, slot int) (xi, eta float64) {
	n := len(tube.WaferSlots)
	r := tube.WaferSpacing
	switch {
	case n <= 1:
		return 0, 0
	case n == 3:
		ang := (90 + 120*float64(slot)) * degree
		return r * math.Cos(ang), r * math.Sin(ang)
	default:
		if slot == 0 {
			return 0, 0
		}
		ang := 60 * float64(slot-1) * degree
		return r * math.Cos(ang), r * math.Sin(ang)
	}
}

// Pixel centers: three rhombi of dim x dim pixels rotated 120 degrees
// apart. Returns the rhombus orientation for the polarization angle.
func pixelOffset(wafer Wafer, pixel int) (xi, eta, rhombusAng float64) {
	dim := wafer.RhombusDim
	perRhombus := dim * dim
	rhombus := pixel / perRhombus
	index := pixel % perRhombus
	i := index / dim
	j := index % dim

	ang := (90 + 120*float64(rhombus)) * degree

	// Rhombus basis vectors 60 degrees apart, centered on the grid.
	u := float64(i) - float64(dim-1)/2
	v := float64(j) - float64(dim-1)/2
	p := wafer.PixelPitch
	bx := u*math.Cos(-30*degree) + v*math.Cos(30*degree)
	by := u*math.Sin(-30*degree) + v*math.Sin(30*degree)

	// Offset the rhombus center away from the wafer center.
	cr := wafer.RhombusGap + float64(dim)*p/2
	cx := cr * math.Cos(ang)
	cy := cr * math.Sin(ang)

	// Rotate the grid into the rhombus orientation.
	ca, sa := math.Cos(ang+90*degree), math.Sin(ang+90*degree)
	xi = cx + p*(bx*ca-by*sa)
	eta = cy + p*(bx*sa+by*ca)
	return xi, eta, ang
}
