package hardware

import (
	"math"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simTestConfig(t *testing.T, workers int) {
	t.Helper()
	prev := GetConfiguration()
	t.Cleanup(func() { SetConfiguration(prev) })

	config := DefaultConfiguration()
	config.NumWorkers = workers
	SetConfiguration(config)
}

func TestSimDetectorsUnknownTelescope(t *testing.T) {
	simTestConfig(t, 1)
	hw := SimNominal()
	err := SimDetectors(hw, "MAT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAT")
}

func TestSimDetectorsCount(t *testing.T) {
	simTestConfig(t, 2)
	hw := SimNominal()
	require.NoError(t, SimDetectors(hw, "SAT3"))

	// 7 LF wafers x 108 pixels x 2 bands x 2 polarizations.
	assert.Len(t, hw.Detectors, 7*108*2*2)
}

func TestSimDetectorsFields(t *testing.T) {
	simTestConfig(t, 2)
	hw := SimNominal()
	require.NoError(t, SimDetectors(hw, "SAT3"))

	uids := make(map[int32]string)
	for name, det := range hw.Detectors {
		wafer, ok := hw.Wafers[det.Wafer]
		require.True(t, ok, "detector %s references unknown wafer %s", name, det.Wafer)
		assert.Equal(t, wafer.Card, det.Card)
		assert.Contains(t, wafer.Bands, det.Band)
		assert.Contains(t, []string{"A", "B"}, det.Pol)
		assert.GreaterOrEqual(t, det.Pixel, 0)
		assert.Less(t, det.Pixel, wafer.NPixel)
		assert.Greater(t, det.FWHM, 0.0)

		if prev, dup := uids[det.UID]; dup {
			t.Fatalf("duplicate UID %d for %s and %s", det.UID, prev, name)
		}
		uids[det.UID] = name

		// Pointing must stay within the instrument field of view.
		xi, eta, _ := QuatToXiEta(det.Quat)
		r := math.Sqrt(xi*xi+eta*eta) / degree
		assert.Less(t, r, 25.0, "detector %s unreasonably far off axis", name)
	}
}

func TestSimDetectorsPolPairsShareLineOfSight(t *testing.T) {
	simTestConfig(t, 1)
	hw := SimNominal()
	require.NoError(t, SimDetectors(hw, "SAT3"))

	for name, det := range hw.Detectors {
		if det.Pol != "A" {
			continue
		}
		partner := name[:len(name)-1] + "B"
		other, ok := hw.Detectors[partner]
		require.True(t, ok, "missing polarization partner for %s", name)

		xiA, etaA, gmA := QuatToXiEta(det.Quat)
		xiB, etaB, gmB := QuatToXiEta(other.Quat)
		assert.InDelta(t, xiA, xiB, 1e-9)
		assert.InDelta(t, etaA, etaB, 1e-9)

		diff := math.Mod(gmB-gmA+2*math.Pi, math.Pi)
		assert.InDelta(t, math.Pi/2, diff, 1e-9,
			"polarization pair %s not orthogonal", name)
	}
}

func TestSimDetectorsDeterministic(t *testing.T) {
	simTestConfig(t, 4)
	first := SimNominal()
	require.NoError(t, SimDetectors(first, "SAT1"))

	second := SimNominal()
	require.NoError(t, SimDetectors(second, "SAT1"))

	require.Equal(t, first.Detectors, second.Detectors)
}

func TestSimDetectorsAccumulates(t *testing.T) {
	simTestConfig(t, 2)
	hw := SimNominal()
	require.NoError(t, SimDetectors(hw, "SAT3"))
	lf := len(hw.Detectors)
	require.NoError(t, SimDetectors(hw, "SAT1"))

	// SAT1 is MF: 7 wafers x 432 pixels x 2 bands x 2 polarizations.
	assert.Len(t, hw.Detectors, lf+7*432*2*2)
}

func TestDetectorUIDStable(t *testing.T) {
	name := "SAT3_ST3_w35_p000_f030_A"
	uid := detectorUID(name)
	assert.Equal(t, uid, detectorUID(name))
	assert.GreaterOrEqual(t, uid, int32(0))
	assert.NotEqual(t, uid, detectorUID("SAT3_ST3_w35_p000_f030_B"))
}

func TestNominalReadoutAssignment(t *testing.T) {
	var det Detector
	assignReadout(&det, nil, 108, 17, 1)
	assert.Equal(t, 35, det.Channel)
	assert.Equal(t, 0, det.Coax)
	assert.Equal(t, 5, det.Bias)

	// Pixels in the upper half land on the second coax line.
	assignReadout(&det, nil, 108, 60, 0)
	assert.Equal(t, 120, det.Channel)
	assert.Equal(t, 1, det.Coax)
}

func TestReadoutFromMapOverridesNominal(t *testing.T) {
	readout := ReadoutMap{
		{Pixel: 3, Pol: "B"}: {Channel: 1234, Coax: 1, Bias: 7},
	}
	var det Detector
	assignReadout(&det, readout, 108, 3, 1)
	assert.Equal(t, 1234, det.Channel)
	assert.Equal(t, 1, det.Coax)
	assert.Equal(t, 7, det.Bias)

	// Pixels missing from the map fall back to the nominal layout.
	assignReadout(&det, readout, 108, 4, 0)
	assert.Equal(t, 8, det.Channel)
}

func TestSimDetectorsUsesBothCoaxLines(t *testing.T) {
	simTestConfig(t, 2)
	hw := SimNominal()
	require.NoError(t, SimDetectors(hw, "SAT3"))

	perCoax := make(map[int]int)
	for _, det := range hw.Detectors {
		perCoax[det.Coax]++
	}
	require.Len(t, perCoax, 2)
	assert.Equal(t, perCoax[0], perCoax[1])
}

func TestSimDetectorsWorkerPanicReturnsError(t *testing.T) {
	simTestConfig(t, 1)
	hw := SimNominal()

	broken := hw.Wafers["w35"]
	broken.Bands = []string{"SAT_f030", "no_such_band"}
	hw.Wafers["w35"] = broken

	before := runtime.NumGoroutine()
	err := SimDetectors(hw, "SAT3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAT3")

	// The sender and surviving workers must all wind down.
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond)
}
