package hardware

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotDetectorsWritesPDF(t *testing.T) {
	hw := smallModel(t)
	path := filepath.Join(t.TempDir(), "focalplane.pdf")

	err := PlotDetectors(hw, path, 30, 30, false)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPlotDetectorsWithLabels(t *testing.T) {
	hw := smallModel(t)
	path := filepath.Join(t.TempDir(), "labeled.pdf")

	err := PlotDetectors(hw, path, 30, 30, true)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotDetectorsNoDetectors(t *testing.T) {
	hw := SimNominal()
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := PlotDetectors(hw, path, 30, 30, false)
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
