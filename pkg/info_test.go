package hardware

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryTextNominal(t *testing.T) {
	hw := SimNominal()
	text := hw.SummaryText()

	assert.Contains(t, text, "Telescopes:")
	assert.Contains(t, text, "LAT")
	assert.Contains(t, text, "SAT1")
	assert.Contains(t, text, "Bands:")
	assert.Contains(t, text, "LAT_f030")

	// Count column for wafers and cards.
	assert.Contains(t, text, "42")
}

func TestSummaryTextDetectorCounts(t *testing.T) {
	hw := fullSAT3(t)
	text := hw.SummaryText()

	assert.Contains(t, text, fmt.Sprintf("%d", len(hw.Detectors)))
	// Per band: 7 wafers x 108 pixels x 2 pols.
	assert.Contains(t, text, "1512")
	assert.Contains(t, text, "SAT_f040")
}

func TestSummaryTextElidesLongLists(t *testing.T) {
	hw := SimNominal()
	text := hw.SummaryText()

	line := ""
	for _, l := range strings.Split(text, "\n") {
		if strings.HasPrefix(l, "Wafers:") {
			line = l
		}
	}
	require.NotEmpty(t, line)
	assert.Contains(t, line, "...")
	assert.LessOrEqual(t, strings.Count(line, "w"), 9)
}

func TestJoinKeysShort(t *testing.T) {
	table := map[string]int{"b": 1, "a": 2}
	assert.Equal(t, "a b", joinKeys(table, 8))
}
