package main

import (
	"bytes"
	"path/filepath"
	"testing"

	hardware "github.com/so-obs/hardware_go/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNominalHardware(t *testing.T, plain bool) string {
	t.Helper()
	hw := hardware.SimNominal()
	name := "hardware" + hardware.Extension(plain)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, hw.Dump(path, plain, false))
	return path
}

func runInfo(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestInfoSummary(t *testing.T) {
	path := writeNominalHardware(t, false)

	out, err := runInfo(t, path)
	require.NoError(t, err)

	assert.Contains(t, out, path+":")
	assert.Contains(t, out, "Telescopes:")
	assert.Contains(t, out, "SAT3")
	assert.Contains(t, out, "LAT_f030")
}

func TestInfoMultipleFiles(t *testing.T) {
	gzipped := writeNominalHardware(t, false)
	plain := writeNominalHardware(t, true)

	out, err := runInfo(t, gzipped, plain)
	require.NoError(t, err)

	assert.Contains(t, out, gzipped+":")
	assert.Contains(t, out, plain+":")
}

func TestInfoRequiresArgument(t *testing.T) {
	_, err := runInfo(t)
	assert.Error(t, err)
}

func TestInfoMissingFile(t *testing.T) {
	_, err := runInfo(t, filepath.Join(t.TempDir(), "nope.toml.gz"))
	require.Error(t, err)
	var open *hardware.ErrOpenFile
	assert.ErrorAs(t, err, &open)
}
