package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	hardware "github.com/so-obs/hardware_go/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTrimmedHardware(t *testing.T) string {
	t.Helper()
	hw := hardware.SimNominal()
	require.NoError(t, hardware.SimDetectors(hw, "SAT3"))
	trimmed, err := hw.Select(hardware.Selection{Wafers: []string{"w35"}})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "trimmed.toml.gz")
	require.NoError(t, trimmed.Dump(path, false, false))
	return path
}

func runExport(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestExportHelpListsFlags(t *testing.T) {
	cmd := newCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	help := buf.String()
	for _, flag := range []string{"--hardware", "--out", "--overwrite"} {
		assert.Contains(t, help, flag)
	}
}

func TestExportCommand(t *testing.T) {
	input := writeTrimmedHardware(t)
	out := filepath.Join(t.TempDir(), "focalplane.h5")

	require.NoError(t, runExport(t, "--hardware", input, "--out", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}, data[:8])
}

func TestExportRequiresHardwareFlag(t *testing.T) {
	err := runExport(t, "--out", filepath.Join(t.TempDir(), "focalplane.h5"))
	assert.Error(t, err)
}

func TestExportRefusesOverwrite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "focalplane.h5")
	require.NoError(t, os.WriteFile(out, []byte("existing"), 0o644))

	err := runExport(t, "--hardware", "unused.toml.gz", "--out", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// The existing file is untouched.
	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "existing", string(data))
}

func TestExportMissingInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "focalplane.h5")
	err := runExport(t, "--hardware", filepath.Join(t.TempDir(), "nope.toml.gz"), "--out", out)
	assert.Error(t, err)
}
