//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

func Build() error {
	mg.Deps(BuildSim)
	mg.Deps(BuildTrim)
	mg.Deps(BuildPlot)
	mg.Deps(BuildInfo)
	mg.Deps(BuildExport)
	fmt.Println("Compilation finished")
	return nil
}

func BuildSim() error {
	return buildTool("so_hardware_sim", "./sim")
}

func BuildTrim() error {
	return buildTool("so_hardware_trim", "./trim")
}

func BuildPlot() error {
	return buildTool("so_hardware_plot", "./plot")
}

func BuildInfo() error {
	return buildTool("so_hardware_info", "./info")
}

func BuildExport() error {
	return buildTool("so_hardware_export", "./export")
}

// All tools link against the HDF5 C library through the export writer,
// so every build is a cgo build.
func buildTool(name string, path string) error {
	fmt.Printf("Building %s executable...\n", name)
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	cmd := exec.Command("go", "build", "-o", "./bin/"+name, path)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
