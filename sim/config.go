package main

import (
	"fmt"
	"strings"

	hardware "github.com/so-obs/hardware_go/pkg"
)

func printConfiguration(config hardware.Configuration, logger hardware.Logger) {
	logger.Info(fmt.Sprintf("Telescopes: %s", strings.Join(config.Telescopes, " ")), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
}
