package hardware

import (
	"encoding/json"
	"os"
)

type Configuration struct {
	Telescopes []string `json:"telescopes"`
	NumWorkers int      `json:"num_workers"`
	Verbosity  int      `json:"verbosity"`
	NoDB       bool     `json:"no_db"`
	Host       string   `json:"host"`
	User       string   `json:"user"`
	Passwd     string   `json:"pass"`
	DBName     string   `json:"dbname"`
}

var configuration = DefaultConfiguration()

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

func DefaultConfiguration() Configuration {
	var config Configuration
	config.Telescopes = []string{"LAT", "SAT1", "SAT2", "SAT3"}
	config.NumWorkers = 4
	config.Verbosity = 0
	config.NoDB = true
	config.Host = "db.so-obs.org"
	config.User = "soreader"
	config.Passwd = "readonly"
	config.DBName = "SOHW"
	return config
}

// LoadConfiguration reads a JSON configuration file. Defaults are set
// before unmarshalling so a partial file only overrides what it names.
// An empty filename returns the defaults.
func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}
