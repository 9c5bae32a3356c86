package hardware

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Extension returns the file extension the tools append to an output
// base name: ".toml" for plain files, ".toml.gz" otherwise.
func Extension(plain bool) string {
	if plain {
		return ".toml"
	}
	return ".toml.gz"
}

// Dump writes the hardware model to path as TOML, gzip-compressed
// unless plain. An existing file is an error unless overwrite is set;
// in that case the file is left untouched.
func (hw *Hardware) Dump(path string, plain bool, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return &ErrFileExists{Filename: path}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return &ErrOpenFile{Filename: path, Err: err}
	}

	var out io.Writer = file
	var gz *gzip.Writer
	if !plain {
		gz = gzip.NewWriter(file)
		out = gz
	}

	encodeErr := toml.NewEncoder(out).Encode(hw)

	var errs []error
	if encodeErr != nil {
		errs = append(errs, fmt.Errorf("error encoding hardware model: %w", encodeErr))
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing gzip stream: %w", err))
		}
	}
	if err := file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Wrote hardware model to %s", path)
		logger.Info(message, "dump")
	}
	return nil
}

// Load reads a hardware file written by Dump. Compression is detected
// from the gzip magic bytes, so both flavors load transparently.
func Load(path string) (*Hardware, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ErrOpenFile{Filename: path, Err: err}
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	var in io.Reader = reader

	magic, err := reader.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, &ErrDecode{Filename: path, Err: err}
		}
		defer gz.Close()
		in = gz
	}

	hw := newHardware()
	if _, err := toml.NewDecoder(in).Decode(hw); err != nil {
		return nil, &ErrDecode{Filename: path, Err: err}
	}
	return hw, nil
}
