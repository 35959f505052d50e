package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Load reads settings from a TOML file. Keys missing from the file keep their
// default values; unknown keys are rejected. The result is validated.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path) // #nosec G304 - Config path is resolved from the user config dir
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes TOML settings from r on top of Default and validates them.
func Parse(r io.Reader) (Settings, error) {
	settings := Default()

	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Settings{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return Settings{}, fmt.Errorf("%w: line %d, column %d: %w", ErrInvalid, row, col, err)
		}
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Encode writes settings as TOML.
func (s Settings) Encode(w io.Writer) error {
	encoder := toml.NewEncoder(w)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
