// Package config loads the YAML seed file used by the unitform CLI. Seeds are
// replayed through the form state manager as ordinary edits, so derived ids
// follow the same rules as interactive input.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-unitform/pkg/formstate"
)

// Config is the seed file layout.
type Config struct {
	Unit         UnitSeed     `yaml:"unit"`
	Compartments int          `yaml:"compartments"`
	SensorAreas  int          `yaml:"sensorAreas"`
	Strict       bool         `yaml:"strict"`
	Export       ExportConfig `yaml:"export"`
}

// UnitSeed holds optional root field values. Nil fields are left untouched.
type UnitSeed struct {
	CodeID             *string `yaml:"codeId"`
	HumanReadableID    *string `yaml:"humanReadableId"`
	ModelExternalID    *string `yaml:"modelExternalId"`
	HardwareVersion    *string `yaml:"hardwareVersion"`
	RetailerExternalID *string `yaml:"retailerExternalId"`
	Activated          *bool   `yaml:"activated"`
	HardwareID         *string `yaml:"hardwareId"`
	BluetoothID        *string `yaml:"bluetoothId"`
}

// ExportConfig controls document output.
type ExportConfig struct {
	Escape   bool   `yaml:"escape"`
	Sanitize bool   `yaml:"sanitize"`
	Output   string `yaml:"output"`
}

// Edit is one root field assignment in replay order.
type Edit struct {
	Field string
	Value any
}

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Export: ExportConfig{Output: "."},
	}
}

// Load reads and parses path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(string(data)) == "" {
		return cfg, nil
	}
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks counts and output settings.
func (c Config) Validate() error {
	if c.Compartments < 0 {
		return fmt.Errorf("%w: compartments must be >= 0, got %d", ErrInvalidConfig, c.Compartments)
	}
	if c.SensorAreas < 0 {
		return fmt.Errorf("%w: sensorAreas must be >= 0, got %d", ErrInvalidConfig, c.SensorAreas)
	}
	if strings.TrimSpace(c.Export.Output) == "" {
		return fmt.Errorf("%w: export.output is empty", ErrInvalidConfig)
	}
	return nil
}

// Edits lists the seeded root fields in form order.
func (s UnitSeed) Edits() []Edit {
	var edits []Edit
	add := func(field string, value *string) {
		if value != nil {
			edits = append(edits, Edit{Field: field, Value: *value})
		}
	}
	add(formstate.FieldCodeID, s.CodeID)
	add(formstate.FieldHumanReadableID, s.HumanReadableID)
	add(formstate.FieldModelExternalID, s.ModelExternalID)
	add(formstate.FieldHardwareVersion, s.HardwareVersion)
	add(formstate.FieldRetailerExternalID, s.RetailerExternalID)
	if s.Activated != nil {
		edits = append(edits, Edit{Field: formstate.FieldActivated, Value: *s.Activated})
	}
	add(formstate.FieldHardwareID, s.HardwareID)
	add(formstate.FieldBluetoothID, s.BluetoothID)
	return edits
}

// Apply replays the seeds into m, then resizes the compartment and sensor
// area sequences when a count is configured.
func (c Config) Apply(m *formstate.Manager) error {
	for _, edit := range c.Unit.Edits() {
		if err := m.ApplyFieldEdit(formstate.Root(), edit.Field, edit.Value); err != nil {
			return fmt.Errorf("config: seed %s: %w", edit.Field, err)
		}
	}
	if c.Compartments > 0 {
		for m.CompartmentCount() < c.Compartments {
			m.AddCompartment()
		}
		for m.CompartmentCount() > c.Compartments {
			if err := m.DeleteCompartment(); err != nil {
				return err
			}
		}
	}
	if c.SensorAreas > 0 {
		for m.SensorAreaCount() < c.SensorAreas {
			m.AddSensorArea()
		}
		for m.SensorAreaCount() > c.SensorAreas {
			if err := m.DeleteSensorArea(); err != nil {
				return err
			}
		}
	}
	return nil
}
