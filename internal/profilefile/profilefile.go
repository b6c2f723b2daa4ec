// Package profilefile reads and writes profiles as YAML documents so custom
// profiles can be edited off the oven and loaded back into a slot.
package profilefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thatsimonsguy/reflow-controller/internal/profile"
)

type Document struct {
	Name            string   `yaml:"name"`
	IntervalSeconds int      `yaml:"interval_seconds"`
	Setpoints       []uint16 `yaml:"setpoints,flow"`
}

func FromProfile(p profile.Profile) Document {
	temps := p.Setpoints()
	return Document{
		Name:            p.Name(),
		IntervalSeconds: int(profile.SampleInterval.Seconds()),
		Setpoints:       append([]uint16(nil), temps[:]...),
	}
}

// Values returns the setpoints as a fixed-length profile. Call Validate first.
func (d Document) Values() [profile.NumSetpoints]uint16 {
	var temps [profile.NumSetpoints]uint16
	copy(temps[:], d.Setpoints)
	return temps
}

func (d Document) Validate() error {
	if len(d.Setpoints) != profile.NumSetpoints {
		return fmt.Errorf("profile %q has %d setpoints, want %d", d.Name, len(d.Setpoints), profile.NumSetpoints)
	}
	if want := int(profile.SampleInterval.Seconds()); d.IntervalSeconds != 0 && d.IntervalSeconds != want {
		return fmt.Errorf("profile %q uses a %ds interval, only %ds is supported", d.Name, d.IntervalSeconds, want)
	}
	for i, v := range d.Setpoints {
		if v > profile.SetpointMax {
			return fmt.Errorf("profile %q setpoint %d is %d°C, above the %d°C limit", d.Name, i, v, profile.SetpointMax)
		}
	}
	return nil
}

func Marshal(d Document) ([]byte, error) {
	return yaml.Marshal(d)
}

func Parse(data []byte) (Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read profile file: %w", err)
	}
	return Parse(data)
}

func WriteFile(path string, d Document) error {
	data, err := Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
