package profile

import "time"

const (
	NumSetpoints   = 48
	SampleInterval = 10 * time.Second

	// Setpoint limits in °C.
	SetpointMin     = 30
	SetpointMax     = 300
	SetpointDefault = 30

	// SlotLength is the number of storage bytes backing one custom profile.
	SlotLength = 2 * NumSetpoints
)

// Profile is a named sequence of NumSetpoints temperature setpoints.
type Profile interface {
	Name() string
	Setpoints() [NumSetpoints]uint16
	Mutable() bool
}

// Builtin is a compiled-in profile. Its name and values never change.
type Builtin struct {
	name  string
	temps [NumSetpoints]uint16
}

func NewBuiltin(name string, temps [NumSetpoints]uint16) Builtin {
	return Builtin{name: name, temps: temps}
}

func (b Builtin) Name() string                    { return b.name }
func (b Builtin) Setpoints() [NumSetpoints]uint16 { return b.temps }
func (b Builtin) Mutable() bool                   { return false }

// Slot is the region of non-volatile storage that backs a custom profile.
// Number is 1-based.
type Slot struct {
	Number int
	Offset int
	Length int
}

// Custom is a user-editable profile persisted in a storage slot.
type Custom struct {
	name  string
	temps [NumSetpoints]uint16
	Slot  Slot
}

// NewCustom returns a zeroed custom profile backed by slot.
func NewCustom(name string, slot Slot) *Custom {
	return &Custom{name: name, Slot: slot}
}

func (c *Custom) Name() string                    { return c.name }
func (c *Custom) Setpoints() [NumSetpoints]uint16 { return c.temps }
func (c *Custom) Mutable() bool                   { return true }

// Set stores v at index i. Callers are responsible for range and limit checks.
func (c *Custom) Set(i int, v uint16) {
	c.temps[i] = v
}

// Replace overwrites every setpoint.
func (c *Custom) Replace(temps [NumSetpoints]uint16) {
	c.temps = temps
}
