package reflow

import (
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/reflow-controller/internal/profile"
)

// Setpoint returns the active profile's setpoint at step i. Steps outside
// the profile read as 0.
func (m *Manager) Setpoint(i int) uint16 {
	if i < 0 || i >= profile.NumSetpoints {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Setpoints(m.active)[i]
}

// SetSetpoint stores v at step i of the active profile. It is ignored, and
// returns false, when i is out of range, v exceeds SetpointMax, or the
// active profile is a built-in.
func (m *Manager) SetSetpoint(i int, v uint16) bool {
	if i < 0 || i >= profile.NumSetpoints || v > profile.SetpointMax {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.registry.Get(m.active)
	if p == nil || !p.Mutable() {
		return false
	}
	c := m.activeCustom()
	if c == nil {
		return false
	}
	c.Set(i, v)

	log.Debug().Int("slot", c.Slot.Number).Int("step", i).Uint16("value", v).Msg("Setpoint updated")
	return true
}

func (m *Manager) ActiveName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Name(m.active)
}

func (m *Manager) ActiveSetpoints() [profile.NumSetpoints]uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Setpoints(m.active)
}
