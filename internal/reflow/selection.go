package reflow

import (
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/reflow-controller/internal/datadog"
	"github.com/thatsimonsguy/reflow-controller/internal/nvstorage"
)

func (m *Manager) ActiveIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Select activates profile idx and persists the choice. Indices below zero
// wrap to the last profile and indices past the end wrap to the first, so
// callers can step with active±1. The selection is applied even when the
// config store write fails.
func (m *Manager) Select(idx int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectLocked(idx)
}

func (m *Manager) selectLocked(idx int) (int, error) {
	count := m.registry.Count()
	switch {
	case idx < 0:
		m.active = count - 1
	case idx >= count:
		m.active = 0
	default:
		m.active = idx
	}

	datadog.Gauge("profile.active", float64(m.active))
	log.Debug().Int("requested", idx).Int("index", m.active).Msg("Selected profile")

	if err := m.config.Set(nvstorage.KeyProfile, uint8(m.active)); err != nil {
		log.Error().Err(err).Int("index", m.active).Msg("Failed to persist profile selection")
		return m.active, storageErr("persist selection", err)
	}
	return m.active, nil
}

func (m *Manager) Next() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectLocked(m.active + 1)
}

func (m *Manager) Previous() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectLocked(m.active - 1)
}

// SelectCustomSlot activates the custom profile with the given 1-based slot
// number. Unknown slot numbers leave the selection unchanged. The choice is
// not written to the config store; use Select for that.
func (m *Manager) SelectCustomSlot(slot int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if idx, ok := m.registry.IndexOfSlot(slot); ok {
		m.active = idx
		datadog.Gauge("profile.active", float64(m.active))
	}
	return m.active
}

// CustomSlotNumber returns the 1-based slot of the active profile, or 0 when
// a built-in is active.
func (m *Manager) CustomSlotNumber() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.SlotAt(m.active)
}

// RestoreSelection re-selects the index stored in the config store.
func (m *Manager) RestoreSelection() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, err := m.config.Get(nvstorage.KeyProfile)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read stored profile selection")
		return m.active, storageErr("read selection", err)
	}
	return m.selectLocked(int(stored))
}
