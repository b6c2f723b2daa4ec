package reflow

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/reflow-controller/internal/codec"
	"github.com/thatsimonsguy/reflow-controller/internal/datadog"
	"github.com/thatsimonsguy/reflow-controller/internal/profile"
)

// LoadAll reads every custom slot from storage. A slot that fails to load
// keeps its previous contents and does not stop the others from loading.
func (m *Manager) LoadAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, c := range m.registry.Customs() {
		tag := fmt.Sprintf("slot:%d", c.Slot.Number)
		if err := m.loadSlot(c); err != nil {
			log.Error().Err(err).Int("slot", c.Slot.Number).Msg("Failed to load custom profile")
			datadog.Incr("profile.load", tag, "result:error")
			errs = append(errs, err)
			continue
		}
		datadog.Incr("profile.load", tag, "result:ok")
		log.Debug().Int("slot", c.Slot.Number).Str("name", c.Name()).Msg("Loaded custom profile")
	}
	return errors.Join(errs...)
}

func (m *Manager) loadSlot(c *profile.Custom) error {
	data, err := m.storage.Read(c.Slot.Offset, c.Slot.Length)
	if err != nil {
		return storageErr("read slot %d", err, c.Slot.Number)
	}
	if len(data) != c.Slot.Length {
		return fmt.Errorf("%w: slot %d: short read of %d bytes", ErrStorageFailure, c.Slot.Number, len(data))
	}

	var temps [profile.NumSetpoints]uint16
	copy(temps[:], codec.Decode(data))
	c.Replace(temps)
	return nil
}

// SaveCurrent writes the active profile to its storage slot. It returns
// ErrNotPersistable without touching storage when a built-in is active.
func (m *Manager) SaveCurrent() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.activeCustom()
	if c == nil {
		log.Warn().Int("index", m.active).Msg("Refusing to save built-in profile")
		return fmt.Errorf("save profile %d: %w", m.active, ErrNotPersistable)
	}

	// encode into a separate buffer; the in-memory setpoints stay in host order
	temps := c.Setpoints()
	data := codec.Encode(temps[:])

	tag := fmt.Sprintf("slot:%d", c.Slot.Number)
	if err := m.storage.Write(c.Slot.Offset, data); err != nil {
		datadog.Incr("profile.save", tag, "result:error")
		log.Error().Err(err).Int("slot", c.Slot.Number).Msg("Failed to save custom profile")
		return storageErr("write slot %d", err, c.Slot.Number)
	}

	datadog.Incr("profile.save", tag, "result:ok")
	log.Info().Int("slot", c.Slot.Number).Str("name", c.Name()).Msg("Saved custom profile")
	return nil
}

// activeCustom returns the active profile when it is a custom one. Caller
// holds m.mu.
func (m *Manager) activeCustom() *profile.Custom {
	c, _ := m.registry.Custom(m.registry.SlotAt(m.active))
	return c
}
