package reflow

import (
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/reflow-controller/internal/nvstorage"
	"github.com/thatsimonsguy/reflow-controller/internal/profile"
)

const (
	defaultBeepDoneLen = 10 // tenths of a second
	defaultMinFanSpeed = 8
)

// ValidateConfig replaces unset config values with defaults. Running it
// again is a no-op.
func (m *Manager) ValidateConfig() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repair(nvstorage.KeyBeepDoneLen, defaultBeepDoneLen); err != nil {
		return err
	}
	if err := m.repair(nvstorage.KeyMinFanSpeed, defaultMinFanSpeed); err != nil {
		return err
	}

	high, err := m.config.Get(nvstorage.KeyBakeSetpointH)
	if err != nil {
		return storageErr("read %s", err, nvstorage.KeyBakeSetpointH)
	}
	low, err := m.config.Get(nvstorage.KeyBakeSetpointL)
	if err != nil {
		return storageErr("read %s", err, nvstorage.KeyBakeSetpointL)
	}
	if high == nvstorage.Unset || low == nvstorage.Unset {
		if err := m.config.Set(nvstorage.KeyBakeSetpointH, uint8(profile.SetpointDefault>>8)); err != nil {
			return storageErr("write %s", err, nvstorage.KeyBakeSetpointH)
		}
		if err := m.config.Set(nvstorage.KeyBakeSetpointL, uint8(profile.SetpointDefault&0xff)); err != nil {
			return storageErr("write %s", err, nvstorage.KeyBakeSetpointL)
		}
		log.Info().Int("setpoint", profile.SetpointDefault).Msg("Resetting bake setpoint to default")
	}

	return m.repair(nvstorage.KeyProfile, 0)
}

func (m *Manager) repair(key nvstorage.Key, def uint8) error {
	v, err := m.config.Get(key)
	if err != nil {
		return storageErr("read %s", err, key)
	}
	if v != nvstorage.Unset {
		return nil
	}
	if err := m.config.Set(key, def); err != nil {
		return storageErr("write %s", err, key)
	}
	log.Info().Str("key", key.String()).Uint8("value", def).Msg("Config value unset, wrote default")
	return nil
}
