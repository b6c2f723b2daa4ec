package reflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/reflow-controller/internal/codec"
	"github.com/thatsimonsguy/reflow-controller/internal/nvstorage"
	"github.com/thatsimonsguy/reflow-controller/internal/profile"
)

func TestStartupEditSaveRoundTrip(t *testing.T) {
	m, mem, cfg := newTestManager(t)

	require.NoError(t, m.Start())
	assert.Equal(t, uint8(0), storedProfile(t, cfg))
	assert.Equal(t, 0, m.ActiveIndex())

	assert.Equal(t, m.Registry().Count()-2, m.SelectCustomSlot(1))
	require.True(t, m.SetSetpoint(0, 50))
	require.NoError(t, m.SaveCurrent())

	raw, err := mem.Read(2, profile.SlotLength)
	require.NoError(t, err)
	values := codec.Decode(raw)
	require.Len(t, values, profile.NumSetpoints)
	assert.Equal(t, uint16(50), values[0])
	for i, v := range values[1:] {
		assert.Equal(t, uint16(0), v, "setpoint %d", i+1)
	}
}

func TestStartRestoresSelectionAfterReboot(t *testing.T) {
	mem := nvstorage.NewMemory(256)
	cfg := nvstorage.NewMemoryConfig()

	first := New(profile.Default(), mem, cfg)
	require.NoError(t, first.Start())
	_, err := first.Select(3)
	require.NoError(t, err)
	require.True(t, first.SetSetpoint(10, 180))
	require.NoError(t, first.SaveCurrent())

	second := New(profile.Default(), mem, cfg)
	require.NoError(t, second.Start())
	assert.Equal(t, 3, second.ActiveIndex())
	assert.Equal(t, 2, second.CustomSlotNumber())
	assert.Equal(t, uint16(180), second.Setpoint(10))
}

func TestStartContinuesPastLoadFailure(t *testing.T) {
	m, mem, cfg := newTestManager(t)
	require.NoError(t, cfg.Set(nvstorage.KeyProfile, 1))
	mem.ReadErr = func(int) error { return errInjected }

	err := m.Start()
	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.Equal(t, 1, m.ActiveIndex())
	assert.Equal(t, uint8(10), cfg.Snapshot()[nvstorage.KeyBeepDoneLen])
}
