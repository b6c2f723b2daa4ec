package reflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/reflow-controller/internal/profile"
)

func TestSetpointBounds(t *testing.T) {
	m, _, _ := newTestManager(t)

	assert.Equal(t, uint16(50), m.Setpoint(0))
	assert.Equal(t, uint16(0), m.Setpoint(profile.NumSetpoints))
	assert.Equal(t, uint16(0), m.Setpoint(1000))
	assert.Equal(t, uint16(0), m.Setpoint(-1))
}

func TestSetSetpointOnCustomProfile(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.SelectCustomSlot(1)

	tests := []struct {
		name  string
		idx   int
		value uint16
		ok    bool
	}{
		{"in range", 5, 200, true},
		{"at max", 5, profile.SetpointMax, true},
		{"above max", 5, profile.SetpointMax + 1, false},
		{"index at length", profile.NumSetpoints, 100, false},
		{"negative index", -1, 100, false},
		{"last index", profile.NumSetpoints - 1, 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := m.ActiveSetpoints()
			ok := m.SetSetpoint(tt.idx, tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.value, m.Setpoint(tt.idx))
			} else {
				assert.Equal(t, before, m.ActiveSetpoints())
			}
		})
	}

	// the value stored at max survives the rejected write above it
	assert.Equal(t, uint16(profile.SetpointMax), m.Setpoint(5))
}

func TestSetSetpointIgnoredOnBuiltins(t *testing.T) {
	m, _, _ := newTestManager(t)

	for idx := 0; idx < 2; idx++ {
		_, err := m.Select(idx)
		require.NoError(t, err)
		before := m.ActiveSetpoints()

		for i := 0; i < profile.NumSetpoints; i++ {
			for _, v := range []uint16{0, 1, 150, profile.SetpointMax} {
				assert.False(t, m.SetSetpoint(i, v))
			}
		}
		assert.Equal(t, before, m.ActiveSetpoints(), "profile %d changed", idx)
	}
}

func TestActiveAccessors(t *testing.T) {
	m, _, _ := newTestManager(t)
	assert.Equal(t, "CHIPQUIK TS391LT50", m.ActiveName())

	m.SelectCustomSlot(2)
	assert.Equal(t, "CUSTOM #2", m.ActiveName())
	assert.Equal(t, [profile.NumSetpoints]uint16{}, m.ActiveSetpoints())
}
