package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryLayout(t *testing.T) {
	r := Default()

	require.Equal(t, 4, r.Count())
	assert.Equal(t, "CHIPQUIK TS391LT50", r.Name(0))
	assert.Equal(t, "AMTECH SYNTECH-LF", r.Name(1))
	assert.Equal(t, "CUSTOM #1", r.Name(2))
	assert.Equal(t, "CUSTOM #2", r.Name(3))

	assert.False(t, r.Get(0).Mutable())
	assert.False(t, r.Get(1).Mutable())
	assert.True(t, r.Get(2).Mutable())
	assert.True(t, r.Get(3).Mutable())

	require.Len(t, r.Customs(), 2)
	assert.Equal(t, Slot{Number: 1, Offset: 2, Length: 96}, r.Customs()[0].Slot)
	assert.Equal(t, Slot{Number: 2, Offset: 130, Length: 96}, r.Customs()[1].Slot)
	assert.Equal(t, 226, StorageSize())
}

func TestBuiltinData(t *testing.T) {
	ts := Default().Setpoints(0)
	assert.Equal(t, uint16(50), ts[0])
	assert.Equal(t, uint16(165), ts[33])
	assert.Equal(t, uint16(0), ts[NumSetpoints-1])

	syn := Default().Setpoints(1)
	assert.Equal(t, uint16(245), syn[24])
	for _, v := range syn {
		assert.LessOrEqual(t, v, uint16(SetpointMax))
	}
}

func TestCustomStartsZeroed(t *testing.T) {
	r := Default()
	assert.Equal(t, [NumSetpoints]uint16{}, r.Setpoints(2))
	assert.Equal(t, [NumSetpoints]uint16{}, r.Setpoints(3))
}

func TestSetpointsReturnsCopy(t *testing.T) {
	r := Default()
	c, ok := r.Custom(1)
	require.True(t, ok)

	temps := c.Setpoints()
	temps[0] = 123
	assert.Equal(t, uint16(0), c.Setpoints()[0])

	c.Set(0, 77)
	assert.Equal(t, uint16(77), r.Setpoints(2)[0])
}

func TestSlotMapping(t *testing.T) {
	r := Default()

	tests := []struct {
		slot  int
		index int
		ok    bool
	}{
		{0, 0, false},
		{1, 2, true},
		{2, 3, true},
		{3, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		idx, ok := r.IndexOfSlot(tt.slot)
		assert.Equal(t, tt.ok, ok, "slot %d", tt.slot)
		assert.Equal(t, tt.index, idx, "slot %d", tt.slot)
	}

	assert.Equal(t, 0, r.SlotAt(0))
	assert.Equal(t, 0, r.SlotAt(1))
	assert.Equal(t, 1, r.SlotAt(2))
	assert.Equal(t, 2, r.SlotAt(3))
	assert.Equal(t, 0, r.SlotAt(4))
	assert.Equal(t, 0, r.SlotAt(-1))
}

func TestGetOutOfRange(t *testing.T) {
	r := Default()
	assert.Nil(t, r.Get(-1))
	assert.Nil(t, r.Get(4))
	assert.Equal(t, "", r.Name(4))
	assert.Equal(t, [NumSetpoints]uint16{}, r.Setpoints(-1))
}

func TestNewRegistryRejectsBadLayouts(t *testing.T) {
	c1 := func() *Custom { return NewCustom("C1", Slot{Number: 1, Offset: 2, Length: SlotLength}) }
	c2 := func() *Custom { return NewCustom("C2", Slot{Number: 2, Offset: 130, Length: SlotLength}) }
	b := NewBuiltin("B", [NumSetpoints]uint16{})

	tests := []struct {
		name     string
		profiles []Profile
	}{
		{"empty", nil},
		{"builtin after custom", []Profile{b, c1(), b}},
		{"slots out of order", []Profile{b, c2(), c1()}},
		{"wrong length", []Profile{NewCustom("C", Slot{Number: 1, Offset: 0, Length: 10})}},
		{"overlapping", []Profile{c1(), NewCustom("C2", Slot{Number: 2, Offset: 50, Length: SlotLength})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.profiles...)
			assert.Error(t, err)
		})
	}

	r, err := NewRegistry(b, c1(), c2())
	require.NoError(t, err)
	assert.Equal(t, 3, r.Count())
}
