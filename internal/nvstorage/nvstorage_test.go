package nvstorage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReadWrite(t *testing.T) {
	m := NewMemory(16)

	data, err := m.Read(0, 16)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), data)

	require.NoError(t, m.Write(4, []byte{1, 2, 3}))
	data, err = m.Read(3, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3, 0}, data)

	// returned slices must not alias the backing store
	data[0] = 99
	again, _ := m.Read(3, 1)
	assert.Equal(t, []byte{0}, again)
}

func TestMemoryBounds(t *testing.T) {
	m := NewMemory(8)

	_, err := m.Read(6, 4)
	assert.Error(t, err)
	_, err = m.Read(-1, 1)
	assert.Error(t, err)
	assert.Error(t, m.Write(7, []byte{1, 2}))
	assert.Equal(t, make([]byte, 8), m.Bytes())
}

func TestMemoryInjectedFailures(t *testing.T) {
	m := NewMemory(8)
	boom := errors.New("boom")
	m.WriteErr = func(offset int) error {
		if offset == 4 {
			return boom
		}
		return nil
	}
	m.ReadErr = func(offset int) error {
		if offset == 0 {
			return boom
		}
		return nil
	}

	assert.ErrorIs(t, m.Write(4, []byte{1}), boom)
	assert.NoError(t, m.Write(5, []byte{1}))
	_, err := m.Read(0, 1)
	assert.ErrorIs(t, err, boom)
}

func TestMemoryConfigUnsetSentinel(t *testing.T) {
	c := NewMemoryConfig()

	for _, k := range Keys() {
		v, err := c.Get(k)
		require.NoError(t, err)
		assert.Equal(t, Unset, v, k.String())
	}

	require.NoError(t, c.Set(KeyProfile, 3))
	v, err := c.Get(KeyProfile)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), v)
	assert.Equal(t, uint8(3), c.Snapshot()[KeyProfile])
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "profile", KeyProfile.String())
	assert.Equal(t, "bake_setpoint_l", KeyBakeSetpointL.String())
	assert.Equal(t, "key_42", Key(42).String())
}
