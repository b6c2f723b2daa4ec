package nvstorage

import (
	"fmt"
	"sync"
)

// Storage is byte-addressable non-volatile memory.
type Storage interface {
	Read(offset, length int) ([]byte, error)
	Write(offset int, data []byte) error
}

// ConfigStore holds single-byte configuration values. Keys that were never
// written read back as Unset.
type ConfigStore interface {
	Get(key Key) (uint8, error)
	Set(key Key, value uint8) error
}

const Unset uint8 = 255

type Key uint8

const (
	KeyBeepDoneLen Key = iota
	KeyMinFanSpeed
	KeyBakeSetpointH
	KeyBakeSetpointL
	KeyProfile
)

func (k Key) String() string {
	switch k {
	case KeyBeepDoneLen:
		return "beep_done_len"
	case KeyMinFanSpeed:
		return "min_fan_speed"
	case KeyBakeSetpointH:
		return "bake_setpoint_h"
	case KeyBakeSetpointL:
		return "bake_setpoint_l"
	case KeyProfile:
		return "profile"
	default:
		return fmt.Sprintf("key_%d", uint8(k))
	}
}

// Keys lists every key in the order they are laid out in the config area.
func Keys() []Key {
	return []Key{KeyBeepDoneLen, KeyMinFanSpeed, KeyBakeSetpointH, KeyBakeSetpointL, KeyProfile}
}

// CheckBounds reports whether [offset, offset+length) fits in size bytes.
func CheckBounds(offset, length, size int) error {
	if offset < 0 || length < 0 || offset+length > size {
		return fmt.Errorf("range [%d, %d) outside storage of %d bytes", offset, offset+length, size)
	}
	return nil
}

// Memory is an in-process Storage. ReadErr and WriteErr, when set, are
// returned by every call that touches an address they report true for.
type Memory struct {
	mu   sync.Mutex
	data []byte

	ReadErr  func(offset int) error
	WriteErr func(offset int) error
}

// NewMemory returns a zero-filled Memory of size bytes.
func NewMemory(size int) *Memory {
	return &Memory{data: make([]byte, size)}
}

func (m *Memory) Read(offset, length int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadErr != nil {
		if err := m.ReadErr(offset); err != nil {
			return nil, err
		}
	}
	if err := CheckBounds(offset, length, len(m.data)); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, m.data[offset:offset+length])
	return out, nil
}

func (m *Memory) Write(offset int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		if err := m.WriteErr(offset); err != nil {
			return err
		}
	}
	if err := CheckBounds(offset, len(data), len(m.data)); err != nil {
		return err
	}
	copy(m.data[offset:], data)
	return nil
}

// Bytes returns a copy of the whole storage area.
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// MemoryConfig is an in-process ConfigStore.
type MemoryConfig struct {
	mu     sync.Mutex
	values map[Key]uint8
}

func NewMemoryConfig() *MemoryConfig {
	return &MemoryConfig{values: make(map[Key]uint8)}
}

func (c *MemoryConfig) Get(key Key) (uint8, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return Unset, nil
}

func (c *MemoryConfig) Set(key Key, value uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

// Snapshot returns the current value of every known key.
func (c *MemoryConfig) Snapshot() map[Key]uint8 {
	out := make(map[Key]uint8, len(Keys()))
	for _, k := range Keys() {
		out[k], _ = c.Get(k)
	}
	return out
}
