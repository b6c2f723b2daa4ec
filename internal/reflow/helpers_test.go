package reflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/reflow-controller/internal/nvstorage"
	"github.com/thatsimonsguy/reflow-controller/internal/profile"
)

var errInjected = errors.New("injected failure")

func newTestManager(t *testing.T) (*Manager, *nvstorage.Memory, *nvstorage.MemoryConfig) {
	t.Helper()
	mem := nvstorage.NewMemory(256)
	cfg := nvstorage.NewMemoryConfig()
	return New(profile.Default(), mem, cfg), mem, cfg
}

// sixProfileRegistry has four built-ins and the two standard custom slots.
func sixProfileRegistry(t *testing.T) *profile.Registry {
	t.Helper()
	var flat [profile.NumSetpoints]uint16
	for i := range flat {
		flat[i] = 100
	}
	r, err := profile.NewRegistry(
		profile.NewBuiltin("A", flat),
		profile.NewBuiltin("B", flat),
		profile.NewBuiltin("C", flat),
		profile.NewBuiltin("D", flat),
		profile.NewCustom("CUSTOM #1", profile.Slot{Number: 1, Offset: 2, Length: profile.SlotLength}),
		profile.NewCustom("CUSTOM #2", profile.Slot{Number: 2, Offset: 130, Length: profile.SlotLength}),
	)
	require.NoError(t, err)
	return r
}

// failingConfig fails every call once broken is set.
type failingConfig struct {
	*nvstorage.MemoryConfig
	broken bool
}

func (f *failingConfig) Get(key nvstorage.Key) (uint8, error) {
	if f.broken {
		return 0, errInjected
	}
	return f.MemoryConfig.Get(key)
}

func (f *failingConfig) Set(key nvstorage.Key, value uint8) error {
	if f.broken {
		return errInjected
	}
	return f.MemoryConfig.Set(key, value)
}

func storedProfile(t *testing.T, cfg nvstorage.ConfigStore) uint8 {
	t.Helper()
	v, err := cfg.Get(nvstorage.KeyProfile)
	require.NoError(t, err)
	return v
}
