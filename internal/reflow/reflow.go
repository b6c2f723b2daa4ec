package reflow

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/reflow-controller/internal/nvstorage"
	"github.com/thatsimonsguy/reflow-controller/internal/profile"
)

var (
	ErrOutOfRange     = errors.New("out of range")
	ErrNotPersistable = errors.New("selected profile is not a custom profile")
	ErrStorageFailure = errors.New("storage failure")
)

// Manager owns the profile registry and the active selection. All exported
// methods are safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	registry *profile.Registry
	storage  nvstorage.Storage
	config   nvstorage.ConfigStore
	active   int
}

func New(registry *profile.Registry, storage nvstorage.Storage, config nvstorage.ConfigStore) *Manager {
	return &Manager{
		registry: registry,
		storage:  storage,
		config:   config,
	}
}

// Start repairs the stored config, loads the custom profiles and restores the
// last selection. Every step runs even if an earlier one failed; the returned
// error joins all failures.
func (m *Manager) Start() error {
	var errs []error

	if err := m.ValidateConfig(); err != nil {
		errs = append(errs, err)
	}
	if err := m.LoadAll(); err != nil {
		errs = append(errs, err)
	}
	idx, err := m.RestoreSelection()
	if err != nil {
		errs = append(errs, err)
	}

	log.Info().
		Int("profiles", m.registry.Count()).
		Int("active", idx).
		Str("name", m.registry.Name(idx)).
		Msg("Reflow profiles ready")

	return errors.Join(errs...)
}

// Registry exposes the catalogue for read-only consumers such as the display.
func (m *Manager) Registry() *profile.Registry {
	return m.registry
}

func storageErr(format string, err error, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrStorageFailure, fmt.Sprintf(format, args...), err)
}
