package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToLogFile(t *testing.T) {
	prev := log.Logger
	defer func() { log.Logger = prev }()

	path := filepath.Join(t.TempDir(), "reflow.log")
	Init(zerolog.InfoLevel, path)

	log.Info().Int("index", 2).Msg("Selected profile")
	log.Debug().Msg("hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"Selected profile"`)
	assert.Contains(t, string(data), `"index":2`)
	assert.NotContains(t, string(data), "hidden")
}

func TestInitPanicsOnUnwritableFile(t *testing.T) {
	prev := log.Logger
	defer func() { log.Logger = prev }()

	assert.Panics(t, func() {
		Init(zerolog.InfoLevel, filepath.Join(t.TempDir(), "missing", "reflow.log"))
	})
}

func TestInitConsoleSetsLevel(t *testing.T) {
	prev := log.Logger
	defer func() { log.Logger = prev }()

	InitConsole(zerolog.WarnLevel)
	assert.Equal(t, zerolog.WarnLevel, log.Logger.GetLevel())
}
