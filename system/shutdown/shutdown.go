package shutdown

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/reflow-controller/internal/datadog"
)

var exit = os.Exit

// Shutdown closes every resource, flushes metrics and exits.
func Shutdown(resources ...io.Closer) {
	code := 0
	for _, r := range resources {
		if err := r.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to release resource")
			code = 1
		}
	}
	datadog.Close()
	log.Info().Msg("Reflow controller stopped")
	exit(code)
}

func ShutdownWithError(err error, msg string, resources ...io.Closer) {
	log.Error().Err(err).Msg(msg)
	Shutdown(resources...)
}
