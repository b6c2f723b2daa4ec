package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/reflow-controller/internal/api"
	"github.com/thatsimonsguy/reflow-controller/internal/config"
	"github.com/thatsimonsguy/reflow-controller/internal/datadog"
	"github.com/thatsimonsguy/reflow-controller/internal/logging"
	"github.com/thatsimonsguy/reflow-controller/internal/notifications"
	"github.com/thatsimonsguy/reflow-controller/system/shutdown"
	"github.com/thatsimonsguy/reflow-controller/system/startup"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFile)

	log.Info().
		Str("db", cfg.DBPath).
		Str("storage", cfg.Storage).
		Msg("Starting reflow controller")

	datadog.InitMetrics(cfg.DatadogAddr, cfg.DatadogNamespace, cfg.DatadogTags, cfg.EnableDatadog)
	notifications.Init(cfg.NtfyTopic)

	controller, err := startup.Open(startup.Options{
		DBPath:     cfg.DBPath,
		Storage:    cfg.Storage,
		ImagePath:  cfg.ImagePath,
		EEPROMSize: cfg.EEPROMSize,
	})
	if controller == nil {
		shutdown.ShutdownWithError(err, "Failed to open profile storage")
		return
	}
	// startup errors leave the affected slot or key at its default
	notifications.StorageProblem("startup", err)

	server := api.NewServer(controller.Manager)
	go func() {
		if err := server.Start(cfg.APIPort); err != nil {
			shutdown.ShutdownWithError(err, "REST API server stopped", controller)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("Shutting down reflow controller")
	shutdown.Shutdown(controller)
}
