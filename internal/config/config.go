package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/thatsimonsguy/reflow-controller/internal/profile"
)

const (
	StorageSQLite = "sqlite"
	StorageImage  = "image"
)

type Config struct {
	DBPath     string
	ConfigFile string
	LogLevel   zerolog.Level

	APIPort int    `json:"api_port"`
	LogFile string `json:"log_file"`

	// Storage selects where custom profiles live: "sqlite" keeps them in the
	// database next to the config keys, "image" in a raw EEPROM image file.
	Storage    string `json:"storage"`
	ImagePath  string `json:"image_path"`
	EEPROMSize int    `json:"eeprom_size"`

	EnableDatadog    bool     `json:"enable_datadog"`
	DatadogAddr      string   `json:"datadog_addr"`
	DatadogNamespace string   `json:"datadog_namespace"`
	DatadogTags      []string `json:"datadog_tags"`

	NtfyTopic string `json:"ntfy_topic"`
}

func Load() Config {
	var cfg Config
	var logLevel string

	flag.StringVar(&cfg.DBPath, "db", "data/reflow.db", "Path to the SQLite database file")
	flag.StringVar(&cfg.ConfigFile, "config-file", "config.json", "Path to controller config file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	cfg.LogLevel = ParseLogLevel(logLevel)

	file, err := os.Open(cfg.ConfigFile)
	if err != nil {
		panic("Failed to load config file: " + err.Error())
	}
	defer file.Close()

	if err := decode(file, &cfg); err != nil {
		panic("Failed to parse config file: " + err.Error())
	}

	cfg.validate()
	return cfg
}

func decode(r io.Reader, cfg *Config) error {
	if err := json.NewDecoder(r).Decode(cfg); err != nil {
		return err
	}
	cfg.applyDefaults()
	return nil
}

func (cfg *Config) applyDefaults() {
	if cfg.APIPort == 0 {
		cfg.APIPort = 8080
	}
	if cfg.Storage == "" {
		cfg.Storage = StorageSQLite
	}
	if cfg.ImagePath == "" {
		cfg.ImagePath = "data/eeprom.bin"
	}
	if cfg.EEPROMSize == 0 {
		cfg.EEPROMSize = 256
	}
	if cfg.DatadogAddr == "" {
		cfg.DatadogAddr = "127.0.0.1:8125"
	}
	if cfg.DatadogNamespace == "" {
		cfg.DatadogNamespace = "reflow."
	}
}

func ParseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (cfg *Config) validate() {
	var problems []string

	if cfg.APIPort < 1 || cfg.APIPort > 65535 {
		problems = append(problems, fmt.Sprintf("api_port %d out of range", cfg.APIPort))
	}
	if cfg.Storage != StorageSQLite && cfg.Storage != StorageImage {
		problems = append(problems, fmt.Sprintf("storage %q must be %q or %q", cfg.Storage, StorageSQLite, StorageImage))
	}
	if cfg.EEPROMSize < profile.StorageSize() {
		problems = append(problems, fmt.Sprintf("eeprom_size %d too small for custom profiles (need %d)", cfg.EEPROMSize, profile.StorageSize()))
	}

	if len(problems) > 0 {
		panic("Invalid config: " + strings.Join(problems, ", "))
	}
}
