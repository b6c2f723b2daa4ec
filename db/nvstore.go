package db

import (
	"database/sql"

	"github.com/thatsimonsguy/reflow-controller/internal/nvstorage"
)

// EEPROM is an nvstorage.Storage backed by the eeprom table.
type EEPROM struct {
	db   *sql.DB
	size int
}

func NewEEPROM(db *sql.DB, size int) *EEPROM {
	return &EEPROM{db: db, size: size}
}

func (e *EEPROM) Read(offset, length int) ([]byte, error) {
	if err := nvstorage.CheckBounds(offset, length, e.size); err != nil {
		return nil, err
	}
	return ReadEEPROM(e.db, offset, length)
}

func (e *EEPROM) Write(offset int, data []byte) error {
	if err := nvstorage.CheckBounds(offset, len(data), e.size); err != nil {
		return err
	}
	return WriteEEPROM(e.db, offset, data)
}

// Config is an nvstorage.ConfigStore backed by the nv_config table.
type Config struct {
	db *sql.DB
}

func NewConfig(db *sql.DB) *Config {
	return &Config{db: db}
}

func (c *Config) Get(key nvstorage.Key) (uint8, error) {
	return GetConfigValue(c.db, key)
}

func (c *Config) Set(key nvstorage.Key, value uint8) error {
	return SetConfigValue(c.db, key, value)
}
