package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/thatsimonsguy/reflow-controller/internal/nvstorage"
)

// ReadEEPROM returns length bytes starting at offset. Addresses never
// written read as zero.
func ReadEEPROM(db *sql.DB, offset, length int) ([]byte, error) {
	buf := make([]byte, length)

	rows, err := db.Query(`SELECT address, value FROM eeprom WHERE address >= ? AND address < ?`, offset, offset+length)
	if err != nil {
		return nil, fmt.Errorf("failed to query eeprom: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var address, value int
		if err := rows.Scan(&address, &value); err != nil {
			return nil, fmt.Errorf("failed to scan eeprom byte: %w", err)
		}
		buf[address-offset] = byte(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read eeprom: %w", err)
	}
	return buf, nil
}

// GetConfigValue returns the stored value for key, or nvstorage.Unset.
func GetConfigValue(db *sql.DB, key nvstorage.Key) (uint8, error) {
	var value int
	err := db.QueryRow(`SELECT value FROM nv_config WHERE key = ?`, int(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nvstorage.Unset, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get config %s: %w", key, err)
	}
	return uint8(value), nil
}

// GetAllConfig returns every known key, unset ones included.
func GetAllConfig(db *sql.DB) (map[nvstorage.Key]uint8, error) {
	out := make(map[nvstorage.Key]uint8)
	for _, k := range nvstorage.Keys() {
		v, err := GetConfigValue(db, k)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
