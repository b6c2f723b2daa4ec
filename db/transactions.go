package db

import (
	"database/sql"
	"fmt"

	"github.com/thatsimonsguy/reflow-controller/internal/nvstorage"
)

// StartTransaction starts a new database transaction.
func StartTransaction(db *sql.DB) (*sql.Tx, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	return tx, nil
}

// CommitTransaction commits the given transaction.
func CommitTransaction(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RollbackTransaction rolls back the given transaction.
func RollbackTransaction(tx *sql.Tx) {
	tx.Rollback()
}

// WriteEEPROM stores data at offset. The whole write lands in one
// transaction, so a failure leaves the previous contents in place.
func WriteEEPROM(db *sql.DB, offset int, data []byte) error {
	tx, err := StartTransaction(db)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO eeprom (address, value) VALUES (?, ?)`)
	if err != nil {
		RollbackTransaction(tx)
		return fmt.Errorf("prepare eeprom write: %w", err)
	}
	defer stmt.Close()

	for i, b := range data {
		if _, err := stmt.Exec(offset+i, int(b)); err != nil {
			RollbackTransaction(tx)
			return fmt.Errorf("write eeprom address %d: %w", offset+i, err)
		}
	}
	return CommitTransaction(tx)
}

func SetConfigValue(db *sql.DB, key nvstorage.Key, value uint8) error {
	tx, err := StartTransaction(db)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`INSERT OR REPLACE INTO nv_config (key, value) VALUES (?, ?)`, int(key), int(value))
	if err != nil {
		RollbackTransaction(tx)
		return fmt.Errorf("update config %s: %w", key, err)
	}
	return CommitTransaction(tx)
}
