package db

import (
	"database/sql"
	"fmt"
)

// EraseEEPROM drops every stored byte so the whole area reads as zero.
func EraseEEPROM(db *sql.DB) error {
	tx, err := StartTransaction(db)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM eeprom`); err != nil {
		RollbackTransaction(tx)
		return fmt.Errorf("erase eeprom: %w", err)
	}
	return CommitTransaction(tx)
}

// ResetConfig clears every config key back to unset.
func ResetConfig(db *sql.DB) error {
	tx, err := StartTransaction(db)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM nv_config`); err != nil {
		RollbackTransaction(tx)
		return fmt.Errorf("reset config: %w", err)
	}
	return CommitTransaction(tx)
}
