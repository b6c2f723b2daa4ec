package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS eeprom (
		address INTEGER PRIMARY KEY CHECK(address >= 0),
		value INTEGER NOT NULL CHECK(value BETWEEN 0 AND 255)
	)`,
	`CREATE TABLE IF NOT EXISTS nv_config (
		key INTEGER PRIMARY KEY CHECK(key BETWEEN 0 AND 255),
		value INTEGER NOT NULL CHECK(value BETWEEN 0 AND 255)
	)`,
}

// busyTimeoutMillis lets the daemon and reflowctl share one database file
// without failing on "database is locked".
const busyTimeoutMillis = 5000

func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", dbPath, sep, busyTimeoutMillis)
}

// Open opens the SQLite database at dbPath and applies the schema.
func Open(dbPath string) (*sql.DB, error) {
	dbConn, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps ":memory:" databases shared and serialises writers
	dbConn.SetMaxOpenConns(1)

	if err := ApplyMigrations(dbConn); err != nil {
		dbConn.Close()
		return nil, err
	}

	log.Debug().Str("path", dbPath).Msg("Database opened")
	return dbConn, nil
}

func ApplyMigrations(dbConn *sql.DB) error {
	tx, err := StartTransaction(dbConn)
	if err != nil {
		return err
	}
	for _, stmt := range migrations {
		if _, err := tx.Exec(stmt); err != nil {
			RollbackTransaction(tx)
			return fmt.Errorf("failed to apply migration: %w", err)
		}
	}
	return CommitTransaction(tx)
}
