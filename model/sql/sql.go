package sql

import (
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/Brawl345/raven/config"
	"github.com/Brawl345/raven/logger"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*
var embeddedMigrations embed.FS

var log = logger.New("sql")

func New(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	if cfg.Driver == config.DriverSQLite {
		// A single connection serializes writers; SQLite locks the whole file anyway.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxIdleConns(100)
		db.SetMaxOpenConns(100)
		db.SetConnMaxIdleTime(10 * time.Minute)
	}

	if cfg.IgnoreMigration {
		log.Warn().Msg("Skipping database migrations")
		return db, nil
	}

	n, err := Migrate(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	if n > 0 {
		log.Info().Msgf("Applied %d migration(s)", n)
	}

	return db, nil
}

// Migrate applies all pending migrations and returns how many ran.
func Migrate(db *sqlx.DB) (int, error) {
	migrationSource := &migrate.EmbedFileSystemMigrationSource{FileSystem: embeddedMigrations, Root: "migrations"}
	return migrate.Exec(db.DB, db.DriverName(), migrationSource, migrate.Up)
}

// insertIgnore returns the dialect's "insert unless the key exists" prefix.
func insertIgnore(db *sqlx.DB) string {
	if db.DriverName() == config.DriverSQLite {
		return "INSERT OR IGNORE INTO"
	}
	return "INSERT IGNORE INTO"
}

// upsertEnabled returns an insert that overwrites the enabled column on key conflict.
func upsertEnabled(db *sqlx.DB, table string, keys ...string) string {
	var conflict string
	if db.DriverName() == config.DriverSQLite {
		conflict = fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET enabled = excluded.enabled", strings.Join(keys, ", "))
	} else {
		conflict = "ON DUPLICATE KEY UPDATE enabled = VALUES(enabled)"
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s, enabled) VALUES (%s?) %s",
		table,
		strings.Join(keys, ", "),
		strings.Repeat("?, ", len(keys)),
		conflict,
	)
}
