package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// migrations is the ordered list of schema versions. Entries are append-only;
// editing an applied entry would desynchronise existing databases.
var migrations = []string{
	// 1: channel titles
	`CREATE TABLE channel_titles (
		channel_id TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	// 2: bookings; the unique (channel_id, slot_time) index makes the add
	// conflict check a property of the insert itself.
	`CREATE TABLE bookings (
		id           TEXT PRIMARY KEY,
		channel_id   TEXT NOT NULL,
		identity_key TEXT NOT NULL,
		display_name TEXT NOT NULL,
		slot_time    TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX idx_bookings_channel_slot ON bookings (channel_id, slot_time)`,
	`CREATE INDEX idx_bookings_channel_identity ON bookings (channel_id, identity_key)`,
}

// Migrate applies any schema versions the database has not seen yet, each
// inside its own transaction, recording progress in schema_migrations.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		version := i + 1
		statement := migrations[i]
		err := s.withTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.Exec(statement); err != nil {
				return err
			}
			_, err := tx.Exec(
				`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
				version, time.Now().UTC().Format(time.RFC3339),
			)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %d: %w", version, err)
		}
	}
	return nil
}
