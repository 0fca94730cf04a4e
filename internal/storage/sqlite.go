package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"funfact_bot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Recipients backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Add inserts chatID unless it already exists.
func (s *SQLite) Add(ctx context.Context, chatID int64) (bool, error) {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO recipients (chat_id, created_at) VALUES (?, ?)
		 ON CONFLICT (chat_id) DO NOTHING`,
		chatID, now,
	)
	if err != nil {
		return false, fmt.Errorf("insert recipient: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// Contains reports whether chatID is stored.
func (s *SQLite) Contains(ctx context.Context, chatID int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipients WHERE chat_id = ?`, chatID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check recipient: %w", err)
	}
	return count > 0, nil
}

// List returns all recipients ordered by chat ID.
func (s *SQLite) List(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT chat_id FROM recipients ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("query recipients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
