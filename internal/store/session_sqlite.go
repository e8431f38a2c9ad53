package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/session"
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    role TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
`

type SQLiteSessionStore struct {
	db *sql.DB
}

// NewSQLiteSessionStore opens (creating if needed) the database at dbPath
// and ensures the sessions table exists.
func NewSQLiteSessionStore(dbPath string) (*SQLiteSessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(sessionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &SQLiteSessionStore{db: db}, nil
}

func (s *SQLiteSessionStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteSessionStore) Get(ctx context.Context, sessionID string) (session.Identity, error) {
	var (
		id      session.Identity
		role    string
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, role, created_at FROM sessions WHERE id = ?",
		sessionID,
	).Scan(&id.UserID, &role, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Identity{}, errs.NewNotFoundError("session not found")
	}
	if err != nil {
		return session.Identity{}, errs.NewDatabaseError("read", "failed to read session", err)
	}
	id.Role = dto.Role(role)
	id.CreatedAt = time.Unix(created, 0).UTC()
	return id, nil
}

func (s *SQLiteSessionStore) Put(ctx context.Context, sessionID string, id session.Identity) error {
	if id.CreatedAt.IsZero() {
		id.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, role, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, role = excluded.role, created_at = excluded.created_at`,
		sessionID, id.UserID, string(id.Role), id.CreatedAt.Unix(),
	)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to save session", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete session", err)
	}
	return nil
}
