package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cleanadmin/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

const createSessionTable = `CREATE TABLE IF NOT EXISTS admin_session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	token TEXT NOT NULL,
	admin TEXT NOT NULL,
	updated_at DATETIME NOT NULL
)`

// SQLiteStore keeps the session in a single-row table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to session database: %w", err)
	}
	if _, err := db.Exec(createSessionTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, sess models.Session) error {
	if err := validate(sess); err != nil {
		return err
	}
	admin, err := json.Marshal(sess.Admin)
	if err != nil {
		return fmt.Errorf("marshal admin: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO admin_session (id, token, admin, updated_at) VALUES (1, ?, ?, ?)`,
		sess.Token, string(admin), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.Session, error) {
	var token, admin string
	err := s.db.QueryRowContext(ctx, `SELECT token, admin FROM admin_session WHERE id = 1`).Scan(&token, &admin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	sess := models.Session{Token: token}
	if err := json.Unmarshal([]byte(admin), &sess.Admin); err != nil {
		return nil, fmt.Errorf("decode stored admin: %w", err)
	}
	if !complete(sess) {
		return nil, nil
	}
	return &sess, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM admin_session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
