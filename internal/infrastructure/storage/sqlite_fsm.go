package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
)

type sqliteFSMStorage struct {
	db *sql.DB
}

// NewSQLiteFSMStorage SQLite asosidagi suhbat holati storage.
// dbPath bo'sh bo'lsa baza xotirada ochiladi.
func NewSQLiteFSMStorage(dbPath string) (repository.FSMStorage, error) {
	dsn := dbPath
	if dsn == "" {
		dsn = ":memory:"
	} else if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("db papkasini yaratib bo'lmadi: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite ochilmadi: %w", err)
	}
	// :memory: har bir ulanishga alohida baza beradi
	db.SetMaxOpenConns(1)

	if err := createFSMSchema(db); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return &sqliteFSMStorage{db: db}, nil
}

func createFSMSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS fsm_states (
	storage_key TEXT PRIMARY KEY,
	state TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS fsm_data (
	storage_key TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema yaratib bo'lmadi: %w", err)
	}
	return nil
}

// SetState holatni saqlash; bo'sh holat qatorni o'chiradi
func (s *sqliteFSMStorage) SetState(ctx context.Context, key entity.StorageKey, state string) error {
	if state == "" {
		_, err := s.db.ExecContext(ctx, `DELETE FROM fsm_states WHERE storage_key = ?`, key.String())
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO fsm_states (storage_key, state) VALUES (?, ?)`,
		key.String(), state)
	if err != nil {
		return fmt.Errorf("failed to set state %s: %w", key, err)
	}
	return nil
}

// GetState holatni olish
func (s *sqliteFSMStorage) GetState(ctx context.Context, key entity.StorageKey) (string, error) {
	var state string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM fsm_states WHERE storage_key = ?`, key.String()).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get state %s: %w", key, err)
	}
	return state, nil
}

// SetData ma'lumotlarni JSON qilib saqlash; bo'sh map qatorni o'chiradi
func (s *sqliteFSMStorage) SetData(ctx context.Context, key entity.StorageKey, data map[string]any) error {
	if len(data) == 0 {
		_, err := s.db.ExecContext(ctx, `DELETE FROM fsm_data WHERE storage_key = ?`, key.String())
		return err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data for %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO fsm_data (storage_key, data) VALUES (?, ?)`,
		key.String(), string(payload))
	if err != nil {
		return fmt.Errorf("failed to set data %s: %w", key, err)
	}
	return nil
}

// GetData ma'lumotlarni olish
func (s *sqliteFSMStorage) GetData(ctx context.Context, key entity.StorageKey) (map[string]any, error) {
	data := make(map[string]any)

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM fsm_data WHERE storage_key = ?`, key.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get data %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data %s: %w", key, err)
	}
	return data, nil
}

// Close bazani yopish
func (s *sqliteFSMStorage) Close() error {
	return s.db.Close()
}
