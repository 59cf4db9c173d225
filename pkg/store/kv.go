package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// KV is the durable key/value capability the note is stored in. Read must
// return an error matching fs.ErrNotExist for a missing key.
type KV interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Erase(key string) error
}

const sqliteFile = "stickynote.sqlite"

// OpenKV opens the backend named by cfg. The returned close func is never nil.
func OpenKV(cfg Config) (KV, func() error, error) {
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, nop, errors.New("store: base path unknown")
	}
	switch cfg.Backend() {
	case BackendDiskv:
		return NewDiskv(basePath), nop, nil
	case BackendSQLite:
		s, err := OpenSQLite(filepath.Join(basePath, sqliteFile))
		if err != nil {
			return nil, nop, err
		}
		return s, s.Close, nil
	default:
		return nil, nop, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

func nop() error { return nil }

// NewDiskv returns a flat diskv store rooted at basePath. The in-memory cache
// is disabled so writes from other processes are always seen.
func NewDiskv(basePath string) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 0,
	})
}

// SQLite keeps values in a single kv table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("store: create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create kv table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Read(key string) ([]byte, error) {
	var val []byte
	err := s.db.QueryRowContext(context.Background(), `SELECT value FROM kv WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: %s: %w", key, fs.ErrNotExist)
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *SQLite) Write(key string, val []byte) error {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, val)
	return err
}

func (s *SQLite) Erase(key string) error {
	res, err := s.db.ExecContext(context.Background(), `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("sqlite: %s: %w", key, fs.ErrNotExist)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
