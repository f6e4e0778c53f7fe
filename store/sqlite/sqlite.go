/*
Package sqlite provides a SQLite-backed implementation of the store.KV
snapshot interface.

Each collection snapshot lives in a single row keyed by collection name;
writes replace the whole row. There is deliberately no cross-key
transactionality - the engine tolerates inconsistent keys on reload.

WAL mode is enabled for crash recovery. Use ":memory:" for an in-memory
database in tests.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type KV struct {
	db *sql.DB
}

// Open creates (or opens) the snapshot database at path.
func Open(path string) (*KV, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	kv := &KV{db: db}
	if err := kv.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return kv, nil
}

func (k *KV) Close() error {
	return k.db.Close()
}

func (k *KV) migrate() error {
	_, err := k.db.Exec(`
	CREATE TABLE IF NOT EXISTS snapshots (
		key        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		updated_at TEXT NOT NULL
	);`)
	return err
}

func (k *KV) Put(ctx context.Context, key string, value []byte) error {
	_, err := k.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := k.db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}
