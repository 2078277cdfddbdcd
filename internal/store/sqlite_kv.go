package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteKV persists KV slots in <Dir>/state.sqlite. Writes are synchronous: Set returns only
// after the row is committed.
type SQLiteKV struct {
	db *sql.DB
}

func (s Store) OpenKV(ctx context.Context) (*SQLiteKV, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	return &SQLiteKV{db: db}, nil
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI and a CLI invocation share the file; busy_timeout avoids "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (k *SQLiteKV) Get(key string) (string, bool, error) {
	var v string
	err := k.db.QueryRowContext(context.Background(), `SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (k *SQLiteKV) Set(key, value string) error {
	_, err := k.db.ExecContext(context.Background(),
		`INSERT OR REPLACE INTO kv(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		key, value, time.Now().UTC().UnixMilli())
	return err
}

func (k *SQLiteKV) Delete(key string) error {
	_, err := k.db.ExecContext(context.Background(), `DELETE FROM kv WHERE k = ?`, key)
	return err
}

func (k *SQLiteKV) Close() error {
	if k == nil || k.db == nil {
		return nil
	}
	return k.db.Close()
}
