package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS response_cache (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_response_cache_expires_at ON response_cache (expires_at);
CREATE TABLE IF NOT EXISTS cache_meta (
	name  TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
`

// SQLiteBackend - кэш ответов в локальном файле SQLite, переживает рестарт процесса
type SQLiteBackend struct {
	db    *sql.DB
	clock clockwork.Clock
}

// OpenSQLite открывает или создает файл кэша
func OpenSQLite(ctx context.Context, path string, clock clockwork.Clock) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapErr("open sqlite", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, wrapErr("sqlite pragma", err)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, wrapErr("sqlite schema", err)
	}

	return &SQLiteBackend{db: db, clock: clock}, nil
}

func (b *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		val       []byte
		expiresAt int64
	)
	err := b.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM response_cache WHERE key = ?`, key,
	).Scan(&val, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, wrapErr("sqlite get", err)
	}

	// Просроченная запись удаляется при чтении
	if b.clock.Now().UnixMilli() >= expiresAt {
		if _, err := b.db.ExecContext(ctx, `DELETE FROM response_cache WHERE key = ? AND expires_at = ?`, key, expiresAt); err != nil {
			return nil, false, wrapErr("sqlite expire", err)
		}
		return nil, false, nil
	}
	return val, true, nil
}

func (b *SQLiteBackend) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	expiresAt := b.clock.Now().Add(ttl).UnixMilli()
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO response_cache (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, val, expiresAt,
	)
	if err != nil {
		return wrapErr("sqlite set", err)
	}
	return nil
}

func (b *SQLiteBackend) Generation(ctx context.Context) (uint64, error) {
	var gen int64
	err := b.db.QueryRowContext(ctx, `SELECT value FROM cache_meta WHERE name = 'generation'`).Scan(&gen)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, wrapErr("sqlite generation", err)
	}
	return uint64(gen), nil
}

func (b *SQLiteBackend) BumpGeneration(ctx context.Context) (uint64, error) {
	var gen int64
	err := b.db.QueryRowContext(ctx, `
		INSERT INTO cache_meta (name, value) VALUES ('generation', 1)
		ON CONFLICT(name) DO UPDATE SET value = value + 1
		RETURNING value`,
	).Scan(&gen)
	if err != nil {
		return 0, wrapErr("sqlite bump generation", err)
	}
	return uint64(gen), nil
}

// Purge удаляет все просроченные записи и возвращает их количество
func (b *SQLiteBackend) Purge(ctx context.Context) (int64, error) {
	res, err := b.db.ExecContext(ctx, `DELETE FROM response_cache WHERE expires_at <= ?`, b.clock.Now().UnixMilli())
	if err != nil {
		return 0, wrapErr("sqlite purge", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cache: sqlite purge rows: %w", err)
	}
	return n, nil
}

// Close закрывает файл кэша
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
