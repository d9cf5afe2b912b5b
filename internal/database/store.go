package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var builder = goqu.Dialect("sqlite3")

// Store is the sole owner of durable state: a file-backed sqlite database
// behind an explicit bounded connection pool. One Store is constructed by the
// process entry point and passed by reference to every orchestrator; it is
// safe for concurrent use within the process. Cross-process sharing relies on
// sqlite's own file locking (busy_timeout is set on every connection).
type Store struct {
	db   *sql.DB
	pool *connPool
	path string
}

// Open creates the database file if needed, applies schema migrations and
// returns a ready Store. maxConnections bounds the idle connection pool.
func Open(path string, maxConnections int) (*Store, error) {
	if maxConnections <= 0 {
		maxConnections = 5
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// idle connections live in the explicit pool, not in database/sql
	db.SetMaxIdleConns(0)

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:   db,
		pool: newConnPool(db, maxConnections),
		path: path,
	}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close releases every idle connection and the underlying database handle.
func (s *Store) Close() error {
	s.pool.closeIdle()
	return s.db.Close()
}

// Path returns the backing database file path.
func (s *Store) Path() string {
	return s.path
}

// IdleConnections reports how many connections the pool currently holds.
func (s *Store) IdleConnections() int {
	return s.pool.idleCount()
}

// withConn runs fn on a pooled connection, releasing it on every exit path.
func (s *Store) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := s.pool.acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer s.pool.release(conn)
	return fn(conn)
}

// execute runs one mutating statement inside an implicit transaction that
// commits on success and rolls back on any failure, returning the underlying
// error. Typed operations above it build their SQL and delegate here.
func (s *Store) execute(ctx context.Context, query string, args ...any) error {
	return s.withConn(ctx, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("execute statement: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}
