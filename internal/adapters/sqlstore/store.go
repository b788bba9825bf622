package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"sulu/internal/ports"
)

const schemaVersion = "1"

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Store implements ports.ContentStore on database/sql (SQLite or Postgres)
type Store struct {
	queries
	db     *sql.DB
	driver string
}

// Ensure Store implements ContentStore
var _ ports.ContentStore = (*Store)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS nodes (
		workspace TEXT NOT NULL,
		id TEXT NOT NULL,
		parent_id TEXT NOT NULL DEFAULT '',
		path TEXT NOT NULL,
		name TEXT NOT NULL,
		node_type TEXT NOT NULL,
		mixins TEXT NOT NULL DEFAULT '',
		order_weight INTEGER NOT NULL DEFAULT 0,
		created_at BIGINT NOT NULL,
		PRIMARY KEY (workspace, id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_nodes_path ON nodes(workspace, path)`,
	`CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(workspace, parent_id)`,
	`CREATE TABLE IF NOT EXISTS localizations (
		workspace TEXT NOT NULL,
		node_id TEXT NOT NULL,
		locale TEXT NOT NULL,
		title TEXT NOT NULL,
		segment TEXT NOT NULL DEFAULT '',
		segment_generated BOOLEAN NOT NULL DEFAULT FALSE,
		route_path TEXT NOT NULL DEFAULT '',
		stage TEXT NOT NULL,
		properties TEXT NOT NULL DEFAULT '{}',
		changed_at BIGINT NOT NULL,
		PRIMARY KEY (workspace, node_id, locale)
	)`,
	`CREATE TABLE IF NOT EXISTS routes (
		id TEXT PRIMARY KEY,
		workspace TEXT NOT NULL,
		locale TEXT NOT NULL,
		path TEXT NOT NULL,
		target_id TEXT NOT NULL,
		is_history BOOLEAN NOT NULL DEFAULT FALSE,
		created_at BIGINT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_routes_path ON routes(workspace, locale, path)`,
	`CREATE INDEX IF NOT EXISTS idx_routes_target ON routes(workspace, locale, target_id)`,
	`CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

// Open connects to the database and creates the schema.
// For sqlite3 the dsn is a file path ("~" is expanded).
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	var dataSource string
	switch driver {
	case DriverSQLite:
		path, err := expandHome(dsn)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dataSource = "file:" + path + "?_journal_mode=WAL&_busy_timeout=5000"
	case DriverPostgres:
		dataSource = strings.TrimSpace(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(driver, dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	s := &Store{
		queries: queries{q: db, driver: driver},
		db:      db,
		driver:  driver,
	}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	_, err := s.db.ExecContext(ctx, rebind(s.driver, `
		INSERT INTO meta (key, value) VALUES ('schema_version', ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`), schemaVersion)
	return err
}

// SchemaVersion returns the stored schema version
func (s *Store) SchemaVersion(ctx context.Context) (string, error) {
	var version string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	return version, err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Begin starts a new transaction
func (s *Store) Begin(ctx context.Context) (ports.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &storeTx{queries: queries{q: tx, driver: s.driver}, tx: tx}, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// rebind rewrites "?" placeholders to "$n" for Postgres
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
