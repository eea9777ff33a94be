package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"atelier/internal/domain"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store implements repository.Repository on a single SQLite database file.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens the database at path, enables foreign-key enforcement, and
// runs schema migration and category seeding. The path ":memory:" opens a
// private in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, &ConnError{Path: path, Err: err}
	}
	// A single writer keeps the pure-Go driver away from SQLITE_BUSY
	// races, and keeps :memory: databases on one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &ConnError{Path: path, Err: err}
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	s.seedCategories(context.Background())

	return s, nil
}

// dsn builds the driver connection string with the pragmas the store
// relies on: foreign keys on, WAL journaling, and a busy timeout.
func dsn(path string) string {
	const pragmas = "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		return "file::memory:?" + pragmas
	}
	return path + "?" + pragmas
}

// migrate executes the embedded schema, one statement at a time. Every
// statement uses IF NOT EXISTS semantics, so re-running on an existing
// database is a no-op.
func (s *Store) migrate() error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return &QueryError{Stmt: stmt, Err: err}
		}
	}
	return nil
}

// seedCategories inserts the eight fixed product categories with stable
// ids. Rows that already exist are skipped. Seeding is best-effort per
// row: one failure is logged and the rest still run.
func (s *Store) seedCategories(ctx context.Context) {
	const stmt = `
		INSERT OR IGNORE INTO product_categories (id, name, description)
		VALUES (?, ?, ?)`

	for _, c := range domain.SeedCategories() {
		if _, _, err := s.Exec(ctx, stmt, c.ID, c.Name, c.Description); err != nil {
			s.log.Warn().Err(err).Str("category", c.Name).Msg("seeding category failed")
		}
	}
}

// Row is a single result row keyed by column name.
type Row map[string]any

// Exec runs a mutating statement with bound parameters and returns the
// id of the inserted row (when applicable) and the affected-row count.
func (s *Store) Exec(ctx context.Context, stmt string, args ...any) (lastID, affected int64, err error) {
	res, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, 0, &QueryError{Stmt: stmt, Err: err}
	}
	// modernc's driver supports both; errors here mean "not applicable"
	// for this statement and are deliberately ignored.
	lastID, _ = res.LastInsertId()
	affected, _ = res.RowsAffected()
	return lastID, affected, nil
}

// FetchOne runs a statement expected to return at most one row and
// returns it as a column-name-to-value map, or nil when nothing matched.
func (s *Store) FetchOne(ctx context.Context, stmt string, args ...any) (Row, error) {
	rows, err := s.FetchMany(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// FetchMany runs a statement and returns all result rows in order.
func (s *Store) FetchMany(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, &QueryError{Stmt: stmt, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Stmt: stmt, Err: err}
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &QueryError{Stmt: stmt, Err: err}
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				// Copy: the driver reuses scan buffers between rows.
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Stmt: stmt, Err: err}
	}
	return out, nil
}

// Close releases the connection. Safe to call on a Store that was never
// opened.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
