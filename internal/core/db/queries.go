package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/qustavo/dotsql"
)

//go:embed queries/*.sql
var queriesFS embed.FS

// Queries provides access to named SQL queries loaded from embedded .sql files.
// Uses dotsql for named query management and sqlx for database operations.
type Queries struct {
	dot *dotsql.DotSql
	db  *sqlx.DB
}

// LoadQueries loads all .sql files from embedded filesystem and returns Queries instance.
// Named queries accessible by name (e.g., "get-category", "list-collections").
func LoadQueries(db *sqlx.DB) (*Queries, error) {
	var combinedSQL string

	err := fs.WalkDir(queriesFS, "queries", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}

		content, err := queriesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		combinedSQL += string(content) + "\n"
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to load query files: %w", err)
	}

	dot, err := dotsql.LoadFromString(combinedSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse queries: %w", err)
	}

	return &Queries{dot: dot, db: db}, nil
}

// DB returns the underlying connection pool.
func (q *Queries) DB() *sqlx.DB {
	return q.db
}

// raw looks up a named query and rebinds ? placeholders for the driver
// ($1, $2 for PostgreSQL).
func (q *Queries) raw(name string) (string, error) {
	query, err := q.dot.Raw(name)
	if err != nil {
		return "", fmt.Errorf("query not found: %s", name)
	}
	return q.db.Rebind(query), nil
}

// Exec executes a named query.
func (q *Queries) Exec(ctx context.Context, name string, args ...interface{}) (sql.Result, error) {
	query, err := q.raw(name)
	if err != nil {
		return nil, err
	}
	return q.db.ExecContext(ctx, query, args...)
}

// Get retrieves a single row into dest struct using named query.
// Returns sql.ErrNoRows when nothing matches.
func (q *Queries) Get(ctx context.Context, name string, dest interface{}, args ...interface{}) error {
	query, err := q.raw(name)
	if err != nil {
		return err
	}
	return q.db.GetContext(ctx, dest, query, args...)
}

// Select retrieves multiple rows into dest slice using named query.
func (q *Queries) Select(ctx context.Context, name string, dest interface{}, args ...interface{}) error {
	query, err := q.raw(name)
	if err != nil {
		return err
	}
	return q.db.SelectContext(ctx, dest, query, args...)
}

// SelectIn is Select for queries with an IN (?) clause. Slice arguments are
// expanded with sqlx.In before rebinding.
func (q *Queries) SelectIn(ctx context.Context, name string, dest interface{}, args ...interface{}) error {
	query, err := q.dot.Raw(name)
	if err != nil {
		return fmt.Errorf("query not found: %s", name)
	}
	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return fmt.Errorf("expand %s: %w", name, err)
	}
	return q.db.SelectContext(ctx, dest, q.db.Rebind(expanded), expandedArgs...)
}

// Queryx runs a named query and returns a row cursor for streaming reads.
func (q *Queries) Queryx(ctx context.Context, name string, args ...interface{}) (*sqlx.Rows, error) {
	query, err := q.raw(name)
	if err != nil {
		return nil, err
	}
	return q.db.QueryxContext(ctx, query, args...)
}

// Tx runs named queries inside one transaction.
type Tx struct {
	q  *Queries
	tx *sqlx.Tx
}

// Exec executes a named query inside the transaction.
func (t *Tx) Exec(ctx context.Context, name string, args ...interface{}) (sql.Result, error) {
	query, err := t.q.raw(name)
	if err != nil {
		return nil, err
	}
	return t.tx.ExecContext(ctx, query, args...)
}

// InTx runs fn in a transaction, committing when fn returns nil and rolling
// back otherwise.
func (q *Queries) InTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := q.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&Tx{q: q, tx: tx}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
