// Package sqlstore implements the catalog and collection stores on SQLite or
// PostgreSQL through the named queries in internal/core/db.
//
// Attribute lists are kept in join tables with a position column and
// replaced wholesale inside a transaction. Products are stored as JSON
// documents; collection membership is evaluated in process by scanning them
// with the compiled predicate.
package sqlstore

import (
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/catalog"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/collection"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/db"
)

// Store is the SQL-backed catalog and collection store.
type Store struct {
	q      *db.Queries
	logger *zap.Logger
}

var (
	_ catalog.Store    = (*Store)(nil)
	_ collection.Store = (*Store)(nil)
)

// New creates a store over loaded queries.
func New(q *db.Queries, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{q: q, logger: logger}
}

// notFound maps sql.ErrNoRows to the given sentinel.
func notFound(err error, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

// requireAffected returns sentinel when a write touched no rows.
func requireAffected(res sql.Result, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel
	}
	return nil
}

// nullable converts an optional id to a driver value.
func nullable[T ~string](v *T) any {
	if v == nil {
		return nil
	}
	return string(*v)
}

// optional converts a nullable column back to an optional id.
func optional[T ~string](v sql.NullString) *T {
	if !v.Valid {
		return nil
	}
	id := T(v.String)
	return &id
}

// strs converts typed ids to plain strings for IN expansion.
func strs[T ~string](ids []T) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
