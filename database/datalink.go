package database

import (
	"SteamProfile/apperrors"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Execer is the common surface of *sqlx.DB and *sqlx.Tx
type Execer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// DataLink runs parameterized SQL text against the pool. Queries are written
// with ? placeholders and rebound for the driver. Every call borrows a pooled
// connection for its own duration.
type DataLink struct {
	db *sqlx.DB
}

// NewDataLink wraps an open pool. driverName picks the placeholder style
// ("postgres", "sqlserver", "sqlite").
func NewDataLink(db *sql.DB, driverName string) *DataLink {
	return &DataLink{db: sqlx.NewDb(db, driverName)}
}

func (dl *DataLink) DB() *sqlx.DB {
	return dl.db
}

// ExecuteNonQuery runs a statement and returns the affected row count
func (dl *DataLink) ExecuteNonQuery(ctx context.Context, query string, args ...interface{}) (int64, error) {
	return executeNonQuery(ctx, dl.db, query, args...)
}

// ExecuteScalar reads the first column of the first row into dest
func (dl *DataLink) ExecuteScalar(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return executeScalar(ctx, dl.db, dest, query, args...)
}

// ExecuteReader scans every row into dest, a pointer to a slice
func (dl *DataLink) ExecuteReader(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return executeReader(ctx, dl.db, dest, query, args...)
}

// ExecuteRow scans the first row into dest, a pointer to a struct
func (dl *DataLink) ExecuteRow(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return executeRow(ctx, dl.db, dest, query, args...)
}

// WithTransaction runs fn inside one transaction, committing when it returns nil
func (dl *DataLink) WithTransaction(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := dl.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.FromDB(err, "transaction")
	}
	defer sqlTx.Rollback()

	if err := fn(&Tx{tx: sqlTx}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return apperrors.FromDB(err, "transaction")
	}
	return nil
}

// Tx exposes the DataLink operations inside a transaction
type Tx struct {
	tx *sqlx.Tx
}

func (t *Tx) ExecuteNonQuery(ctx context.Context, query string, args ...interface{}) (int64, error) {
	return executeNonQuery(ctx, t.tx, query, args...)
}

func (t *Tx) ExecuteScalar(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return executeScalar(ctx, t.tx, dest, query, args...)
}

func (t *Tx) ExecuteRow(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return executeRow(ctx, t.tx, dest, query, args...)
}

func (t *Tx) ExecuteReader(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return executeReader(ctx, t.tx, dest, query, args...)
}

func executeNonQuery(ctx context.Context, ex Execer, query string, args ...interface{}) (int64, error) {
	result, err := ex.ExecContext(ctx, ex.Rebind(query), args...)
	if err != nil {
		return 0, apperrors.FromDB(err, "statement")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.FromDB(err, "statement")
	}
	return affected, nil
}

func executeScalar(ctx context.Context, ex Execer, dest interface{}, query string, args ...interface{}) error {
	err := ex.QueryRowxContext(ctx, ex.Rebind(query), args...).Scan(dest)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFound("row not found")
	}
	return apperrors.FromDB(err, "query")
}

func executeRow(ctx context.Context, ex Execer, dest interface{}, query string, args ...interface{}) error {
	err := ex.GetContext(ctx, dest, ex.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFound("row not found")
	}
	return apperrors.FromDB(err, "query")
}

func executeReader(ctx context.Context, ex Execer, dest interface{}, query string, args ...interface{}) error {
	return apperrors.FromDB(ex.SelectContext(ctx, dest, ex.Rebind(query), args...), "query")
}
