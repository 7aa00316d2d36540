package database

import (
	"context"
	"database/sql"
	"errors"

	log "github.com/sirupsen/logrus"
)

// Queryer is the statement surface shared by *sql.Conn and *sql.Tx.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Gateway is the single way the application talks to the store.  Each call
// acquires its own connection and releases it on every exit path, failures
// included.  Statements outside InTx run in autocommit mode, so a write is
// committed when Exec returns.  Errors are returned to the caller exactly as
// the driver produced them; there are no retries.
type Gateway struct {
	db     *sql.DB
	driver string
	log    log.FieldLogger
}

// NewGateway wraps db.  driver is one of DriverMySQL or DriverSQLite.
func NewGateway(db *sql.DB, driver string, logger log.FieldLogger) *Gateway {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Gateway{db: db, driver: driver, log: logger}
}

// Driver reports which SQL dialect the gateway speaks.
func (g *Gateway) Driver() string { return g.driver }

// Do runs fn on a connection acquired for this call only.
func (g *Gateway) Do(ctx context.Context, fn func(q Queryer) error) error {
	conn, err := g.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	return fn(conn)
}

// Exec runs one write statement and returns the number of affected rows.
func (g *Gateway) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := g.Do(ctx, func(q Queryer) error {
		res, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		g.log.WithError(err).Debug("exec failed")
	}
	return n, err
}

// Query runs one read statement and hands every result row to scan.
func (g *Gateway) Query(ctx context.Context, query string, args []any, scan func(rows *sql.Rows) error) error {
	err := g.Do(ctx, func(q Queryer) error {
		return ScanAll(ctx, q, query, args, scan)
	})
	if err != nil {
		g.log.WithError(err).Debug("query failed")
	}
	return err
}

// InTx runs fn inside one transaction on one connection.  The transaction
// is committed when fn returns nil and rolled back otherwise.
func (g *Gateway) InTx(ctx context.Context, fn func(q Queryer) error) error {
	conn, err := g.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			g.log.WithError(rbErr).Warn("rollback failed")
		}
		return err
	}
	return tx.Commit()
}

// ScanAll executes query on q and calls scan once per row.
func ScanAll(ctx context.Context, q Queryer, query string, args []any, scan func(rows *sql.Rows) error) error {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
