// Package testutil provides a real SQL store for package tests: a SQLite
// file in a per-test temp directory with the shop schema bootstrapped.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/iliyamo/vehicle-service-management/internal/config"
	"github.com/iliyamo/vehicle-service-management/internal/database"
)

// NewDB opens a bootstrapped SQLite store and returns the raw handle with
// the gateway built on it.  Both are closed when the test ends.
func NewDB(t *testing.T) (*sql.DB, *database.Gateway) {
	t.Helper()
	cfg := config.DBConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "shop.db"),
	}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open test DB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	gw := database.NewGateway(db, cfg.Driver, Logger())
	if err := database.Bootstrap(context.Background(), gw); err != nil {
		t.Fatalf("bootstrap test DB: %v", err)
	}
	return db, gw
}

// NewGateway is NewDB without the raw handle.
func NewGateway(t *testing.T) *database.Gateway {
	t.Helper()
	_, gw := NewDB(t)
	return gw
}

// Logger returns a logger that discards output.
func Logger() *log.Logger {
	l, _ := test.NewNullLogger()
	return l
}

// CountRows returns SELECT COUNT(*) for table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

// MustExec runs a setup statement directly on db.
func MustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
