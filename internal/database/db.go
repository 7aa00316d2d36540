package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/vehicle-service-management/internal/config"
)

// Driver names accepted in config.DBConfig.Driver.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Open prepares a handle to the configured store.  It does not dial: the
// first statement opens the first connection.  Idle connections are never
// kept, so every released connection is closed for real.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case DriverMySQL:
		db, err = sql.Open(DriverMySQL, mysqlDSN(cfg))
	case DriverSQLite:
		// busy_timeout applies to every new connection, not only the first one
		db, err = sql.Open(DriverSQLite, "file:"+cfg.Path+"?_pragma=busy_timeout(10000)")
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(0)
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// mysqlDSN keeps DATE columns as text (parseTime=false) so that hire and
// service dates round-trip exactly as the operator typed them.
func mysqlDSN(cfg config.DBConfig) string {
	auth := cfg.User
	if cfg.Pass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.User, cfg.Pass)
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=false&loc=UTC",
		auth, cfg.Host, cfg.Port, cfg.Name)
}

// Ping verifies the store answers within five seconds.
func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}
