// Package storage opens the audit database and applies its migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open opens and pings the audit database.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported audit driver %q (use %s or %s)", driver, DriverPostgres, DriverSQLite)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// Every connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return db, nil
}

// OpenMigrated opens the audit database and applies pending migrations.
func OpenMigrated(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := NewMigrationRunner(db, driver).Run(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
