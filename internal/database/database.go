// Package database centralises sqlx connection helpers.  The driver is
// go-sql-driver/mysql, which also serves MariaDB.
//
// Public entry points:
//
//	Open(ctx, dsn)               – helper with conservative pool sizes.
//	OpenWithPool(ctx, dsn, pool) – fine-grained control.
//
// Both helpers Ping the database before returning so callers can fail fast
// during bootstrap.  Callers should Close() the returned *sqlx.DB when no
// longer needed.
package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Driver is the database/sql driver name.
const Driver = "mysql"

// Pool sizes a connection pool.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// DefaultPool suits one theme-options and content reader per process.
var DefaultPool = Pool{MaxOpen: 15, MaxIdle: 5, MaxLifetime: 30 * time.Minute}

// Open returns a *sqlx.DB configured with DefaultPool.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	return OpenWithPool(ctx, dsn, DefaultPool)
}

// OpenWithPool opens dsn, applies p, and pings.
func OpenWithPool(ctx context.Context, dsn string, p Pool) (*sqlx.DB, error) {
	db, err := sqlx.Open(Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}
	Configure(db, p)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}
	return db, nil
}

// Configure applies p to db.
func Configure(db *sqlx.DB, p Pool) {
	db.SetMaxOpenConns(p.MaxOpen)
	db.SetMaxIdleConns(p.MaxIdle)
	db.SetConnMaxLifetime(p.MaxLifetime)
}
