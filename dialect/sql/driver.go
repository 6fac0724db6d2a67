package sql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/zetaframework/zeta-generator/dialect"
)

// Driver is a dialect-aware wrapper around *sql.DB.
type Driver struct {
	db            *sql.DB
	dialect       string
	stats         *catalogStats
	slowThreshold time.Duration
	slowHook      SlowQueryHook
}

// Option configures the Driver.
type Option func(*Driver)

// WithSlowThreshold sets the threshold for slow query detection.
// Default is 500ms; catalog queries on large schemas are rarely faster.
func WithSlowThreshold(d time.Duration) Option {
	return func(drv *Driver) {
		drv.slowThreshold = d
	}
}

// WithSlowQueryHook sets a callback function for slow queries.
func WithSlowQueryHook(hook SlowQueryHook) Option {
	return func(drv *Driver) {
		drv.slowHook = hook
	}
}

// WithSlowQueryLog logs slow queries to the given logger.
func WithSlowQueryLog(logger *slog.Logger) Option {
	return WithSlowQueryHook(func(ctx context.Context, query string, args []any, duration time.Duration) {
		logger.WarnContext(ctx, "slow catalog query", "duration", duration, "query", query, "args", args)
	})
}

// Open opens a database for the given dialect and data source name.
func Open(d, dsn string, opts ...Option) (*Driver, error) {
	name, err := dialect.Normalize(d)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect.DriverName(name), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return OpenDB(name, db, opts...), nil
}

// OpenDB wraps an already opened *sql.DB.
func OpenDB(d string, db *sql.DB, opts ...Option) *Driver {
	drv := &Driver{
		db:            db,
		dialect:       d,
		stats:         &catalogStats{},
		slowThreshold: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(drv)
	}
	return drv
}

// DB returns the underlying *sql.DB instance.
func (d *Driver) DB() *sql.DB { return d.db }

// Dialect returns the canonical dialect name.
func (d *Driver) Dialect() string { return d.dialect }

// Ping verifies the connection is alive.
func (d *Driver) Ping(ctx context.Context) error {
	start := time.Now()
	err := d.db.PingContext(ctx)
	d.record(ctx, "PING", nil, start, err)
	return err
}

// QueryContext executes a query and records statistics.
// The caller must close the returned rows.
func (d *Driver) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.record(ctx, query, args, start, err)
	return rows, err
}

// Usage returns the catalog query usage recorded so far.
func (d *Driver) Usage() Usage { return d.stats.usage() }

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.db.Close() }

func (d *Driver) record(ctx context.Context, query string, args []any, start time.Time, err error) {
	duration := time.Since(start)
	slow := duration > d.slowThreshold
	d.stats.observe(duration, err != nil, slow)
	if slow && d.slowHook != nil {
		d.slowHook(ctx, query, args, duration)
	}
}
