package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"linkshare/internal/config"
	"linkshare/internal/metrics"
	"linkshare/migrations"
)

// sqliteParams enables foreign keys and waits on a locked file instead of failing.
const sqliteParams = "_foreign_keys=on&_busy_timeout=5000"

// DB wraps a sqlx handle for either dialect.
type DB struct {
	x      *sqlx.DB
	driver string
	dsn    string
	newID  func() string
}

// Open connects to the store. driver is config.DriverSQLite or
// config.DriverPostgres; dsn is a file path (or ":memory:") for SQLite and a
// postgres:// URL for Postgres.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	var (
		x   *sqlx.DB
		err error
	)

	switch driver {
	case config.DriverSQLite:
		x, err = sqlx.Open("sqlite3", sqliteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// One connection serializes writers and keeps :memory: databases alive.
		x.SetMaxOpenConns(1)
	case config.DriverPostgres:
		x, err = sqlx.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if err := x.PingContext(ctx); err != nil {
		x.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{x: x, driver: driver, dsn: dsn, newID: NewID}, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + sqliteParams
	}
	return path + "?" + sqliteParams
}

// Driver returns the configured dialect name.
func (d *DB) Driver() string {
	return d.driver
}

// RunMigrations applies all embedded SQL migrations for the store's dialect.
func (d *DB) RunMigrations() error {
	sourceDriver, err := iofs.New(migrations.FS, d.driver)
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	var m *migrate.Migrate
	switch d.driver {
	case config.DriverSQLite:
		// Reuse the open handle; a second connection would see a different :memory: database.
		var dbDriver database.Driver
		dbDriver, err = migratesqlite.WithInstance(d.x.DB, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("failed to create migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", dbDriver)
	default:
		m, err = migrate.NewWithSourceInstance("iofs", sourceDriver, d.dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Closing m would close the shared sqlite handle.
	if d.driver == config.DriverPostgres {
		m.Close()
	}

	return nil
}

// Ping checks that the store is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.x.PingContext(ctx)
}

// Close closes the underlying connections.
func (d *DB) Close() error {
	return d.x.Close()
}

// SetIDGenerator replaces the identifier generator. Intended for tests.
func (d *DB) SetIDGenerator(fn func() string) {
	d.newID = fn
}

// Counts returns the number of users, links and shares.
func (d *DB) Counts(ctx context.Context) (metrics.StoreCounts, error) {
	var c metrics.StoreCounts
	err := d.x.QueryRowxContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM links),
			(SELECT COUNT(*) FROM shares)
	`).Scan(&c.Users, &c.Links, &c.Shares)
	if err != nil {
		return metrics.StoreCounts{}, fmt.Errorf("failed to count rows: %w", err)
	}
	return c, nil
}
