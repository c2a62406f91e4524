// Package sqlstore implementa los repositorios sobre database/sql.
// El mismo código sirve para Postgres (pgx) y SQLite (modernc); solo cambian
// el driver, los placeholders y el dialecto de goose.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"pawly/internal/domain/care"
	"pawly/internal/domain/pets"
	"pawly/internal/domain/users"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Store struct {
	db     *sql.DB
	driver string
	sb     sq.StatementBuilderType
}

// Open abre el pool, hace ping y devuelve el Store listo para usar.
// Las migraciones se aplican aparte con Migrate.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	var sqlDriver string
	switch driver {
	case DriverPostgres:
		sqlDriver = "pgx"
	case DriverSQLite:
		sqlDriver = "sqlite"
		dsn = sqliteDSN(dsn)
	default:
		return nil, fmt.Errorf("sqlstore: unknown driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open: %w", err)
	}

	if driver == DriverSQLite {
		// un solo escritor; evita "database is locked"
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlstore: ping: %w", err)
	}

	return New(db, driver), nil
}

// New envuelve una conexión ya abierta.
func New(db *sql.DB, driver string) *Store {
	var placeholder sq.PlaceholderFormat = sq.Question
	if driver == DriverPostgres {
		placeholder = sq.Dollar
	}
	return &Store{
		db:     db,
		driver: driver,
		sb:     sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Migrate aplica las migraciones embebidas con goose.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	dialect := goose.DialectSQLite3
	if s.driver == DriverPostgres {
		dialect = goose.DialectPostgres
	}

	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return 0, err
	}

	provider, err := goose.NewProvider(dialect, s.db, fsys)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: goose up: %w", err)
	}
	return len(results), nil
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Users() users.Repository { return &userRepo{s: s} }
func (s *Store) Pets() pets.Repository   { return &petRepo{s: s} }
func (s *Store) Care() care.Repository   { return &careRepo{s: s} }

// sqliteDSN agrega los pragmas que necesitamos si el DSN no los trae.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		dsn = "file:" + dsn
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}
