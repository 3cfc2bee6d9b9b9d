package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationsTable = "schema_migrations"

// Migrator applies versioned .up.sql files, one statement per file, and
// records each applied version in schema_migrations.
type Migrator struct {
	db     *sqlx.DB
	source source.Driver
	logger *zap.Logger
}

// NewMigrator reads migrations from the embedded migrations directory.
func NewMigrator(db *sqlx.DB, logger *zap.Logger) (*Migrator, error) {
	return NewMigratorFromFS(db, migrationFS, "migrations", logger)
}

// NewMigratorFromFS reads migrations from dir inside fsys.
func NewMigratorFromFS(db *sqlx.DB, fsys fs.FS, dir string, logger *zap.Logger) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}
	return &Migrator{db: db, source: src, logger: logger}, nil
}

// Close releases the migration source.
func (m *Migrator) Close() error {
	return m.source.Close()
}

// Version returns the highest applied version, 0 when none.
func (m *Migrator) Version(ctx context.Context) (uint, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	var version int64
	query := `SELECT NVL(MAX(version), 0) FROM ` + migrationsTable
	if err := m.db.GetContext(ctx, &version, query); err != nil {
		return 0, fmt.Errorf("could not read migration version: %w", err)
	}
	return uint(version), nil
}

// Up applies every migration newer than the current version and returns how
// many were applied.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	current, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}

	applied := 0
	version, err := m.source.First()
	for err == nil {
		if version > current {
			if err := m.apply(ctx, version); err != nil {
				return applied, err
			}
			applied++
		}
		version, err = m.source.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return applied, fmt.Errorf("could not list migrations: %w", err)
	}

	m.logger.Info("Migrations completed successfully", zap.Int("applied", applied))
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, version uint) error {
	body, identifier, err := m.source.ReadUp(version)
	if errors.Is(err, fs.ErrNotExist) {
		// down-only version
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	defer body.Close()

	content, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	statement := strings.TrimSuffix(strings.TrimSpace(string(content)), ";")

	if _, err := m.db.ExecContext(ctx, statement); err != nil {
		return fmt.Errorf("could not execute migration %d_%s: %w", version, identifier, err)
	}
	insert := `INSERT INTO ` + migrationsTable + ` (version, applied_at) VALUES (:1, :2)`
	if _, err := m.db.ExecContext(ctx, insert, int64(version), time.Now()); err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}

	m.logger.Info("Executed migration", zap.Uint("version", version), zap.String("name", identifier))
	return nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	var count int
	query := `SELECT COUNT(*) FROM user_tables WHERE table_name = :1`
	if err := m.db.GetContext(ctx, &count, query, strings.ToUpper(migrationsTable)); err != nil {
		return fmt.Errorf("could not check migrations table: %w", err)
	}
	if count > 0 {
		return nil
	}
	create := `CREATE TABLE ` + migrationsTable + ` (version NUMBER(19) PRIMARY KEY, applied_at TIMESTAMP NOT NULL)`
	if _, err := m.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("could not create migrations table: %w", err)
	}
	return nil
}
