package repository

import (
	"context"
	"database/sql"

	"quiz-automation/internal/domain"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

var (
	_ domain.QuizSetRepository = (*QuizSetFileStore)(nil)
	_ domain.CatalogRepository = (*CatalogFileStore)(nil)
	_ domain.ArchiveRepository = (*ArchiveDatabaseAdapter)(nil)
)
