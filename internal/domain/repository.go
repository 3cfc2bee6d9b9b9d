package domain

import (
	"context"
	"time"
)

// QuizSetRepository persists serialized question sets.
type QuizSetRepository interface {
	// Save writes the questions under fileName and returns the full path written.
	Save(ctx context.Context, fileName string, questions []Question) (string, error)

	// Exists reports whether a quiz set file is present.
	Exists(ctx context.Context, fileName string) (bool, error)

	// Delete removes a quiz set file.
	Delete(ctx context.Context, fileName string) error
}

// CatalogRepository loads and updates the quiz-set catalog.
type CatalogRepository interface {
	// Load returns the current catalog. A missing catalog yields ErrCatalogNotFound.
	Load(ctx context.Context) (*Catalog, error)

	// Update applies fn to the current catalog (a new one if none exists yet)
	// and persists the result. Updates are serialized.
	Update(ctx context.Context, fn func(*Catalog) error) (*Catalog, error)
}

// ErrCatalogNotFound is returned when the catalog file does not exist.
var ErrCatalogNotFound = NewNotFoundError("catalog not found")

// QuizSetRecord is the archived form of one accepted conversion.
type QuizSetRecord struct {
	ID            string
	FileName      string
	Name          string
	Description   string
	SourceName    string
	SourceHash    string
	QuestionCount int
	Questions     []Question
	CreatedAt     time.Time
}

// ArchiveRepository keeps a history of accepted quiz sets.
type ArchiveRepository interface {
	SaveQuizSet(ctx context.Context, record *QuizSetRecord) error
	MarkDeleted(ctx context.Context, fileName string) error
	ListQuizSets(ctx context.Context, limit int) ([]*QuizSetRecord, error)
}
