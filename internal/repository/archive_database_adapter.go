package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quiz-automation/internal/domain"
	"quiz-automation/internal/repository/models"
	"quiz-automation/internal/util"

	"github.com/jmoiron/sqlx"
)

const defaultArchiveListLimit = 50

// ArchiveDatabaseAdapter implements domain.ArchiveRepository using sqlx.DB
type ArchiveDatabaseAdapter struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewArchiveDatabaseAdapter creates a new instance of ArchiveDatabaseAdapter
func NewArchiveDatabaseAdapter(db *sqlx.DB) *ArchiveDatabaseAdapter {
	return &ArchiveDatabaseAdapter{db: db, now: time.Now}
}

// SaveQuizSet stores a quiz set and its questions in one transaction. Earlier
// active records for the same file are soft-deleted, since the file was overwritten.
func (a *ArchiveDatabaseAdapter) SaveQuizSet(ctx context.Context, record *domain.QuizSetRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil quiz set")
	}
	now := a.now()
	if record.ID == "" {
		record.ID = util.NewULID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := a.saveQuizSet(ctx, tx, record, now); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (a *ArchiveDatabaseAdapter) saveQuizSet(ctx context.Context, tx DBTX, record *domain.QuizSetRecord, now time.Time) error {
	supersede := `UPDATE quiz_sets SET deleted_at = :1, updated_at = :2 WHERE file_name = :3 AND deleted_at IS NULL`
	if _, err := tx.ExecContext(ctx, supersede, now, now, record.FileName); err != nil {
		return fmt.Errorf("failed to supersede quiz set %s: %w", record.FileName, err)
	}

	set := toModelQuizSet(record, now)
	insertSet := `INSERT INTO quiz_sets (
		id, file_name, name, description, source_name,
		source_hash, question_count, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`
	if _, err := tx.ExecContext(ctx, insertSet,
		set.ID,
		set.FileName,
		set.Name,
		set.Description,
		set.SourceName,
		set.SourceHash,
		set.QuestionCount,
		set.CreatedAt,
		set.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to save quiz set: %w", err)
	}

	insertQuestion := `INSERT INTO quiz_set_questions (
		id, quiz_set_id, position, declared_id, question,
		options, correct_answers, multiple, explanation
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`
	for i, q := range record.Questions {
		row := toModelQuizSetQuestion(set.ID, i, q)
		if _, err := tx.ExecContext(ctx, insertQuestion,
			row.ID,
			row.QuizSetID,
			row.Position,
			row.DeclaredID,
			row.Question,
			row.Options,
			row.CorrectAnswers,
			row.Multiple,
			row.Explanation,
		); err != nil {
			return fmt.Errorf("failed to save question %d of quiz set: %w", q.ID, err)
		}
	}
	return nil
}

// MarkDeleted soft-deletes the active record of a file. A file that was never
// archived is not an error.
func (a *ArchiveDatabaseAdapter) MarkDeleted(ctx context.Context, fileName string) error {
	now := a.now()
	query := `UPDATE quiz_sets SET deleted_at = :1, updated_at = :2 WHERE file_name = :3 AND deleted_at IS NULL`
	if _, err := a.db.ExecContext(ctx, query, now, now, fileName); err != nil {
		return fmt.Errorf("failed to mark quiz set %s deleted: %w", fileName, err)
	}
	return nil
}

// ListQuizSets returns the most recent active quiz sets, without their questions.
func (a *ArchiveDatabaseAdapter) ListQuizSets(ctx context.Context, limit int) ([]*domain.QuizSetRecord, error) {
	if limit <= 0 {
		limit = defaultArchiveListLimit
	}

	var rows []models.QuizSet
	query := `SELECT id, file_name, name, description, source_name, source_hash,
		question_count, created_at, updated_at, deleted_at
	FROM quiz_sets
	WHERE deleted_at IS NULL
	ORDER BY created_at DESC
	FETCH FIRST :1 ROWS ONLY`
	if err := a.db.SelectContext(ctx, &rows, query, limit); err != nil {
		if err == sql.ErrNoRows {
			return []*domain.QuizSetRecord{}, nil
		}
		return nil, fmt.Errorf("failed to list quiz sets: %w", err)
	}

	records := make([]*domain.QuizSetRecord, 0, len(rows))
	for i := range rows {
		records = append(records, toDomainQuizSetRecord(&rows[i]))
	}
	return records, nil
}

func toModelQuizSet(record *domain.QuizSetRecord, now time.Time) *models.QuizSet {
	return &models.QuizSet{
		ID:            record.ID,
		FileName:      record.FileName,
		Name:          record.Name,
		Description:   nullString(record.Description),
		SourceName:    nullString(record.SourceName),
		SourceHash:    record.SourceHash,
		QuestionCount: record.QuestionCount,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     now,
	}
}

func toModelQuizSetQuestion(quizSetID string, position int, q domain.Question) *models.QuizSetQuestion {
	multiple := 0
	if q.Multiple {
		multiple = 1
	}
	return &models.QuizSetQuestion{
		ID:             util.NewULID(),
		QuizSetID:      quizSetID,
		Position:       position,
		DeclaredID:     q.ID,
		Question:       q.Question,
		Options:        models.StringSlice(q.Options),
		CorrectAnswers: models.IntSlice(q.CorrectAnswers),
		Multiple:       multiple,
		Explanation:    nullString(q.Explanation),
	}
}

func toDomainQuizSetRecord(m *models.QuizSet) *domain.QuizSetRecord {
	return &domain.QuizSetRecord{
		ID:            m.ID,
		FileName:      m.FileName,
		Name:          m.Name,
		Description:   m.Description.String,
		SourceName:    m.SourceName.String,
		SourceHash:    m.SourceHash,
		QuestionCount: m.QuestionCount,
		CreatedAt:     m.CreatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
