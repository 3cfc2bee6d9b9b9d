package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"quiz-automation/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupArchiveTestDB creates a new sqlx.DB instance and sqlmock for archive testing.
func setupArchiveTestDB(t *testing.T) (*ArchiveDatabaseAdapter, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	adapter := NewArchiveDatabaseAdapter(sqlx.NewDb(mockDB, "sqlmock"))
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	adapter.now = func() time.Time { return fixed }
	return adapter, mock
}

func sampleRecord() *domain.QuizSetRecord {
	return &domain.QuizSetRecord{
		FileName:      "quiz_aws.json",
		Name:          "Aws (2 questions)",
		Description:   "Practice questions for Aws",
		SourceName:    "aws.txt",
		SourceHash:    "abc123",
		QuestionCount: 2,
		Questions: []domain.Question{
			*domain.NewQuestion(1, "Q1?", []string{"a", "b"}, []int{0}, ""),
			*domain.NewQuestion(2, "Q2?", []string{"a", "b", "c"}, []int{0, 2}, "why"),
		},
	}
}

func TestArchiveSaveQuizSet(t *testing.T) {
	adapter, mock := setupArchiveTestDB(t)
	record := sampleRecord()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE quiz_sets SET deleted_at = :1, updated_at = :2 WHERE file_name = :3 AND deleted_at IS NULL`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "quiz_aws.json").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO quiz_sets`).
		WithArgs(sqlmock.AnyArg(), "quiz_aws.json", "Aws (2 questions)", sqlmock.AnyArg(), sqlmock.AnyArg(), "abc123", 2, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO quiz_set_questions`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 0, 1, "Q1?", `["a","b"]`, `[0]`, 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO quiz_set_questions`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 1, 2, "Q2?", `["a","b","c"]`, `[0,2]`, 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := adapter.SaveQuizSet(context.Background(), record)

	require.NoError(t, err)
	assert.Len(t, record.ID, 26)
	assert.False(t, record.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveSaveQuizSet_RollsBackOnError(t *testing.T) {
	adapter, mock := setupArchiveTestDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE quiz_sets`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO quiz_sets`).WillReturnError(errors.New("ORA-00001: unique constraint violated"))
	mock.ExpectRollback()

	err := adapter.SaveQuizSet(context.Background(), sampleRecord())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save quiz set")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveSaveQuizSet_Nil(t *testing.T) {
	adapter, _ := setupArchiveTestDB(t)
	assert.Error(t, adapter.SaveQuizSet(context.Background(), nil))
}

func TestArchiveMarkDeleted(t *testing.T) {
	adapter, mock := setupArchiveTestDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE quiz_sets SET deleted_at = :1, updated_at = :2 WHERE file_name = :3 AND deleted_at IS NULL`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "quiz_aws.json").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.MarkDeleted(context.Background(), "quiz_aws.json")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveListQuizSets(t *testing.T) {
	adapter, mock := setupArchiveTestDB(t)
	now := time.Now()

	// Column names are uppercase, as Oracle reports them.
	rows := sqlmock.NewRows([]string{"ID", "FILE_NAME", "NAME", "DESCRIPTION", "SOURCE_NAME", "SOURCE_HASH", "QUESTION_COUNT", "CREATED_AT", "UPDATED_AT", "DELETED_AT"}).
		AddRow("01HZX0000000000000000000AA", "quiz_aws.json", "Aws (2 questions)", "desc", nil, "abc123", 2, now, now, nil).
		AddRow("01HZX0000000000000000000AB", "quiz_gcp.json", "Gcp (5 questions)", nil, "gcp.txt", "def456", 5, now, now, nil)
	mock.ExpectQuery(`SELECT id, file_name, name, description, source_name, source_hash,\s+question_count, created_at, updated_at, deleted_at\s+FROM quiz_sets\s+WHERE deleted_at IS NULL`).
		WithArgs(10).
		WillReturnRows(rows)

	records, err := adapter.ListQuizSets(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "quiz_aws.json", records[0].FileName)
	assert.Equal(t, "desc", records[0].Description)
	assert.Equal(t, "", records[0].SourceName)
	assert.Equal(t, "gcp.txt", records[1].SourceName)
	assert.Equal(t, 5, records[1].QuestionCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveListQuizSets_DefaultLimit(t *testing.T) {
	adapter, mock := setupArchiveTestDB(t)

	mock.ExpectQuery(`FROM quiz_sets`).
		WithArgs(defaultArchiveListLimit).
		WillReturnRows(sqlmock.NewRows([]string{"ID"}))

	records, err := adapter.ListQuizSets(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}
