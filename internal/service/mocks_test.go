package service

import (
	"context"
	"time"

	"quiz-automation/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockArchiveRepository ---
type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) SaveQuizSet(ctx context.Context, record *domain.QuizSetRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockArchiveRepository) MarkDeleted(ctx context.Context, fileName string) error {
	args := m.Called(ctx, fileName)
	return args.Error(0)
}

func (m *MockArchiveRepository) ListQuizSets(ctx context.Context, limit int) ([]*domain.QuizSetRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizSetRecord), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockQuizSetRepository ---
type MockQuizSetRepository struct {
	mock.Mock
}

func (m *MockQuizSetRepository) Save(ctx context.Context, fileName string, questions []domain.Question) (string, error) {
	args := m.Called(ctx, fileName, questions)
	return args.String(0), args.Error(1)
}

func (m *MockQuizSetRepository) Exists(ctx context.Context, fileName string) (bool, error) {
	args := m.Called(ctx, fileName)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuizSetRepository) Delete(ctx context.Context, fileName string) error {
	args := m.Called(ctx, fileName)
	return args.Error(0)
}
