package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"quiz-automation/internal/cache"
	"quiz-automation/internal/domain"
	"quiz-automation/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleParseResult() *parser.Result {
	return &parser.Result{
		Questions: []domain.Question{
			*domain.NewQuestion(1, "Which service stores objects?", []string{"EC2", "S3"}, []int{1}, "S3 is object storage."),
		},
		Report: parser.Report{
			TotalFound:      1,
			Accepted:        1,
			Skipped:         []int{},
			WithExplanation: 1,
			Warnings:        []parser.Warning{},
		},
	}
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ContentHash(""))
	assert.NotEqual(t, ContentHash("a"), ContentHash("b"))
}

func TestParseResultCache_Put(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewParseResultCache(mockCache, time.Hour)
	ctx := context.Background()
	result := sampleParseResult()
	expected, _ := json.Marshal(result)

	mockCache.On("Set", ctx, cache.ParseResultKey("abc"), string(expected), time.Hour).Return(nil).Once()

	err := svc.Put(ctx, "abc", result)

	assert.NoError(t, err)
	mockCache.AssertExpectations(t)
}

func TestParseResultCache_PutNilResult(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewParseResultCache(mockCache, time.Hour)

	err := svc.Put(context.Background(), "abc", nil)

	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidInput, domain.CodeOf(err))
	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestParseResultCache_PutCacheError(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewParseResultCache(mockCache, time.Hour)
	ctx := context.Background()

	mockCache.On("Set", ctx, mock.Anything, mock.Anything, time.Hour).Return(errors.New("redis down")).Once()

	err := svc.Put(ctx, "abc", sampleParseResult())

	require.Error(t, err)
	assert.Equal(t, domain.CodeInternal, domain.CodeOf(err))
	mockCache.AssertExpectations(t)
}

func TestParseResultCache_GetHit(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewParseResultCache(mockCache, time.Hour)
	ctx := context.Background()
	result := sampleParseResult()
	data, _ := json.Marshal(result)

	mockCache.On("Get", ctx, cache.ParseResultKey("abc")).Return(string(data), nil).Once()

	got, err := svc.Get(ctx, "abc")

	require.NoError(t, err)
	assert.Equal(t, result, got)
	mockCache.AssertExpectations(t)
}

func TestParseResultCache_GetMiss(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewParseResultCache(mockCache, time.Hour)
	ctx := context.Background()

	mockCache.On("Get", ctx, cache.ParseResultKey("abc")).Return("", domain.ErrCacheMiss).Once()

	got, err := svc.Get(ctx, "abc")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrParseResultNotFound)
	mockCache.AssertExpectations(t)
}

func TestParseResultCache_GetCorruptEntry(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewParseResultCache(mockCache, time.Hour)
	ctx := context.Background()
	key := cache.ParseResultKey("abc")

	mockCache.On("Get", ctx, key).Return("{not json", nil).Once()
	mockCache.On("Delete", ctx, key).Return(nil).Once()

	got, err := svc.Get(ctx, "abc")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrParseResultNotFound)
	mockCache.AssertExpectations(t)
}

func TestParseResultCache_GetCacheError(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewParseResultCache(mockCache, time.Hour)
	ctx := context.Background()

	mockCache.On("Get", ctx, mock.Anything).Return("", errors.New("connection refused")).Once()

	_, err := svc.Get(ctx, "abc")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrParseResultNotFound)
	assert.Equal(t, domain.CodeInternal, domain.CodeOf(err))
}

func TestParseResultCache_NilCache(t *testing.T) {
	svc := NewParseResultCache(nil, time.Hour)
	ctx := context.Background()

	assert.NoError(t, svc.Put(ctx, "abc", sampleParseResult()))

	_, err := svc.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrParseResultNotFound)
}
