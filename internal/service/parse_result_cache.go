package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-automation/internal/cache"
	"quiz-automation/internal/domain"
	"quiz-automation/internal/logger"
	"quiz-automation/internal/parser"

	"go.uber.org/zap"
)

// ErrParseResultNotFound is returned when no cached result exists for a document.
var ErrParseResultNotFound = errors.New("parse result not found in cache")

// ParseResultCache caches successful parse results by document digest.
type ParseResultCache interface {
	Put(ctx context.Context, contentHash string, result *parser.Result) error
	Get(ctx context.Context, contentHash string) (*parser.Result, error)
}

// ContentHash returns the hex sha256 digest of a document.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

type parseResultCacheImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewParseResultCache creates a ParseResultCache on top of a generic cache.
// A nil cache yields a no-op implementation.
func NewParseResultCache(c domain.Cache, ttl time.Duration) ParseResultCache {
	if c == nil {
		logger.Get().Warn("ParseResultCache initialized with nil cache. Service will be no-op.")
		return &noopParseResultCache{}
	}
	return &parseResultCacheImpl{cache: c, ttl: ttl}
}

func (s *parseResultCacheImpl) Put(ctx context.Context, contentHash string, result *parser.Result) error {
	if result == nil {
		return domain.NewInvalidInputError("cannot cache nil parse result")
	}

	key := cache.ParseResultKey(contentHash)
	data, err := json.Marshal(result)
	if err != nil {
		return domain.NewInternalError("failed to marshal parse result for caching", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to set parse result to cache for key %s", key), err)
	}
	logger.Get().Debug("Cached parse result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *parseResultCacheImpl) Get(ctx context.Context, contentHash string) (*parser.Result, error) {
	key := cache.ParseResultKey(contentHash)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, ErrParseResultNotFound
		}
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get parse result from cache for key %s", key), err)
	}

	var result parser.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		logger.Get().Warn("Corrupt parse result in cache, dropping it", zap.String("key", key), zap.Error(err))
		_ = s.cache.Delete(ctx, key)
		return nil, ErrParseResultNotFound
	}
	return &result, nil
}

type noopParseResultCache struct{}

func (n *noopParseResultCache) Put(ctx context.Context, contentHash string, result *parser.Result) error {
	return nil
}

func (n *noopParseResultCache) Get(ctx context.Context, contentHash string) (*parser.Result, error) {
	return nil, ErrParseResultNotFound
}
