// Package app assembles the quiz automation service from configuration.
package app

import (
	"context"
	"time"

	"quiz-automation/internal/adapter"
	"quiz-automation/internal/cache"
	"quiz-automation/internal/config"
	"quiz-automation/internal/database"
	"quiz-automation/internal/domain"
	"quiz-automation/internal/repository"
	"quiz-automation/internal/service"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const defaultParseResultTTL = time.Hour

// Components holds the wired service and everything that must be closed on exit.
type Components struct {
	Service  service.QuizAutomationService
	QuizSets *repository.QuizSetFileStore
	Catalog  *repository.CatalogFileStore

	closers []func() error
}

// Close releases the redis and database connections, if any were opened.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i]()
	}
}

// Build wires the file stores and, when configured, the redis parse cache and
// the Oracle archive. Optional backends that cannot be reached are logged and
// skipped; conversions never depend on them.
func Build(ctx context.Context, cfg *config.Config, fs afero.Fs, log *zap.Logger) (*Components, error) {
	if cfg.Storage.DataDir == "" {
		return nil, domain.NewInvalidInputError("storage.data_dir is not configured")
	}

	c := &Components{
		QuizSets: repository.NewQuizSetFileStore(fs, cfg.Storage.DataDir),
		Catalog:  repository.NewCatalogFileStore(fs, cfg.Storage.CatalogPath()),
	}

	var parseCache service.ParseResultCache
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, parse results will not be cached", zap.Error(err))
		} else {
			log.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
			c.closers = append(c.closers, redisClient.Close)
			ttl := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.ParseResult, defaultParseResultTTL)
			parseCache = service.NewParseResultCache(adapter.NewRedisCacheAdapter(redisClient), ttl)
		}
	}

	var archive domain.ArchiveRepository
	if cfg.DB.Enabled() {
		db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
		if err != nil {
			log.Warn("Archive database unavailable, quiz sets will not be archived", zap.Error(err))
		} else {
			log.Info("Connected to archive database", zap.String("host", cfg.DB.Host))
			c.closers = append(c.closers, db.Close)
			archive = repository.NewArchiveDatabaseAdapter(db)
		}
	}

	c.Service = service.NewQuizAutomationService(c.QuizSets, c.Catalog, archive, parseCache, log)
	return c, nil
}
