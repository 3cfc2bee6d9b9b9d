package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"quiz-automation/internal/domain"
	"quiz-automation/internal/parser"
	"quiz-automation/internal/util"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const utf8BOM = "\ufeff"

// ConvertInput is one document to convert and register.
type ConvertInput struct {
	Content     string
	SourceName  string
	OutputName  string
	QuizName    string
	Description string
}

// ConvertResult describes a completed conversion.
type ConvertResult struct {
	RunID      string
	FileName   string
	OutputPath string
	Entry      domain.CatalogEntry
	Questions  []domain.Question
	Report     parser.Report
}

// DeleteResult describes a completed deletion.
type DeleteResult struct {
	FileName string
	// CatalogEntryRemoved is false when the file had no catalog entry.
	CatalogEntryRemoved bool
}

// QuizAutomationService converts quiz documents and manages the quiz-set catalog.
type QuizAutomationService interface {
	// Parse runs the parser without persisting anything.
	Parse(ctx context.Context, sourceName, content string) (*parser.Result, error)
	Convert(ctx context.Context, in ConvertInput) (*ConvertResult, error)
	DeleteQuiz(ctx context.Context, fileName string) (*DeleteResult, error)
	ListQuizSets(ctx context.Context) (*domain.Catalog, error)
}

type quizAutomationService struct {
	quizSets   domain.QuizSetRepository
	catalog    domain.CatalogRepository
	archive    domain.ArchiveRepository
	parseCache ParseResultCache
	logger     *zap.Logger
	now        func() time.Time
}

// NewQuizAutomationService creates a new instance of QuizAutomationService.
// archive and parseCache may be nil.
func NewQuizAutomationService(
	quizSets domain.QuizSetRepository,
	catalog domain.CatalogRepository,
	archive domain.ArchiveRepository,
	parseCache ParseResultCache,
	logger *zap.Logger,
) QuizAutomationService {
	return newQuizAutomationService(quizSets, catalog, archive, parseCache, logger)
}

func newQuizAutomationService(
	quizSets domain.QuizSetRepository,
	catalog domain.CatalogRepository,
	archive domain.ArchiveRepository,
	parseCache ParseResultCache,
	logger *zap.Logger,
) *quizAutomationService {
	if parseCache == nil {
		parseCache = &noopParseResultCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &quizAutomationService{
		quizSets:   quizSets,
		catalog:    catalog,
		archive:    archive,
		parseCache: parseCache,
		logger:     logger,
		now:        time.Now,
	}
}

// Parse implements QuizAutomationService
func (s *quizAutomationService) Parse(ctx context.Context, sourceName, content string) (*parser.Result, error) {
	hash := ContentHash(content)
	cached, err := s.parseCache.Get(ctx, hash)
	if err == nil {
		s.logger.Debug("Parse result served from cache", zap.String("source", sourceName), zap.String("hash", hash))
		return cached, nil
	}
	if !errors.Is(err, ErrParseResultNotFound) {
		s.logger.Warn("Parse result cache unavailable", zap.Error(err))
	}

	result, err := parser.Parse(content)
	if err != nil {
		return nil, mapParseError(sourceName, err)
	}

	if err := s.parseCache.Put(ctx, hash, result); err != nil {
		s.logger.Warn("Failed to cache parse result", zap.Error(err))
	}
	return result, nil
}

func mapParseError(sourceName string, err error) error {
	if errors.Is(err, parser.ErrEmptyDocument) {
		return domain.NewSourceUnavailableError(sourceName, err)
	}
	var cve *parser.ContractViolationError
	if errors.As(err, &cve) {
		return domain.NewContractViolationError(cve).WithContext("violations", cve.Violations)
	}
	return domain.NewInternalError("failed to parse document", err)
}

// Convert implements QuizAutomationService. Nothing is written unless the
// whole document passes validation.
func (s *quizAutomationService) Convert(ctx context.Context, in ConvertInput) (*ConvertResult, error) {
	if !ValidOutputName(in.OutputName) {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid output name: %q", in.OutputName))
	}

	runID := util.NewULID()
	log := s.logger.With(zap.String("run_id", runID), zap.String("source", in.SourceName))
	log.Info("Starting quiz conversion", zap.String("output", in.OutputName), zap.Int("content_length", len(in.Content)))

	result, err := s.Parse(ctx, in.SourceName, in.Content)
	if err != nil {
		log.Warn("Quiz conversion rejected", zap.Error(err))
		return nil, err
	}
	logReport(log, &result.Report)

	if err := ctx.Err(); err != nil {
		return nil, domain.NewInternalError("conversion cancelled", err)
	}

	fileName := QuizFileName(in.OutputName)
	existed, err := s.quizSets.Exists(ctx, fileName)
	if err != nil {
		return nil, err
	}
	outputPath, err := s.quizSets.Save(ctx, fileName, result.Questions)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entry := BuildCatalogEntry(fileName, len(result.Questions), in.QuizName, in.Description, now)
	catalog, err := s.catalog.Update(ctx, func(c *domain.Catalog) error {
		c.Put(fileName, entry, now)
		return nil
	})
	if err != nil {
		// A new quiz file without a catalog entry is unreachable from the front-end.
		if !existed {
			s.discardQuizSet(ctx, log, fileName)
		}
		return nil, err
	}
	log.Info("Configuration updated",
		zap.String("name", entry.Name),
		zap.Int("total_quiz_sets", catalog.Metadata.TotalQuizSets),
	)

	if s.archive != nil {
		record := &domain.QuizSetRecord{
			FileName:      fileName,
			Name:          entry.Name,
			Description:   entry.Description,
			SourceName:    in.SourceName,
			SourceHash:    ContentHash(in.Content),
			QuestionCount: len(result.Questions),
			Questions:     result.Questions,
			CreatedAt:     now,
		}
		if err := s.archive.SaveQuizSet(ctx, record); err != nil {
			log.Warn("Failed to archive quiz set", zap.Error(err))
		}
	}

	log.Info("Quiz conversion completed",
		zap.Int("questions", len(result.Questions)),
		zap.String("output_path", outputPath),
	)
	return &ConvertResult{
		RunID:      runID,
		FileName:   fileName,
		OutputPath: outputPath,
		Entry:      entry,
		Questions:  result.Questions,
		Report:     result.Report,
	}, nil
}

func logReport(log *zap.Logger, report *parser.Report) {
	for _, w := range report.Warnings {
		log.Warn(w.Message, zap.String("kind", string(w.Kind)), zap.Int("question_id", w.QuestionID))
	}
	log.Info("Parsed questions",
		zap.Int("found", report.TotalFound),
		zap.Int("accepted", report.Accepted),
		zap.Ints("skipped", report.Skipped),
		zap.Int("with_explanation", report.WithExplanation),
	)
}

// discardQuizSet removes a file written by a conversion that did not complete.
// It runs even when ctx is already done.
func (s *quizAutomationService) discardQuizSet(ctx context.Context, log *zap.Logger, fileName string) {
	if err := s.quizSets.Delete(context.WithoutCancel(ctx), fileName); err != nil {
		log.Warn("Failed to remove unregistered quiz set", zap.String("file", fileName), zap.Error(err))
		return
	}
	log.Info("Removed unregistered quiz set", zap.String("file", fileName))
}

// DeleteQuiz implements QuizAutomationService
func (s *quizAutomationService) DeleteQuiz(ctx context.Context, fileName string) (*DeleteResult, error) {
	exists, err := s.quizSets.Exists(ctx, fileName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Quiz file not found: %s", fileName))
	}

	if _, err := s.catalog.Load(ctx); err != nil {
		if errors.Is(err, domain.ErrCatalogNotFound) {
			return nil, domain.NewNotFoundError("Config file not found")
		}
		return nil, err
	}

	removed := false
	if _, err := s.catalog.Update(ctx, func(c *domain.Catalog) error {
		removed = c.Remove(fileName, s.now())
		return nil
	}); err != nil {
		return nil, err
	}
	if !removed {
		s.logger.Warn("Quiz not found in configuration", zap.String("file", fileName))
	}

	if err := s.quizSets.Delete(ctx, fileName); err != nil {
		return nil, err
	}

	if s.archive != nil {
		if err := s.archive.MarkDeleted(ctx, fileName); err != nil {
			s.logger.Warn("Failed to mark archived quiz set deleted", zap.String("file", fileName), zap.Error(err))
		}
	}

	s.logger.Info("Deleted quiz", zap.String("file", fileName), zap.Bool("catalog_entry_removed", removed))
	return &DeleteResult{FileName: fileName, CatalogEntryRemoved: removed}, nil
}

// ListQuizSets implements QuizAutomationService. A missing catalog is reported as empty.
func (s *quizAutomationService) ListQuizSets(ctx context.Context) (*domain.Catalog, error) {
	catalog, err := s.catalog.Load(ctx)
	if errors.Is(err, domain.ErrCatalogNotFound) {
		return domain.NewCatalog(), nil
	}
	return catalog, err
}

// LoadSourceFile reads a quiz document, dropping a leading UTF-8 BOM.
func LoadSourceFile(fs afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", domain.NewSourceUnavailableError(path, err)
	}
	if !utf8.Valid(data) {
		return "", domain.NewSourceUnavailableError(path, errors.New("document is not valid UTF-8"))
	}
	return strings.TrimPrefix(string(data), utf8BOM), nil
}
