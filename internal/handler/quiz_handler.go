package handler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"quiz-automation/internal/domain"
	"quiz-automation/internal/dto"
	"quiz-automation/internal/logger"
	"quiz-automation/internal/middleware"
	"quiz-automation/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultConversionTimeout = 30 * time.Second

// QuizHandler handles quiz-set HTTP requests
type QuizHandler struct {
	service           service.QuizAutomationService
	conversionTimeout time.Duration
}

// NewQuizHandler creates a new QuizHandler instance. A non-positive timeout
// falls back to 30 seconds.
func NewQuizHandler(service service.QuizAutomationService, conversionTimeout time.Duration) *QuizHandler {
	if conversionTimeout <= 0 {
		conversionTimeout = defaultConversionTimeout
	}
	return &QuizHandler{
		service:           service,
		conversionTimeout: conversionTimeout,
	}
}

// CreateQuiz godoc
// @Summary Convert a quiz document
// @Description Parses a plain-text quiz document, saves it as quiz_<quiz_id>.json and registers it in the catalog
// @Tags quiz-sets
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz document"
// @Success 200 {object} dto.CreateQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /create-quiz [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.ValidatedRequestKey).(*dto.CreateQuizRequest)
	if !ok {
		return domain.NewInternalError("create-quiz request was not validated", nil)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.conversionTimeout)
	defer cancel()

	result, err := h.service.Convert(ctx, service.ConvertInput{
		Content:     req.FileContent,
		SourceName:  req.QuizID + ".txt",
		OutputName:  req.QuizID,
		QuizName:    req.QuizName,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.NewTimeoutError(
				fmt.Sprintf("Quiz creation timed out (%d seconds)", int(h.conversionTimeout.Seconds())), err)
		}
		return err
	}

	warnings := make([]string, 0, len(result.Report.Warnings))
	for _, w := range result.Report.Warnings {
		warnings = append(warnings, w.String())
	}

	logger.Get().Info("Quiz created",
		zap.String("request_id", middleware.RequestID(c)),
		zap.String("run_id", result.RunID),
		zap.String("file", result.FileName),
		zap.Int("questions", len(result.Questions)),
	)

	return c.JSON(dto.CreateQuizResponse{
		Success:            true,
		Message:            fmt.Sprintf("Quiz \"%s\" created successfully!", req.QuizName),
		QuestionsProcessed: len(result.Questions),
		Output:             fmt.Sprintf("Quiz created with %d questions", len(result.Questions)),
		FileName:           result.FileName,
		RunID:              result.RunID,
		Skipped:            result.Report.Skipped,
		Warnings:           warnings,
	})
}

// DeleteQuiz godoc
// @Summary Delete a quiz set
// @Description Removes a quiz set file and its catalog entry
// @Tags quiz-sets
// @Accept json
// @Produce json
// @Param request body dto.DeleteQuizRequest true "Quiz set to delete"
// @Success 200 {object} dto.DeleteQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /delete-quiz [post]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.ValidatedRequestKey).(*dto.DeleteQuizRequest)
	if !ok {
		return domain.NewInternalError("delete-quiz request was not validated", nil)
	}

	result, err := h.service.DeleteQuiz(c.UserContext(), req.Filename)
	if err != nil {
		return err
	}

	displayName := req.QuizName
	if displayName == "" {
		displayName = result.FileName
	}
	return c.JSON(dto.DeleteQuizResponse{
		Success:  true,
		Message:  fmt.Sprintf("Quiz \"%s\" deleted successfully!", displayName),
		Filename: result.FileName,
	})
}

// ListQuizSets godoc
// @Summary List quiz sets
// @Description Returns every quiz set registered in the catalog, ordered by file name
// @Tags quiz-sets
// @Produce json
// @Success 200 {object} dto.QuizSetsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz-sets [get]
func (h *QuizHandler) ListQuizSets(c *fiber.Ctx) error {
	catalog, err := h.service.ListQuizSets(c.UserContext())
	if err != nil {
		return err
	}

	sets := make([]dto.QuizSetResponse, 0, len(catalog.QuizSets))
	for fileName, entry := range catalog.QuizSets {
		sets = append(sets, dto.QuizSetResponse{
			FileName:      fileName,
			Name:          entry.Name,
			Description:   entry.Description,
			Difficulty:    entry.Difficulty,
			QuestionCount: entry.QuestionCount,
			CreatedDate:   entry.CreatedDate,
			Source:        entry.Source,
		})
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].FileName < sets[j].FileName })

	return c.JSON(dto.QuizSetsResponse{
		QuizSets:      sets,
		TotalQuizSets: len(sets),
		LastUpdated:   catalog.Metadata.LastUpdated,
	})
}
