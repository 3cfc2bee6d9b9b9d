package middleware

import (
	"errors"
	"net/http"
	"strings"

	"quiz-automation/internal/domain"
	"quiz-automation/internal/dto"
	"quiz-automation/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is a centralized error handling middleware. Every failure is
// answered with the {success: false, error} shape the front-end expects.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger := logger.Get()

		// Handle validation errors
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			logger.Warn("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Strings("fields", validationErrs.Fields()),
			)
			return c.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{
				Error:   validationMessage(validationErrs),
				Code:    string(domain.CodeValidation),
				Details: map[string]interface{}{"fields": validationErrs},
			})
		}

		// Handle domain errors
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			fields := []zap.Field{
				zap.String("path", c.Path()),
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Cause),
			}
			if statusCode >= http.StatusInternalServerError {
				logger.Error("Domain error occurred", fields...)
			} else {
				logger.Warn("Domain error occurred", fields...)
			}

			message := domainErr.Message
			// Causes of client errors are safe to show; server-side causes stay in the log.
			if domainErr.Cause != nil && statusCode < http.StatusInternalServerError {
				message = domainErr.Error()
			}
			return c.Status(statusCode).JSON(dto.ErrorResponse{
				Error:   message,
				Code:    string(domainErr.Code),
				Details: domainErr.Context,
			})
		}

		// Handle fiber errors
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Error: fiberErr.Message,
				Code:  "HTTP_ERROR",
			})
		}

		// Handle unknown errors
		logger.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
			Code:  string(domain.CodeInternal),
		})
	}
}

// validationMessage lists missing fields the way the config page displays them.
func validationMessage(errs domain.ValidationErrors) string {
	var missing []string
	for _, e := range errs {
		if e.Code == domain.CodeMissingField {
			missing = append(missing, e.Field)
		}
	}
	if len(missing) == len(errs) && len(missing) > 0 {
		if len(missing) == 1 {
			return "Missing required field: " + missing[0]
		}
		return "Missing required fields: " + strings.Join(missing, ", ")
	}
	return errs.Error()
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeValidation, domain.CodeMissingField,
		domain.CodeInvalidFormat, domain.CodeSourceUnavailable:
		return http.StatusBadRequest
	case domain.CodeContractViolation:
		return http.StatusUnprocessableEntity
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
