package middleware

import (
	"quiz-automation/internal/domain"
	"quiz-automation/internal/dto"
	"quiz-automation/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedRequestKey is the fiber.Ctx locals key holding the validated request body.
const ValidatedRequestKey = "validated_request"

type normalizer interface {
	Normalize()
}

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(validator *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validator,
	}
}

// ValidateCreateQuiz binds and validates a dto.CreateQuizRequest body
func (vm *ValidationMiddleware) ValidateCreateQuiz() fiber.Handler {
	return vm.bind(func() normalizer { return &dto.CreateQuizRequest{} })
}

// ValidateDeleteQuiz binds and validates a dto.DeleteQuizRequest body
func (vm *ValidationMiddleware) ValidateDeleteQuiz() fiber.Handler {
	return vm.bind(func() normalizer { return &dto.DeleteQuizRequest{} })
}

func (vm *ValidationMiddleware) bind(newReq func() normalizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(c.Body()) == 0 {
			return domain.NewInvalidInputError("No data received")
		}

		req := newReq()
		if err := c.BodyParser(req); err != nil {
			return domain.NewInvalidInputError("Invalid JSON: " + err.Error())
		}
		req.Normalize()

		if errors := vm.validator.Struct(req); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		// Store validated value in context for handlers to use
		c.Locals(ValidatedRequestKey, req)
		return c.Next()
	}
}
