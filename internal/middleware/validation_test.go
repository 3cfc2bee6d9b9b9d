package middleware_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"quiz-automation/internal/dto"
	"quiz-automation/internal/middleware"
	"quiz-automation/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidationApp(captured **dto.CreateQuizRequest) *fiber.App {
	vm := middleware.NewValidationMiddleware(validation.NewValidator("quiz-config.json"))
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Post("/create", vm.ValidateCreateQuiz(), func(c *fiber.Ctx) error {
		*captured = c.Locals(middleware.ValidatedRequestKey).(*dto.CreateQuizRequest)
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestValidateCreateQuiz(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Valid Body Is Trimmed",
			body:           `{"quiz_id":" aws ","quiz_name":"AWS","file_content":"Question 1\n..."}`,
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "Empty Body",
			body:           "",
			expectedStatus: fiber.StatusBadRequest,
			expectedError:  "No data received",
		},
		{
			name:           "Invalid JSON",
			body:           `{"quiz_id":`,
			expectedStatus: fiber.StatusBadRequest,
			expectedError:  "Invalid JSON",
		},
		{
			name:           "Blank Fields Count As Missing",
			body:           `{"quiz_id":"  ","quiz_name":"AWS","file_content":" \n "}`,
			expectedStatus: fiber.StatusBadRequest,
			expectedError:  "Missing required fields: quiz_id, file_content",
		},
		{
			name:           "Bad Quiz ID",
			body:           `{"quiz_id":"../../etc","quiz_name":"AWS","file_content":"x"}`,
			expectedStatus: fiber.StatusBadRequest,
			expectedError:  "quiz_id: quiz_id has an invalid format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured *dto.CreateQuizRequest
			app := newValidationApp(&captured)

			req := httptest.NewRequest("POST", "/create", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			if tc.expectedStatus == fiber.StatusOK {
				require.NotNil(t, captured)
				assert.Equal(t, "aws", captured.QuizID)
				return
			}
			assert.Nil(t, captured)
			assert.Contains(t, decodeError(t, resp.Body).Error, tc.expectedError)
		})
	}
}

func TestValidateDeleteQuiz_RejectsCatalog(t *testing.T) {
	vm := middleware.NewValidationMiddleware(validation.NewValidator("quiz-config.json"))
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Post("/delete", vm.ValidateDeleteQuiz(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("POST", "/delete", strings.NewReader(`{"filename":"quiz-config.json"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, resp.Body).Error, "filename")
}
