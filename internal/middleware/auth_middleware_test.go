package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"quiz-automation/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-admin-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name             string
		secret           string
		authHeader       func(t *testing.T) string
		expectedStatus   int
		expectNextCalled bool
		expectedSubject  interface{}
	}{
		{
			name:             "Disabled Without Secret",
			secret:           "",
			authHeader:       func(t *testing.T) string { return "" },
			expectedStatus:   fiber.StatusOK,
			expectNextCalled: true,
			expectedSubject:  nil,
		},
		{
			name:   "Valid Token",
			secret: testSecret,
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), time.Hour)
			},
			expectedStatus:   fiber.StatusOK,
			expectNextCalled: true,
			expectedSubject:  "admin",
		},
		{
			name:             "Missing Header",
			secret:           testSecret,
			authHeader:       func(t *testing.T) string { return "" },
			expectedStatus:   fiber.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name:             "Not Bearer",
			secret:           testSecret,
			authHeader:       func(t *testing.T) string { return "Basic YWRtaW46YWRtaW4=" },
			expectedStatus:   fiber.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name:   "Wrong Secret",
			secret: testSecret,
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other-secret"), time.Hour)
			},
			expectedStatus:   fiber.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name:   "Expired Token",
			secret: testSecret,
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), -time.Minute)
			},
			expectedStatus:   fiber.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name:   "Unexpected Signing Method",
			secret: testSecret,
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), time.Hour)
			},
			expectedStatus:   fiber.StatusUnauthorized,
			expectNextCalled: false,
		},
		{
			name:             "Garbage Token",
			secret:           testSecret,
			authHeader:       func(t *testing.T) string { return "Bearer not.a.jwt" },
			expectedStatus:   fiber.StatusUnauthorized,
			expectNextCalled: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})

			nextHandlerCalled := false
			var subject interface{}
			app.Post("/admin", middleware.AdminOnly(tc.secret), func(c *fiber.Ctx) error {
				nextHandlerCalled = true
				subject = c.Locals(middleware.SubjectKey)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("POST", "/admin", nil)
			if header := tc.authHeader(t); header != "" {
				req.Header.Set("Authorization", header)
			}

			resp, err := app.Test(req, -1)

			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			assert.Equal(t, tc.expectNextCalled, nextHandlerCalled)
			if tc.expectNextCalled {
				assert.Equal(t, tc.expectedSubject, subject)
			}
		})
	}
}
