package middleware

import (
	"errors"
	"strings"

	"quiz-automation/internal/domain"
	"quiz-automation/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	SubjectKey          = "subject" // Key for storing the token subject in fiber.Ctx locals
)

// AdminOnly protects the mutating quiz endpoints with an HS256 bearer token
// signed with secret. An empty secret disables the check.
func AdminOnly(secret string) fiber.Handler {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}

		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return domain.NewUnauthorizedError("Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return domain.NewUnauthorizedError("Token is empty")
		}

		claims := &jwt.RegisteredClaims{}
		_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil {
			logger.Get().Debug("Admin token rejected", zap.Error(err), zap.String("path", c.Path()))
			if errors.Is(err, jwt.ErrTokenExpired) {
				return domain.NewUnauthorizedError("Token has expired")
			}
			return domain.NewUnauthorizedError("Invalid token")
		}

		c.Locals(SubjectKey, claims.Subject)
		return c.Next()
	}
}
