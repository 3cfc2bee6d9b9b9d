package handler

import (
	"quiz-automation/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the quiz-set API on router (normally the /api group).
// Mutating routes require an admin token when adminSecret is set.
func RegisterRoutes(router fiber.Router, h *QuizHandler, vm *middleware.ValidationMiddleware, adminSecret string) {
	admin := middleware.AdminOnly(adminSecret)

	router.Get("/quiz-sets", h.ListQuizSets)
	router.Post("/create-quiz", admin, vm.ValidateCreateQuiz(), h.CreateQuiz)
	router.Post("/delete-quiz", admin, vm.ValidateDeleteQuiz(), h.DeleteQuiz)
}
