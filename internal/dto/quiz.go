package dto

import "strings"

// CreateQuizRequest is the body of POST /api/create-quiz
// @Description Quiz document to convert and register
type CreateQuizRequest struct {
	QuizID      string `json:"quiz_id" validate:"required,quiz_id" example:"aws_security"`
	QuizName    string `json:"quiz_name" validate:"required" example:"AWS Security"`
	Description string `json:"description" example:"Practice questions for AWS Security"`
	FileContent string `json:"file_content" validate:"required"`
}

// Normalize trims every field.
func (r *CreateQuizRequest) Normalize() {
	r.QuizID = strings.TrimSpace(r.QuizID)
	r.QuizName = strings.TrimSpace(r.QuizName)
	r.Description = strings.TrimSpace(r.Description)
	r.FileContent = strings.TrimSpace(r.FileContent)
}

// CreateQuizResponse reports a successful conversion
type CreateQuizResponse struct {
	Success            bool     `json:"success"`
	Message            string   `json:"message"`
	QuestionsProcessed int      `json:"questions_processed"`
	Output             string   `json:"output"`
	FileName           string   `json:"filename"`
	RunID              string   `json:"run_id"`
	Skipped            []int    `json:"skipped"`
	Warnings           []string `json:"warnings"`
}

// DeleteQuizRequest is the body of POST /api/delete-quiz
type DeleteQuizRequest struct {
	Filename string `json:"filename" validate:"required,quiz_file" example:"quiz_aws_security.json"`
	QuizName string `json:"quiz_name" example:"AWS Security (12 questions)"`
}

// Normalize trims every field.
func (r *DeleteQuizRequest) Normalize() {
	r.Filename = strings.TrimSpace(r.Filename)
	r.QuizName = strings.TrimSpace(r.QuizName)
}

// DeleteQuizResponse reports a successful deletion
type DeleteQuizResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// QuizSetResponse is one catalog entry in GET /api/quiz-sets
type QuizSetResponse struct {
	FileName      string `json:"filename"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
	CreatedDate   string `json:"created_date"`
	Source        string `json:"source"`
}

// QuizSetsResponse lists the registered quiz sets
type QuizSetsResponse struct {
	QuizSets      []QuizSetResponse `json:"quiz_sets"`
	TotalQuizSets int               `json:"total_quiz_sets"`
	LastUpdated   string            `json:"last_updated"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
