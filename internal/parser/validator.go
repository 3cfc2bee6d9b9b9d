package parser

import (
	"fmt"
	"strings"

	"quiz-automation/internal/domain"
)

// Violation is one broken structural rule of a question set.
type Violation struct {
	// Index is the zero-based position in the collection, -1 for collection-wide rules.
	Index   int    `json:"index"`
	ID      int    `json:"id"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Index < 0 {
		return v.Message
	}
	return fmt.Sprintf("question %d: %s", v.Index+1, v.Message)
}

// ContractViolationError reports every violation found in a question set.
type ContractViolationError struct {
	Violations []Violation
}

func (e *ContractViolationError) Error() string {
	if len(e.Violations) == 0 {
		return "question set is invalid"
	}
	msg := e.Violations[0].String()
	if n := len(e.Violations) - 1; n > 0 {
		msg = fmt.Sprintf("%s (and %d more violations)", msg, n)
	}
	return msg
}

// Summary describes a question set that passed validation.
type Summary struct {
	Total           int `json:"total"`
	WithExplanation int `json:"with_explanation"`
}

// Validate checks the structural rules of a question set. Every question is
// checked in full; the returned error lists all violations.
func Validate(questions []domain.Question) (*Summary, error) {
	if len(questions) == 0 {
		return nil, &ContractViolationError{Violations: []Violation{{
			Index:   -1,
			Message: "no questions found",
		}}}
	}

	var violations []Violation
	summary := &Summary{Total: len(questions)}
	for i := range questions {
		q := &questions[i]
		violations = append(violations, checkQuestion(i, q)...)
		if q.HasExplanation() {
			summary.WithExplanation++
		}
	}

	if len(violations) > 0 {
		return nil, &ContractViolationError{Violations: violations}
	}
	return summary, nil
}

func checkQuestion(index int, q *domain.Question) []Violation {
	var out []Violation
	add := func(field, format string, args ...interface{}) {
		out = append(out, Violation{
			Index:   index,
			ID:      q.ID,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if strings.TrimSpace(q.Question) == "" {
		add("question", "question text is empty")
	}
	if len(q.Options) < 2 {
		add("options", "must have at least 2 options, got %d", len(q.Options))
	}
	if len(q.CorrectAnswers) == 0 {
		add("correctAnswers", "must have at least one correct answer")
	}
	for _, idx := range q.CorrectAnswers {
		if idx < 0 || idx >= len(q.Options) {
			add("correctAnswers", "invalid answer index %d (options: %d)", idx, len(q.Options))
		}
	}
	if q.Multiple != (len(q.CorrectAnswers) > 1) {
		add("multiple", "multiple is %t but question has %d correct answers", q.Multiple, len(q.CorrectAnswers))
	}
	return out
}
