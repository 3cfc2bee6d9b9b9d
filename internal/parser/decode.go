package parser

import (
	"encoding/json"
	"errors"
	"fmt"

	"quiz-automation/internal/domain"
)

// wireQuestion mirrors domain.Question with pointer fields so absent keys can
// be told apart from zero values.
type wireQuestion struct {
	ID             *int            `json:"id"`
	Question       *string         `json:"question"`
	Options        *[]string       `json:"options"`
	CorrectAnswers *[]int          `json:"correctAnswers"`
	Multiple       *bool           `json:"multiple"`
	Explanation    json.RawMessage `json:"explanation"`
}

var requiredFields = []string{"id", "question", "options", "correctAnswers", "multiple"}

// DecodeQuestions reads a serialized question set. A document that is not a
// JSON array returns a plain error; items with missing or mistyped fields are
// reported as a *ContractViolationError.
func DecodeQuestions(data []byte) ([]domain.Question, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("question set must be a JSON array: %w", err)
	}

	var violations []Violation
	questions := make([]domain.Question, 0, len(items))
	for i, raw := range items {
		q, vs := decodeQuestion(i, raw)
		if len(vs) > 0 {
			violations = append(violations, vs...)
			continue
		}
		questions = append(questions, *q)
	}

	if len(violations) > 0 {
		return nil, &ContractViolationError{Violations: violations}
	}
	return questions, nil
}

func decodeQuestion(index int, raw json.RawMessage) (*domain.Question, []Violation) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, []Violation{{Index: index, Message: "must be an object"}}
	}

	var out []Violation
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			out = append(out, Violation{Index: index, Field: name, Message: fmt.Sprintf("missing required field %q", name)})
		}
	}
	if len(out) > 0 {
		return nil, out
	}

	var w wireQuestion
	if err := json.Unmarshal(raw, &w); err != nil {
		field := ""
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field = typeErr.Field
		}
		return nil, []Violation{{Index: index, Field: field, Message: fmt.Sprintf("wrong type: %v", err)}}
	}

	q := domain.Question{Multiple: w.Multiple != nil && *w.Multiple}
	if w.ID != nil {
		q.ID = *w.ID
	}
	if w.Question != nil {
		q.Question = *w.Question
	}
	if w.Options != nil {
		q.Options = *w.Options
	}
	if w.CorrectAnswers != nil {
		q.CorrectAnswers = *w.CorrectAnswers
	}
	if len(w.Explanation) > 0 && string(w.Explanation) != "null" {
		if err := json.Unmarshal(w.Explanation, &q.Explanation); err != nil {
			return nil, []Violation{{Index: index, ID: q.ID, Field: "explanation", Message: "explanation must be a string"}}
		}
	}
	return &q, nil
}
