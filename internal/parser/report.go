package parser

import (
	"fmt"

	"quiz-automation/internal/domain"
)

// WarningKind classifies a recoverable problem found while parsing.
type WarningKind string

const (
	WarnUnmatchedMarker     WarningKind = "unmatched_marker"
	WarnEmptyBlock          WarningKind = "empty_block"
	WarnInsufficientContent WarningKind = "insufficient_content"
	WarnMissingAnswer       WarningKind = "missing_answer"
	WarnIncompleteQuestion  WarningKind = "incomplete_question"
)

// Warning is a per-question anomaly. Warnings never abort a run.
type Warning struct {
	Kind       WarningKind `json:"kind"`
	QuestionID int         `json:"question_id"`
	Message    string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

// Report summarises one run over a document.
type Report struct {
	TotalFound      int       `json:"total_found"`
	Accepted        int       `json:"accepted"`
	Skipped         []int     `json:"skipped"`
	WithExplanation int       `json:"with_explanation"`
	Warnings        []Warning `json:"warnings"`
}

// SkippedCount returns the number of blocks that were found but not accepted.
func (r *Report) SkippedCount() int {
	return len(r.Skipped)
}

// WarningsOf returns the warnings of the given kind, in the order they were recorded.
func (r *Report) WarningsOf(kind WarningKind) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// Result is the accepted question set of a document together with its report.
type Result struct {
	Questions []domain.Question `json:"questions"`
	Report    Report            `json:"report"`
}
