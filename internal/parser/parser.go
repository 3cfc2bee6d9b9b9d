// Package parser turns plain-text quiz documents into validated question sets.
//
// A run is split → extract → validate. Recoverable anomalies are collected as
// Warnings in the Report; a broken structural rule fails the whole document.
package parser

import (
	"errors"

	"quiz-automation/internal/domain"
)

// ErrEmptyDocument is returned for a document with no non-whitespace content.
var ErrEmptyDocument = errors.New("document is empty")

// Parse converts a document into a validated question set. The result is only
// returned when every accepted question passes validation.
func Parse(text string) (*Result, error) {
	text = trimSpace(text)
	if text == "" {
		return nil, ErrEmptyDocument
	}

	blocks, warnings := Split(text)
	report := Report{
		TotalFound: len(blocks),
		Skipped:    []int{},
		Warnings:   warnings,
	}

	questions := make([]domain.Question, 0, len(blocks))
	for _, block := range blocks {
		q, ws := Extract(block)
		report.Warnings = append(report.Warnings, ws...)
		if q == nil {
			report.Skipped = append(report.Skipped, block.DeclaredNumber)
			continue
		}
		questions = append(questions, *q)
	}

	summary, err := Validate(questions)
	if err != nil {
		return nil, err
	}

	report.Accepted = summary.Total
	report.WithExplanation = summary.WithExplanation
	if report.Warnings == nil {
		report.Warnings = []Warning{}
	}
	return &Result{Questions: questions, Report: report}, nil
}
