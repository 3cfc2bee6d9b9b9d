package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"quiz-automation/internal/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	quizFilePrefix = "quiz_"
	quizFileExt    = ".json"
)

var outputNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidOutputName reports whether name can be used to build a quiz file name.
func ValidOutputName(name string) bool {
	return outputNamePattern.MatchString(name)
}

// QuizFileName returns the quiz set file name for an output name.
func QuizFileName(outputName string) string {
	return quizFilePrefix + outputName + quizFileExt
}

// AutoQuizName derives a display name from a quiz file name:
// "quiz_aws_security.json" with 12 questions becomes "Aws Security (12 questions)".
func AutoQuizName(fileName string, questionCount int) string {
	base := strings.ReplaceAll(fileName, quizFilePrefix, "")
	base = strings.ReplaceAll(base, quizFileExt, "")
	base = strings.ReplaceAll(base, "_", " ")
	base = cases.Title(language.Und).String(base)
	return fmt.Sprintf("%s (%d questions)", base, questionCount)
}

// DecorateQuizName adds the question count to a user supplied name unless it
// already carries one. An existing parenthetical gets the count prepended.
func DecorateQuizName(name string, questionCount int) string {
	if strings.Contains(name, "questions)") || strings.Contains(name, "question)") {
		return name
	}
	if strings.Contains(name, "(") {
		return strings.Replace(name, "(", fmt.Sprintf("(%d questions, ", questionCount), 1)
	}
	return fmt.Sprintf("%s (%d questions)", name, questionCount)
}

// DefaultDescription is used when no description was supplied.
func DefaultDescription(quizName string) string {
	base, _, _ := strings.Cut(quizName, " (")
	return "Practice questions for " + base
}

// BuildCatalogEntry assembles the catalog entry for a freshly converted quiz set.
func BuildCatalogEntry(fileName string, questionCount int, quizName, description string, now time.Time) domain.CatalogEntry {
	if quizName == "" {
		quizName = AutoQuizName(fileName, questionCount)
	} else {
		quizName = DecorateQuizName(quizName, questionCount)
	}
	if description == "" {
		description = DefaultDescription(quizName)
	}
	return domain.CatalogEntry{
		Name:          quizName,
		Description:   description,
		Difficulty:    domain.DefaultDifficulty,
		QuestionCount: questionCount,
		AutoGenerated: true,
		CreatedDate:   now.Format("2006-01-02"),
		Source:        domain.SourceAutomated,
	}
}
