package parser

import (
	"fmt"
	"regexp"
	"strings"

	"quiz-automation/internal/domain"
)

// minBlockLines is a question line plus two options.
const minBlockLines = 3

const explanationSeparator = "---"

// section is the part of a question block the scanner is currently in.
type section int

const (
	sectionQuestion section = iota
	sectionOptions
	sectionAnswer
	sectionExplanation
)

var (
	optionPattern      = regexp.MustCompile(`^([A-Z])[.)]` + spaceClass + `*(.+)$`)
	answerPattern      = regexp.MustCompile(`(?i)^(?:Answer|Correct(?:` + spaceClass + `+Answer)?s?|Hint` + spaceClass + `+Answer):` + spaceClass + `*([A-Z,` + spaceChars + `]+)`)
	answerLetter       = regexp.MustCompile(`[A-Z]`)
	explanationPattern = regexp.MustCompile(`(?i)^Explanation:` + spaceClass + `*(.*)`)
)

// Extract turns one block into a Question. It returns nil when the block does
// not hold enough to form a question; the reason is in the warnings.
func Extract(block domain.RawBlock) (*domain.Question, []Warning) {
	id := block.DeclaredNumber
	lines := nonEmptyLines(block.Text)
	if len(lines) < minBlockLines {
		return nil, []Warning{{
			Kind:       WarnInsufficientContent,
			QuestionID: id,
			Message:    fmt.Sprintf("skipped question %d: insufficient content (%d lines)", id, len(lines)),
		}}
	}

	var (
		question       []string
		explanation    []string
		options        []string
		correctAnswers []int
		answered       bool
		warnings       []Warning
	)

	current := sectionQuestion
	for _, line := range lines {
		if m := explanationPattern.FindStringSubmatch(line); m != nil {
			current = sectionExplanation
			if m[1] != "" {
				explanation = []string{m[1]}
			}
			continue
		}

		if m := answerPattern.FindStringSubmatch(line); m != nil {
			correctAnswers = answerIndices(m[1])
			answered = len(correctAnswers) > 0
			current = sectionAnswer
			continue
		}

		if m := optionPattern.FindStringSubmatch(line); m != nil {
			current = sectionOptions
			options = append(options, m[2])
			continue
		}

		switch current {
		case sectionQuestion:
			question = append(question, line)
		case sectionExplanation:
			explanation = append(explanation, line)
		}
	}

	if !answered {
		warnings = append(warnings, Warning{
			Kind:       WarnMissingAnswer,
			QuestionID: id,
			Message:    fmt.Sprintf("no correct answer specified for question %d, defaulting to option A", id),
		})
		correctAnswers = []int{0}
	}

	text := strings.Join(question, " ")
	if text == "" || len(options) < 2 {
		warnings = append(warnings, Warning{
			Kind:       WarnIncompleteQuestion,
			QuestionID: id,
			Message:    fmt.Sprintf("skipped incomplete question %d: question=%q, options=%d", id, text, len(options)),
		})
		return nil, warnings
	}

	return domain.NewQuestion(id, text, options, correctAnswers, cleanExplanation(strings.Join(explanation, " "))), warnings
}

// answerIndices converts every uppercase letter to a zero-based option index.
func answerIndices(s string) []int {
	letters := answerLetter.FindAllString(s, -1)
	indices := make([]int, 0, len(letters))
	for _, l := range letters {
		indices = append(indices, int(l[0]-'A'))
	}
	return indices
}

func cleanExplanation(s string) string {
	return trimSpace(strings.ReplaceAll(s, explanationSeparator, ""))
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = trimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
