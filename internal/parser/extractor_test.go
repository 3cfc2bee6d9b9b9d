package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-automation/internal/domain"
)

func block(n int, text string) domain.RawBlock {
	return domain.RawBlock{DeclaredNumber: n, Text: text}
}

func TestExtract_SingleAnswer(t *testing.T) {
	q, warnings := Extract(block(1, "What is the capital of France?\nA) London\nB) Berlin\nC) Paris\nAnswer: C"))

	require.NotNil(t, q)
	assert.Empty(t, warnings)
	assert.Equal(t, 1, q.ID)
	assert.Equal(t, "What is the capital of France?", q.Question)
	assert.Equal(t, []string{"London", "Berlin", "Paris"}, q.Options)
	assert.Equal(t, []int{2}, q.CorrectAnswers)
	assert.False(t, q.Multiple)
	assert.False(t, q.HasExplanation())
}

func TestExtract_MultipleAnswers(t *testing.T) {
	q, _ := Extract(block(2, "Pick the primary colors\nA. Red\nB. Green\nC. Blue\nCorrect Answers: A, C"))

	require.NotNil(t, q)
	assert.Equal(t, []int{0, 2}, q.CorrectAnswers)
	assert.True(t, q.Multiple)
}

func TestExtract_AnswerLabels(t *testing.T) {
	labels := []string{"Answer: B", "answer: B", "Correct: B", "Correct Answer: B", "Corrects: B", "Hint Answer: B"}
	for _, label := range labels {
		t.Run(label, func(t *testing.T) {
			q, warnings := Extract(block(1, "Q?\nA) a\nB) b\n"+label))
			require.NotNil(t, q)
			assert.Empty(t, warnings)
			assert.Equal(t, []int{1}, q.CorrectAnswers)
		})
	}
}

func TestExtract_LastAnswerLineWins(t *testing.T) {
	q, _ := Extract(block(1, "Q?\nA) a\nB) b\nAnswer: A\nAnswer: B"))

	require.NotNil(t, q)
	assert.Equal(t, []int{1}, q.CorrectAnswers)
}

func TestExtract_MissingAnswerDefaultsToFirstOption(t *testing.T) {
	q, warnings := Extract(block(5, "Q?\nA) a\nB) b"))

	require.NotNil(t, q)
	assert.Equal(t, []int{0}, q.CorrectAnswers)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnMissingAnswer, warnings[0].Kind)
	assert.Equal(t, 5, warnings[0].QuestionID)
}

func TestExtract_MultiLineQuestion(t *testing.T) {
	q, _ := Extract(block(1, "Which of these\n  are colors?\n\nA) Red\nB) Loud\nAnswer: A"))

	require.NotNil(t, q)
	assert.Equal(t, "Which of these are colors?", q.Question)
}

func TestExtract_ContinuationAfterOptionsIsDropped(t *testing.T) {
	q, _ := Extract(block(1, "Q?\nA) a\nstray note\nB) b\nAnswer: A\nafter answer"))

	require.NotNil(t, q)
	assert.Equal(t, "Q?", q.Question)
	assert.Equal(t, []string{"a", "b"}, q.Options)
}

func TestExtract_Explanation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "inline",
			text: "Q?\nA) a\nB) b\nAnswer: A\nExplanation: Because a.",
			want: "Because a.",
		},
		{
			name: "multi line with separator",
			text: "Q?\nA) a\nB) b\nAnswer: A\nExplanation:\nParis is the capital.\nIt is in France.\n---",
			want: "Paris is the capital. It is in France.",
		},
		{
			name: "inline text replaces earlier lines",
			text: "Q?\nA) a\nB) b\nAnswer: A\nExplanation:\nold\nExplanation: new",
			want: "new",
		},
		{
			name: "separator only",
			text: "Q?\nA) a\nB) b\nAnswer: A\nExplanation:\n---",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := Extract(block(1, tt.text))
			require.NotNil(t, q)
			assert.Equal(t, tt.want, q.Explanation)
		})
	}
}

func TestExtract_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantKind WarningKind
	}{
		{"too few lines", "Q?\nA) a", WarnInsufficientContent},
		{"one option", "Q?\nA) only\nAnswer: A", WarnIncompleteQuestion},
		{"no question text", "A) a\nB) b\nAnswer: A", WarnIncompleteQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, warnings := Extract(block(9, tt.text))
			assert.Nil(t, q)
			require.NotEmpty(t, warnings)
			last := warnings[len(warnings)-1]
			assert.Equal(t, tt.wantKind, last.Kind)
			assert.Equal(t, 9, last.QuestionID)
		})
	}
}

func TestExtract_UnicodeWhitespace(t *testing.T) {
	text := "\u2003What is the capital of France?\u00a0\n" +
		"A.\u00a0Berlin\n" +
		"B)\u3000Paris\n" +
		"Answer:\u00a0B\n" +
		"Explanation:\u00a0Paris is the capital.\x1f"

	q, warnings := Extract(block(3, text))

	require.NotNil(t, q)
	assert.Empty(t, warnings)
	assert.Equal(t, "What is the capital of France?", q.Question)
	assert.Equal(t, []string{"Berlin", "Paris"}, q.Options)
	assert.Equal(t, []int{1}, q.CorrectAnswers)
	assert.Equal(t, "Paris is the capital.", q.Explanation)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"42", 42},
		{"\u0664\u0662", 42},
		{"\uff14\uff12", 42},
		{"\U0001D7D2", 4},
	}
	for _, tt := range tests {
		got, err := parseNumber(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := parseNumber("4x")
	assert.Error(t, err)
}
