package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQuestions(t *testing.T) {
	data := []byte(`[
  {"id": 1, "question": "Q?", "options": ["a", "b"], "correctAnswers": [1], "multiple": false, "explanation": "why"},
  {"id": 2, "question": "R?", "options": ["a", "b", "c"], "correctAnswers": [0, 2], "multiple": true}
]`)

	questions, err := DecodeQuestions(data)

	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "why", questions[0].Explanation)
	assert.Equal(t, []int{0, 2}, questions[1].CorrectAnswers)
	assert.True(t, questions[1].Multiple)
}

func TestDecodeQuestions_NotAnArray(t *testing.T) {
	_, err := DecodeQuestions([]byte(`{"id": 1}`))

	require.Error(t, err)
	var cve *ContractViolationError
	assert.False(t, errors.As(err, &cve))
}

func TestDecodeQuestions_Violations(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantField string
	}{
		{"not an object", `["text"]`, ""},
		{"missing options", `[{"id": 1, "question": "Q?", "correctAnswers": [0], "multiple": false}]`, "options"},
		{"missing multiple", `[{"id": 1, "question": "Q?", "options": ["a", "b"], "correctAnswers": [0]}]`, "multiple"},
		{"options wrong type", `[{"id": 1, "question": "Q?", "options": "a,b", "correctAnswers": [0], "multiple": false}]`, "options"},
		{"explanation wrong type", `[{"id": 1, "question": "Q?", "options": ["a", "b"], "correctAnswers": [0], "multiple": false, "explanation": 3}]`, "explanation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeQuestions([]byte(tt.data))

			var cve *ContractViolationError
			require.True(t, errors.As(err, &cve))
			assert.Equal(t, tt.wantField, cve.Violations[0].Field)
			assert.Equal(t, 0, cve.Violations[0].Index)
		})
	}
}
