package domain

// RawBlock is one question-sized slice of a source document, as found by the splitter.
type RawBlock struct {
	DeclaredNumber int
	Text           string
}

// Question is a single multiple-choice question of a quiz set.
// Its JSON form is the on-disk format read by the front-end.
type Question struct {
	ID             int      `json:"id"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers"`
	Multiple       bool     `json:"multiple"`
	Explanation    string   `json:"explanation,omitempty"`
}

// NewQuestion creates a Question and derives Multiple from the answer set.
func NewQuestion(id int, text string, options []string, correctAnswers []int, explanation string) *Question {
	return &Question{
		ID:             id,
		Question:       text,
		Options:        options,
		CorrectAnswers: correctAnswers,
		Multiple:       len(correctAnswers) > 1,
		Explanation:    explanation,
	}
}

// HasExplanation reports whether the question carries a non-empty explanation.
func (q *Question) HasExplanation() bool {
	return q.Explanation != ""
}
