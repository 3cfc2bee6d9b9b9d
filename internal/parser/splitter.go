package parser

import (
	"fmt"
	"regexp"
	"strings"

	"quiz-automation/internal/domain"
)

// Convention identifies which question numbering style introduced a block.
type Convention int

const (
	ConventionNone Convention = iota
	// "Question #: 3", "Question: 3", "Question 3", "Question 4:"
	ConventionLabelColon
	// "Question #4:", shadowed by ConventionLabelColon
	ConventionNumberColon
	// "5."
	ConventionNumberDot
)

func (c Convention) String() string {
	switch c {
	case ConventionLabelColon:
		return "label-colon"
	case ConventionNumberColon:
		return "number-colon"
	case ConventionNumberDot:
		return "number-dot"
	default:
		return "none"
	}
}

type headerMatcher struct {
	convention Convention
	pattern    *regexp.Regexp
}

// headerMatchers is tried top to bottom at every candidate boundary; the first
// match wins. Label-colon also takes every "Question 4:" header and leaves the
// colon at the start of the block, so number-colon never wins over it.
var headerMatchers = []headerMatcher{
	{
		convention: ConventionLabelColon,
		pattern:    regexp.MustCompile(`^Question` + spaceClass + `*#?:?` + spaceClass + `*(\p{Nd}+)`),
	},
	{
		convention: ConventionNumberColon,
		pattern:    regexp.MustCompile(`^Question` + spaceClass + `*#?` + spaceClass + `*(\p{Nd}+):`),
	},
	{
		convention: ConventionNumberDot,
		pattern:    regexp.MustCompile(`^(\p{Nd}+)\.`),
	},
}

// header is one recognised question marker inside the scanned document.
type header struct {
	number       string
	// offset of the newline that opened the header
	boundary     int
	// offset right after the header and its trailing whitespace
	contentStart int
}

// MatchHeader tries the numbering conventions against the start of s in
// priority order. It returns the winning convention, the raw number text and
// the length of the matched header.
func MatchHeader(s string) (Convention, string, int) {
	for _, m := range headerMatchers {
		loc := m.pattern.FindStringSubmatchIndex(s)
		if loc == nil {
			continue
		}
		return m.convention, s[loc[2]:loc[3]], loc[1]
	}
	return ConventionNone, "", 0
}

// Split segments a document into question blocks in document order.
// Text before the first question marker is discarded.
func Split(text string) ([]domain.RawBlock, []Warning) {
	// The synthetic newline lets the first question match like any other.
	doc := "\n" + text
	headers := scanHeaders(doc)

	var (
		blocks   []domain.RawBlock
		warnings []Warning
	)
	for i, h := range headers {
		end := len(doc)
		if i+1 < len(headers) {
			end = headers[i+1].boundary
		}

		number, err := parseNumber(h.number)
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:    WarnUnmatchedMarker,
				Message: fmt.Sprintf("question marker %q has no usable number", h.number),
			})
			continue
		}

		content := doc[h.contentStart:end]
		if trimSpace(content) == "" {
			warnings = append(warnings, Warning{
				Kind:       WarnEmptyBlock,
				QuestionID: number,
				Message:    fmt.Sprintf("question %d has no content", number),
			})
			continue
		}

		blocks = append(blocks, domain.RawBlock{
			DeclaredNumber: number,
			Text:           content,
		})
	}
	return blocks, warnings
}

func scanHeaders(doc string) []header {
	var headers []header
	pos := 0
	for pos < len(doc) {
		i := strings.IndexByte(doc[pos:], '\n')
		if i < 0 {
			break
		}
		boundary := pos + i
		start := boundary + 1 + leadingSpace(doc[boundary+1:])

		convention, number, length := MatchHeader(doc[start:])
		if convention == ConventionNone {
			pos = boundary + 1
			continue
		}

		// Whitespace after a header belongs to it, so a newline consumed here
		// cannot open the next header.
		contentStart := start + length
		contentStart += leadingSpace(doc[contentStart:])
		headers = append(headers, header{
			number:       number,
			boundary:     boundary,
			contentStart: contentStart,
		})
		pos = contentStart
	}
	return headers
}
