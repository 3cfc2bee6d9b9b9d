package parser

import (
	"strconv"
	"strings"
	"unicode"
)

// spaceChars lists the characters isSpace accepts, for use inside a regexp
// character class.
const (
	spaceChars = `\t\n\v\f\r\x{1c}-\x{1f}\x{85}\p{Z}`
	spaceClass = `[` + spaceChars + `]`
)

// isSpace reports whitespace as quiz authors produce it: the Unicode spaces,
// plus the ASCII file/group/record/unit separators.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func leadingSpace(s string) int {
	return len(s) - len(strings.TrimLeftFunc(s, isSpace))
}

// parseNumber converts a run of decimal digits from any script to an int.
func parseNumber(s string) (int, error) {
	var ascii strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			ascii.WriteRune(r)
			continue
		}
		if !unicode.Is(unicode.Nd, r) {
			return 0, strconv.ErrSyntax
		}
		ascii.WriteByte(byte('0' + digitValue(r)))
	}
	return strconv.Atoi(ascii.String())
}

// digitValue relies on every Nd run being made of whole 0-9 sequences.
func digitValue(r rune) int {
	start := r
	for unicode.Is(unicode.Nd, start-1) {
		start--
	}
	return int(r-start) % 10
}
