package textanalysis

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases raw text and strips everything that is not part of a
// word. Apostrophes survive only inside words ("don't"). Runs of whitespace
// collapse to a single space.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	runes := []rune(norm.NFC.String(raw))
	var b strings.Builder
	b.Grow(len(raw))

	pendingSpace := false
	for i, r := range runes {
		var keep bool
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
			keep = true
		case r == '\'' || r == '’':
			keep = i > 0 && i < len(runes)-1 &&
				unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1])
			r = '\''
		}

		if !keep {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
	}

	// Lowercasing can leave letter+mark pairs that only compose afterwards.
	return norm.NFC.String(b.String())
}

// words splits normalized text on spaces.
func words(normalized string) []string {
	return strings.Fields(normalized)
}
