// Package slug turns free text into the lower-case, hyphen separated form
// used in label names, e.g. "Astronomy & Physics" -> "astronomy-and-physics".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Symbols spelled out as words before anything is stripped.
var symbolWords = map[rune]string{
	'&': "and",
	'@': "at",
	'+': "plus",
	'%': "percent",
	'$': "dollar",
	'|': "or",
	'<': "less",
	'>': "greater",
	'€': "euro",
	'£': "pound",
	'∞': "infinity",
	'♥': "love",
}

// isSeparator reports runes that split words. Every other rune that is
// neither a letter nor a digit is dropped.
func isSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '-', '_', '.', ',', ':', ';', '/', '\\', '–', '—':
		return true
	}
	return false
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// Make returns the slug of s. It is idempotent: Make(Make(s)) == Make(s).
func Make(s string) string {
	var expanded strings.Builder
	for _, r := range s {
		if word, ok := symbolWords[r]; ok {
			expanded.WriteString(word)
			continue
		}
		expanded.WriteRune(r)
	}

	// Compatibility folding can produce upper case ("ℌ" -> "H"), so lower
	// case again afterwards.
	folded := strings.ToLower(foldDiacritics(strings.ToLower(expanded.String())))

	var out strings.Builder
	pendingDash := false
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && out.Len() > 0 {
				out.WriteByte('-')
			}
			pendingDash = false
			out.WriteRune(r)
		case isSeparator(r):
			pendingDash = true
		}
	}
	return out.String()
}
