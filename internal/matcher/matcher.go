// Package matcher grades free-text answers against a canonical answer using
// deterministic normalization, number-word and plural rules.
package matcher

import (
	"strings"
	"unicode"

	"github.com/gertd/go-pluralize"
)

var plurals = pluralize.NewClient()

var quoteReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "‛", "'", "′", "'",
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`, "″", `"`,
)

// Normalize lowercases s, unifies quotes, replaces anything other than
// ASCII letters, digits, whitespace and hyphens with a space, and collapses
// runs of whitespace.
func Normalize(s string) string {
	s = quoteReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// IsEquivalent reports whether userAnswer should be accepted for
// correctAnswer. When both sides read as numbers, numeric equality decides.
func IsEquivalent(userAnswer, correctAnswer string) bool {
	userNum, userIsNum := CanonicalNumber(userAnswer)
	correctNum, correctIsNum := CanonicalNumber(correctAnswer)
	if userIsNum && correctIsNum {
		return userNum == correctNum
	}

	user := Normalize(userAnswer)
	correct := Normalize(correctAnswer)
	if user == correct {
		return true
	}
	return Singularize(user) == Singularize(correct)
}

// Singularize singularizes every space-separated token of a normalized string.
func Singularize(normalized string) string {
	tokens := strings.Fields(normalized)
	for i, tok := range tokens {
		if hasLetter(tok) {
			tokens[i] = plurals.Singular(tok)
		}
	}
	return strings.Join(tokens, " ")
}

// CanonicalNumber returns the digit string s denotes. Digit strings may use
// comma thousands separators; otherwise s is read as English number words.
func CanonicalNumber(s string) (string, bool) {
	if digits, ok := digitForm(s); ok {
		return stripLeadingZeros(digits), true
	}

	normalized := Normalize(s)
	if !hasLetter(normalized) {
		return "", false
	}
	n, ok := parseNumberWords(normalized)
	if !ok {
		return "", false
	}
	return stripLeadingZeros(n), true
}

// digitForm accepts a letter-free answer whose core is digits with optional
// comma separators, ignoring punctuation and quotes around it. A leading
// minus or an inner decimal point keeps it from being read as a number.
func digitForm(s string) (string, bool) {
	lowered := quoteReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, r := range lowered {
		if unicode.IsLetter(r) {
			return "", false
		}
	}
	core := strings.TrimFunc(lowered, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != '-'
	})
	if !isDigitsAndCommas(core) {
		return "", false
	}
	return strings.ReplaceAll(core, ",", ""), true
}

func isDigitsAndCommas(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ',':
		default:
			return false
		}
	}
	return digits > 0
}

func stripLeadingZeros(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}

func hasLetter(s string) bool {
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}
