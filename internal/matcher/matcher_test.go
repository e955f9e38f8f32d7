package matcher_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/learntrack/internal/matcher"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  Hello   World ":         "hello world",
		"“Quoted”":        "quoted",
		"don’t":                "don t",
		"ice-cream!":                "ice-cream",
		"a,b;c":                     "a b c",
		"\tTabs\nand\r\nnewlines ": "tabs and newlines",
		"":                          "",
		"???":                       "",
	}
	for in, want := range tests {
		assert.Equal(t, want, matcher.Normalize(in), "input %q", in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []string{"Apples!", "  the “big” dog ", "twenty-one", "3,000"} {
		once := matcher.Normalize(in)
		assert.Equal(t, once, matcher.Normalize(once))
	}
}

func TestCanonicalNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "3", want: "3", ok: true},
		{in: "007", want: "7", ok: true},
		{in: "000", want: "0", ok: true},
		{in: "1,000", want: "1000", ok: true},
		{in: "three", want: "3", ok: true},
		{in: "Twelve", want: "12", ok: true},
		{in: "twenty-one", want: "21", ok: true},
		{in: "one hundred and five", want: "105", ok: true},
		{in: "a hundred", want: "100", ok: true},
		{in: "two thousand three hundred", want: "2300", ok: true},
		{in: "zero", want: "0", ok: true},
		{in: "apple", ok: false},
		{in: "three apples", ok: false},
		{in: "and", ok: false},
		{in: "a", ok: false},
		{in: "3.5", ok: false},
		{in: "3.", want: "3", ok: true},
		{in: "\"12\"", want: "12", ok: true},
		{in: "“1,000!”", want: "1000", ok: true},
		{in: "-3", ok: false},
		{in: strings.Repeat("hundred ", 12), ok: false},
		{in: "nine hundred ninety-nine billion", want: "999000000000", ok: true},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := matcher.CanonicalNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsEquivalent(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		correct string
		want    bool
	}{
		{name: "digit vs word", user: "3", correct: "three", want: true},
		{name: "word vs digit", user: "Twelve", correct: "12", want: true},
		{name: "hyphenated number", user: "21", correct: "twenty-one", want: true},
		{name: "leading zeros", user: "007", correct: "7", want: true},
		{name: "thousands separator", user: "1,000", correct: "one thousand", want: true},
		{name: "different numbers", user: "4", correct: "three", want: false},
		{name: "digit with trailing period", user: "3.", correct: "three", want: true},
		{name: "quoted digits", user: "\"12\"", correct: "twelve", want: true},
		{name: "word vs exclaimed digit", user: "three", correct: "3!", want: true},
		{name: "decimal is not an integer", user: "1.5", correct: "15", want: false},
		{name: "plural", user: "Apples", correct: "apple", want: true},
		{name: "es plural", user: "boxes", correct: "box", want: true},
		{name: "irregular plural", user: "children", correct: "child", want: true},
		{name: "multi word plural", user: "red apples", correct: "red apple", want: true},
		{name: "case", user: "PARIS", correct: "paris", want: true},
		{name: "punctuation and quotes", user: "“Hello,” world!", correct: "hello world", want: true},
		{name: "surrounding whitespace", user: "  dog ", correct: "dog", want: true},
		{name: "different words", user: "dash", correct: "crawl", want: false},
		{name: "number vs word answer", user: "3", correct: "tree", want: false},
		{name: "empty answer", user: "", correct: "dog", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matcher.IsEquivalent(tt.user, tt.correct))
		})
	}
}

func TestIsEquivalent_StableUnderNormalization(t *testing.T) {
	for _, x := range []string{"apple", "twenty one", "42", "ice-cream cones", "dash"} {
		n := matcher.Normalize(x)
		assert.True(t, matcher.IsEquivalent(n, n), x)
	}
}
