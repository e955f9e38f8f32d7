package matcher

import (
	"strconv"
	"strings"
)

var smallNumbers = map[string]int64{
	"zero": 0,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// maxWordNumber bounds phrases such as "hundred hundred hundred" well
// below int64 overflow.
const maxWordNumber int64 = 1_000_000_000_000_000

var scaleNumbers = map[string]int64{
	"thousand": 1_000,
	"million":  1_000_000,
	"billion":  1_000_000_000,
}

// parseNumberWords reads phrases such as "twenty-one" or
// "one hundred and five" and returns their decimal form.
func parseNumberWords(s string) (string, bool) {
	tokens := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' })
	if len(tokens) == 0 {
		return "", false
	}

	var total, current int64
	seen := false
	for i, tok := range tokens {
		if v, ok := smallNumbers[tok]; ok {
			current += v
			seen = true
			continue
		}
		if tok == "hundred" {
			if current == 0 {
				current = 1
			}
			if current > maxWordNumber/100 {
				return "", false
			}
			current *= 100
			seen = true
			continue
		}
		if scale, ok := scaleNumbers[tok]; ok {
			if current == 0 {
				current = 1
			}
			if current > (maxWordNumber-total)/scale {
				return "", false
			}
			total += current * scale
			current = 0
			seen = true
			continue
		}
		// "a hundred", "one hundred and five"
		if tok == "and" && seen && i < len(tokens)-1 {
			continue
		}
		if tok == "a" && i < len(tokens)-1 {
			continue
		}
		return "", false
	}
	if !seen || total+current > maxWordNumber {
		return "", false
	}
	return strconv.FormatInt(total+current, 10), true
}
