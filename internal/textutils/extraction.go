// Package textutils extracts amounts from free-text transaction descriptions and
// scores how similar two descriptions are.
package textutils

import (
	"regexp"
	"strconv"
	"strings"
)

// AmountExtraction is the result of ExtractAmount. Amount is nil when no number was found.
type AmountExtraction struct {
	Amount           *float64
	CleanDescription string
}

const number = `(\d+(?:\.\d+)?)`

var (
	currencyThenNumber = regexp.MustCompile(`[₹$€£¥]` + number)
	numberThenCurrency = regexp.MustCompile(number + `[₹$€£¥]`)
	lettersThenNumber  = regexp.MustCompile(`([a-zA-Z]+)` + number)
	numberThenLetters  = regexp.MustCompile(number + `([a-zA-Z]+)`)
	numericToken       = regexp.MustCompile(`^[-+]?(?:\d+(?:\.\d*)?|\.\d+)$`)
)

// ExtractAmount pulls the amount out of a description such as "coffee 50",
// "₹120 groceries", "tea20" or "20tea". The first matching rule wins:
//
//  1. currency symbol followed by a number ("$12.5")
//  2. number followed by a currency symbol ("12.5€")
//  3. letters glued to a number ("tea20"), the letters are kept
//  4. a number glued to letters ("20tea"), the letters are kept
//  5. the first whitespace token that is a plain number and has no '/' or ':'
//
// Tokens containing '/' or ':' are skipped so dates and times are not mistaken for
// amounts. Without a match the text is returned with runs of whitespace collapsed
// and a nil amount.
func ExtractAmount(text string) AmountExtraction {
	if m := currencyThenNumber.FindStringSubmatchIndex(text); m != nil {
		return strip(text, m, text[m[2]:m[3]], "")
	}
	if m := numberThenCurrency.FindStringSubmatchIndex(text); m != nil {
		return strip(text, m, text[m[2]:m[3]], "")
	}
	if m := lettersThenNumber.FindStringSubmatchIndex(text); m != nil {
		return strip(text, m, text[m[4]:m[5]], text[m[2]:m[3]])
	}
	if m := numberThenLetters.FindStringSubmatchIndex(text); m != nil {
		return strip(text, m, text[m[2]:m[3]], text[m[4]:m[5]])
	}

	tokens := strings.Fields(text)
	for i, tok := range tokens {
		if strings.ContainsAny(tok, "/:") || !numericToken.MatchString(tok) {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		rest := make([]string, 0, len(tokens)-1)
		rest = append(rest, tokens[:i]...)
		rest = append(rest, tokens[i+1:]...)
		return AmountExtraction{Amount: &v, CleanDescription: strings.Join(rest, " ")}
	}

	return AmountExtraction{CleanDescription: collapseSpaces(text)}
}

// strip replaces the match loc in text with keep and parses num as the amount.
func strip(text string, loc []int, num, keep string) AmountExtraction {
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return AmountExtraction{CleanDescription: collapseSpaces(text)}
	}
	cleaned := text[:loc[0]] + keep + text[loc[1]:]
	return AmountExtraction{Amount: &v, CleanDescription: collapseSpaces(cleaned)}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
