package dice

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	disallowedRe   = regexp.MustCompile(`[^a-z0-9+\-\s]`)
	operatorRe     = regexp.MustCompile(`([+-])`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	advantageRe    = regexp.MustCompile(`\badvantage\b`)
	disadvantageRe = regexp.MustCompile(`\bdisadvantage\b`)
)

// Normalize lowercases text, turns the words "plus"/"minus" into operators,
// replaces punctuation with spaces and isolates every + and - as its own token.
//
// Postcondition: the result is single-space separated with no leading or
// trailing whitespace, and contains only [a-z0-9+-] and spaces.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = replaceWord(s, "plus", "+")
	s = replaceWord(s, "minus", "-")
	s = disallowedRe.ReplaceAllString(s, " ")
	s = operatorRe.ReplaceAllString(s, " $1 ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// DetectMode finds the whole words "advantage" and "disadvantage" in normalized text.
//
// Precondition: normalized must come from Normalize.
// Postcondition: returns ModeNone when neither word is present; an
// UNPARSEABLE_INPUT error when both are.
func DetectMode(normalized string) (Mode, error) {
	hasAdv := advantageRe.MatchString(normalized)
	hasDis := disadvantageRe.MatchString(normalized)
	switch {
	case hasAdv && hasDis:
		return ModeNone, errModeConflict()
	case hasAdv:
		return ModeAdvantage, nil
	case hasDis:
		return ModeDisadvantage, nil
	default:
		return ModeNone, nil
	}
}

// replaceWord replaces whole-word occurrences of word in s. Any Unicode letter,
// digit or underscore counts as part of a word, so "éplus" is left alone.
func replaceWord(s, word, repl string) string {
	var b strings.Builder
	start := 0
	for {
		i := strings.Index(s[start:], word)
		if i < 0 {
			b.WriteString(s[start:])
			return b.String()
		}
		i += start
		end := i + len(word)
		before, _ := utf8.DecodeLastRuneInString(s[:i])
		after, _ := utf8.DecodeRuneInString(s[end:])
		b.WriteString(s[start:i])
		if isWordRune(before) || isWordRune(after) {
			b.WriteString(word)
		} else {
			b.WriteString(repl)
		}
		start = end
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
