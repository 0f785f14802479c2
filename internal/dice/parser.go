package dice

import (
	"regexp"
	"strconv"
	"strings"
)

// fillerWords carry no meaning and are dropped before tokens are interpreted.
var fillerWords = map[string]bool{
	"roll":     true,
	"a":        true,
	"an":       true,
	"the":      true,
	"with":     true,
	"please":   true,
	"and":      true,
	"mod":      true,
	"modifier": true,
}

// Bounds on a single request. With them every total fits in a 32-bit int:
// MaxTerms * max(MaxDiceCount*100, MaxConstant) < 1<<31.
const (
	MaxDiceCount = 1000
	MaxConstant  = 1_000_000
	MaxTerms     = 100
)

var (
	dieTokenRe    = regexp.MustCompile(`^(\d*)d(\d+)$`)
	digitsTokenRe = regexp.MustCompile(`^\d+$`)
)

// outOfScopeChars are operators the roller refuses. They must be checked on
// the raw text because Normalize turns them into spaces.
const outOfScopeChars = "*/()"

// Parse turns a free-text dice request into a validated ParsedRollRequest.
//
// Precondition: none; any string is accepted.
// Postcondition: Returns a request whose terms satisfy every DieTerm invariant,
// or a *Error whose Code identifies the rejection. Parse is deterministic.
func Parse(text string) (ParsedRollRequest, error) {
	if strings.TrimSpace(text) == "" {
		return ParsedRollRequest{}, errEmptyInput()
	}
	if strings.ContainsAny(text, outOfScopeChars) {
		return ParsedRollRequest{}, errOutOfScope()
	}

	normalized := Normalize(text)
	mode, err := DetectMode(normalized)
	if err != nil {
		return ParsedRollRequest{}, err
	}

	terms, err := ParseTerms(normalized)
	if err != nil {
		return ParsedRollRequest{}, err
	}
	terms, err = ApplyMode(terms, mode)
	if err != nil {
		return ParsedRollRequest{}, err
	}
	if len(terms) == 0 {
		return ParsedRollRequest{}, errNoTerms()
	}

	return ParsedRollRequest{
		Input:                text,
		NormalizedInput:      normalized,
		Mode:                 mode,
		NormalizedExpression: Render(terms),
		terms:                terms,
	}, nil
}

// MustParse parses text and panics on error. Useful for package-level values and tests.
//
// Precondition: text must be a valid dice request.
func MustParse(text string) ParsedRollRequest {
	p, err := Parse(text)
	if err != nil {
		panic("dice: MustParse failed for request " + text + ": " + err.Error())
	}
	return p
}

// ParseTerms tokenizes normalized text into dice and constant terms, tracking
// the sign set by the most recent + or - token.
//
// Precondition: normalized must come from Normalize.
// Postcondition: every returned DieTerm has an allowed Sides, Count in
// [1, MaxDiceCount] and DieModeNormal; every constant magnitude is at most
// MaxConstant; there are at most MaxTerms terms. The result may be empty.
func ParseTerms(normalized string) ([]Term, error) {
	var terms []Term
	sign := Plus

	for _, tok := range strings.Split(normalized, " ") {
		if tok == "" || fillerWords[tok] {
			continue
		}

		switch {
		case tok == "+":
			sign = Plus
		case tok == "-":
			sign = Minus
		case tok == "advantage" || tok == "disadvantage":
			// Already handled by DetectMode.
		case dieTokenRe.MatchString(tok):
			die, err := parseDie(tok, sign)
			if err != nil {
				return nil, err
			}
			terms = append(terms, die)
			sign = Plus
		case digitsTokenRe.MatchString(tok):
			v, err := strconv.Atoi(tok)
			if err != nil || v > MaxConstant {
				return nil, errConstantRange(tok)
			}
			terms = append(terms, ConstantTerm{Value: int(sign) * v})
			sign = Plus
		default:
			return nil, errUnknownToken(tok)
		}
		if len(terms) > MaxTerms {
			return nil, errTooManyTerms()
		}
	}
	return terms, nil
}

func parseDie(tok string, sign Sign) (DieTerm, error) {
	m := dieTokenRe.FindStringSubmatch(tok)

	sides, err := strconv.Atoi(m[2])
	if err != nil || !IsAllowedSides(sides) {
		return DieTerm{}, errInvalidDie(tok)
	}

	count := 1
	if m[1] != "" {
		count, err = strconv.Atoi(m[1])
		if err != nil || count <= 0 || count > MaxDiceCount {
			return DieTerm{}, errDiceCount(tok)
		}
	}

	return DieTerm{Count: count, Sides: sides, Sign: sign, Mode: DieModeNormal}, nil
}

// ApplyMode folds a request-wide advantage or disadvantage into the single d20
// term it applies to.
//
// Precondition: terms must come from ParseTerms.
// Postcondition: for ModeNone, terms is returned unchanged. Otherwise exactly one
// DieTerm with Sides 20 must exist, with Count 1 and Sign Plus; the returned copy
// carries the mode on that term. Any other shape is INVALID_ADVANTAGE_USAGE.
func ApplyMode(terms []Term, mode Mode) ([]Term, error) {
	if mode == ModeNone {
		return terms, nil
	}

	target := -1
	for i, t := range terms {
		d, ok := t.(DieTerm)
		if !ok || d.Sides != 20 {
			continue
		}
		if target >= 0 {
			return nil, errAdvantageUsage()
		}
		target = i
	}
	if target < 0 {
		return nil, errAdvantageUsage()
	}
	d := terms[target].(DieTerm)
	if d.Count != 1 || d.Sign != Plus {
		return nil, errAdvantageUsage()
	}

	out := make([]Term, len(terms))
	copy(out, terms)
	d.Mode = DieMode(mode)
	out[target] = d
	return out, nil
}
