package dice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RNGAudit records where a roll's randomness came from. Nonce correlates the
// roll with logs; it cannot be used to reproduce the roll.
type RNGAudit struct {
	Source string `json:"source"`
	Nonce  string `json:"nonce"`
}

// RollResult holds the full audit trail for a single evaluated request.
//
// Postcondition: Total == sum of Terms[i].Subtotal.
type RollResult struct {
	RequestID            string          `json:"request_id"`
	Timestamp            time.Time       `json:"timestamp"`
	Input                string          `json:"input"`
	NormalizedExpression string          `json:"normalized_expression"`
	RNG                  RNGAudit        `json:"rng"`
	Terms                []EvaluatedTerm `json:"terms"`
	Total                int             `json:"total"`
	Explanation          string          `json:"explanation"`
}

// Auditor supplies the identifiers and clock stamped onto each RollResult.
type Auditor struct {
	// Source is the RNG tag recorded in RNGAudit.Source.
	Source   string
	Clock    func() time.Time
	NewID    func() string
	NewNonce func() string
}

// DefaultAuditor stamps results with time.Now and random UUIDs.
func DefaultAuditor(source string) Auditor {
	return Auditor{
		Source: source,
		Clock:  time.Now,
		NewID: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		},
		NewNonce: uuid.NewString,
	}
}

// Assemble packages evaluated terms into a RollResult for req.
//
// Precondition: terms must be Evaluate(req.Terms(), ...); audit funcs must be non-nil.
// Postcondition: Timestamp is UTC with whole-second precision.
func Assemble(req ParsedRollRequest, terms []EvaluatedTerm, audit Auditor) RollResult {
	total := Total(terms)
	return RollResult{
		RequestID:            audit.NewID(),
		Timestamp:            audit.Clock().UTC().Truncate(time.Second),
		Input:                req.Input,
		NormalizedExpression: req.NormalizedExpression,
		RNG: RNGAudit{
			Source: audit.Source,
			Nonce:  audit.NewNonce(),
		},
		Terms:       terms,
		Total:       total,
		Explanation: Explain(terms, total),
	}
}

// Explain renders a one-line trace such as
//
//	"d20(adv): rolls [7, 15] -> keep 15; 2d6: rolls [3, 4] => 7; +3 => 25"
func Explain(terms []EvaluatedTerm, total int) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, explainTerm(t))
	}
	return strings.Join(parts, "; ") + " => " + strconv.Itoa(total)
}

func explainTerm(t EvaluatedTerm) string {
	switch t.Type {
	case TermTypeConstant:
		return fmt.Sprintf("%+d", t.Subtotal)
	case TermTypeDie:
		if t.Mode.rollsTwice() && t.Kept != nil {
			return fmt.Sprintf("d20(%s): rolls %s -> keep %d", t.Mode.short(), formatRolls(t.Rolls), *t.Kept)
		}
		label := diceLabel(t.Count, t.Sides)
		if t.Subtotal < 0 {
			label = "-" + label
		}
		return fmt.Sprintf("%s: rolls %s => %d", label, formatRolls(t.Rolls), t.Subtotal)
	default:
		panic("dice: unknown evaluated term type " + string(t.Type))
	}
}

// formatRolls renders rolls as "[4, 5]".
func formatRolls(rolls []int) string {
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		parts[i] = strconv.Itoa(r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RollParsed evaluates req with src and assembles the result.
//
// Precondition: req must come from Parse; src must be non-nil.
func RollParsed(req ParsedRollRequest, src Source, audit Auditor) RollResult {
	return Assemble(req, Evaluate(req.terms, src), audit)
}

// RollText parses text and rolls it in a single call.
//
// Postcondition: Returns a fully populated RollResult, or a *Error raised
// before any value is drawn from src.
func RollText(text string, src Source, audit Auditor) (RollResult, error) {
	req, err := Parse(text)
	if err != nil {
		return RollResult{}, err
	}
	return RollParsed(req, src, audit), nil
}
