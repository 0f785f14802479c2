// Package dice turns natural-language dice requests into validated term
// sequences and evaluates them into auditable roll results.
package dice

import "fmt"

// AllowedSides lists the die sizes a request may reference.
var AllowedSides = []int{4, 6, 8, 10, 12, 20, 100}

// IsAllowedSides reports whether sides is one of AllowedSides.
func IsAllowedSides(sides int) bool {
	for _, s := range AllowedSides {
		if s == sides {
			return true
		}
	}
	return false
}

// Mode is the request-wide advantage state detected from the text.
type Mode string

const (
	ModeNone         Mode = "none"
	ModeAdvantage    Mode = "advantage"
	ModeDisadvantage Mode = "disadvantage"
)

// DieMode is the per-term roll mode. Only a single unsigned d20 may carry a
// mode other than DieModeNormal.
type DieMode string

const (
	DieModeNormal       DieMode = "normal"
	DieModeAdvantage    DieMode = "advantage"
	DieModeDisadvantage DieMode = "disadvantage"
)

// rollsTwice reports whether the term is rolled as two d20 keeping one.
func (m DieMode) rollsTwice() bool {
	return m == DieModeAdvantage || m == DieModeDisadvantage
}

// short returns the abbreviation used in rendered expressions and explanations.
func (m DieMode) short() string {
	if m == DieModeAdvantage {
		return "adv"
	}
	return "disadv"
}

// Sign is the sign applied to a die term's subtotal.
type Sign int

const (
	Plus  Sign = 1
	Minus Sign = -1
)

// Term is one parsed element of a request: a DieTerm or a ConstantTerm.
//
// The set of implementations is closed; consumers switch on the concrete type.
type Term interface {
	isTerm()
}

// DieTerm requests Count dice with Sides faces each.
//
// Invariant: Mode != DieModeNormal implies Count == 1, Sides == 20, Sign == Plus.
type DieTerm struct {
	Count int
	Sides int
	Sign  Sign
	Mode  DieMode
}

func (DieTerm) isTerm() {}

// ConstantTerm is a flat modifier; the sign is part of Value.
type ConstantTerm struct {
	Value int
}

func (ConstantTerm) isTerm() {}

// ParsedRollRequest is the immutable outcome of parsing one request text.
type ParsedRollRequest struct {
	Input                string
	NormalizedInput      string
	Mode                 Mode
	NormalizedExpression string
	terms                []Term
}

// Terms returns a copy of the parsed terms in input order.
func (p ParsedRollRequest) Terms() []Term {
	out := make([]Term, len(p.terms))
	copy(out, p.terms)
	return out
}

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// unknownTerm panics for a Term implementation the package does not know.
func unknownTerm(t Term) {
	panic(fmt.Sprintf("dice: unknown term kind %T", t))
}
