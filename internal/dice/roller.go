package dice

// TermType discriminates evaluated terms on the wire.
type TermType string

const (
	TermTypeConstant TermType = "constant"
	TermTypeDie      TermType = "die"
)

// EvaluatedTerm is the rolled form of one Term.
//
// Dice carry Count, Sides, Rolls and, under advantage or disadvantage, Mode and
// Kept. Constants carry Value. Subtotal is the signed contribution to the total.
type EvaluatedTerm struct {
	Type     TermType `json:"type"`
	Count    int      `json:"count,omitempty"`
	Sides    int      `json:"sides,omitempty"`
	Mode     DieMode  `json:"mode,omitempty"`
	Rolls    []int    `json:"rolls,omitempty"`
	Kept     *int     `json:"kept,omitempty"`
	Value    *int     `json:"value,omitempty"`
	Subtotal int      `json:"subtotal"`
}

// Evaluate rolls every term independently using src.
//
// Precondition: terms must come from Parse; src must be non-nil.
// Postcondition: len(result) == len(terms). Every normal die roll lies in
// [1, Sides]; advantage/disadvantage terms hold exactly two rolls in [1, 20]
// and keep the max/min of them. Constants are passed through.
func Evaluate(terms []Term, src Source) []EvaluatedTerm {
	out := make([]EvaluatedTerm, 0, len(terms))
	for _, t := range terms {
		switch t := t.(type) {
		case ConstantTerm:
			v := t.Value
			out = append(out, EvaluatedTerm{
				Type:     TermTypeConstant,
				Value:    &v,
				Subtotal: v,
			})
		case DieTerm:
			out = append(out, evaluateDie(t, src))
		default:
			unknownTerm(t)
		}
	}
	return out
}

func evaluateDie(d DieTerm, src Source) EvaluatedTerm {
	if d.Mode.rollsTwice() {
		a, b := rollDie(src, 20), rollDie(src, 20)
		kept := max(a, b)
		if d.Mode == DieModeDisadvantage {
			kept = min(a, b)
		}
		return EvaluatedTerm{
			Type:     TermTypeDie,
			Count:    1,
			Sides:    20,
			Mode:     d.Mode,
			Rolls:    []int{a, b},
			Kept:     &kept,
			Subtotal: kept,
		}
	}

	rolls := make([]int, d.Count)
	sum := 0
	for i := range rolls {
		rolls[i] = rollDie(src, d.Sides)
		sum += rolls[i]
	}
	if d.Sign == Minus {
		sum = -sum
	}
	return EvaluatedTerm{
		Type:     TermTypeDie,
		Count:    d.Count,
		Sides:    d.Sides,
		Rolls:    rolls,
		Subtotal: sum,
	}
}

// Total sums the subtotals of terms.
func Total(terms []EvaluatedTerm) int {
	total := 0
	for _, t := range terms {
		total += t.Subtotal
	}
	return total
}
