package dice

import (
	"strconv"
	"strings"
)

// Render produces the canonical expression for terms, e.g. "d20(adv) + 2d6 - 1".
//
// Postcondition: the result depends only on terms; repeated calls are byte-identical.
func Render(terms []Term) string {
	var b strings.Builder
	for i, t := range terms {
		chunk, sign := renderChunk(t)
		switch {
		case i == 0 && sign == Minus:
			b.WriteString("- ")
		case i > 0 && sign == Minus:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		b.WriteString(chunk)
	}
	return b.String()
}

func renderChunk(t Term) (string, Sign) {
	switch t := t.(type) {
	case DieTerm:
		if t.Mode.rollsTwice() {
			return "d20(" + t.Mode.short() + ")", Plus
		}
		return diceLabel(t.Count, t.Sides), t.Sign
	case ConstantTerm:
		if t.Value < 0 {
			return strconv.Itoa(-t.Value), Minus
		}
		return strconv.Itoa(t.Value), Plus
	default:
		unknownTerm(t)
		return "", Plus
	}
}

// diceLabel renders "NdS", omitting N when it is 1.
func diceLabel(count, sides int) string {
	if count == 1 {
		return "d" + strconv.Itoa(sides)
	}
	return strconv.Itoa(count) + "d" + strconv.Itoa(sides)
}
