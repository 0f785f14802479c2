package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/diceroller/internal/dice"
)

func TestEvaluate_Constant(t *testing.T) {
	src := &countingSource{inner: newSeqSource(0)}
	got := dice.Evaluate([]dice.Term{dice.ConstantTerm{Value: -7}}, src)
	require.Len(t, got, 1)
	assert.Equal(t, dice.TermTypeConstant, got[0].Type)
	require.NotNil(t, got[0].Value)
	assert.Equal(t, -7, *got[0].Value)
	assert.Equal(t, -7, got[0].Subtotal)
	assert.Zero(t, src.calls.Load(), "constants must not draw randomness")
}

func TestEvaluate_NormalDice(t *testing.T) {
	// Source values 3 and 4 roll as 4 and 5.
	got := dice.Evaluate([]dice.Term{
		dice.DieTerm{Count: 2, Sides: 6, Sign: dice.Plus, Mode: dice.DieModeNormal},
	}, newSeqSource(3, 4))
	require.Len(t, got, 1)
	assert.Equal(t, []int{4, 5}, got[0].Rolls)
	assert.Equal(t, 9, got[0].Subtotal)
	assert.Nil(t, got[0].Kept)
	assert.Empty(t, got[0].Mode)
}

func TestEvaluate_SubtractedDice(t *testing.T) {
	got := dice.Evaluate([]dice.Term{
		dice.DieTerm{Count: 1, Sides: 4, Sign: dice.Minus, Mode: dice.DieModeNormal},
	}, newSeqSource(2))
	assert.Equal(t, []int{3}, got[0].Rolls)
	assert.Equal(t, -3, got[0].Subtotal)
}

func TestEvaluate_Advantage(t *testing.T) {
	got := dice.Evaluate([]dice.Term{
		dice.DieTerm{Count: 1, Sides: 20, Sign: dice.Plus, Mode: dice.DieModeAdvantage},
	}, newSeqSource(6, 14))
	require.Len(t, got, 1)
	assert.Equal(t, dice.DieModeAdvantage, got[0].Mode)
	assert.Equal(t, []int{7, 15}, got[0].Rolls)
	require.NotNil(t, got[0].Kept)
	assert.Equal(t, 15, *got[0].Kept)
	assert.Equal(t, 15, got[0].Subtotal)
}

func TestEvaluate_Disadvantage(t *testing.T) {
	got := dice.Evaluate([]dice.Term{
		dice.DieTerm{Count: 1, Sides: 20, Sign: dice.Plus, Mode: dice.DieModeDisadvantage},
	}, newSeqSource(6, 14))
	require.NotNil(t, got[0].Kept)
	assert.Equal(t, 7, *got[0].Kept)
	assert.Equal(t, 7, got[0].Subtotal)
}

func TestEvaluate_DrawCount(t *testing.T) {
	src := &countingSource{inner: dice.NewCryptoSource()}
	dice.Evaluate(dice.MustParse("3d6 + d20 with advantage + 2d8 - 4").Terms(), src)
	assert.Equal(t, int64(3+2+2), src.calls.Load())
}

// TestEvaluate_Property_Bounds verifies every roll is in range and advantage keeps max/min.
func TestEvaluate_Property_Bounds(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		terms := rapid.SliceOfN(rapid.Custom(genTerm), 1, 6).Draw(rt, "terms")
		if rapid.Bool().Draw(rt, "withMode") {
			mode := rapid.SampledFrom([]dice.DieMode{dice.DieModeAdvantage, dice.DieModeDisadvantage}).Draw(rt, "mode")
			terms = append(terms, dice.DieTerm{Count: 1, Sides: 20, Sign: dice.Plus, Mode: mode})
		}

		got := dice.Evaluate(terms, src)
		require.Len(rt, got, len(terms))

		sum := 0
		for i, e := range got {
			sum += e.Subtotal
			d, ok := terms[i].(dice.DieTerm)
			if !ok {
				assert.Equal(rt, dice.TermTypeConstant, e.Type)
				continue
			}
			assert.Equal(rt, dice.TermTypeDie, e.Type)
			if d.Mode == dice.DieModeNormal {
				require.Len(rt, e.Rolls, d.Count)
				rollSum := 0
				for _, r := range e.Rolls {
					assert.GreaterOrEqual(rt, r, 1)
					assert.LessOrEqual(rt, r, d.Sides)
					rollSum += r
				}
				assert.Equal(rt, int(d.Sign)*rollSum, e.Subtotal)
				continue
			}
			require.Len(rt, e.Rolls, 2)
			for _, r := range e.Rolls {
				assert.GreaterOrEqual(rt, r, 1)
				assert.LessOrEqual(rt, r, 20)
			}
			want := max(e.Rolls[0], e.Rolls[1])
			if d.Mode == dice.DieModeDisadvantage {
				want = min(e.Rolls[0], e.Rolls[1])
			}
			require.NotNil(rt, e.Kept)
			assert.Equal(rt, want, *e.Kept)
			assert.Equal(rt, want, e.Subtotal)
		}
		assert.Equal(rt, sum, dice.Total(got))
	})
}

// TestEvaluate_Distribution is a coarse uniformity check of the crypto source on a d4.
func TestEvaluate_Distribution(t *testing.T) {
	counts := make(map[int]int)
	got := dice.Evaluate([]dice.Term{
		dice.DieTerm{Count: 4000, Sides: 4, Sign: dice.Plus, Mode: dice.DieModeNormal},
	}, dice.NewCryptoSource())
	for _, r := range got[0].Rolls {
		counts[r]++
	}
	require.Len(t, counts, 4)
	for face, n := range counts {
		assert.InDelta(t, 1000, n, 200, "face %d", face)
	}
}
