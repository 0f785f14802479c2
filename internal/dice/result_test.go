package dice_test

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/diceroller/internal/dice"
)

func intp(v int) *int { return &v }

func TestExplain(t *testing.T) {
	terms := []dice.EvaluatedTerm{
		{Type: dice.TermTypeDie, Count: 1, Sides: 20, Mode: dice.DieModeAdvantage, Rolls: []int{7, 15}, Kept: intp(15), Subtotal: 15},
		{Type: dice.TermTypeDie, Count: 2, Sides: 6, Rolls: []int{3, 4}, Subtotal: 7},
		{Type: dice.TermTypeDie, Count: 1, Sides: 4, Rolls: []int{2}, Subtotal: -2},
		{Type: dice.TermTypeConstant, Value: intp(3), Subtotal: 3},
		{Type: dice.TermTypeConstant, Value: intp(-1), Subtotal: -1},
	}
	assert.Equal(t,
		"d20(adv): rolls [7, 15] -> keep 15; 2d6: rolls [3, 4] => 7; -d4: rolls [2] => -2; +3; -1 => 22",
		dice.Explain(terms, 22))
}

func TestExplain_Disadvantage(t *testing.T) {
	terms := []dice.EvaluatedTerm{
		{Type: dice.TermTypeDie, Count: 1, Sides: 20, Mode: dice.DieModeDisadvantage, Rolls: []int{7, 15}, Kept: intp(7), Subtotal: 7},
	}
	assert.Equal(t, "d20(disadv): rolls [7, 15] -> keep 7 => 7", dice.Explain(terms, 7))
}

func TestExplain_ZeroConstant(t *testing.T) {
	terms := []dice.EvaluatedTerm{{Type: dice.TermTypeConstant, Value: intp(0), Subtotal: 0}}
	assert.Equal(t, "+0 => 0", dice.Explain(terms, 0))
}

func TestAssemble(t *testing.T) {
	req := dice.MustParse("roll a d20 with advantage and a +3 modifier")
	res := dice.RollParsed(req, newSeqSource(6, 14), fixedAuditor())

	assert.Equal(t, "req-1", res.RequestID)
	assert.Equal(t, time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC), res.Timestamp)
	assert.Equal(t, time.UTC, res.Timestamp.Location())
	assert.Equal(t, req.Input, res.Input)
	assert.Equal(t, "d20(adv) + 3", res.NormalizedExpression)
	assert.Equal(t, dice.RNGAudit{Source: "test-source", Nonce: "nonce-1"}, res.RNG)
	assert.Equal(t, 18, res.Total)
	assert.Equal(t, "d20(adv): rolls [7, 15] -> keep 15; +3 => 18", res.Explanation)
}

func TestRollResult_JSON(t *testing.T) {
	res, err := dice.RollText("2d6 + d20 with disadvantage - 1", newSeqSource(0, 5, 9, 2), fixedAuditor())
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "2024-01-01T05:00:00Z", got["timestamp"])
	assert.Equal(t, "req-1", got["request_id"])
	assert.Equal(t, "2d6 + d20(disadv) - 1", got["normalized_expression"])
	assert.Equal(t, map[string]any{"source": "test-source", "nonce": "nonce-1"}, got["rng"])
	assert.Equal(t, float64(1+6+3-1), got["total"])

	terms := got["terms"].([]any)
	require.Len(t, terms, 3)
	assert.Equal(t, map[string]any{
		"type": "die", "count": float64(2), "sides": float64(6),
		"rolls": []any{float64(1), float64(6)}, "subtotal": float64(7),
	}, terms[0])
	assert.Equal(t, map[string]any{
		"type": "die", "count": float64(1), "sides": float64(20), "mode": "disadvantage",
		"rolls": []any{float64(10), float64(3)}, "kept": float64(3), "subtotal": float64(3),
	}, terms[1])
	assert.Equal(t, map[string]any{
		"type": "constant", "value": float64(-1), "subtotal": float64(-1),
	}, terms[2])
}

func TestRollText_NoRandomnessOnFailure(t *testing.T) {
	src := &countingSource{inner: dice.NewCryptoSource()}
	for _, text := range []string{"2d7 + 1", "advantage", "(2d6 + 3) * 2", "", "d20 fireball"} {
		_, err := dice.RollText(text, src, fixedAuditor())
		require.Error(t, err, "input %q", text)
	}
	assert.Zero(t, src.calls.Load())
}

func TestDefaultAuditor(t *testing.T) {
	audit := dice.DefaultAuditor(dice.CryptoSourceTag)
	res, err := dice.RollText("d20", dice.NewCryptoSource(), audit)
	require.NoError(t, err)

	assert.Equal(t, "crypto/rand", res.RNG.Source)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), res.RequestID)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`), res.RNG.Nonce)
	assert.Zero(t, res.Timestamp.Nanosecond())
	assert.WithinDuration(t, time.Now(), res.Timestamp, 5*time.Second)

	again, err := dice.RollText("d20", dice.NewCryptoSource(), audit)
	require.NoError(t, err)
	assert.NotEqual(t, res.RequestID, again.RequestID)
	assert.NotEqual(t, res.RNG.Nonce, again.RNG.Nonce)
}

// TestRollText_Property_TotalIsSumOfSubtotals verifies the total postcondition and
// that the explanation ends with the total.
func TestRollText_Property_TotalIsSumOfSubtotals(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		text := genRequest(rt)
		res, err := dice.RollText(text, src, fixedAuditor())
		require.NoError(rt, err, "text %q", text)

		sum := 0
		for _, term := range res.Terms {
			sum += term.Subtotal
		}
		assert.Equal(rt, sum, res.Total)
		assert.True(rt, strings.HasSuffix(res.Explanation, " => "+strconv.Itoa(res.Total)))
		assert.Equal(rt, len(res.Terms), strings.Count(res.Explanation, "; ")+1)
	})
}
