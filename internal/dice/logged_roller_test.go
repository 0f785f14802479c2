package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/diceroller/internal/dice"
)

func newObservedRoller(src dice.Source) (*dice.Roller, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return dice.NewLoggedRoller(src, fixedAuditor(), zap.New(core)), logs
}

func TestRoller_Roll_LogsResult(t *testing.T) {
	roller, logs := newObservedRoller(newSeqSource(3, 4))

	res, err := roller.Roll("2d6 + 3")
	require.NoError(t, err)
	assert.Equal(t, 12, res.Total)

	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "nonce-1", fields["nonce"])
	assert.Equal(t, "2d6 + 3", fields["expression"])
	assert.Equal(t, int64(12), fields["total"])
}

func TestRoller_Roll_LogsRejection(t *testing.T) {
	src := &countingSource{inner: dice.NewCryptoSource()}
	roller, logs := newObservedRoller(src)

	_, err := roller.Roll("2d7 + 1")
	require.ErrorIs(t, err, dice.ErrInvalidDie)
	assert.Zero(t, src.calls.Load())

	entries := logs.FilterMessage("dice roll rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "INVALID_DIE", entries[0].ContextMap()["code"])
	assert.Equal(t, "2d7 + 1", entries[0].ContextMap()["input"])
}

func TestRoller_Parse(t *testing.T) {
	roller, logs := newObservedRoller(dice.NewCryptoSource())

	req, err := roller.Parse("d20 with advantage")
	require.NoError(t, err)
	assert.Equal(t, "d20(adv)", req.NormalizedExpression)
	assert.Equal(t, 1, logs.FilterMessage("dice parse").Len())

	_, err = roller.Parse("advantage")
	require.ErrorIs(t, err, dice.ErrInvalidAdvantageUsage)
	assert.Equal(t, 1, logs.FilterMessage("dice parse rejected").Len())
}
