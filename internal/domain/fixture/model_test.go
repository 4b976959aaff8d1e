package fixture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairKeyIsOrderAndCaseIndependent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PairKey("Alpha ", "beta"), PairKey(" BETA", "alpha"))
	assert.Equal(t, "alpha||beta", PairKey("beta", "Alpha"))
}

func TestRoundKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		round   string
		group   bool
		playoff bool
	}{
		{round: "1", group: true},
		{round: " 2.5 ", group: true},
		{round: "Semi final", playoff: true},
		{round: "NaN", playoff: true},
		{round: "inf", playoff: true},
		{round: "+Inf", playoff: true},
		{round: "0x1p-2", playoff: true},
		{round: "0x-1", playoff: true},
		{round: "1_000", playoff: true},
		{round: "Infinity", group: true},
		{round: "0x1A", group: true},
		{round: "0b101", group: true},
		{round: "1e400", group: true},
		{round: ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.group, IsGroupRound(tc.round), tc.round)
		assert.Equal(t, tc.playoff, IsPlayoffRound(tc.round), tc.round)
	}
}

func TestRoundNumberLiterals(t *testing.T) {
	t.Parallel()

	for round, want := range map[string]float64{
		"3":         3,
		" 2.5 ":     2.5,
		"0x1A":      26,
		"0o17":      15,
		"0B101":     5,
		"1e3":       1000,
		"-Infinity": math.Inf(-1),
	} {
		got, ok := RoundNumber(round)
		require.True(t, ok, round)
		assert.Equal(t, want, got, round)
	}
}
