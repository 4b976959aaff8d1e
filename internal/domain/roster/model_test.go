package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAliases(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"bps", "BPS2", "b p s"}, ParseAliases(" bps, BPS2,,b p s ,"))
	assert.Empty(t, ParseAliases(""))
}

func TestMatchesIgnoresCase(t *testing.T) {
	t.Parallel()

	p := Player{Name: "bps", Aliases: []string{"BPS", "bps2"}}
	assert.True(t, p.Matches("bps"))
	assert.True(t, p.Matches("BPS2"))
	assert.False(t, p.Matches("bp"))
}

func TestValidateAliases(t *testing.T) {
	t.Parallel()

	primary := []Player{
		{Name: "a", Aliases: []string{"x", "X"}},
		{Name: "b", Aliases: []string{"y"}},
	}
	require.NoError(t, ValidateAliases(primary))

	standins := []Player{{Name: "c", Aliases: []string{"Y"}}}
	err := ValidateAliases(primary, standins)
	require.ErrorIs(t, err, ErrAmbiguousAlias)
	assert.Contains(t, err.Error(), `"b"`)
}
