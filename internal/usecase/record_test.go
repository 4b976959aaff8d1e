package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMarshalKeepsKeyOrder(t *testing.T) {
	t.Parallel()

	rec := Record{
		{Key: "Rank", Value: 12},
		{Key: "Player", Value: "bps"},
		{Key: "Avg Eff", Value: "55.5%"},
		{Key: "maps", Value: []MapRecord{{MapName: "dm3", TeamAFrags: 1, TeamBFrags: 2, GameURL: "u"}}},
	}

	out, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"Rank":12,"Player":"bps","Avg Eff":"55.5%","maps":[{"mapName":"dm3","teamAFrags":1,"teamBFrags":2,"gameUrl":"u"}]}`,
		string(out),
	)
}

func TestRecordGet(t *testing.T) {
	t.Parallel()

	rec := Record{{Key: "a", Value: 1}}
	v, ok := rec.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = rec.Get("b")
	assert.False(t, ok)

	empty, err := Record{}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(empty))
}
