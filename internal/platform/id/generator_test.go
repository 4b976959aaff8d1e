package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNanoGenerator(t *testing.T) {
	t.Parallel()

	gen := NewNanoGenerator()
	a, err := gen.NewID()
	require.NoError(t, err)
	b, err := gen.NewID()
	require.NoError(t, err)

	assert.Len(t, a, runIDLength)
	assert.NotEqual(t, a, b)
}
