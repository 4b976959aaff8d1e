package qwname

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBytes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "color bracket", in: []byte{145, 113}, want: "]q"},
		{name: "open bracket", in: []byte{16, 'a'}, want: "[a"},
		{name: "digits", in: []byte{18, 27, 18 + 128}, want: "090"},
		{name: "bullet", in: []byte{28}, want: "•"},
		{name: "control", in: []byte{0, 15, 29, 31}, want: "____"},
		{name: "high plain", in: []byte{'x' + 128, 'y'}, want: "xy"},
		{name: "empty", in: nil, want: ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, NormalizeBytes(tc.in))
		})
	}
}

func TestNormalizeKeepsLength(t *testing.T) {
	t.Parallel()

	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = byte(i)
	}

	out := NormalizeBytes(raw)
	require.Equal(t, len(raw), utf8.RuneCountInString(out))
}

func TestNormalizeFixedPointAbovePrintableRange(t *testing.T) {
	t.Parallel()

	for c := 32; c < 128; c++ {
		once := NormalizeBytes([]byte{byte(c)})
		require.Equal(t, once, Normalize(once), "byte %d", c)
	}
}

func TestNormalizeDecodedString(t *testing.T) {
	t.Parallel()

	// ktxstats encodes byte 145 as \u0091
	assert.Equal(t, "]q", Normalize("\u0091q"))
	assert.Equal(t, "]q", Normalize(string([]byte{145, 'q'})))
}

func TestPlayerNameStripsEquals(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bps", PlayerName("=b=p=s="))
}

func TestNormalizeSplitsSupplementaryRunes(t *testing.T) {
	t.Parallel()

	// U+1F600 is the surrogate pair D83D DE00
	out := Normalize("a\U0001F600")
	assert.Equal(t, "a\uD7BD\uFFFD", out)
	assert.Equal(t, 3, utf8.RuneCountInString(out))
}
