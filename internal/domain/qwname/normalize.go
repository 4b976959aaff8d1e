// Package qwname decodes QuakeWorld client name encoding into plain text.
package qwname

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const (
	colorBit = 128
	bullet   = '•'
)

// Normalize maps every character of a decoded player or team name through
// the QuakeWorld charset table. Names from ktxstats arrive as JSON strings
// whose code points are the raw byte values, so each UTF-16 code unit is
// treated as one byte: a rune above U+FFFF yields one output character per
// surrogate half. A half that still decodes into the surrogate range is
// written as U+FFFD. Invalid UTF-8 bytes are taken at face value.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(decode(int(raw[i-1])))
			continue
		}
		if hi, lo := utf16.EncodeRune(r); hi != utf8.RuneError {
			b.WriteRune(decode(int(hi)))
			b.WriteRune(decode(int(lo)))
			continue
		}
		b.WriteRune(decode(int(r)))
	}
	return b.String()
}

// NormalizeBytes is Normalize for a raw byte sequence.
func NormalizeBytes(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		b.WriteRune(decode(int(c)))
	}
	return b.String()
}

// PlayerName normalizes a player name and drops every '='.
func PlayerName(raw string) string {
	return strings.ReplaceAll(Normalize(raw), "=", "")
}

func decode(c int) rune {
	if c >= colorBit {
		c -= colorBit
	}
	switch {
	case c < 16, c >= 29 && c <= 31:
		return '_'
	case c == 16:
		return '['
	case c == 17:
		return ']'
	case c >= 18 && c <= 27:
		return rune('0' + c - 18)
	case c == 28:
		return bullet
	default:
		return rune(c)
	}
}
