package fixture

import (
	"errors"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Fixture is a scheduled pairing, independent of whether it has been played.
type Fixture struct {
	Position int
	Round    string
	Team1    string
	Team2    string
}

// IsGroupRound reports whether round parses as a number. Non-numeric
// non-empty rounds are playoff rounds.
func IsGroupRound(round string) bool {
	_, ok := RoundNumber(round)
	return ok
}

func IsPlayoffRound(round string) bool {
	return strings.TrimSpace(round) != "" && !IsGroupRound(round)
}

// RoundNumber parses a numeric round label. Accepted forms are signed
// decimals with optional exponent, "Infinity" with optional sign, and
// unsigned 0x/0o/0b integers. Spellings like "inf", "nan" or hex floats are
// not numbers.
func RoundNumber(round string) (float64, bool) {
	value := strings.TrimSpace(round)
	switch value {
	case "":
		return 0, false
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	if base := integerBase(value); base != 0 {
		digits := value[2:]
		if digits == "" || digits[0] == '+' || digits[0] == '-' {
			return 0, false
		}
		n, ok := new(big.Int).SetString(digits, base)
		if !ok {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, true
	}

	if strings.Trim(value, "0123456789+-.eE") != "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

func integerBase(value string) int {
	if len(value) < 2 || value[0] != '0' {
		return 0
	}
	switch value[1] {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// PairKey is an order-independent key for two teams.
func PairKey(a, b string) string {
	pair := []string{
		strings.ToLower(strings.TrimSpace(a)),
		strings.ToLower(strings.TrimSpace(b)),
	}
	sort.Strings(pair)
	return pair[0] + "||" + pair[1]
}
