package playerstats

import (
	"math"
	"strconv"
)

// Percent renders a rate rounded to a whole percent.
func Percent(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64) + "%"
}

// Whole rounds v to the nearest integer for display.
func Whole(v float64) int {
	return int(math.Round(v))
}
