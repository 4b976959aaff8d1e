package gamerow

import (
	"strings"
	"time"
)

// DateLayout is the ktxstats match date format.
const DateLayout = "2006-01-02 15:04:05 -0700"

// GameRow is one player's performance on one map.
type GameRow struct {
	URL      string
	Date     string
	Map      string
	Server   string
	MatchTag string
	MapWon   int
	Frags    int
	Team     string
	Player   string

	Efficiency float64
	Kills      int
	Deaths     int
	Suicides   int
	TeamKills  int

	DamageGiven        int
	DamageTaken        int
	DamageEnemyWeapons int
	DamageToDie        int
	DamageSelf         int

	GreenArmor  int
	YellowArmor int
	RedArmor    int
	MegaHealth  int

	SGAccuracy float64
	LGUsed     int
	LGAccuracy float64
	RLHits     int
	LGTaken    int
	LGKills    int
	LGDropped  int
	RLTaken    int
	RLKills    int
	RLDropped  int

	Quads int
	Pents int
	Rings int
}

// Won reports whether the row's team took the map.
func (r GameRow) Won() bool {
	return r.MapWon == 1
}

// Day is the date truncated to the day as written in the source.
func (r GameRow) Day() string {
	if len(r.Date) <= 10 {
		return r.Date
	}
	return r.Date[:10]
}

// PlayedAt parses Date. Unparseable dates return the zero time.
func (r GameRow) PlayedAt() time.Time {
	return ParseDate(r.Date)
}

// ParseDate accepts the ktxstats layout and a few looser forms.
func ParseDate(raw string) time.Time {
	value := strings.TrimSpace(raw)
	for _, layout := range []string{DateLayout, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// GameKey identifies the game a map belongs to.
func (r GameRow) GameKey() string {
	return r.Server + "|" + r.MatchTag + "|" + r.Day()
}
