package postgres

import "github.com/riskibarqy/qw-league/internal/domain/gamerow"

type gameRowModel struct {
	URL                string  `db:"url"`
	Date               string  `db:"played_date"`
	Map                string  `db:"map"`
	Server             string  `db:"server"`
	MatchTag           string  `db:"match_tag"`
	MapWon             int     `db:"map_won"`
	Frags              int     `db:"frags"`
	Team               string  `db:"team"`
	Player             string  `db:"player"`
	Efficiency         float64 `db:"efficiency"`
	Kills              int     `db:"kills"`
	Deaths             int     `db:"deaths"`
	Suicides           int     `db:"suicides"`
	TeamKills          int     `db:"team_kills"`
	DamageGiven        int     `db:"damage_given"`
	DamageTaken        int     `db:"damage_taken"`
	DamageEnemyWeapons int     `db:"damage_enemy_weapons"`
	DamageToDie        int     `db:"damage_to_die"`
	DamageSelf         int     `db:"damage_self"`
	GreenArmor         int     `db:"green_armor"`
	YellowArmor        int     `db:"yellow_armor"`
	RedArmor           int     `db:"red_armor"`
	MegaHealth         int     `db:"mega_health"`
	SGAccuracy         float64 `db:"sg_accuracy"`
	LGUsed             int     `db:"lg_used"`
	LGAccuracy         float64 `db:"lg_accuracy"`
	RLHits             int     `db:"rl_hits"`
	LGTaken            int     `db:"lg_taken"`
	LGKills            int     `db:"lg_kills"`
	LGDropped          int     `db:"lg_dropped"`
	RLTaken            int     `db:"rl_taken"`
	RLKills            int     `db:"rl_kills"`
	RLDropped          int     `db:"rl_dropped"`
	Quads              int     `db:"quads"`
	Pents              int     `db:"pents"`
	Rings              int     `db:"rings"`
}

type importedURLModel struct {
	URL string `db:"url"`
}

// Field order mirrors gamerow.GameRow so the two convert directly.
func gameRowFromDomain(row gamerow.GameRow) gameRowModel {
	return gameRowModel(row)
}

func (m gameRowModel) domain() gamerow.GameRow {
	return gamerow.GameRow(m)
}
