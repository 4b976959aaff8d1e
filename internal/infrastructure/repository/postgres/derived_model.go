package postgres

import (
	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/qw-league/internal/domain/leaguestanding"
	"github.com/riskibarqy/qw-league/internal/domain/playerstats"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/riskibarqy/qw-league/internal/domain/teamgame"
)

type playerStatsModel struct {
	rosterPlayerModel
	TotalFrags   int     `db:"total_frags"`
	MapsPlayed   int     `db:"maps_played"`
	MapsWon      int     `db:"maps_won"`
	WinRate      float64 `db:"win_rate"`
	AvgFrags     float64 `db:"avg_frags"`
	AvgEff       float64 `db:"avg_eff"`
	AvgSG        float64 `db:"avg_sg"`
	AvgLG        float64 `db:"avg_lg"`
	AvgRLTaken   float64 `db:"avg_rl_taken"`
	AvgRLKilled  float64 `db:"avg_rl_killed"`
	AvgRLDropped float64 `db:"avg_rl_dropped"`
	AvgTK        float64 `db:"avg_tk"`
	AvgBores     float64 `db:"avg_bores"`
	AvgDamage    float64 `db:"avg_damage"`
	AvgEWEP      float64 `db:"avg_ewep"`
	AvgQuads     float64 `db:"avg_quads"`
	Rank         int     `db:"rank"`
}

// playerStatsColumns lists the embedded roster columns first.
var playerStatsColumns = []string{
	"kind", "position", "team", "aliases", "name",
	"total_frags", "maps_played", "maps_won", "win_rate", "avg_frags", "avg_eff",
	"avg_sg", "avg_lg", "avg_rl_taken", "avg_rl_killed", "avg_rl_dropped",
	"avg_tk", "avg_bores", "avg_damage", "avg_ewep", "avg_quads", "rank",
}

func playerStatsRow(m playerStatsModel) []any {
	return []any{
		m.Kind, m.Position, m.Team, m.Aliases, m.Name,
		m.TotalFrags, m.MapsPlayed, m.MapsWon, m.WinRate, m.AvgFrags, m.AvgEff,
		m.AvgSG, m.AvgLG, m.AvgRLTaken, m.AvgRLKilled, m.AvgRLDropped,
		m.AvgTK, m.AvgBores, m.AvgDamage, m.AvgEWEP, m.AvgQuads, m.Rank,
	}
}

func playerStatsFromDomain(kind roster.Kind, e playerstats.Entry) playerStatsModel {
	e.Player.Kind = kind
	s := e.Stats
	return playerStatsModel{
		rosterPlayerModel: rosterPlayerFromDomain(e.Player),
		TotalFrags:        s.TotalFrags,
		MapsPlayed:        s.MapsPlayed,
		MapsWon:           s.MapsWon,
		WinRate:           s.WinRate,
		AvgFrags:          s.AvgFrags,
		AvgEff:            s.AvgEff,
		AvgSG:             s.AvgSG,
		AvgLG:             s.AvgLG,
		AvgRLTaken:        s.AvgRLTaken,
		AvgRLKilled:       s.AvgRLKilled,
		AvgRLDropped:      s.AvgRLDropped,
		AvgTK:             s.AvgTK,
		AvgBores:          s.AvgBores,
		AvgDamage:         s.AvgDamage,
		AvgEWEP:           s.AvgEWEP,
		AvgQuads:          s.AvgQuads,
		Rank:              s.Rank,
	}
}

func (m playerStatsModel) domain() playerstats.Entry {
	return playerstats.Entry{
		Player: m.rosterPlayerModel.domain(),
		Stats: playerstats.Stats{
			TotalFrags:   m.TotalFrags,
			MapsPlayed:   m.MapsPlayed,
			MapsWon:      m.MapsWon,
			WinRate:      m.WinRate,
			AvgFrags:     m.AvgFrags,
			AvgEff:       m.AvgEff,
			AvgSG:        m.AvgSG,
			AvgLG:        m.AvgLG,
			AvgRLTaken:   m.AvgRLTaken,
			AvgRLKilled:  m.AvgRLKilled,
			AvgRLDropped: m.AvgRLDropped,
			AvgTK:        m.AvgTK,
			AvgBores:     m.AvgBores,
			AvgDamage:    m.AvgDamage,
			AvgEWEP:      m.AvgEWEP,
			AvgQuads:     m.AvgQuads,
			Rank:         m.Rank,
		},
	}
}

type unmatchedModel struct {
	Position int    `db:"position"`
	Nick     string `db:"nick"`
}

type standingModel struct {
	Position   int    `db:"position"`
	TeamTag    string `db:"team_tag"`
	TeamName   string `db:"team_name"`
	GameWins   int    `db:"game_wins"`
	GameLosses int    `db:"game_losses"`
	MapWins    int    `db:"map_wins"`
	MapLosses  int    `db:"map_losses"`
	Diff       int    `db:"diff"`
}

type teamGameModel struct {
	Position int    `db:"position"`
	Key      string `db:"game_key"`
	Round    string `db:"round"`
	TeamATag string `db:"team_a_tag"`
	TeamBTag string `db:"team_b_tag"`
	TeamA    string `db:"team_a"`
	TeamB    string `db:"team_b"`
	MapsWonA int    `db:"maps_won_a"`
	MapsWonB int    `db:"maps_won_b"`
	PlayedAt string `db:"played_at"`
	MapsJSON string `db:"maps_json"`
}

type mapJSON struct {
	Name   string `json:"mapName"`
	URL    string `json:"gameUrl"`
	Date   string `json:"date"`
	FragsA int    `json:"teamAFrags"`
	FragsB int    `json:"teamBFrags"`
}

func teamGameFromDomain(g teamgame.Game) (teamGameModel, error) {
	maps := make([]mapJSON, 0, len(g.Maps))
	for _, m := range g.Maps {
		maps = append(maps, mapJSON(m))
	}
	raw, err := sonic.MarshalString(maps)
	if err != nil {
		return teamGameModel{}, err
	}

	return teamGameModel{
		Position: g.Position,
		Key:      g.Key,
		Round:    g.Round,
		TeamATag: g.TeamATag,
		TeamBTag: g.TeamBTag,
		TeamA:    g.TeamA,
		TeamB:    g.TeamB,
		MapsWonA: g.MapsWonA,
		MapsWonB: g.MapsWonB,
		PlayedAt: g.PlayedAt,
		MapsJSON: raw,
	}, nil
}

// domain decodes the maps column. A malformed value yields an empty map
// list and the decode error.
func (m teamGameModel) domain() (teamgame.Game, error) {
	g := teamgame.Game{
		Position: m.Position,
		Key:      m.Key,
		Round:    m.Round,
		TeamATag: m.TeamATag,
		TeamBTag: m.TeamBTag,
		TeamA:    m.TeamA,
		TeamB:    m.TeamB,
		MapsWonA: m.MapsWonA,
		MapsWonB: m.MapsWonB,
		PlayedAt: m.PlayedAt,
		Maps:     []teamgame.Map{},
	}

	var maps []mapJSON
	if err := sonic.UnmarshalString(m.MapsJSON, &maps); err != nil {
		return g, err
	}
	for _, item := range maps {
		g.Maps = append(g.Maps, teamgame.Map(item))
	}
	return g, nil
}

func standingFromDomain(s leaguestanding.Standing) standingModel {
	return standingModel(s)
}

func (m standingModel) domain() leaguestanding.Standing {
	return leaguestanding.Standing(m)
}
