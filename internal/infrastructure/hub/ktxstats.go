package hub

import "github.com/riskibarqy/qw-league/internal/usecase"

type gameInfoRequest struct {
	GameID int64 `json:"gameId"`
}

type gameInfoResponse struct {
	KTXStatsURL string `json:"ktxstats_url"`
}

// ktxMatch is the subset of a ktxstats document the importer reads.
type ktxMatch struct {
	Date     string      `json:"date"`
	Map      string      `json:"map"`
	Hostname string      `json:"hostname"`
	MatchTag string      `json:"matchtag"`
	Players  []ktxPlayer `json:"players"`
}

type ktxPlayer struct {
	Name    string     `json:"name"`
	Team    string     `json:"team"`
	Stats   ktxStats   `json:"stats"`
	Dmg     ktxDamage  `json:"dmg"`
	Items   ktxItems   `json:"items"`
	Weapons ktxWeapons `json:"weapons"`
}

type ktxStats struct {
	Frags    int `json:"frags"`
	Deaths   int `json:"deaths"`
	TK       int `json:"tk"`
	Kills    int `json:"kills"`
	Suicides int `json:"suicides"`
}

type ktxDamage struct {
	Given        int `json:"given"`
	Taken        int `json:"taken"`
	Self         int `json:"self"`
	TakenToDie   int `json:"taken-to-die"`
	EnemyWeapons int `json:"enemy-weapons"`
}

type ktxItem struct {
	Took int `json:"took"`
}

type ktxItems struct {
	GreenArmor  ktxItem `json:"ga"`
	YellowArmor ktxItem `json:"ya"`
	RedArmor    ktxItem `json:"ra"`
	MegaHealth  ktxItem `json:"health_100"`
	Quad        ktxItem `json:"q"`
	Pent        ktxItem `json:"p"`
	Ring        ktxItem `json:"r"`
}

type ktxWeapon struct {
	Acc struct {
		Attacks int `json:"attacks"`
		Hits    int `json:"hits"`
	} `json:"acc"`
	Pickups struct {
		Taken   int `json:"taken"`
		Dropped int `json:"dropped"`
	} `json:"pickups"`
	Kills struct {
		Enemy int `json:"enemy"`
	} `json:"kills"`
}

type ktxWeapons struct {
	SG ktxWeapon `json:"sg"`
	LG ktxWeapon `json:"lg"`
	RL ktxWeapon `json:"rl"`
}

func (w ktxWeapon) external() usecase.ExternalWeapon {
	return usecase.ExternalWeapon{
		Attacks: w.Acc.Attacks,
		Hits:    w.Acc.Hits,
		Taken:   w.Pickups.Taken,
		Dropped: w.Pickups.Dropped,
		Kills:   w.Kills.Enemy,
	}
}

func (m ktxMatch) external() usecase.ExternalMatch {
	players := make([]usecase.ExternalPlayer, 0, len(m.Players))
	for _, p := range m.Players {
		players = append(players, usecase.ExternalPlayer{
			Name:      p.Name,
			Team:      p.Team,
			Frags:     p.Stats.Frags,
			Kills:     p.Stats.Kills,
			Deaths:    p.Stats.Deaths,
			Suicides:  p.Stats.Suicides,
			TeamKills: p.Stats.TK,

			DamageGiven:        p.Dmg.Given,
			DamageTaken:        p.Dmg.Taken,
			DamageEnemyWeapons: p.Dmg.EnemyWeapons,
			DamageToDie:        p.Dmg.TakenToDie,
			DamageSelf:         p.Dmg.Self,

			GreenArmor:  p.Items.GreenArmor.Took,
			YellowArmor: p.Items.YellowArmor.Took,
			RedArmor:    p.Items.RedArmor.Took,
			MegaHealth:  p.Items.MegaHealth.Took,
			Quads:       p.Items.Quad.Took,
			Pents:       p.Items.Pent.Took,
			Rings:       p.Items.Ring.Took,

			SG: p.Weapons.SG.external(),
			LG: p.Weapons.LG.external(),
			RL: p.Weapons.RL.external(),
		})
	}

	return usecase.ExternalMatch{
		Date:     m.Date,
		Map:      m.Map,
		Hostname: m.Hostname,
		MatchTag: m.MatchTag,
		Players:  players,
	}
}
