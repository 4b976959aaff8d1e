package memory

import (
	"github.com/riskibarqy/qw-league/internal/domain/fixture"
	"github.com/riskibarqy/qw-league/internal/domain/roster"
	"github.com/riskibarqy/qw-league/internal/domain/team"
)

// Seed data for the in-memory storage driver. Real tournaments load their
// configuration from a workbook.

func SeedTeams() []team.Team {
	return []team.Team{
		{Tag: "]sr[", Name: "Suddendeath"},
		{Tag: "tsq", Name: "The Suicide Quad"},
		{Tag: "hx", Name: "Hell Xpress"},
		{Tag: "oeks", Name: "Oeks"},
	}
}

func SeedFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{Position: 1, Round: "1", Team1: "Suddendeath", Team2: "The Suicide Quad"},
		{Position: 2, Round: "1", Team1: "Hell Xpress", Team2: "Oeks"},
		{Position: 3, Round: "2", Team1: "Suddendeath", Team2: "Hell Xpress"},
		{Position: 4, Round: "2", Team1: "The Suicide Quad", Team2: "Oeks"},
		{Position: 5, Round: "3", Team1: "Suddendeath", Team2: "Oeks"},
		{Position: 6, Round: "3", Team1: "The Suicide Quad", Team2: "Hell Xpress"},
		{Position: 7, Round: "Final", Team1: "TBD", Team2: "TBD"},
	}
}

func SeedPlayers() []roster.Player {
	return []roster.Player{
		{Kind: roster.KindPlayers, Position: 1, Team: "]sr[", Name: "bps", Aliases: []string{"bps", "bps•"}},
		{Kind: roster.KindPlayers, Position: 2, Team: "]sr[", Name: "xantom", Aliases: []string{"xantom"}},
		{Kind: roster.KindPlayers, Position: 3, Team: "tsq", Name: "bogojoker", Aliases: []string{"bogojoker", "bogo"}},
		{Kind: roster.KindPlayers, Position: 4, Team: "hx", Name: "rotker", Aliases: []string{"rotker"}},
		{Kind: roster.KindPlayers, Position: 5, Team: "oeks", Name: "milton", Aliases: []string{"milton"}},
	}
}
