package roster

import (
	"errors"
	"fmt"
	"strings"
)

// Kind separates the primary roster from the standins roster.
type Kind string

const (
	KindPlayers  Kind = "players"
	KindStandins Kind = "standins"
)

var ErrAmbiguousAlias = errors.New("alias belongs to more than one player")

// Player is a canonical player identity with its in-game nicknames.
type Player struct {
	Kind     Kind
	Position int
	Team     string
	Aliases  []string
	Name     string
}

// ParseAliases splits a comma separated nickname list.
func ParseAliases(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		alias := strings.TrimSpace(part)
		if alias == "" {
			continue
		}
		out = append(out, alias)
	}
	return out
}

// AliasText renders aliases the way the roster column stores them.
func (p Player) AliasText() string {
	return strings.Join(p.Aliases, ",")
}

// Matches reports whether nick is one of the player's aliases, ignoring case.
func (p Player) Matches(nick string) bool {
	lowered := strings.ToLower(nick)
	for _, alias := range p.Aliases {
		if strings.ToLower(alias) == lowered {
			return true
		}
	}
	return false
}

// ValidateAliases fails when one lower-cased alias is owned by two players
// across all given rosters.
func ValidateAliases(rosters ...[]Player) error {
	owners := make(map[string]string)
	for _, players := range rosters {
		for _, player := range players {
			seen := make(map[string]struct{}, len(player.Aliases))
			for _, alias := range player.Aliases {
				key := strings.ToLower(alias)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}

				if owner, ok := owners[key]; ok {
					return fmt.Errorf("%w: %q is used by %q and %q", ErrAmbiguousAlias, alias, owner, player.Name)
				}
				owners[key] = player.Name
			}
		}
	}
	return nil
}
