package team

import (
	"fmt"
	"strings"
)

// Team is a tournament team identified by its in-game tag.
type Team struct {
	Tag     string
	Name    string
	LogoURL string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Tag) == "" {
		return fmt.Errorf("team tag is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required for tag %q", t.Tag)
	}

	return nil
}

// Directory resolves team tokens (tag or display name) to tags and names.
type Directory struct {
	names   map[string]string
	byToken map[string]string
}

func NewDirectory(teams []Team) Directory {
	d := Directory{
		names:   make(map[string]string, len(teams)),
		byToken: make(map[string]string, len(teams)*2),
	}
	for _, item := range teams {
		tag := strings.TrimSpace(item.Tag)
		if tag == "" {
			continue
		}
		name := strings.TrimSpace(item.Name)
		if name != "" {
			d.names[tag] = name
			d.byToken[strings.ToLower(name)] = tag
		}
		d.byToken[strings.ToLower(tag)] = tag
	}
	return d
}

// Name returns the display name for tag, falling back to the tag itself.
func (d Directory) Name(tag string) string {
	if name, ok := d.names[tag]; ok {
		return name
	}
	return tag
}

// Canonical maps a tag or display name onto the tag. Unknown tokens are
// returned trimmed.
func (d Directory) Canonical(token string) string {
	trimmed := strings.TrimSpace(token)
	if tag, ok := d.byToken[strings.ToLower(trimmed)]; ok {
		return tag
	}
	return trimmed
}
