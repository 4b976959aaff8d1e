package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const runIDLength = 12

// Generator creates opaque IDs for runs and log correlation.
type Generator interface {
	NewID() (string, error)
}

type NanoGenerator struct {
	size int
}

func NewNanoGenerator() *NanoGenerator {
	return &NanoGenerator{size: runIDLength}
}

func (g *NanoGenerator) NewID() (string, error) {
	out, err := gonanoid.New(g.size)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return out, nil
}
