package domain

import "fmt"

// Pillar identifies one of the three character pillars every athlete
// progresses through. Pillar values appear in API paths, stats rows and
// level tables, so they are stable lowercase identifiers.
type Pillar string

const (
	PillarResilient  Pillar = "resilient"
	PillarRelentless Pillar = "relentless"
	PillarFearless   Pillar = "fearless"
)

// Pillars lists every pillar in canonical display order.
var Pillars = []Pillar{PillarResilient, PillarRelentless, PillarFearless}

// ParsePillar converts a raw string into a Pillar, rejecting unknown values.
func ParsePillar(s string) (Pillar, error) {
	p := Pillar(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPillar, s)
	}
	return p, nil
}

// Valid reports whether p is one of the three known pillars.
func (p Pillar) Valid() bool {
	switch p {
	case PillarResilient, PillarRelentless, PillarFearless:
		return true
	}
	return false
}

func (p Pillar) String() string {
	return string(p)
}
