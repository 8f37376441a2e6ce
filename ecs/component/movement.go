package component

import (
	"fmt"
	"strings"
)

type MovementKind int

const (
	MovementHoming MovementKind = iota
	MovementRandom
)

func ParseMovementKind(s string) (MovementKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "homing":
		return MovementHoming, nil
	case "random":
		return MovementRandom, nil
	}
	return 0, fmt.Errorf("unknown movement %q", s)
}

// Movement is the per-enemy steering variant. Speed applies to Homing;
// Heading, Jitter and MaxSpeed apply to Random.
type Movement struct {
	Kind     MovementKind
	Speed    float64
	Heading  float64
	Jitter   float64
	MaxSpeed float64
}

var MovementComponent = NewComponent[Movement]()
