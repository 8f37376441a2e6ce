package component

import (
	"fmt"
	"strings"
)

type PlayerSlot int

const (
	PlayerOne PlayerSlot = iota
	PlayerTwo
)

func (s PlayerSlot) String() string {
	if s == PlayerTwo {
		return "two"
	}
	return "one"
}

func ParsePlayerSlot(s string) (PlayerSlot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "one", "1":
		return PlayerOne, nil
	case "two", "2":
		return PlayerTwo, nil
	}
	return 0, fmt.Errorf("unknown player slot %q", s)
}

type Player struct {
	Slot  PlayerSlot
	Speed float64
}

var PlayerComponent = NewComponent[Player]()
