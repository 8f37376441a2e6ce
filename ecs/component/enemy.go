package component

import (
	"fmt"
	"strings"
)

type EnemyType int

const (
	EnemyNormal EnemyType = iota
	EnemyElite
	EnemyBoss
	EnemyFragment
)

func (t EnemyType) String() string {
	switch t {
	case EnemyNormal:
		return "normal"
	case EnemyElite:
		return "elite"
	case EnemyBoss:
		return "boss"
	case EnemyFragment:
		return "fragment"
	default:
		return fmt.Sprintf("enemy(%d)", int(t))
	}
}

func ParseEnemyType(s string) (EnemyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return EnemyNormal, nil
	case "elite":
		return EnemyElite, nil
	case "boss":
		return EnemyBoss, nil
	case "fragment":
		return EnemyFragment, nil
	}
	return 0, fmt.Errorf("unknown enemy type %q", s)
}

type Enemy struct {
	Type   EnemyType
	Reward int
}

var EnemyComponent = NewComponent[Enemy]()
