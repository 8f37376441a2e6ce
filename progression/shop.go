package progression

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/prefabs"
)

var (
	ErrUnknownUpgrade    = errors.New("progression: unknown upgrade")
	ErrInsufficientFunds = errors.New("progression: insufficient funds")
	ErrInvalidUpgrade    = errors.New("progression: upgrade produced invalid stats")
)

// Upgrade is a shop entry. Its effect is a tengo script that edits the
// gun, lightning and laser maps in place.
type Upgrade struct {
	ID     string
	Name   string
	Price  int
	source []byte
}

type Shop struct {
	upgrades []Upgrade
	byID     map[string]int
}

// LoadShop builds the shop from upgrades.yaml and the embedded scripts.
func LoadShop() (*Shop, error) {
	specs, err := prefabs.LoadUpgradeSpecs()
	if err != nil {
		return nil, err
	}
	return NewShop(specs.Upgrades, prefabs.LoadScript)
}

func NewShop(specs []prefabs.UpgradeSpec, load func(string) ([]byte, error)) (*Shop, error) {
	s := &Shop{byID: make(map[string]int, len(specs))}
	for _, spec := range specs {
		if spec.ID == "" {
			return nil, fmt.Errorf("progression: upgrade %q has no id", spec.Name)
		}
		if _, dup := s.byID[spec.ID]; dup {
			return nil, fmt.Errorf("progression: duplicate upgrade %q", spec.ID)
		}
		src, err := load(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("progression: load script for %s: %w", spec.ID, err)
		}
		// Compile once up front so a broken script fails at startup.
		if _, err := compileUpgrade(src, Default()); err != nil {
			return nil, fmt.Errorf("progression: compile %s: %w", spec.ID, err)
		}
		s.byID[spec.ID] = len(s.upgrades)
		s.upgrades = append(s.upgrades, Upgrade{ID: spec.ID, Name: spec.Name, Price: spec.Price, source: src})
	}
	return s, nil
}

func (s *Shop) Upgrades() []Upgrade {
	if s == nil {
		return nil
	}
	out := make([]Upgrade, len(s.upgrades))
	copy(out, s.upgrades)
	return out
}

// Purchase charges the upgrade price and applies its effect. On any error
// data is left untouched.
func (s *Shop) Purchase(data *GameData, id string) error {
	if s == nil || data == nil {
		return ErrUnknownUpgrade
	}
	idx, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownUpgrade, id)
	}
	up := s.upgrades[idx]
	if data.Money < up.Price {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientFunds, id, up.Price, data.Money)
	}

	compiled, err := compileUpgrade(up.source, *data)
	if err != nil {
		return fmt.Errorf("progression: compile %s: %w", id, err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("progression: run %s: %w", id, err)
	}

	next := *data
	next.Gun = readStats(compiled, "gun", data.Gun)
	next.Lightning = readStats(compiled, "lightning", data.Lightning)
	next.Laser = readStats(compiled, "laser", data.Laser)
	for _, st := range []WeaponStats{next.Gun, next.Lightning, next.Laser} {
		if !validStats(st) {
			return fmt.Errorf("%w: %s", ErrInvalidUpgrade, id)
		}
	}

	next.Money -= up.Price
	*data = next
	return nil
}

func compileUpgrade(src []byte, data GameData) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for name, st := range map[string]WeaponStats{"gun": data.Gun, "lightning": data.Lightning, "laser": data.Laser} {
		if err := script.Add(name, statsMap(st)); err != nil {
			return nil, err
		}
	}
	return script.Compile()
}

func statsMap(st WeaponStats) map[string]interface{} {
	return map[string]interface{}{
		"cooldown": st.Cooldown.Seconds(),
		"damage":   st.Damage,
		"size":     st.Size,
	}
}

func readStats(c *tengo.Compiled, name string, fallback WeaponStats) WeaponStats {
	m := c.Get(name).Map()
	if m == nil {
		return fallback
	}
	st := fallback
	if v, ok := number(m["cooldown"]); ok {
		st.Cooldown = time.Duration(v * float64(time.Second))
	}
	if v, ok := number(m["damage"]); ok {
		st.Damage = v
	}
	if v, ok := number(m["size"]); ok {
		st.Size = v
	}
	return st
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

func validStats(st WeaponStats) bool {
	return st.Cooldown >= 0 && common.Finite(st.Damage) && common.Finite(st.Size) && !math.Signbit(st.Size)
}
