package progression

import (
	"time"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/prefabs"
)

// WeaponStats is the between-level configuration of one weapon.
type WeaponStats struct {
	Cooldown time.Duration `yaml:"cooldown"`
	Damage   float64       `yaml:"damage"`
	Size     float64       `yaml:"size,omitempty"`
}

// GameData is the progression snapshot carried across levels. Level is the
// highest unlocked level.
type GameData struct {
	Level        int         `yaml:"level"`
	Money        int         `yaml:"money"`
	Gun          WeaponStats `yaml:"gun"`
	Lightning    WeaponStats `yaml:"lightning"`
	Laser        WeaponStats `yaml:"laser"`
	CameraAnchor common.Vec2 `yaml:"camera_anchor"`
}

func Default() GameData {
	return GameData{
		Level:     1,
		Money:     200,
		Gun:       WeaponStats{Cooldown: 1500 * time.Millisecond, Damage: 20},
		Lightning: WeaponStats{Cooldown: 10 * time.Second, Damage: 100, Size: 2.5},
		Laser:     WeaponStats{Cooldown: 10 * time.Second, Damage: 500},
	}
}

// DefaultFrom builds a fresh snapshot from the game.yaml defaults block.
// Zero fields keep the built-in values.
func DefaultFrom(spec prefabs.DefaultsSpec) GameData {
	d := Default()
	if spec.Level > 0 {
		d.Level = spec.Level
	}
	if spec.Money > 0 {
		d.Money = spec.Money
	}
	d.Gun = mergeStats(d.Gun, spec.Gun)
	d.Lightning = mergeStats(d.Lightning, spec.Lightning)
	d.Laser = mergeStats(d.Laser, spec.Laser)
	return d
}

func mergeStats(base WeaponStats, spec prefabs.WeaponDefaultsSpec) WeaponStats {
	if spec.Cooldown > 0 {
		base.Cooldown = spec.Cooldown.Duration()
	}
	if spec.Damage > 0 {
		base.Damage = spec.Damage
	}
	if spec.Size > 0 {
		base.Size = spec.Size
	}
	return base
}

// Credit adds money. Negative amounts are ignored.
func (d *GameData) Credit(amount int) {
	if d == nil || amount <= 0 {
		return
	}
	d.Money += amount
}

// Unlock raises the unlocked level; it never lowers it.
func (d *GameData) Unlock(level int) {
	if d == nil {
		return
	}
	if level > d.Level {
		d.Level = level
	}
}

// Unlocked reports whether level may be started.
func (d GameData) Unlocked(level int) bool {
	return level >= 1 && level <= d.Level
}
