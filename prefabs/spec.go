package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Seconds is a YAML-friendly duration written as fractional seconds.
type Seconds float64

func (s Seconds) Duration() time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type GameSpec struct {
	Defaults   DefaultsSpec   `yaml:"defaults"`
	Player     PlayerSpec     `yaml:"player"`
	Projectile ProjectileSpec `yaml:"projectile"`
	Laser      LaserSpec      `yaml:"laser"`
	Lightning  LightningSpec  `yaml:"lightning"`
	Hazard     HazardSpec     `yaml:"hazard"`
	Camera     CameraSpec     `yaml:"camera"`
	LevelEnd   LevelEndSpec   `yaml:"level_end"`
	Health     HealthSpec     `yaml:"health"`
	Gun        GunSpec        `yaml:"gun"`
}

type DefaultsSpec struct {
	Level     int                `yaml:"level"`
	Money     int                `yaml:"money"`
	Gun       WeaponDefaultsSpec `yaml:"gun"`
	Lightning WeaponDefaultsSpec `yaml:"lightning"`
	Laser     WeaponDefaultsSpec `yaml:"laser"`
}

type WeaponDefaultsSpec struct {
	Cooldown Seconds `yaml:"cooldown"`
	Damage   float64 `yaml:"damage"`
	Size     float64 `yaml:"size"`
}

type PlayerSpec struct {
	Health float64   `yaml:"health"`
	Radius float64   `yaml:"radius"`
	Speed  float64   `yaml:"speed"`
	Color  YAMLColor `yaml:"color"`
}

type ProjectileSpec struct {
	Speed    float64 `yaml:"speed"`
	Lifetime Seconds `yaml:"lifetime"`
	Radius   float64 `yaml:"radius"`
	Offset   float64 `yaml:"offset"`
}

type LaserSpec struct {
	Lifetime Seconds `yaml:"lifetime"`
	Radius   float64 `yaml:"radius"`
}

type LightningSpec struct {
	BaseRadius float64 `yaml:"base_radius"`
	Marker     Seconds `yaml:"marker"`
}

type HazardSpec struct {
	DamagePerSecond float64 `yaml:"damage_per_second"`
}

type CameraSpec struct {
	Threshold float64 `yaml:"threshold"`
}

type LevelEndSpec struct {
	Grace Seconds `yaml:"grace"`
}

type HealthSpec struct {
	Flash Seconds `yaml:"flash"`
}

type GunSpec struct {
	AutoFire bool `yaml:"auto_fire"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type EnemySpec struct {
	Type     string       `yaml:"type"`
	Health   float64      `yaml:"health"`
	Reward   int          `yaml:"reward"`
	Radius   float64      `yaml:"radius"`
	Color    YAMLColor    `yaml:"color"`
	Movement MovementSpec `yaml:"movement"`
	Charge   *ChargeSpec  `yaml:"charge"`
	Explode  *ExplodeSpec `yaml:"explode"`
}

type MovementSpec struct {
	Kind     string  `yaml:"kind"`
	Speed    float64 `yaml:"speed"`
	Jitter   float64 `yaml:"jitter"`
	MaxSpeed float64 `yaml:"max_speed"`
}

type ChargeSpec struct {
	Cooldown Seconds `yaml:"cooldown"`
	Window   Seconds `yaml:"window"`
	Speed    float64 `yaml:"speed"`
}

type ExplodeSpec struct {
	Fragments         int     `yaml:"fragments"`
	Health            float64 `yaml:"health"`
	Reward            int     `yaml:"reward"`
	Radius            float64 `yaml:"radius"`
	Scatter           float64 `yaml:"scatter"`
	ChargeCooldownMin Seconds `yaml:"charge_cooldown_min"`
	ChargeCooldownMax Seconds `yaml:"charge_cooldown_max"`
	ChargeWindow      Seconds `yaml:"charge_window"`
	ChargeSpeed       float64 `yaml:"charge_speed"`
}

type EnemySpecs struct {
	Enemies []EnemySpec `yaml:"enemies"`
}

// Lookup returns the profile for an enemy type name.
func (s *EnemySpecs) Lookup(name string) (EnemySpec, bool) {
	if s == nil {
		return EnemySpec{}, false
	}
	for _, e := range s.Enemies {
		if strings.EqualFold(e.Type, name) {
			return e, true
		}
	}
	return EnemySpec{}, false
}

func LoadEnemySpecs() (*EnemySpecs, error) {
	spec, err := LoadSpec[EnemySpecs]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type LevelSpec struct {
	Number   int               `yaml:"number"`
	Name     string            `yaml:"name"`
	Arena    ArenaSpec         `yaml:"arena"`
	Players  []PlayerSpawnSpec `yaml:"players"`
	Spawners []SpawnerSpec     `yaml:"spawners"`
	Reward   RewardSpec        `yaml:"reward"`
}

type ArenaSpec struct {
	HalfSize          float64 `yaml:"half_size"`
	KillzoneThickness float64 `yaml:"killzone_thickness"`
}

type PlayerSpawnSpec struct {
	Slot     string   `yaml:"slot"`
	Position Vec2Spec `yaml:"position"`
	Weapons  []string `yaml:"weapons"`
}

type SpawnerSpec struct {
	Type         string   `yaml:"type"`
	Position     Vec2Spec `yaml:"position"`
	Timer        Seconds  `yaml:"timer"`
	InitialDelay Seconds  `yaml:"initial_delay"`
	Limit        int      `yaml:"limit"`
}

type RewardSpec struct {
	Money  int `yaml:"money"`
	Unlock int `yaml:"unlock"`
}

// LevelCount is the number of shipped levels.
const LevelCount = 3

func LoadLevelSpec(n int) (*LevelSpec, error) {
	if n < 1 || n > LevelCount {
		return nil, fmt.Errorf("prefabs: level %d out of range 1..%d", n, LevelCount)
	}
	spec, err := LoadSpec[LevelSpec](fmt.Sprintf("level%d.yaml", n))
	if err != nil {
		return nil, err
	}
	if spec.Number == 0 {
		spec.Number = n
	}
	return &spec, nil
}

type UpgradeSpec struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Price  int    `yaml:"price"`
	Script string `yaml:"script"`
}

type UpgradeSpecs struct {
	Upgrades []UpgradeSpec `yaml:"upgrades"`
}

func LoadUpgradeSpecs() (*UpgradeSpecs, error) {
	spec, err := LoadSpec[UpgradeSpecs]("upgrades.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// YAMLColor accepts an SVG color name ("seagreen") or #rrggbb[aa].
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// RGBA falls back to white when no color was configured.
func (c YAMLColor) RGBA() (r, g, b, a uint32) {
	if c.Color == nil {
		return colornames.White.RGBA()
	}
	return c.Color.RGBA()
}
