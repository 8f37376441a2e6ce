package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/slimegame/ecs/component"
	"github.com/milk9111/slimegame/prefabs"
)

// Profiles resolves enemies.yaml entries into spawnable parameters.
type Profiles struct {
	byType map[component.EnemyType]EnemyParams
}

func NewProfiles(specs *prefabs.EnemySpecs, flash time.Duration) (*Profiles, error) {
	p := &Profiles{byType: make(map[component.EnemyType]EnemyParams)}
	if specs == nil {
		return p, nil
	}

	var fragment *prefabs.EnemySpec
	for i := range specs.Enemies {
		if t, err := component.ParseEnemyType(specs.Enemies[i].Type); err == nil && t == component.EnemyFragment {
			fragment = &specs.Enemies[i]
		}
	}

	for _, spec := range specs.Enemies {
		params, err := paramsFromSpec(spec, fragment, flash)
		if err != nil {
			return nil, err
		}
		p.byType[params.Type] = params
	}
	return p, nil
}

// Lookup returns a copy of the profile so callers may place it freely.
func (p *Profiles) Lookup(t component.EnemyType) (EnemyParams, bool) {
	if p == nil {
		return EnemyParams{}, false
	}
	params, ok := p.byType[t]
	if !ok {
		return EnemyParams{}, false
	}
	if params.Charge != nil {
		c := *params.Charge
		params.Charge = &c
	}
	if params.Explode != nil {
		ex := *params.Explode
		params.Explode = &ex
	}
	return params, true
}

func paramsFromSpec(spec prefabs.EnemySpec, fragment *prefabs.EnemySpec, flash time.Duration) (EnemyParams, error) {
	t, err := component.ParseEnemyType(spec.Type)
	if err != nil {
		return EnemyParams{}, fmt.Errorf("enemy profile: %w", err)
	}
	kind, err := component.ParseMovementKind(spec.Movement.Kind)
	if err != nil {
		return EnemyParams{}, fmt.Errorf("enemy profile %s: %w", t, err)
	}

	params := EnemyParams{
		Type:   t,
		Z:      1,
		Health: spec.Health,
		Reward: spec.Reward,
		Radius: spec.Radius,
		Flash:  flash,
		Movement: component.Movement{
			Kind:     kind,
			Speed:    spec.Movement.Speed,
			Jitter:   spec.Movement.Jitter,
			MaxSpeed: spec.Movement.MaxSpeed,
		},
	}

	if c := spec.Charge; c != nil {
		charge := component.NewCharge(c.Cooldown.Duration(), c.Window.Duration(), c.Speed)
		params.Charge = &charge
	}

	if ex := spec.Explode; ex != nil {
		explode := component.Explode{
			Fragments:         ex.Fragments,
			FragmentHealth:    ex.Health,
			FragmentReward:    ex.Reward,
			FragmentRadius:    ex.Radius,
			Scatter:           ex.Scatter,
			ChargeCooldownMin: ex.ChargeCooldownMin.Duration(),
			ChargeCooldownMax: ex.ChargeCooldownMax.Duration(),
			ChargeWindow:      ex.ChargeWindow.Duration(),
			ChargeSpeed:       ex.ChargeSpeed,
		}
		if fragment != nil {
			explode.Jitter = fragment.Movement.Jitter
			explode.MaxSpeed = fragment.Movement.MaxSpeed
		}
		params.Explode = &explode
	}

	return params, nil
}
