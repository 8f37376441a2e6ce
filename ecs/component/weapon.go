package component

import "github.com/milk9111/slimegame/common"

// Gun fires a projectile at the nearest enemy. With AutoFire it fires as
// soon as it arms.
type Gun struct {
	Trigger
	Damage   float64
	AutoFire bool
}

var GunComponent = NewComponent[Gun]()

// LightningGun strikes every enemy within BaseRadius*Size/2 of its owner.
type LightningGun struct {
	Trigger
	Damage     float64
	Size       float64
	BaseRadius float64
}

func (l *LightningGun) Radius() float64 {
	return l.BaseRadius * l.Size / 2
}

var LightningGunComponent = NewComponent[LightningGun]()

// LaserGun opens a beam between the two players.
type LaserGun struct {
	Trigger
	DamagePerSecond float64
}

var LaserGunComponent = NewComponent[LaserGun]()

// Laser is a live beam from A to B; every enemy it touches loses
// DamagePerSecond scaled by the tick delta.
type Laser struct {
	A               common.Vec2
	B               common.Vec2
	Radius          float64
	DamagePerSecond float64
}

var LaserComponent = NewComponent[Laser]()

type Projectile struct {
	Damage float64
}

var ProjectileComponent = NewComponent[Projectile]()
