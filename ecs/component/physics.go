package component

// ColliderLayer selects which other layers a collider reports contacts with.
type ColliderLayer int

const (
	LayerPlayer ColliderLayer = iota
	LayerEnemy
	LayerProjectile
)

// Collider is a circular sensor owned by the physics substrate. The physics
// system creates and removes the backing body; gameplay code only sets
// Radius and Layer.
type Collider struct {
	Radius float64
	Layer  ColliderLayer
}

var ColliderComponent = NewComponent[Collider]()
