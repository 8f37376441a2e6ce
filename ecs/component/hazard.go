package component

// Killzone is an axis-aligned hazard rectangle centered on its Transform.
// Players overlapping it lose DamagePerSecond scaled by the tick delta.
type Killzone struct {
	Width           float64
	Height          float64
	DamagePerSecond float64
}

var KillzoneComponent = NewComponent[Killzone]()
