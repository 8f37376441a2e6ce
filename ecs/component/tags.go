package component

// Owner ties a child entity (a weapon) to its parent. Despawning the parent
// despawns the child. Parent holds an ecs.Entity value.
type Owner struct {
	Parent uint64
}

var OwnerComponent = NewComponent[Owner]()

// LightningMarker is the short-lived visual left where lightning struck.
type LightningMarker struct {
	Radius float64
}

var LightningMarkerComponent = NewComponent[LightningMarker]()
