package component

import "github.com/milk9111/slimegame/common"

// Transform is a world position. Z only orders drawing.
type Transform struct {
	X float64
	Y float64
	Z float64
}

func (t Transform) Pos() common.Vec2 {
	return common.Vec2{X: t.X, Y: t.Y}
}

var TransformComponent = NewComponent[Transform]()

type Velocity struct {
	X float64
	Y float64
}

func (v Velocity) Vec() common.Vec2 {
	return common.Vec2{X: v.X, Y: v.Y}
}

var VelocityComponent = NewComponent[Velocity]()
