package component

import "github.com/milk9111/slimegame/common"

// Input is the per-player control state for one tick. Attack is an edge:
// true only on the tick the attack button went down.
type Input struct {
	Move   common.Vec2
	Attack bool
}

var InputComponent = NewComponent[Input]()
