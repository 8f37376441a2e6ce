package progression

import "fmt"

type LevelResult int

const (
	ResultNone LevelResult = iota
	ResultWon
	ResultLost
)

func (r LevelResult) String() string {
	switch r {
	case ResultWon:
		return "won"
	case ResultLost:
		return "lost"
	default:
		return "none"
	}
}

// Apply finishes a level for the menu layer. Rewards and unlocks are
// credited during the tick that decided the result, so Apply only resets
// per-level state that should not survive into the next level.
func Apply(data *GameData, result LevelResult) error {
	if data == nil {
		return fmt.Errorf("progression: apply %s: nil data", result)
	}
	switch result {
	case ResultWon, ResultLost:
		data.CameraAnchor = data.CameraAnchor.Scale(0)
	}
	return nil
}
