package component

// Spawner emits enemies of Type from its Transform. Count never exceeds
// Limit; once it reaches Limit the spawner is exhausted for good.
type Spawner struct {
	Type         EnemyType
	Timer        Timer
	InitialDelay Timer
	Count        int
	Limit        int
}

func (s *Spawner) Exhausted() bool {
	return s.Count >= s.Limit
}

var SpawnerComponent = NewComponent[Spawner]()
