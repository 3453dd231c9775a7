package component

// Input stores per-tick input state for the player entity.
type Input struct {
	MoveX       float64
	JumpPressed bool
	Shoot       bool
	// Charged requests a charged shot instead of a buster pellet.
	Charged bool
}

var InputComponent = NewComponent[Input]()
