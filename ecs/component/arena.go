package component

import "github.com/jakecoffman/cp"

// Arena holds the named rectangles of the boss room. There is one per level.
type Arena struct {
	Bounds     cp.BB
	FloorY     float64
	Front      cp.BB
	Back       cp.BB
	Fly1       cp.BB
	Fly2       cp.BB
	KillerWall cp.BB
}

// FlyTargets returns the centers of the flying-minion hover points in order.
func (a *Arena) FlyTargets() []cp.Vector {
	return []cp.Vector{a.Fly1.Center(), a.Fly2.Center()}
}

var ArenaComponent = NewComponent[Arena]()
