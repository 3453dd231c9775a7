package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
)

type MinionKind string

const (
	MinionRunning MinionKind = "running"
	MinionFlying  MinionKind = "flying"
)

// Minion drives a boss-spawned enemy. Running minions drop to the floor and
// run left; flying minions fly to Target and shoot at the player from there.
type Minion struct {
	Kind       MinionKind
	Boss       uint64
	Speed      float64
	Target     cp.Vector
	Arrived    bool
	FacingLeft bool
	ShotTimer  common.Timer
	ShotSpeed  float64
	// OnDamageInflicted is handed to every bullet the minion fires.
	OnDamageInflicted func(target uint64)
}

var MinionComponent = NewComponent[Minion]()
