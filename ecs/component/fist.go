package component

import (
	"github.com/jakecoffman/cp"
	"github.com/looplab/fsm"
	"github.com/milk9111/bossfight/common"
)

const (
	FistAttached  = "attached"
	FistLaunched  = "launched"
	FistReturning = "returning"
)

// Fist is the detachable part of a boss. Boss is a non-owning back-reference.
type Fist struct {
	Boss        uint64
	Offset      cp.Vector
	LaunchSpeed float64
	ReturnSpeed float64
	LaunchDelay common.Timer
	ReturnDelay common.Timer
	Target      cp.Vector
	FacingLeft  bool
	FSM         *fsm.FSM
}

// State returns the current FSM state, or FistAttached before the FSM exists.
func (f *Fist) State() string {
	if f == nil || f.FSM == nil {
		return FistAttached
	}
	return f.FSM.Current()
}

var FistComponent = NewComponent[Fist]()
