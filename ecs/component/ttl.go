package component

// TTL destroys an entity once Seconds have elapsed.
type TTL struct {
	Seconds float64
}

// CullOutOfBounds destroys an entity once its bounds leave the arena.
type CullOutOfBounds struct{}

var TTLComponent = NewComponent[TTL]()
var CullOutOfBoundsComponent = NewComponent[CullOutOfBounds]()
