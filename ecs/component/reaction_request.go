package component

// ReactionRequest asks BossSystem to start the taunt reaction on the boss it
// is attached to. Damage callbacks add it when a boss-owned damager lands a
// hit on the player.
type ReactionRequest struct {
	Target uint64
}

var ReactionRequestComponent = NewComponent[ReactionRequest]()
