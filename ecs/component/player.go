package component

type Player struct {
	MoveSpeed    float64
	JumpSpeed    float64
	ShotSpeed    float64
	ShotCooldown float64

	FacingLeft bool
	// Shooting is true on ticks where the player fired.
	Shooting bool
	cooldown float64
}

// ReadyToShoot advances the shot cooldown by delta and reports whether a new
// shot may be fired.
func (p *Player) ReadyToShoot(delta float64) bool {
	if p.cooldown > 0 {
		p.cooldown -= delta
	}
	return p.cooldown <= 0
}

func (p *Player) StartShotCooldown() {
	p.cooldown = p.ShotCooldown
}

var PlayerComponent = NewComponent[Player]()
