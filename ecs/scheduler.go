package ecs

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Step advances the world clock by delta seconds and runs every system once
// in registration order.
func (s *Scheduler) Step(w *World, delta float64) {
	if w == nil {
		return
	}
	w.delta = delta
	for _, system := range s.systems {
		system.Update(w)
	}
	w.tick++
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
