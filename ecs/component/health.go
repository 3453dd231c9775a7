package component

type Health struct {
	Current int
	Max     int
}

// Ratio returns Current/Max clamped to [0, 1].
func (h *Health) Ratio() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	r := float64(h.Current) / float64(h.Max)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

func (h *Health) Depleted() bool {
	return h == nil || h.Current <= 0
}

var HealthComponent = NewComponent[Health]()
