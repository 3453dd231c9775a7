package common

// timerEpsilon absorbs float drift when a fixed step accumulates to the
// duration (15 * 1/60 is not exactly 0.25).
const timerEpsilon = 1e-9

// Timer counts elapsed seconds up to a duration. It is advanced explicitly
// with the tick delta; nothing happens between calls to Update.
type Timer struct {
	duration     float64
	elapsed      float64
	justFinished bool
}

// NewTimer creates a timer that is not yet finished.
func NewTimer(duration float64) Timer {
	if duration < 0 {
		duration = 0
	}
	return Timer{duration: duration}
}

// Update advances the timer by delta seconds.
func (t *Timer) Update(delta float64) {
	if t == nil {
		return
	}
	before := t.Finished()
	if delta > 0 {
		t.elapsed += delta
		if t.elapsed > t.duration {
			t.elapsed = t.duration
		}
	}
	t.justFinished = !before && t.Finished()
}

// Finished reports whether the elapsed time has reached the duration.
func (t *Timer) Finished() bool {
	if t == nil {
		return true
	}
	return t.elapsed >= t.duration-timerEpsilon
}

// JustFinished reports whether the last Update crossed the duration.
func (t *Timer) JustFinished() bool {
	return t != nil && t.justFinished
}

// Reset rewinds the timer to zero elapsed time.
func (t *Timer) Reset() {
	if t == nil {
		return
	}
	t.elapsed = 0
	t.justFinished = false
}

// ResetDuration changes the duration and rewinds the timer.
func (t *Timer) ResetDuration(duration float64) {
	if t == nil {
		return
	}
	if duration < 0 {
		duration = 0
	}
	t.duration = duration
	t.Reset()
}

// SetToEnd marks the timer finished without reporting a just-finished edge.
func (t *Timer) SetToEnd() {
	if t == nil {
		return
	}
	t.elapsed = t.duration
	t.justFinished = false
}

func (t *Timer) Duration() float64 {
	if t == nil {
		return 0
	}
	return t.duration
}

func (t *Timer) Elapsed() float64 {
	if t == nil {
		return 0
	}
	return t.elapsed
}

// Ratio returns elapsed/duration in [0, 1]. A zero-length timer is always 1.
func (t *Timer) Ratio() float64 {
	if t == nil || t.duration <= 0 {
		return 1
	}
	return Clamp01(t.elapsed / t.duration)
}
