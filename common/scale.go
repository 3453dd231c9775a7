package common

// DifficultyScale maps a health ratio to a pacing value. At full health it
// yields AtFull, at zero health AtEmpty, and interpolates linearly between.
//
// Attack delays use AtFull > AtEmpty (the boss attacks more often as it
// weakens); speeds use AtFull < AtEmpty.
type DifficultyScale struct {
	AtFull  float64
	AtEmpty float64
}

// At evaluates the scale for healthRatio, clamped to [0, 1].
func (s DifficultyScale) At(healthRatio float64) float64 {
	return Lerp(s.AtEmpty, s.AtFull, Clamp01(healthRatio))
}
