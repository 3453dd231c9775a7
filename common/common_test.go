package common

import (
	"errors"
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestTimer(t *testing.T) {
	t.Run("finishes_on_fixed_step", func(t *testing.T) {
		tm := NewTimer(0.25)
		ticks := 0
		for !tm.Finished() {
			tm.Update(1.0 / 60.0)
			ticks++
			if ticks > 100 {
				t.Fatalf("timer never finished")
			}
		}
		if ticks != 15 {
			t.Fatalf("expected 15 ticks, got %d", ticks)
		}
		if !tm.JustFinished() {
			t.Fatalf("expected just-finished edge on the finishing tick")
		}
		tm.Update(1.0 / 60.0)
		if tm.JustFinished() {
			t.Fatalf("just-finished must only hold for one update")
		}
	})

	t.Run("reset_duration", func(t *testing.T) {
		tm := NewTimer(1)
		tm.Update(2)
		if !tm.Finished() || tm.Elapsed() != 1 {
			t.Fatalf("expected clamped elapsed 1, got %v", tm.Elapsed())
		}
		tm.ResetDuration(0.5)
		if tm.Finished() || tm.Duration() != 0.5 || tm.Elapsed() != 0 {
			t.Fatalf("unexpected state after ResetDuration: %+v", tm)
		}
	})

	t.Run("set_to_end", func(t *testing.T) {
		tm := NewTimer(3)
		tm.SetToEnd()
		if !tm.Finished() || tm.JustFinished() {
			t.Fatalf("SetToEnd should finish without an edge")
		}
		if tm.Ratio() != 1 {
			t.Fatalf("expected ratio 1, got %v", tm.Ratio())
		}
	})
}

type fixedRandom struct {
	values []float64
	i      int
}

func (f *fixedRandom) Float64() float64 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func (f *fixedRandom) IntRange(a, b int) int { return a }
func (f *fixedRandom) Bool() bool            { return false }

func TestWeightedSelector(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := NewWeightedSelector[string]()
		if _, err := s.RandomItem(NewRandom(1)); !errors.Is(err, ErrEmptySelector) {
			t.Fatalf("expected ErrEmptySelector, got %v", err)
		}
	})

	t.Run("rejects_non_positive_weight", func(t *testing.T) {
		s := NewWeightedSelector[string]()
		if err := s.PutItem("a", 0); !errors.Is(err, ErrInvalidWeight) {
			t.Fatalf("expected ErrInvalidWeight, got %v", err)
		}
		if s.Len() != 0 {
			t.Fatalf("rejected item must not be inserted")
		}
	})

	t.Run("put_overwrite_and_remove_keep_sum", func(t *testing.T) {
		s := NewWeightedSelector[string]()
		_ = s.PutItem("a", 6)
		_ = s.PutItem("b", 3)
		_ = s.PutItem("a", 1)
		if s.Sum() != 4 {
			t.Fatalf("expected sum 4, got %v", s.Sum())
		}
		if !s.RemoveItem("b") || s.RemoveItem("b") {
			t.Fatalf("remove should succeed once")
		}
		if s.Sum() != 1 || s.Len() != 1 {
			t.Fatalf("expected one item with sum 1, got len=%d sum=%v", s.Len(), s.Sum())
		}
	})

	t.Run("insertion_order_boundaries", func(t *testing.T) {
		s := NewWeightedSelector[string]()
		_ = s.PutItem("a", 1)
		_ = s.PutItem("b", 1)
		_ = s.PutItem("c", 2)
		cases := []struct {
			r    float64
			want string
		}{
			{0, "a"},
			{0.25, "a"},
			{0.3, "b"},
			{0.5, "b"},
			{0.51, "c"},
			{0.999, "c"},
		}
		for _, c := range cases {
			got, err := s.RandomItem(&fixedRandom{values: []float64{c.r}})
			if err != nil || got != c.want {
				t.Fatalf("r=%v: expected %s, got %s (%v)", c.r, c.want, got, err)
			}
		}
	})

	t.Run("fairness", func(t *testing.T) {
		s := NewWeightedSelector[string]()
		weights := map[string]float64{"A": 6, "B": 3, "C": 3, "D": 6}
		for _, k := range []string{"A", "B", "C", "D"} {
			_ = s.PutItem(k, weights[k])
		}
		// stratified draws hit every weight band in proportion
		const draws = 1800
		values := make([]float64, draws)
		for i := range values {
			values[i] = (float64(i) + 0.5) / draws
		}
		rng := &fixedRandom{values: values}
		counts := map[string]int{}
		for i := 0; i < draws; i++ {
			it, err := s.RandomItem(rng)
			if err != nil {
				t.Fatalf("draw failed: %v", err)
			}
			counts[it]++
		}
		for k, w := range weights {
			want := draws * w / 18
			got := float64(counts[k])
			if math.Abs(got-want) > want*0.1 {
				t.Fatalf("%s: expected %.0f±10%%, got %.0f (%v)", k, want, got, counts)
			}
		}
	})

	t.Run("fairness_seeded", func(t *testing.T) {
		s := NewWeightedSelector[string]()
		weights := map[string]float64{"A": 6, "B": 3, "C": 3, "D": 6}
		for _, k := range []string{"A", "B", "C", "D"} {
			_ = s.PutItem(k, weights[k])
		}
		rng := NewRandom(42)
		const draws = 18000
		counts := map[string]int{}
		for i := 0; i < draws; i++ {
			it, _ := s.RandomItem(rng)
			counts[it]++
		}
		for k, w := range weights {
			want := draws * w / 18
			if got := float64(counts[k]); math.Abs(got-want) > want*0.1 {
				t.Fatalf("%s: expected %.0f±10%%, got %.0f", k, want, got)
			}
		}
	})
}

func TestDifficultyScale(t *testing.T) {
	delay := DifficultyScale{AtFull: 1.25, AtEmpty: 0.75}
	if delay.At(1) != 1.25 || delay.At(0) != 0.75 {
		t.Fatalf("unexpected endpoints: %v %v", delay.At(1), delay.At(0))
	}
	prev := delay.At(1)
	for ratio := 1.0; ratio >= 0; ratio -= 0.05 {
		v := delay.At(ratio)
		if v > prev+1e-12 {
			t.Fatalf("delay increased as health dropped: ratio=%v %v > %v", ratio, v, prev)
		}
		prev = v
	}
	if delay.At(-3) != 0.75 || delay.At(7) != 1.25 {
		t.Fatalf("ratio must be clamped")
	}
}

func TestJumpImpulseLandsOnTarget(t *testing.T) {
	cases := []struct {
		name string
		from cp.Vector
		to   cp.Vector
	}{
		{"level", cp.Vector{X: 0, Y: 0}, cp.Vector{X: -200, Y: 0}},
		{"below", cp.Vector{X: 0, Y: 0}, cp.Vector{X: -150, Y: 90}},
		{"slightly_above", cp.Vector{X: 0, Y: 0}, cp.Vector{X: -120, Y: -40}},
	}
	const vy, g = 320.0, 400.0
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := JumpImpulse(c.from, c.to, vy, g)
			// integrate analytically to the time the horizontal target is reached
			tHit := (c.to.X - c.from.X) / v.X
			y := c.from.Y + v.Y*tHit + 0.5*g*tHit*tHit
			if math.Abs(y-c.to.Y) > 1e-6 {
				t.Fatalf("expected to land at y=%v, got %v", c.to.Y, y)
			}
		})
	}
}
