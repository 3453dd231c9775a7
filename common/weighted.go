package common

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySelector = errors.New("common: weighted selector is empty")
	ErrInvalidWeight = errors.New("common: weight must be positive")
)

// WeightedSelector draws items with probability proportional to their
// weight. Items keep insertion order so a draw is reproducible for a given
// random value.
type WeightedSelector[T comparable] struct {
	items   []T
	weights map[T]float64
	sum     float64
}

// NewWeightedSelector creates an empty selector.
func NewWeightedSelector[T comparable]() *WeightedSelector[T] {
	return &WeightedSelector[T]{weights: make(map[T]float64)}
}

// PutItem inserts item or overwrites its weight.
func (s *WeightedSelector[T]) PutItem(item T, weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("%w: %v=%v", ErrInvalidWeight, item, weight)
	}
	if s.weights == nil {
		s.weights = make(map[T]float64)
	}
	if old, ok := s.weights[item]; ok {
		s.sum += weight - old
	} else {
		s.items = append(s.items, item)
		s.sum += weight
	}
	s.weights[item] = weight
	return nil
}

// RemoveItem deletes item. It reports whether the item was present.
func (s *WeightedSelector[T]) RemoveItem(item T) bool {
	old, ok := s.weights[item]
	if !ok {
		return false
	}
	delete(s.weights, item)
	s.sum -= old
	for i, it := range s.items {
		if it == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	if len(s.items) == 0 {
		s.sum = 0
	}
	return true
}

// RandomItem draws one item using rng.
func (s *WeightedSelector[T]) RandomItem(rng Random) (T, error) {
	var zero T
	if len(s.items) == 0 || s.sum <= 0 {
		return zero, ErrEmptySelector
	}

	r := rng.Float64() * s.sum
	cumulative := 0.0
	for _, item := range s.items {
		cumulative += s.weights[item]
		if cumulative >= r {
			return item, nil
		}
	}

	// rounding can leave r a hair above the final cumulative sum
	return s.items[len(s.items)-1], nil
}

// Weight returns the weight of item, or 0 when absent.
func (s *WeightedSelector[T]) Weight(item T) float64 {
	return s.weights[item]
}

// Sum returns the running weight total.
func (s *WeightedSelector[T]) Sum() float64 {
	return s.sum
}

func (s *WeightedSelector[T]) Len() int {
	return len(s.items)
}

// Items returns a copy of the items in insertion order.
func (s *WeightedSelector[T]) Items() []T {
	return append([]T(nil), s.items...)
}
