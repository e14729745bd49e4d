package util

import (
	"math"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// SortedKeys is GetKeys in ascending order.
func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	slices.Sort(keys)
	return keys
}

func Min[A constraints.Ordered](a, b A) A {
	if a > b {
		return b
	}
	return a
}

func Max[A constraints.Ordered](a, b A) A {
	if a < b {
		return b
	}
	return a
}

func Clamp[A constraints.Ordered](v, lo, hi A) A {
	return Max(lo, Min(v, hi))
}

// NonNegative clamps v to >= 0 and folds -0 into 0.
func NonNegative(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v
}

// AlmostEqual compares with a relative tolerance, falling back to an
// absolute one near zero.
func AlmostEqual(a, b, tol float64) bool {
	d := math.Abs(a - b)
	if d <= tol {
		return true
	}
	return d <= tol*math.Max(math.Abs(a), math.Abs(b))
}
