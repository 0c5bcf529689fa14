// Package weighted picks one item from a list with probability proportional
// to its weight.
package weighted

import "math/rand"

// Choose draws one of items, where items[i] is picked with probability
// weights[i] / sum(weights). It returns false when the weights sum to zero,
// meaning nothing is selectable. Zero-weight items are never returned.
//
// items and weights must have the same length.
func Choose[T any](rng *rand.Rand, items []T, weights []float64) (T, bool) {
	var zero T
	if len(items) != len(weights) {
		panic("weighted: items and weights are different lengths")
	}

	cumulative := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w > 0 {
			total += w
		}
		cumulative[i] = total
	}

	if total == 0 {
		return zero, false
	}

	draw := rng.Float64() * total
	for i, c := range cumulative {
		if draw < c {
			return items[i], true
		}
	}

	// draw rounded up to total; take the last selectable item
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return items[i], true
		}
	}
	return zero, false
}
