package game

import "math/rand"

// Sample returns a uniformly random permutation of pool, truncated to count
// items. A count that is zero, negative, or larger than the pool returns
// the full shuffled pool. The input slice is never modified.
func Sample[T any](pool []T, count int) []T {
	out := make([]T, len(pool))
	copy(out, pool)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if count > 0 && count < len(out) {
		out = out[:count]
	}
	return out
}
