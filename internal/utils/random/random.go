package random

import "math/rand"

// Sample draws n elements from pool uniformly without replacement using a
// partial Fisher-Yates shuffle. The input slice is not modified. When n is
// larger than the pool, every element is returned in random order.
func Sample[T any](pool []T, n int) []T {
	if n <= 0 || len(pool) == 0 {
		return []T{}
	}
	if n > len(pool) {
		n = len(pool)
	}

	candidates := make([]T, len(pool))
	copy(candidates, pool)

	picked := make([]T, 0, n)
	for i := 0; i < n; i++ {
		j := i + rand.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		picked = append(picked, candidates[i])
	}
	return picked
}
