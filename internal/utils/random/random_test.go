package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleBasics(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}

	assert.Empty(t, Sample(pool, 0))
	assert.Empty(t, Sample(pool, -1))
	assert.Empty(t, Sample([]string{}, 3))

	picked := Sample(pool, 3)
	assert.Len(t, picked, 3)

	// Asking for more than the pool holds returns everything.
	all := Sample(pool, 10)
	assert.ElementsMatch(t, pool, all)
}

func TestSampleNoDuplicates(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	for trial := 0; trial < 100; trial++ {
		picked := Sample(pool, 4)
		seen := make(map[string]struct{}, len(picked))
		for _, p := range picked {
			_, dup := seen[p]
			assert.False(t, dup, "duplicate element %q", p)
			seen[p] = struct{}{}
			assert.Contains(t, pool, p)
		}
	}
}

func TestSampleDoesNotModifyPool(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}
	original := make([]string, len(pool))
	copy(original, pool)

	for i := 0; i < 50; i++ {
		Sample(pool, 3)
	}
	assert.Equal(t, original, pool)
}

// Every element should be drawn roughly equally often. With 6000 single
// draws from 6 elements the expected count is 1000 each; a 25% tolerance
// keeps the test stable while still catching a biased selector.
func TestSampleRoughlyUniform(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e", "f"}
	counts := make(map[string]int, len(pool))

	const trials = 6000
	for i := 0; i < trials; i++ {
		picked := Sample(pool, 1)
		counts[picked[0]]++
	}

	expected := trials / len(pool)
	for _, id := range pool {
		assert.InDelta(t, expected, counts[id], float64(expected)*0.25, "element %q drawn %d times", id, counts[id])
	}
}
