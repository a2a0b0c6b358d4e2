package service

import (
	"giveaway-bot-backend/internal/utils/random"
)

// selectWinners draws up to n unique participants from the pool, uniformly
// at random and without replacement. The pool is not modified. When the pool
// holds n or fewer participants, everyone wins.
func selectWinners(pool []string, n int) []string {
	if len(pool) == 0 || n <= 0 {
		return nil
	}
	return random.Sample(pool, n)
}
