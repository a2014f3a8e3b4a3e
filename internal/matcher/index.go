package matcher

import (
	"github.com/pattydubb/venice-recked/internal/models"
)

// glAmountIndex buckets eligible GL transactions by cent-rounded amount.
// Buckets hold positions into the source slice in input order, and the index
// tracks which positions a matching run has already consumed.
type glAmountIndex struct {
	buckets  map[string][]int
	consumed map[int]bool
}

// newGLAmountIndex indexes the unmatched entries of gl by amount key.
func newGLAmountIndex(gl []models.GLTransaction) *glAmountIndex {
	idx := &glAmountIndex{
		buckets:  make(map[string][]int),
		consumed: make(map[int]bool),
	}
	for i, tx := range gl {
		if tx.MatchStatus != models.StatusUnmatched {
			continue
		}
		key := models.AmountKey(tx.Amount)
		idx.buckets[key] = append(idx.buckets[key], i)
	}
	return idx
}

// available returns the unconsumed bucket positions for an amount key, in
// input order.
func (idx *glAmountIndex) available(key string) []int {
	var out []int
	for _, pos := range idx.buckets[key] {
		if !idx.consumed[pos] {
			out = append(out, pos)
		}
	}
	return out
}

// consume marks bucket positions as claimed for the remainder of the run.
func (idx *glAmountIndex) consume(positions ...int) {
	for _, pos := range positions {
		idx.consumed[pos] = true
	}
}
