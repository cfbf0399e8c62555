package spawn

import (
	"fmt"
	"math/rand"

	"github.com/hordeloop/engine/internal/core/errs"
)

// Table is a read-only weighted choice over items. Cumulative weights are
// precomputed so Pick is a single draw plus a linear scan.
type Table[T any] struct {
	items []T
	cum   []int
	total int
}

// NewTable builds a table from parallel items and weights. Every weight must
// be positive.
func NewTable[T any](items []T, weights []int) (*Table[T], error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty weighted table", errs.ErrConfig)
	}
	if len(items) != len(weights) {
		return nil, fmt.Errorf("%w: %d items but %d weights", errs.ErrConfig, len(items), len(weights))
	}
	t := &Table[T]{
		items: append([]T(nil), items...),
		cum:   make([]int, len(weights)),
	}
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("%w: weight %d at index %d", errs.ErrConfig, w, i)
		}
		t.total += w
		t.cum[i] = t.total
	}
	return t, nil
}

// Pick draws r in [0, total) and returns the first item whose cumulative
// weight exceeds it.
func (t *Table[T]) Pick(rng *rand.Rand) T {
	r := rng.Intn(t.total)
	for i, c := range t.cum {
		if r < c {
			return t.items[i]
		}
	}
	return t.items[len(t.items)-1]
}

func (t *Table[T]) Total() int { return t.total }
func (t *Table[T]) Len() int   { return len(t.items) }
