package lattice

import (
	"sort"

	"github.com/ibex-analyzer/ibex/analysis/num"
)

// Thresholds is a finite ordered set of numbers consulted by widening
// with thresholds: a growing bound snaps to the nearest enclosing
// threshold instead of jumping to ±∞.
type Thresholds[N num.Num[N]] struct {
	ts []N
}

// NewThresholds builds a threshold set from the given numbers,
// deduplicated and sorted.
func NewThresholds[N num.Num[N]](ns ...N) Thresholds[N] {
	ts := append([]N(nil), ns...)
	sort.Slice(ts, func(i, j int) bool {
		return ts[i].Cmp(ts[j]) < 0
	})
	dedup := ts[:0]
	for i, n := range ts {
		if i == 0 || ts[i-1].Cmp(n) != 0 {
			dedup = append(dedup, n)
		}
	}
	return Thresholds[N]{dedup}
}

// Size returns the number of thresholds.
func (t Thresholds[N]) Size() int {
	return len(t.ts)
}

// GetPrev returns the greatest threshold that is less than or equal to
// b, or -∞ when there is none.
func (t Thresholds[N]) GetPrev(b Bound[N]) Bound[N] {
	if b.IsMinusInf() {
		return b
	}
	if b.IsPlusInf() {
		if len(t.ts) > 0 {
			return Finite(t.ts[len(t.ts)-1])
		}
		return MinusInf[N]()
	}
	n, _ := b.Number()
	// First index holding a threshold strictly greater than n.
	idx := sort.Search(len(t.ts), func(i int) bool {
		return t.ts[i].Cmp(n) > 0
	})
	if idx == 0 {
		return MinusInf[N]()
	}
	return Finite(t.ts[idx-1])
}

// GetNext returns the least threshold that is greater than or equal to
// b, or ∞ when there is none.
func (t Thresholds[N]) GetNext(b Bound[N]) Bound[N] {
	if b.IsPlusInf() {
		return b
	}
	if b.IsMinusInf() {
		if len(t.ts) > 0 {
			return Finite(t.ts[0])
		}
		return PlusInf[N]()
	}
	n, _ := b.Number()
	// First index holding a threshold of at least n.
	idx := sort.Search(len(t.ts), func(i int) bool {
		return t.ts[i].Cmp(n) >= 0
	})
	if idx == len(t.ts) {
		return PlusInf[N]()
	}
	return Finite(t.ts[idx])
}
