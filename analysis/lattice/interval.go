package lattice

import (
	"github.com/ibex-analyzer/ibex/analysis/num"
)

// Interval is a pair of extended bounds [lb, ub] denoting the set
// { x ∈ N : lb ≤ x ≤ ub }. The empty set has the unique canonical
// representation [0, -1]; every constructor normalizes to it.
type Interval[N num.Num[N]] struct {
	lb, ub Bound[N]
}

// NewInterval creates the interval [lb, ub], normalizing inverted
// pairs to bottom.
func NewInterval[N num.Num[N]](lb, ub Bound[N]) Interval[N] {
	if lb.Gt(ub) {
		return Bottom[N]()
	}
	return Interval[N]{lb, ub}
}

// Singleton creates the interval [n, n].
func Singleton[N num.Num[N]](n N) Interval[N] {
	return Interval[N]{Finite(n), Finite(n)}
}

// SingletonBound creates the interval [b, b]. An infinite bound
// denotes no single number, so the result is bottom.
func SingletonBound[N num.Num[N]](b Bound[N]) Interval[N] {
	if b.IsInfinite() {
		return Bottom[N]()
	}
	return Interval[N]{b, b}
}

// Top yields [-∞, ∞].
func Top[N num.Num[N]]() Interval[N] {
	return Interval[N]{MinusInf[N](), PlusInf[N]()}
}

// Bottom yields the canonical empty interval [0, -1].
func Bottom[N num.Num[N]]() Interval[N] {
	var z N
	return Interval[N]{Finite(z.Zero()), Finite(z.One().Neg())}
}

func (i Interval[N]) Lb() Bound[N] {
	return i.lb
}

func (i Interval[N]) Ub() Bound[N] {
	return i.ub
}

func (i Interval[N]) IsBot() bool {
	return i.lb.Gt(i.ub)
}

func (i Interval[N]) IsTop() bool {
	return i.lb.IsInfinite() && i.ub.IsInfinite()
}

// Bot returns the bottom interval (instance-based factory).
func (Interval[N]) Bot() Interval[N] {
	return Bottom[N]()
}

// Top returns the top interval (instance-based factory).
func (Interval[N]) Top() Interval[N] {
	return Top[N]()
}

// LowerHalfLine extends the interval down to -∞.
func (i Interval[N]) LowerHalfLine() Interval[N] {
	if i.IsBot() {
		return i
	}
	return Interval[N]{MinusInf[N](), i.ub}
}

// UpperHalfLine extends the interval up to ∞.
func (i Interval[N]) UpperHalfLine() Interval[N] {
	if i.IsBot() {
		return i
	}
	return Interval[N]{i.lb, PlusInf[N]()}
}

// Singleton returns the sole inhabitant of the interval, if any.
func (i Interval[N]) Singleton() (N, bool) {
	if !i.IsBot() && i.lb.Eq(i.ub) {
		return i.lb.Number()
	}
	var z N
	return z, false
}

// Contains reports whether the number n lies in the interval.
func (i Interval[N]) Contains(n N) bool {
	if i.IsBot() {
		return false
	}
	b := Finite(n)
	return i.lb.Leq(b) && b.Leq(i.ub)
}

func (i Interval[N]) Eq(o Interval[N]) bool {
	if i.IsBot() {
		return o.IsBot()
	}
	return i.lb.Eq(o.lb) && i.ub.Eq(o.ub)
}

// Leq computes i ⊑ o.
func (i Interval[N]) Leq(o Interval[N]) bool {
	switch {
	case i.IsBot():
		return true
	case o.IsBot():
		return false
	}
	return o.lb.Leq(i.lb) && i.ub.Leq(o.ub)
}

// Join computes i ⊔ o: the lowest of the lower bounds and the highest
// of the upper bounds.
func (i Interval[N]) Join(o Interval[N]) Interval[N] {
	switch {
	case i.IsBot():
		return o
	case o.IsBot():
		return i
	}
	return Interval[N]{i.lb.Min(o.lb), i.ub.Max(o.ub)}
}

// Meet computes i ⊓ o; a resulting inverted pair normalizes to bottom.
func (i Interval[N]) Meet(o Interval[N]) Interval[N] {
	if i.IsBot() || o.IsBot() {
		return Bottom[N]()
	}
	return NewInterval(i.lb.Max(o.lb), i.ub.Min(o.ub))
}

// Widen computes i ∇ o: any bound of o that escapes i jumps to the
// corresponding infinity. Per bound only the chain finite → ∞ can be
// traversed, so iterated widening stabilizes.
func (i Interval[N]) Widen(o Interval[N]) Interval[N] {
	switch {
	case i.IsBot():
		return o
	case o.IsBot():
		return i
	}
	lb := i.lb
	if o.lb.Lt(i.lb) {
		lb = MinusInf[N]()
	}
	ub := i.ub
	if i.ub.Lt(o.ub) {
		ub = PlusInf[N]()
	}
	return Interval[N]{lb, ub}
}

// WidenThresholds widens like Widen, but a growing bound snaps to the
// nearest enclosing threshold instead of jumping to infinity.
func (i Interval[N]) WidenThresholds(o Interval[N], ts Thresholds[N]) Interval[N] {
	switch {
	case i.IsBot():
		return o
	case o.IsBot():
		return i
	}
	lb := i.lb
	if o.lb.Lt(i.lb) {
		lb = ts.GetPrev(o.lb)
	}
	ub := i.ub
	if i.ub.Lt(o.ub) {
		ub = ts.GetNext(o.ub)
	}
	return NewInterval(lb, ub)
}

// Narrow computes i ▽ o: infinite bounds of i may be tightened to the
// corresponding finite bound of o. Each side narrows at most once, so
// iterated narrowing terminates.
func (i Interval[N]) Narrow(o Interval[N]) Interval[N] {
	if i.IsBot() || o.IsBot() {
		return Bottom[N]()
	}
	lb := i.lb
	if i.lb.IsInfinite() && o.lb.IsFinite() {
		lb = o.lb
	}
	ub := i.ub
	if i.ub.IsInfinite() && o.ub.IsFinite() {
		ub = o.ub
	}
	return NewInterval(lb, ub)
}

// Add computes [lb₁+lb₂, ub₁+ub₂].
func (i Interval[N]) Add(o Interval[N]) Interval[N] {
	if i.IsBot() || o.IsBot() {
		return Bottom[N]()
	}
	return NewInterval(must(i.lb.Add(o.lb)), must(i.ub.Add(o.ub)))
}

// Neg computes [-ub, -lb].
func (i Interval[N]) Neg() Interval[N] {
	if i.IsBot() {
		return i
	}
	return Interval[N]{i.ub.Neg(), i.lb.Neg()}
}

// Sub computes [lb₁-ub₂, ub₁-lb₂].
func (i Interval[N]) Sub(o Interval[N]) Interval[N] {
	if i.IsBot() || o.IsBot() {
		return Bottom[N]()
	}
	return NewInterval(must(i.lb.Sub(o.ub)), must(i.ub.Sub(o.lb)))
}

// Mul spans the four endpoint products.
func (i Interval[N]) Mul(o Interval[N]) Interval[N] {
	if i.IsBot() || o.IsBot() {
		return Bottom[N]()
	}
	ll := i.lb.Mul(o.lb)
	lu := i.lb.Mul(o.ub)
	ul := i.ub.Mul(o.lb)
	uu := i.ub.Mul(o.ub)
	return NewInterval(minBound(ll, lu, ul, uu), maxBound(ll, lu, ul, uu))
}

func (i Interval[N]) String() string {
	if i.IsBot() {
		return "_|_"
	}
	return "[" + i.lb.String() + ", " + i.ub.String() + "]"
}
