package lattice

import (
	"github.com/ibex-analyzer/ibex/analysis/num"
)

var qZero = num.Q{}

// QDiv computes exact rational interval division. A divisor interval
// that merely contains zero (without being exactly zero) yields ⊤,
// except for a zero dividend where the quotient is pinned to 0.
func QDiv(x, y Interval[num.Q]) Interval[num.Q] {
	if x.IsBot() || y.IsBot() {
		return Bottom[num.Q]()
	}

	if d, ok := y.Singleton(); ok && d.Sign() == 0 {
		return Bottom[num.Q]()
	}

	if y.Contains(qZero) {
		if n, ok := x.Singleton(); ok && n.Sign() == 0 {
			return Singleton(qZero)
		}
		return Top[num.Q]()
	}

	ll := must(x.lb.Div(y.lb))
	lu := must(x.lb.Div(y.ub))
	ul := must(x.ub.Div(y.lb))
	uu := must(x.ub.Div(y.ub))
	return NewInterval(minBound(ll, lu, ul, uu), maxBound(ll, lu, ul, uu))
}

// BoundZToQ embeds an integer bound into the rationals.
func BoundZToQ(b Bound[num.Z]) Bound[num.Q] {
	if n, ok := b.Number(); ok {
		return Finite(n.Rat())
	}
	if b.IsPlusInf() {
		return PlusInf[num.Q]()
	}
	return MinusInf[num.Q]()
}

// BoundQToZLower converts a rational bound to an integer lower bound:
// the least integer still admitted is the ceiling.
func BoundQToZLower(b Bound[num.Q]) Bound[num.Z] {
	if n, ok := b.Number(); ok {
		return Finite(n.RoundToUpper())
	}
	if b.IsPlusInf() {
		return PlusInf[num.Z]()
	}
	return MinusInf[num.Z]()
}

// BoundQToZUpper converts a rational bound to an integer upper bound:
// the greatest integer still admitted is the floor.
func BoundQToZUpper(b Bound[num.Q]) Bound[num.Z] {
	if n, ok := b.Number(); ok {
		return Finite(n.RoundToLower())
	}
	if b.IsPlusInf() {
		return PlusInf[num.Z]()
	}
	return MinusInf[num.Z]()
}

// IntervalQToZ converts a rational interval to the tightest enclosing
// integer interval.
func IntervalQToZ(i Interval[num.Q]) Interval[num.Z] {
	if i.IsBot() {
		return Bottom[num.Z]()
	}
	return NewInterval(BoundQToZLower(i.lb), BoundQToZUpper(i.ub))
}

// IntervalZToQ embeds an integer interval into the rationals.
func IntervalZToQ(i Interval[num.Z]) Interval[num.Q] {
	if i.IsBot() {
		return Bottom[num.Q]()
	}
	return Interval[num.Q]{BoundZToQ(i.lb), BoundZToQ(i.ub)}
}
