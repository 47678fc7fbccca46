package lattice

import (
	"github.com/ibex-analyzer/ibex/analysis/num"
)

// Division, remainder, bitwise and shift transfer functions specific
// to integer intervals. The generic Interval methods cover the ring
// operations; everything that depends on truncation, two's-complement
// bit patterns or shift semantics lives here.
//
// The interval domain carries no bit-width, so several of these return
// ⊤ where precise signed/unsigned reasoning would need one. That is
// deliberate and sound.

type zi = Interval[num.Z]

var (
	zZero = num.Z{}
	zOne  = num.FromInt64(1)
)

// Div computes the truncated integer division of two intervals.
//
// A singleton divisor is the common case produced by the constraint
// solver and is handled directly. A divisor straddling zero is split
// at zero (exclusively) and the two halves joined; likewise for a
// dividend straddling zero. When neither operand contains zero and the
// dividend is entirely negative, the dividend is first offset by
// 1 - divisor (by divisor + 1 when the divisor is negative) to
// compensate for truncation before taking endpoint quotients.
func Div(x, y zi) zi {
	if x.IsBot() || y.IsBot() {
		return Bottom[num.Z]()
	}

	if c, ok := y.Singleton(); ok {
		switch {
		case c.Eq(zOne):
			return x
		case c.Sign() > 0:
			d := Finite(c)
			return NewInterval(must(x.lb.Div(d)), must(x.ub.Div(d)))
		case c.Sign() < 0:
			d := Finite(c)
			return NewInterval(must(x.ub.Div(d)), must(x.lb.Div(d)))
		default:
			return Bottom[num.Z]()
		}
	}

	switch {
	case y.Contains(zZero):
		l := NewInterval(y.lb, Finite(zOne.Neg()))
		u := NewInterval(Finite(zOne), y.ub)
		return Div(x, l).Join(Div(x, u))

	case x.Contains(zZero):
		l := NewInterval(x.lb, Finite(zOne.Neg()))
		u := NewInterval(Finite(zOne), x.ub)
		return Div(l, y).Join(Div(u, y)).Join(Singleton(zZero))

	default:
		// Neither the dividend nor the divisor contains 0.
		a := x
		if x.ub.Lt(Finite(zZero)) {
			if y.ub.Lt(Finite(zZero)) {
				a = x.Add(y.Add(Singleton(zOne)))
			} else {
				a = x.Add(Singleton(zOne).Sub(y))
			}
		}
		ll := must(a.lb.Div(y.lb))
		lu := must(a.lb.Div(y.ub))
		ul := must(a.ub.Div(y.lb))
		uu := must(a.ub.Div(y.ub))
		return NewInterval(minBound(ll, lu, ul, uu), maxBound(ll, lu, ul, uu))
	}
}

// UDiv is unsigned division. Without a bit-width there is nothing to
// say about the reinterpreted operands.
func UDiv(x, y zi) zi {
	if x.IsBot() || y.IsBot() {
		return Bottom[num.Z]()
	}
	return Top[num.Z]()
}

// SRem computes the truncated (sign-of-dividend) remainder. The sign
// of the divisor does not matter.
func SRem(x, y zi) zi {
	if x.IsBot() || y.IsBot() {
		return Bottom[num.Z]()
	}

	dividend, xOk := x.Singleton()
	divisor, yOk := y.Singleton()
	switch {
	case xOk && yOk:
		if divisor.Sign() == 0 {
			return Bottom[num.Z]()
		}
		return Singleton(dividend.Rem(divisor))

	case y.lb.IsFinite() && y.ub.IsFinite():
		ylb, _ := y.lb.Number()
		yub, _ := y.ub.Number()
		maxDivisor := ylb.Abs()
		if maxDivisor.Cmp(yub.Abs()) < 0 {
			maxDivisor = yub.Abs()
		}
		if maxDivisor.Sign() == 0 {
			return Bottom[num.Z]()
		}

		m := maxDivisor.Sub(zOne)
		if x.lb.Lt(Finite(zZero)) {
			if x.ub.Gt(Finite(zZero)) {
				return NewInterval(Finite(m.Neg()), Finite(m))
			}
			return NewInterval(Finite(m.Neg()), Finite(zZero))
		}
		return NewInterval(Finite(zZero), Finite(m))
	}

	return Top[num.Z]()
}

// URem treats the dividend as unsigned. A divisor that may be negative
// would need a bit-width to reinterpret, so the result is ⊤ there.
func URem(x, y zi) zi {
	if x.IsBot() || y.IsBot() {
		return Bottom[num.Z]()
	}

	dividend, xOk := x.Singleton()
	divisor, yOk := y.Singleton()
	switch {
	case xOk && yOk:
		switch {
		case divisor.Sign() < 0:
			return Top[num.Z]()
		case divisor.Sign() == 0:
			return Bottom[num.Z]()
		case dividend.Sign() < 0:
			// The unsigned reinterpretation of the dividend is
			// unknown without a width; all residues are possible.
			return NewInterval(Finite(zZero), Finite(divisor.Sub(zOne)))
		}
		return Singleton(dividend.Rem(divisor))

	case y.lb.IsFinite() && y.ub.IsFinite():
		if y.lb.Lt(Finite(zZero)) || y.ub.Lt(Finite(zZero)) {
			return Top[num.Z]()
		}
		maxDivisor, _ := y.ub.Number()
		if maxDivisor.Sign() == 0 {
			return Bottom[num.Z]()
		}
		return NewInterval(Finite(zZero), Finite(maxDivisor.Sub(zOne)))
	}

	return Top[num.Z]()
}

// And computes bitwise conjunction. Non-negative operands can only
// shrink, bounding the result by the smaller upper bound.
func And(x, y zi) zi {
	if x.IsBot() || y.IsBot() {
		return Bottom[num.Z]()
	}

	xv, xOk := x.Singleton()
	yv, yOk := y.Singleton()
	switch {
	case xOk && yOk:
		return Singleton(xv.And(yv))
	case x.lb.Geq(Finite(zZero)) && y.lb.Geq(Finite(zZero)):
		return NewInterval(Finite(zZero), x.ub.Min(y.ub))
	}
	return Top[num.Z]()
}

// Or computes bitwise disjunction. For non-negative operands the
// result cannot exceed the all-ones pattern covering the larger upper
// bound.
func Or(x, y zi) zi {
	if x.IsBot() || y.IsBot() {
		return Bottom[num.Z]()
	}

	xv, xOk := x.Singleton()
	yv, yOk := y.Singleton()
	switch {
	case xOk && yOk:
		return Singleton(xv.Or(yv))
	case x.lb.Geq(Finite(zZero)) && y.lb.Geq(Finite(zZero)):
		xub, xFin := x.ub.Number()
		yub, yFin := y.ub.Number()
		if xFin && yFin {
			m := xub
			if m.Cmp(yub) < 0 {
				m = yub
			}
			return NewInterval(Finite(zZero), Finite(m.FillOnes()))
		}
		return NewInterval(Finite(zZero), PlusInf[num.Z]())
	}
	return Top[num.Z]()
}

// Xor is exact on singletons and otherwise delegates to Or.
func Xor(x, y zi) zi {
	if x.IsBot() || y.IsBot() {
		return Bottom[num.Z]()
	}

	if xv, ok := x.Singleton(); ok {
		if yv, ok := y.Singleton(); ok {
			return Singleton(xv.Xor(yv))
		}
	}
	return Or(x, y)
}

// maxShift caps the shift amounts we bother modelling; generated code
// occasionally carries absurd shifts and multiplying out a power of
// two per shifted bit is wasted work beyond this.
var maxShift = num.FromInt64(128)

// shiftFactor extracts a usable shift amount from y: a non-negative
// singleton of at most 128, returned as 2^k.
func shiftFactor(y zi) (num.Z, bool) {
	k, ok := y.Singleton()
	if !ok || k.Sign() < 0 || k.Cmp(maxShift) > 0 {
		return num.Z{}, false
	}
	k64, _ := k.Int64()
	return zOne.Lsh(uint(k64)), true
}

// Shl is left shift: multiplication by 2^k for a known shift amount,
// and ⊤ for negative or unknown amounts.
func Shl(x, y zi) zi {
	if x.IsBot() || y.IsBot() {
		return Bottom[num.Z]()
	}

	if factor, ok := shiftFactor(y); ok {
		return x.Mul(Singleton(factor))
	}
	return Top[num.Z]()
}

// AShr is arithmetic right shift: division by 2^k for a known shift
// amount.
func AShr(x, y zi) zi {
	if x.IsBot() || y.IsBot() {
		return Bottom[num.Z]()
	}

	if factor, ok := shiftFactor(y); ok {
		return Div(x, Singleton(factor))
	}
	return Top[num.Z]()
}

// LShr is logical right shift. It additionally needs a non-negative
// dividend with a finite upper bound; sign-extension of an unknown
// width is not representable otherwise.
func LShr(x, y zi) zi {
	if x.IsBot() || y.IsBot() {
		return Bottom[num.Z]()
	}

	if k, ok := y.Singleton(); ok && k.Sign() >= 0 && k.Cmp(maxShift) <= 0 {
		if x.lb.Geq(Finite(zZero)) && x.ub.IsFinite() {
			xlb, _ := x.lb.Number()
			xub, _ := x.ub.Number()
			k64, _ := k.Int64()
			return NewInterval(Finite(xlb.Rsh(uint(k64))), Finite(xub.Rsh(uint(k64))))
		}
	}
	return Top[num.Z]()
}
