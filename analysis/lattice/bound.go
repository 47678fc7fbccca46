package lattice

import (
	"github.com/ibex-analyzer/ibex/analysis/num"
)

// Bound is an extended number: either a finite value of N or one of
// the two infinities. When infinite, the numeric field only carries
// the sign (±1); no magnitude is attached.
type Bound[N num.Num[N]] struct {
	infinite bool
	n        N
}

// bd normalizes the sign carrier of infinite bounds.
func bd[N num.Num[N]](infinite bool, n N) Bound[N] {
	if infinite {
		if n.Sign() > 0 {
			n = n.One()
		} else {
			n = n.One().Neg()
		}
	}
	return Bound[N]{infinite, n}
}

// Finite creates the bound denoting n.
func Finite[N num.Num[N]](n N) Bound[N] {
	return Bound[N]{infinite: false, n: n}
}

// PlusInf creates the bound ∞.
func PlusInf[N num.Num[N]]() Bound[N] {
	var z N
	return Bound[N]{infinite: true, n: z.One()}
}

// MinusInf creates the bound -∞.
func MinusInf[N num.Num[N]]() Bound[N] {
	var z N
	return Bound[N]{infinite: true, n: z.One().Neg()}
}

func (b Bound[N]) IsInfinite() bool {
	return b.infinite
}

func (b Bound[N]) IsFinite() bool {
	return !b.infinite
}

func (b Bound[N]) IsPlusInf() bool {
	return b.infinite && b.n.Sign() > 0
}

func (b Bound[N]) IsMinusInf() bool {
	return b.infinite && b.n.Sign() < 0
}

// Number returns the finite value of the bound, if it has one.
func (b Bound[N]) Number() (N, bool) {
	if b.infinite {
		var z N
		return z, false
	}
	return b.n, true
}

// Neg flips the sign of the bound. Finite 0 stays 0.
func (b Bound[N]) Neg() Bound[N] {
	return Bound[N]{b.infinite, b.n.Neg()}
}

// Add computes b + o. The semantics is:
//
//	.-----------------------------.
//	|    b   |    o   |   b + o   |
//	|========|========|===========|
//	|  ∈  N  |  ∈  N  |   b + o   |
//	|--------|--------|-----------|
//	|  ∈  N  |  (-)∞  |   (-)∞    |
//	|--------|--------|-----------|
//	|    ∞   |    ∞   |     ∞     |
//	|--------|--------|-----------|
//	|   -∞   |   -∞   |    -∞     |
//	|--------|--------|-----------|
//	|    ∞   |   -∞   |   error   |
//	 -----------------------------
func (b Bound[N]) Add(o Bound[N]) (Bound[N], error) {
	switch {
	case !b.infinite && !o.infinite:
		return Finite(b.n.Add(o.n)), nil
	case !b.infinite:
		return o, nil
	case !o.infinite:
		return b, nil
	case b.n.Cmp(o.n) == 0:
		return b, nil
	}
	return Bound[N]{}, ErrOppositeInfinities
}

// Sub computes b - o as b + (-o), with the same undefined case as Add.
func (b Bound[N]) Sub(o Bound[N]) (Bound[N], error) {
	return b.Add(o.Neg())
}

// Mul computes b * o. A literal zero operand absorbs infinities; any
// remaining infinite operand yields the infinity whose sign is the
// product of the operand signs.
func (b Bound[N]) Mul(o Bound[N]) Bound[N] {
	switch {
	case !o.infinite && o.n.Sign() == 0:
		return o
	case !b.infinite && b.n.Sign() == 0:
		return b
	}
	return bd(b.infinite || o.infinite, b.n.Mul(o.n))
}

// Div computes b / o. The semantics is:
//
//	.-----------------------------.
//	|    b   |    o   |   b / o   |
//	|========|========|===========|
//	|  ∈  N  |  ∈ N≠0 |   b / o   |
//	|--------|--------|-----------|
//	|   ≠ 0  |  (-)∞  | sign(b·o)∞|
//	|--------|--------|-----------|
//	|    0   |  (-)∞  |     0     |
//	|--------|--------|-----------|
//	|  (-)∞  |  ∈ N≠0 | sign(b·o)∞|
//	|--------|--------|-----------|
//	|  (-)∞  |  (-)∞  | sign(b·o)∞|
//	|--------|--------|-----------|
//	|  ∀ b   |    0   |   error   |
//	 -----------------------------
//
// The infinite results over-approximate; callers that need exactness
// gate on singleton divisors.
func (b Bound[N]) Div(o Bound[N]) (Bound[N], error) {
	switch {
	case !o.infinite && o.n.Sign() == 0:
		return Bound[N]{}, ErrDivisionByZero
	case !b.infinite && !o.infinite:
		return Finite(b.n.Div(o.n)), nil
	case !b.infinite:
		switch {
		case b.n.Sign() > 0:
			return o, nil
		case b.n.Sign() == 0:
			return b, nil
		}
		return o.Neg(), nil
	case !o.infinite:
		if o.n.Sign() > 0 {
			return b, nil
		}
		return b.Neg(), nil
	}
	return bd(true, b.n.Mul(o.n)), nil
}

// Cmp totally orders bounds: -∞ < any finite value < ∞.
func (b Bound[N]) Cmp(o Bound[N]) int {
	if b.infinite != o.infinite {
		if b.infinite {
			return b.n.Sign()
		}
		return -o.n.Sign()
	}
	return b.n.Cmp(o.n)
}

func (b Bound[N]) Eq(o Bound[N]) bool {
	return b.infinite == o.infinite && b.n.Cmp(o.n) == 0
}

func (b Bound[N]) Leq(o Bound[N]) bool {
	return b.Cmp(o) <= 0
}

func (b Bound[N]) Lt(o Bound[N]) bool {
	return b.Cmp(o) < 0
}

func (b Bound[N]) Geq(o Bound[N]) bool {
	return b.Cmp(o) >= 0
}

func (b Bound[N]) Gt(o Bound[N]) bool {
	return b.Cmp(o) > 0
}

func (b Bound[N]) Min(o Bound[N]) Bound[N] {
	if b.Leq(o) {
		return b
	}
	return o
}

func (b Bound[N]) Max(o Bound[N]) Bound[N] {
	if b.Leq(o) {
		return o
	}
	return b
}

func (b Bound[N]) Abs() Bound[N] {
	if b.Cmp(Bound[N]{}) >= 0 {
		return b
	}
	return b.Neg()
}

func minBound[N num.Num[N]](b Bound[N], rest ...Bound[N]) Bound[N] {
	for _, o := range rest {
		b = b.Min(o)
	}
	return b
}

func maxBound[N num.Num[N]](b Bound[N], rest ...Bound[N]) Bound[N] {
	for _, o := range rest {
		b = b.Max(o)
	}
	return b
}

func (b Bound[N]) String() string {
	switch {
	case b.IsPlusInf():
		return colorize.Element("∞")
	case b.IsMinusInf():
		return colorize.Element("-∞")
	}
	return colorize.Element(b.n.String())
}
