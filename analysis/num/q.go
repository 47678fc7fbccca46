package num

import "math/big"

// Q is an arbitrary-precision rational. The zero value denotes 0.
// Every operation returns a fresh value; receivers are never mutated.
type Q struct {
	r *big.Rat
}

// QFromInt64 creates the rational n/1.
func QFromInt64(n int64) Q {
	return Q{big.NewRat(n, 1)}
}

// QFromFrac creates the rational n/d. d must not be zero.
func QFromFrac(n, d int64) Q {
	return Q{big.NewRat(n, d)}
}

func (a Q) ref() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

func (a Q) Add(b Q) Q {
	return Q{new(big.Rat).Add(a.ref(), b.ref())}
}

func (a Q) Sub(b Q) Q {
	return Q{new(big.Rat).Sub(a.ref(), b.ref())}
}

func (a Q) Mul(b Q) Q {
	return Q{new(big.Rat).Mul(a.ref(), b.ref())}
}

// Div is the exact quotient. The divisor must not be zero.
func (a Q) Div(b Q) Q {
	return Q{new(big.Rat).Quo(a.ref(), b.ref())}
}

func (a Q) Neg() Q {
	return Q{new(big.Rat).Neg(a.ref())}
}

func (a Q) Abs() Q {
	return Q{new(big.Rat).Abs(a.ref())}
}

func (a Q) Cmp(b Q) int {
	return a.ref().Cmp(b.ref())
}

func (a Q) Sign() int {
	return a.ref().Sign()
}

func (Q) Zero() Q {
	return Q{}
}

func (Q) One() Q {
	return Q{big.NewRat(1, 1)}
}

func (Q) IsIntegral() bool {
	return false
}

// Eq reports value equality.
func (a Q) Eq(b Q) bool {
	return a.Cmp(b) == 0
}

// RoundToLower returns the greatest integer that is less than or equal
// to the receiver (the floor).
func (a Q) RoundToLower() Z {
	r := a.ref()
	// The denominator of big.Rat is always positive, so Euclidean
	// division of the numerator by it rounds toward -∞.
	return Z{new(big.Int).Div(r.Num(), r.Denom())}
}

// RoundToUpper returns the least integer that is greater than or equal
// to the receiver (the ceiling).
func (a Q) RoundToUpper() Z {
	return a.Neg().RoundToLower().Neg()
}

func (a Q) String() string {
	r := a.ref()
	if r.IsInt() {
		return r.Num().String()
	}
	return r.RatString()
}
