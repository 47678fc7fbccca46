package num

import "math/big"

// Z is an arbitrary-precision integer. The zero value denotes 0.
// Every operation returns a fresh value; receivers are never mutated.
type Z struct {
	i *big.Int
}

// FromInt64 creates the integer n.
func FromInt64(n int64) Z {
	return Z{big.NewInt(n)}
}

// ZFromString parses a base-10 integer literal.
func ZFromString(s string) (Z, bool) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Z{}, false
	}
	return Z{i}, true
}

func (a Z) ref() *big.Int {
	if a.i == nil {
		return new(big.Int)
	}
	return a.i
}

func (a Z) Add(b Z) Z {
	return Z{new(big.Int).Add(a.ref(), b.ref())}
}

func (a Z) Sub(b Z) Z {
	return Z{new(big.Int).Sub(a.ref(), b.ref())}
}

func (a Z) Mul(b Z) Z {
	return Z{new(big.Int).Mul(a.ref(), b.ref())}
}

// Div is the quotient truncated toward zero. The divisor must not be
// zero.
func (a Z) Div(b Z) Z {
	return Z{new(big.Int).Quo(a.ref(), b.ref())}
}

// Rem is the remainder of truncated division; it takes the sign of the
// dividend. The divisor must not be zero.
func (a Z) Rem(b Z) Z {
	return Z{new(big.Int).Rem(a.ref(), b.ref())}
}

func (a Z) Neg() Z {
	return Z{new(big.Int).Neg(a.ref())}
}

func (a Z) Abs() Z {
	return Z{new(big.Int).Abs(a.ref())}
}

func (a Z) Cmp(b Z) int {
	return a.ref().Cmp(b.ref())
}

func (a Z) Sign() int {
	return a.ref().Sign()
}

func (Z) Zero() Z {
	return Z{}
}

func (Z) One() Z {
	return Z{big.NewInt(1)}
}

func (Z) IsIntegral() bool {
	return true
}

// Eq reports value equality.
func (a Z) Eq(b Z) bool {
	return a.Cmp(b) == 0
}

// Int64 returns the value as an int64 when it fits.
func (a Z) Int64() (int64, bool) {
	if !a.ref().IsInt64() {
		return 0, false
	}
	return a.ref().Int64(), true
}

// BITWISE OPERATIONS
// Exact counterparts used by the integer interval transfer functions.

func (a Z) And(b Z) Z {
	return Z{new(big.Int).And(a.ref(), b.ref())}
}

func (a Z) Or(b Z) Z {
	return Z{new(big.Int).Or(a.ref(), b.ref())}
}

func (a Z) Xor(b Z) Z {
	return Z{new(big.Int).Xor(a.ref(), b.ref())}
}

// Rsh shifts right by k bits, filling with the sign bit.
func (a Z) Rsh(k uint) Z {
	return Z{new(big.Int).Rsh(a.ref(), k)}
}

// Lsh shifts left by k bits.
func (a Z) Lsh(k uint) Z {
	return Z{new(big.Int).Lsh(a.ref(), k)}
}

// FillOnes returns the smallest number of the form 2^k - 1 that is
// greater than or equal to the receiver. The receiver must be
// non-negative.
func (a Z) FillOnes() Z {
	k := uint(a.ref().BitLen())
	ones := new(big.Int).Lsh(big.NewInt(1), k)
	return Z{ones.Sub(ones, big.NewInt(1))}
}

func (a Z) String() string {
	return a.ref().String()
}

// Rat converts the integer into an exact rational.
func (a Z) Rat() Q {
	return Q{new(big.Rat).SetInt(a.ref())}
}
