// Package num provides the exact number types the analysis computes
// with: arbitrary-precision integers (Z) and rationals (Q).
package num

// Num is the capability set the lattice layer requires from a number
// type. Both Z and Q satisfy it; all operations are value-semantic and
// never mutate their receiver.
type Num[N any] interface {
	Add(N) N
	Sub(N) N
	Mul(N) N
	// Div is the exact quotient for Q, and the quotient truncated
	// toward zero for Z. The divisor must not be zero.
	Div(N) N
	Neg() N
	Abs() N

	// Cmp returns -1, 0 or 1 depending on whether the receiver is
	// smaller than, equal to, or greater than the argument.
	Cmp(N) int
	Sign() int

	Zero() N
	One() N

	// IsIntegral reports whether the type denotes a subset of ℤ.
	IsIntegral() bool

	String() string
}
