// Package lattice provides the value lattices of the numeric analysis:
// extended bounds, intervals over exact numbers, widening thresholds,
// and the generic non-relational ("separate") environment lifting a
// value lattice to a variable map.
package lattice

import (
	"errors"

	"github.com/ibex-analyzer/ibex/analysis/num"
	u "github.com/ibex-analyzer/ibex/utils"

	"github.com/fatih/color"
)

var colorize = struct {
	Element func(...interface{}) string
	Const   func(...interface{}) string
}{
	Element: func(is ...interface{}) string {
		return u.CanColorize(color.New(color.FgCyan).SprintFunc())(is...)
	},
	Const: func(is ...interface{}) string {
		return u.CanColorize(color.New(color.FgHiWhite).SprintFunc())(is...)
	},
}

var (
	// ErrOppositeInfinities reports the undefined bound sum -∞ + ∞.
	ErrOppositeInfinities = errors.New("bound: undefined operation -∞ + ∞")
	// ErrDivisionByZero reports division by a zero bound.
	ErrDivisionByZero = errors.New("bound: division by zero")
	// ErrIterateBottom reports iteration over an unreachable state.
	ErrIterateBottom = errors.New("separate domain: trying to iterate on bottom")

	// errBottomFound aborts a pointwise meet or narrowing as soon as
	// one binding becomes empty.
	errBottomFound = errors.New("separate domain: bottom found")
)

// must unwraps a partial bound operation whose undefined cases the
// caller has already excluded. Reaching the error anyway is a caller
// bug and fail-stops the analysis.
func must[N num.Num[N]](b Bound[N], err error) Bound[N] {
	if err != nil {
		panic(err)
	}
	return b
}
