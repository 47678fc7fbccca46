// Package linear provides the linear expression and constraint forms
// exchanged between the analysis front end, the abstract domains and
// the constraint solver.
package linear

import (
	"strings"

	"github.com/ibex-analyzer/ibex/analysis/defs"
	"github.com/ibex-analyzer/ibex/analysis/num"

	"github.com/benbjohnson/immutable"
)

// Expression is a linear form Σ aᵢ·xᵢ + c over integer coefficients.
// Terms are held in a persistent sorted map, so expressions share
// structure and iterate deterministically. The zero value denotes 0.
type Expression struct {
	terms *immutable.SortedMap[defs.Variable, num.Z]
	cst   num.Z
}

func emptyTerms() *immutable.SortedMap[defs.Variable, num.Z] {
	return immutable.NewSortedMap[defs.Variable, num.Z](defs.VarComparer{})
}

func (e Expression) termMap() *immutable.SortedMap[defs.Variable, num.Z] {
	if e.terms == nil {
		return emptyTerms()
	}
	return e.terms
}

// Const creates the constant expression n.
func Const(n num.Z) Expression {
	return Expression{cst: n}
}

// ConstInt64 creates the constant expression n.
func ConstInt64(n int64) Expression {
	return Const(num.FromInt64(n))
}

// Var creates the expression 1·v.
func Var(v defs.Variable) Expression {
	return Term(num.FromInt64(1), v)
}

// Term creates the expression a·v.
func Term(a num.Z, v defs.Variable) Expression {
	if a.Sign() == 0 {
		return Expression{}
	}
	return Expression{terms: emptyTerms().Set(v, a)}
}

// Constant returns the constant term.
func (e Expression) Constant() num.Z {
	return e.cst
}

// Coefficient returns the coefficient of v (zero when absent).
func (e Expression) Coefficient(v defs.Variable) num.Z {
	if a, ok := e.termMap().Get(v); ok {
		return a
	}
	return num.Z{}
}

// NumTerms returns the number of variables with non-zero coefficient.
func (e Expression) NumTerms() int {
	return e.termMap().Len()
}

// IsConstant reports whether the expression mentions no variable.
func (e Expression) IsConstant() bool {
	return e.termMap().Len() == 0
}

// GetVariable returns the sole variable v when the expression is
// exactly 1·v.
func (e Expression) GetVariable() (defs.Variable, bool) {
	if e.cst.Sign() != 0 || e.termMap().Len() != 1 {
		return defs.Variable{}, false
	}
	itr := e.termMap().Iterator()
	v, a, _ := itr.Next()
	if !a.Eq(num.FromInt64(1)) {
		return defs.Variable{}, false
	}
	return v, true
}

// ForEachTerm visits the (coefficient, variable) pairs in variable
// order.
func (e Expression) ForEachTerm(f func(a num.Z, v defs.Variable)) {
	itr := e.termMap().Iterator()
	for !itr.Done() {
		v, a, _ := itr.Next()
		f(a, v)
	}
}

// Variables returns the mentioned variables in order.
func (e Expression) Variables() []defs.Variable {
	vs := make([]defs.Variable, 0, e.NumTerms())
	e.ForEachTerm(func(_ num.Z, v defs.Variable) {
		vs = append(vs, v)
	})
	return vs
}

// Mentions reports whether v occurs with non-zero coefficient.
func (e Expression) Mentions(v defs.Variable) bool {
	_, ok := e.termMap().Get(v)
	return ok
}

// Add computes e + o.
func (e Expression) Add(o Expression) Expression {
	terms := e.termMap()
	o.ForEachTerm(func(a num.Z, v defs.Variable) {
		sum := a
		if prev, ok := terms.Get(v); ok {
			sum = prev.Add(a)
		}
		if sum.Sign() == 0 {
			terms = terms.Delete(v)
		} else {
			terms = terms.Set(v, sum)
		}
	})
	return Expression{terms: terms, cst: e.cst.Add(o.cst)}
}

// AddConst computes e + n.
func (e Expression) AddConst(n num.Z) Expression {
	return Expression{terms: e.terms, cst: e.cst.Add(n)}
}

// Neg computes -e.
func (e Expression) Neg() Expression {
	return e.MulConst(num.FromInt64(-1))
}

// Sub computes e - o.
func (e Expression) Sub(o Expression) Expression {
	return e.Add(o.Neg())
}

// MulConst computes n·e.
func (e Expression) MulConst(n num.Z) Expression {
	if n.Sign() == 0 {
		return Expression{}
	}
	terms := emptyTerms()
	e.ForEachTerm(func(a num.Z, v defs.Variable) {
		terms = terms.Set(v, a.Mul(n))
	})
	return Expression{terms: terms, cst: e.cst.Mul(n)}
}

func (e Expression) String() string {
	var sb strings.Builder
	first := true
	e.ForEachTerm(func(a num.Z, v defs.Variable) {
		switch {
		case !first && a.Sign() > 0:
			sb.WriteString(" + ")
		case a.Sign() < 0:
			if first {
				sb.WriteString("-")
			} else {
				sb.WriteString(" - ")
			}
		}
		if !a.Abs().Eq(num.FromInt64(1)) {
			sb.WriteString(a.Abs().String())
			sb.WriteString("·")
		}
		sb.WriteString(v.String())
		first = false
	})
	if first {
		return e.cst.String()
	}
	switch {
	case e.cst.Sign() > 0:
		sb.WriteString(" + ")
		sb.WriteString(e.cst.String())
	case e.cst.Sign() < 0:
		sb.WriteString(" - ")
		sb.WriteString(e.cst.Abs().String())
	}
	return sb.String()
}
