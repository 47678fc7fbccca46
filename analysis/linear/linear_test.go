package linear

import (
	"testing"

	"github.com/ibex-analyzer/ibex/analysis/defs"
	"github.com/ibex-analyzer/ibex/analysis/num"

	"github.com/stretchr/testify/assert"
)

func TestExpressionBuilders(t *testing.T) {
	ctx := defs.NewVarContext()
	x, y := ctx.Var("x"), ctx.Var("y")

	// 2x + 3y + 5
	e := Term(num.FromInt64(2), x).
		Add(Term(num.FromInt64(3), y)).
		AddConst(num.FromInt64(5))

	assert.Equal(t, 2, e.NumTerms())
	assert.True(t, e.Coefficient(x).Eq(num.FromInt64(2)))
	assert.True(t, e.Coefficient(y).Eq(num.FromInt64(3)))
	assert.True(t, e.Constant().Eq(num.FromInt64(5)))
	assert.True(t, e.Mentions(x))

	// Cancelling terms vanish.
	cancelled := e.Add(Term(num.FromInt64(-2), x))
	assert.False(t, cancelled.Mentions(x))
	assert.Equal(t, 1, cancelled.NumTerms())

	neg := e.Neg()
	assert.True(t, neg.Coefficient(x).Eq(num.FromInt64(-2)))
	assert.True(t, neg.Constant().Eq(num.FromInt64(-5)))

	var zero Expression
	assert.True(t, zero.IsConstant())
	assert.Equal(t, "0", zero.String())
}

func TestGetVariable(t *testing.T) {
	ctx := defs.NewVarContext()
	x, y := ctx.Var("x"), ctx.Var("y")

	v, ok := Var(x).GetVariable()
	assert.True(t, ok)
	assert.True(t, v.Equal(x))

	_, ok = Term(num.FromInt64(2), x).GetVariable()
	assert.False(t, ok, "2x is not a plain variable")

	_, ok = Var(x).AddConst(num.FromInt64(1)).GetVariable()
	assert.False(t, ok, "x + 1 is not a plain variable")

	_, ok = Var(x).Add(Var(y)).GetVariable()
	assert.False(t, ok, "x + y is not a plain variable")
}

func TestConstraintNegate(t *testing.T) {
	ctx := defs.NewVarContext()
	x := ctx.Var("x")

	// ¬(x ≤ 5) = (x ≥ 6) over the integers.
	c := Leq(Var(x), ConstInt64(5))
	n := c.Negate()
	assert.True(t, n.IsInequality())
	// n is -x + 6 ≤ 0
	assert.True(t, n.Expression().Coefficient(x).Eq(num.FromInt64(-1)))
	assert.True(t, n.Expression().Constant().Eq(num.FromInt64(6)))

	eq := Equal(Var(x), ConstInt64(0))
	assert.True(t, eq.Negate().IsDisequality())
	assert.True(t, eq.Negate().Negate().IsEquality())
}

func TestConstraintTruth(t *testing.T) {
	assert.True(t, Leq(ConstInt64(0), ConstInt64(1)).IsTautology())
	assert.True(t, Leq(ConstInt64(2), ConstInt64(1)).IsContradiction())
	assert.True(t, False().IsContradiction())
	assert.True(t, Equal(ConstInt64(1), ConstInt64(1)).IsTautology())
	assert.True(t, NotEqual(ConstInt64(1), ConstInt64(1)).IsContradiction())

	ctx := defs.NewVarContext()
	x := ctx.Var("x")
	assert.False(t, Leq(Var(x), ConstInt64(0)).IsTautology())
	assert.False(t, Leq(Var(x), ConstInt64(0)).IsContradiction())
}

func TestConstraintSystem(t *testing.T) {
	ctx := defs.NewVarContext()
	x, y := ctx.Var("x"), ctx.Var("y")

	s := System().
		Add(Leq(Var(x), ConstInt64(10))).
		Add(Geq(Var(y), ConstInt64(0))).
		Add(Leq(ConstInt64(0), ConstInt64(0))) // tautology, not recorded

	assert.Equal(t, 2, s.Len())
	assert.False(t, s.IsFalse())
	assert.Len(t, s.Variables(), 2)

	assert.True(t, FalseSystem().IsFalse())
	assert.True(t, System().IsTrue())

	d := Disjunction(s)
	assert.False(t, d.IsTrue())
	assert.False(t, d.IsFalse())
	assert.True(t, TrueDisjunction().IsTrue())
	assert.True(t, FalseDisjunction().IsFalse())
}

func TestUnsignedFlag(t *testing.T) {
	ctx := defs.NewVarContext()
	x := ctx.Var("x")

	c := Leq(Var(x), ConstInt64(5)).WithUnsigned(true)
	assert.True(t, c.IsUnsigned())
	assert.True(t, c.IsInequality())
	assert.False(t, c.WithUnsigned(false).IsUnsigned())
}
