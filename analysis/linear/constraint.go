package linear

import (
	"github.com/ibex-analyzer/ibex/analysis/defs"
	"github.com/ibex-analyzer/ibex/analysis/num"
)

// ConstraintKind discriminates the relation a constraint imposes on
// its expression.
type ConstraintKind int

const (
	// Equality is e = 0.
	Equality ConstraintKind = iota
	// Disequality is e ≠ 0.
	Disequality
	// Inequality is e ≤ 0.
	Inequality
)

// Constraint is a linear constraint e ⋈ 0. The unsigned flag marks
// inequalities whose comparison is meant over the unsigned
// reinterpretation of the operands; signed domains skip those.
type Constraint struct {
	expr     Expression
	kind     ConstraintKind
	unsigned bool
}

// NewConstraint creates the constraint e ⋈ 0.
func NewConstraint(e Expression, kind ConstraintKind) Constraint {
	return Constraint{expr: e, kind: kind}
}

// False returns the canonical contradiction 1 ≤ 0.
func False() Constraint {
	return Constraint{expr: ConstInt64(1), kind: Inequality}
}

// Leq creates a ≤ b.
func Leq(a, b Expression) Constraint {
	return Constraint{expr: a.Sub(b), kind: Inequality}
}

// Geq creates a ≥ b.
func Geq(a, b Expression) Constraint {
	return Leq(b, a)
}

// Equal creates a = b.
func Equal(a, b Expression) Constraint {
	return Constraint{expr: a.Sub(b), kind: Equality}
}

// NotEqual creates a ≠ b.
func NotEqual(a, b Expression) Constraint {
	return Constraint{expr: a.Sub(b), kind: Disequality}
}

// WithUnsigned marks or unmarks the constraint as an unsigned
// comparison.
func (c Constraint) WithUnsigned(b bool) Constraint {
	c.unsigned = b
	return c
}

func (c Constraint) Expression() Expression {
	return c.expr
}

func (c Constraint) Kind() ConstraintKind {
	return c.kind
}

func (c Constraint) IsInequality() bool {
	return c.kind == Inequality
}

func (c Constraint) IsEquality() bool {
	return c.kind == Equality
}

func (c Constraint) IsDisequality() bool {
	return c.kind == Disequality
}

func (c Constraint) IsUnsigned() bool {
	return c.unsigned
}

// Negate returns the complement of the constraint over the integers:
// ¬(e ≤ 0) is e ≥ 1.
func (c Constraint) Negate() Constraint {
	switch c.kind {
	case Equality:
		return Constraint{expr: c.expr, kind: Disequality, unsigned: c.unsigned}
	case Disequality:
		return Constraint{expr: c.expr, kind: Equality, unsigned: c.unsigned}
	case Inequality:
		// ¬(e ≤ 0) = (e > 0) = (-e + 1 ≤ 0)
		return Constraint{
			expr:     c.expr.Neg().AddConst(num.FromInt64(1)),
			kind:     Inequality,
			unsigned: c.unsigned,
		}
	}
	panic("linear: unreachable constraint kind")
}

// IsTautology reports whether the constraint holds vacuously.
func (c Constraint) IsTautology() bool {
	if !c.expr.IsConstant() {
		return false
	}
	cst := c.expr.Constant()
	switch c.kind {
	case Equality:
		return cst.Sign() == 0
	case Disequality:
		return cst.Sign() != 0
	case Inequality:
		return cst.Sign() <= 0
	}
	panic("linear: unreachable constraint kind")
}

// IsContradiction reports whether the constraint is unsatisfiable on
// its face.
func (c Constraint) IsContradiction() bool {
	if !c.expr.IsConstant() {
		return false
	}
	return !c.IsTautology()
}

// Variables returns the variables mentioned by the constraint.
func (c Constraint) Variables() []defs.Variable {
	return c.expr.Variables()
}

func (c Constraint) String() string {
	rel := map[ConstraintKind]string{
		Equality:    " = 0",
		Disequality: " ≠ 0",
		Inequality:  " ≤ 0",
	}[c.kind]
	return c.expr.String() + rel
}
