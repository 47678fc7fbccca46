package domains

import (
	"github.com/ibex-analyzer/ibex/analysis/defs"
	"github.com/ibex-analyzer/ibex/analysis/linear"
	"github.com/ibex-analyzer/ibex/analysis/num"
)

// Shared backward transfer functions, built exclusively on the domain
// contract so any numeric domain can reuse them.
//
// All of them follow the same recipe for pushing a post-state of
// x := e backward: re-impose the defining relation (refining the
// operands from the post-value of x) where it is linear, discard x,
// and meet with the invariant describing the pre-states.

// backwardAssign handles x := e.
func backwardAssign[D Domain[D]](dom D, x defs.Variable, e linear.Expression, invariant D) {
	if dom.IsBottom() {
		return
	}
	// x := x + 1 and friends define x in terms of its own pre-value;
	// the equality below would conflate the two.
	if !e.Mentions(x) {
		dom.AddConstraints(linear.System(linear.Equal(linear.Var(x), e)))
	}
	dom.Forget(x)
	dom.MeetWith(invariant)
}

// backwardApply handles x := y op z.
func backwardApply[D Domain[D]](dom D, op ArithOp, x, y, z defs.Variable, invariant D) {
	if dom.IsBottom() {
		return
	}
	if !x.Equal(y) && !x.Equal(z) {
		switch op {
		case OpAdd:
			dom.AddConstraints(linear.System(
				linear.Equal(linear.Var(x), linear.Var(y).Add(linear.Var(z)))))
		case OpSub:
			dom.AddConstraints(linear.System(
				linear.Equal(linear.Var(x), linear.Var(y).Sub(linear.Var(z)))))
		case OpMul, OpDiv:
			// Not linear in two unknowns; the forget below already
			// over-approximates.
		}
	}
	dom.Forget(x)
	dom.MeetWith(invariant)
}

// backwardApplyConst handles x := y op k.
func backwardApplyConst[D Domain[D]](dom D, op ArithOp, x, y defs.Variable, k num.Z, invariant D) {
	if dom.IsBottom() {
		return
	}
	if !x.Equal(y) {
		switch op {
		case OpAdd:
			dom.AddConstraints(linear.System(
				linear.Equal(linear.Var(x), linear.Var(y).AddConst(k))))
		case OpSub:
			dom.AddConstraints(linear.System(
				linear.Equal(linear.Var(x), linear.Var(y).AddConst(k.Neg()))))
		case OpMul:
			if k.Sign() != 0 {
				dom.AddConstraints(linear.System(
					linear.Equal(linear.Var(x), linear.Term(k, y))))
			}
		case OpDiv:
			// Truncated division is not invertible as a linear
			// relation.
		}
	}
	dom.Forget(x)
	dom.MeetWith(invariant)
}
