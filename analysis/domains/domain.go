// Package domains defines the capability contract every numeric
// abstract domain exposes to the fixpoint engine, together with the
// interval instantiation.
package domains

import (
	"github.com/ibex-analyzer/ibex/analysis/defs"
	"github.com/ibex-analyzer/ibex/analysis/lattice"
	"github.com/ibex-analyzer/ibex/analysis/linear"
	"github.com/ibex-analyzer/ibex/analysis/num"
)

// Domain is the contract of a numeric abstract domain. It is generic
// in the concrete domain type D, so each implementation is checked
// against itself (monomorphic) rather than through a tagged variant.
//
// Every operation must over-approximate the concrete semantics it
// models, and must be monotone w. r. t. the lattice order. Transfer
// functions mutate the receiver; lattice operations return fresh
// states. Variables never introduced into a state read as ⊤.
type Domain[D any] interface {
	// LATTICE
	Clone() D
	SetToTop()
	SetToBottom()
	IsTop() bool
	IsBottom() bool
	Leq(D) bool
	Join(D) D
	JoinWith(D)
	Meet(D) D
	MeetWith(D)
	Widen(D) D
	Narrow(D) D
	WidenThresholds(D, lattice.Thresholds[num.Z]) D

	// ASSIGNMENT AND ARITHMETIC
	Assign(x defs.Variable, e linear.Expression)
	Apply(op ArithOp, x, y, z defs.Variable)
	ApplyConst(op ArithOp, x, y defs.Variable, k num.Z)
	ApplyDiv(op DivOp, x, y, z defs.Variable)
	ApplyDivConst(op DivOp, x, y defs.Variable, k num.Z)
	ApplyIntConv(op IntConvOp, dst, src defs.Variable)

	// CONSTRAINTS
	AddConstraints(csts linear.ConstraintSystem)

	// BITWISE
	ApplyBitwise(op BitwiseOp, x, y, z defs.Variable)
	ApplyBitwiseConst(op BitwiseOp, x, y defs.Variable, k num.Z)

	// BOOLEANS
	AssignBoolCst(lhs defs.Variable, rhs linear.Constraint)
	AssignBoolVar(lhs, rhs defs.Variable, negated bool)
	ApplyBinaryBool(op BoolOp, x, y, z defs.Variable)
	AssumeBool(v defs.Variable, negated bool)

	// ARRAYS
	ArrayInit(a defs.Variable, elemSize, lbIdx, ubIdx, val linear.Expression)
	ArrayLoad(lhs, a defs.Variable, elemSize, idx linear.Expression)
	ArrayStore(a defs.Variable, elemSize, idx, val linear.Expression, strong bool)
	ArrayStoreFrom(aNew, aOld defs.Variable, elemSize, idx, val linear.Expression, strong bool)
	ArrayStoreRange(a defs.Variable, elemSize, lo, hi, val linear.Expression)
	ArrayStoreRangeFrom(aNew, aOld defs.Variable, elemSize, lo, hi, val linear.Expression)
	ArrayAssign(a, b defs.Variable)

	// REFERENCES AND REGIONS
	RegionInit(reg *Region)
	RefMake(ref defs.Variable, reg *Region)
	RefLoad(ref defs.Variable, reg *Region, res defs.Variable)
	RefStore(ref defs.Variable, reg *Region, val linear.Expression)
	RefGep(ref1 defs.Variable, reg1 *Region, ref2 defs.Variable, reg2 *Region, offset linear.Expression)
	RefLoadFromArray(lhs, ref defs.Variable, reg *Region, idx, elemSize linear.Expression)
	RefStoreToArray(ref defs.Variable, reg *Region, idx, elemSize, val linear.Expression)
	RefAssume(cst RefConstraint)

	// BACKWARD
	BackwardAssign(x defs.Variable, e linear.Expression, invariant D)
	BackwardApply(op ArithOp, x, y, z defs.Variable, invariant D)
	BackwardApplyConst(op ArithOp, x, y defs.Variable, k num.Z, invariant D)
	BackwardAssignBoolCst(lhs defs.Variable, rhs linear.Constraint, invariant D)
	BackwardAssignBoolVar(lhs, rhs defs.Variable, negated bool, invariant D)
	BackwardApplyBinaryBool(op BoolOp, x, y, z defs.Variable, invariant D)
	BackwardArrayInit(a defs.Variable, elemSize, lbIdx, ubIdx, val linear.Expression, invariant D)
	BackwardArrayLoad(lhs, a defs.Variable, elemSize, idx linear.Expression, invariant D)
	BackwardArrayStore(a defs.Variable, elemSize, idx, val linear.Expression, strong bool, invariant D)
	BackwardArrayStoreFrom(aNew, aOld defs.Variable, elemSize, idx, val linear.Expression, strong bool, invariant D)
	BackwardArrayStoreRange(a defs.Variable, elemSize, lo, hi, val linear.Expression, invariant D)
	BackwardArrayAssign(a, b defs.Variable, invariant D)

	// UTILITY
	Forget(v defs.Variable)
	ForgetAll(vs []defs.Variable)
	Project(vs []defs.Variable)
	Rename(from, to []defs.Variable)
	Expand(v, duplicate defs.Variable)
	Normalize()
	Minimize()
	Intrinsic(name string, inputs, outputs []defs.Variable)
	BackwardIntrinsic(name string, inputs, outputs []defs.Variable, invariant D)
	ToConstraints() linear.ConstraintSystem
	ToDisjunctiveConstraints() linear.DisjunctiveConstraintSystem
	String() string
}
