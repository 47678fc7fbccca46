package domains

import (
	"errors"

	u "github.com/ibex-analyzer/ibex/utils"
	"github.com/ibex-analyzer/ibex/utils/stats"

	"github.com/ibex-analyzer/ibex/analysis/defs"
	"github.com/ibex-analyzer/ibex/analysis/lattice"
	"github.com/ibex-analyzer/ibex/analysis/linear"
	"github.com/ibex-analyzer/ibex/analysis/num"
	"github.com/ibex-analyzer/ibex/analysis/solver"

	"go.uber.org/zap"
)

type zi = lattice.Interval[num.Z]

var (
	errRenameMismatch = errors.New("domains: rename requires equally sized variable lists")
	errRenameTarget   = errors.New("domains: rename target already bound in the state")
	errRegionExists   = errors.New("domains: region initialized twice")
)

// DefaultMaxReductionCycles bounds constraint propagation when
// assimilating a constraint system.
const DefaultMaxReductionCycles = 10

const domainName = "intervals"

// IntervalDomain is the interval instantiation of the abstract-domain
// contract: a non-relational environment mapping each variable to an
// interval over ℤ.
type IntervalDomain struct {
	env       lattice.IntervalEnv
	maxCycles int
}

var _ Domain[*IntervalDomain] = (*IntervalDomain)(nil)

// TopIntervals creates the state describing every concrete state.
func TopIntervals() *IntervalDomain {
	return &IntervalDomain{env: lattice.TopIntervalEnv()}
}

// BottomIntervals creates the unreachable state.
func BottomIntervals() *IntervalDomain {
	return &IntervalDomain{env: lattice.BottomIntervalEnv()}
}

// WithMaxReductionCycles overrides the constraint propagation budget.
func (d *IntervalDomain) WithMaxReductionCycles(n int) *IntervalDomain {
	d.maxCycles = n
	return d
}

func (d *IntervalDomain) reductionCycles() int {
	if d.maxCycles > 0 {
		return d.maxCycles
	}
	return DefaultMaxReductionCycles
}

// Interval returns the interval bound to v (⊤ when unbound, ⊥ on the
// unreachable state).
func (d *IntervalDomain) Interval(v defs.Variable) zi {
	return d.env.Lookup(v)
}

// Set binds v directly, bypassing expression evaluation.
func (d *IntervalDomain) Set(v defs.Variable, i zi) {
	stats.Count(domainName + ".assign")
	d.env = d.env.Set(v, i)
}

// ForEachBinding iterates the bound (variable, interval) pairs.
// Iterating the unreachable state is a caller bug.
func (d *IntervalDomain) ForEachBinding(f func(v defs.Variable, i zi)) {
	d.env.ForEach(f)
}

// LATTICE

func (d *IntervalDomain) Clone() *IntervalDomain {
	return &IntervalDomain{env: d.env, maxCycles: d.maxCycles}
}

func (d *IntervalDomain) SetToTop() {
	d.env = d.env.SetToTop()
}

func (d *IntervalDomain) SetToBottom() {
	d.env = d.env.SetToBot()
}

func (d *IntervalDomain) IsTop() bool {
	return d.env.IsTop()
}

func (d *IntervalDomain) IsBottom() bool {
	return d.env.IsBot()
}

func (d *IntervalDomain) Leq(o *IntervalDomain) bool {
	stats.Count(domainName + ".leq")
	return d.env.Leq(o.env)
}

func (d *IntervalDomain) Eq(o *IntervalDomain) bool {
	return d.env.Eq(o.env)
}

func (d *IntervalDomain) Join(o *IntervalDomain) *IntervalDomain {
	stats.Count(domainName + ".join")
	return &IntervalDomain{env: d.env.Join(o.env), maxCycles: d.maxCycles}
}

func (d *IntervalDomain) JoinWith(o *IntervalDomain) {
	stats.Count(domainName + ".join")
	d.env = d.env.Join(o.env)
}

func (d *IntervalDomain) Meet(o *IntervalDomain) *IntervalDomain {
	stats.Count(domainName + ".meet")
	return &IntervalDomain{env: d.env.Meet(o.env), maxCycles: d.maxCycles}
}

func (d *IntervalDomain) MeetWith(o *IntervalDomain) {
	stats.Count(domainName + ".meet")
	d.env = d.env.Meet(o.env)
}

func (d *IntervalDomain) Widen(o *IntervalDomain) *IntervalDomain {
	stats.Count(domainName + ".widening")
	return &IntervalDomain{env: d.env.Widen(o.env), maxCycles: d.maxCycles}
}

func (d *IntervalDomain) WidenThresholds(o *IntervalDomain, ts lattice.Thresholds[num.Z]) *IntervalDomain {
	stats.Count(domainName + ".widening")
	env := d.env.WidenWith(o.env, func(x, y zi) zi {
		return x.WidenThresholds(y, ts)
	})
	return &IntervalDomain{env: env, maxCycles: d.maxCycles}
}

func (d *IntervalDomain) Narrow(o *IntervalDomain) *IntervalDomain {
	stats.Count(domainName + ".narrowing")
	return &IntervalDomain{env: d.env.Narrow(o.env), maxCycles: d.maxCycles}
}

// ASSIGNMENT AND ARITHMETIC

// Eval evaluates a linear expression to an interval by summing the
// constant and the coefficient-scaled variable intervals.
func (d *IntervalDomain) Eval(e linear.Expression) zi {
	if d.IsBottom() {
		return lattice.Bottom[num.Z]()
	}
	r := lattice.Singleton(e.Constant())
	e.ForEachTerm(func(a num.Z, v defs.Variable) {
		r = r.Add(lattice.Singleton(a).Mul(d.env.Lookup(v)))
	})
	return r
}

func (d *IntervalDomain) Assign(x defs.Variable, e linear.Expression) {
	stats.Count(domainName + ".assign")
	if v, ok := e.GetVariable(); ok {
		d.env = d.env.Set(x, d.env.Lookup(v))
		return
	}
	d.env = d.env.Set(x, d.Eval(e))
}

func (d *IntervalDomain) applyArith(op ArithOp, x defs.Variable, yi, zv zi) {
	stats.Count(domainName + ".apply")
	var xi zi
	switch op {
	case OpAdd:
		xi = yi.Add(zv)
	case OpSub:
		xi = yi.Sub(zv)
	case OpMul:
		xi = yi.Mul(zv)
	case OpDiv:
		xi = lattice.Div(yi, zv)
	default:
		panic("domains: unreachable arithmetic operator")
	}
	d.env = d.env.Set(x, xi)
}

func (d *IntervalDomain) Apply(op ArithOp, x, y, z defs.Variable) {
	d.applyArith(op, x, d.env.Lookup(y), d.env.Lookup(z))
}

func (d *IntervalDomain) ApplyConst(op ArithOp, x, y defs.Variable, k num.Z) {
	d.applyArith(op, x, d.env.Lookup(y), lattice.Singleton(k))
}

func (d *IntervalDomain) applyDiv(op DivOp, x defs.Variable, yi, zv zi) {
	stats.Count(domainName + ".apply")
	var xi zi
	switch op {
	case OpSDiv:
		xi = lattice.Div(yi, zv)
	case OpUDiv:
		xi = lattice.UDiv(yi, zv)
	case OpSRem:
		xi = lattice.SRem(yi, zv)
	case OpURem:
		xi = lattice.URem(yi, zv)
	default:
		panic("domains: unreachable division operator")
	}
	d.env = d.env.Set(x, xi)
}

func (d *IntervalDomain) ApplyDiv(op DivOp, x, y, z defs.Variable) {
	d.applyDiv(op, x, d.env.Lookup(y), d.env.Lookup(z))
}

func (d *IntervalDomain) ApplyDivConst(op DivOp, x, y defs.Variable, k num.Z) {
	d.applyDiv(op, x, d.env.Lookup(y), lattice.Singleton(k))
}

// ApplyIntConv ignores widths: every conversion acts as a copy.
func (d *IntervalDomain) ApplyIntConv(op IntConvOp, dst, src defs.Variable) {
	d.Assign(dst, linear.Var(src))
}

// CONSTRAINTS

// AddConstraints assimilates a constraint system, filtering out
// unsigned inequalities and handing the rest to the linear-interval
// solver under the reduction-cycle budget.
func (d *IntervalDomain) AddConstraints(csts linear.ConstraintSystem) {
	stats.Count(domainName + ".add_constraints")
	if d.IsBottom() {
		return
	}
	signed := linear.System()
	csts.ForEach(func(c linear.Constraint) {
		if c.IsInequality() && c.IsUnsigned() {
			u.Logger().Warn("unsigned inequality skipped",
				zap.String("constraint", c.String()))
			return
		}
		signed = signed.Add(c)
	})
	d.env = solver.New(signed, d.reductionCycles()).Run(d.env)
}

// BITWISE

func (d *IntervalDomain) applyBitwise(op BitwiseOp, x defs.Variable, yi, zv zi) {
	stats.Count(domainName + ".apply")
	var xi zi
	switch op {
	case OpAnd:
		xi = lattice.And(yi, zv)
	case OpOr:
		xi = lattice.Or(yi, zv)
	case OpXor:
		xi = lattice.Xor(yi, zv)
	case OpShl:
		xi = lattice.Shl(yi, zv)
	case OpLShr:
		xi = lattice.LShr(yi, zv)
	case OpAShr:
		xi = lattice.AShr(yi, zv)
	default:
		panic("domains: unreachable bitwise operator")
	}
	d.env = d.env.Set(x, xi)
}

func (d *IntervalDomain) ApplyBitwise(op BitwiseOp, x, y, z defs.Variable) {
	d.applyBitwise(op, x, d.env.Lookup(y), d.env.Lookup(z))
}

func (d *IntervalDomain) ApplyBitwiseConst(op BitwiseOp, x, y defs.Variable, k num.Z) {
	d.applyBitwise(op, x, d.env.Lookup(y), lattice.Singleton(k))
}

// BOOLEANS
// Booleans are intervals within [0, 1].

func boolTop() zi {
	return lattice.NewInterval(lattice.Finite(num.Z{}), lattice.Finite(num.FromInt64(1)))
}

func boolConst(b bool) zi {
	if b {
		return lattice.Singleton(num.FromInt64(1))
	}
	return lattice.Singleton(num.Z{})
}

// AssignBoolCst reflects the truth of a linear constraint under the
// current state into lhs: an unsatisfiable constraint pins lhs to
// false, an entailed one to true, anything else to [0, 1].
func (d *IntervalDomain) AssignBoolCst(lhs defs.Variable, rhs linear.Constraint) {
	stats.Count(domainName + ".assign")
	if d.IsBottom() {
		return
	}

	holds := d.Clone()
	holds.AddConstraints(linear.System(rhs))
	if holds.IsBottom() {
		d.env = d.env.Set(lhs, boolConst(false))
		return
	}

	fails := d.Clone()
	fails.AddConstraints(linear.System(rhs.Negate()))
	if fails.IsBottom() {
		d.env = d.env.Set(lhs, boolConst(true))
		return
	}

	d.env = d.env.Set(lhs, boolTop())
}

func (d *IntervalDomain) AssignBoolVar(lhs, rhs defs.Variable, negated bool) {
	stats.Count(domainName + ".assign")
	if d.IsBottom() {
		return
	}
	rv := d.env.Lookup(rhs).Meet(boolTop())
	if negated {
		rv = lattice.Singleton(num.FromInt64(1)).Sub(rv)
	}
	d.env = d.env.Set(lhs, rv)
}

// ApplyBinaryBool computes the connectives on operands clamped to
// [0, 1]: conjunction through the bitwise transfer function,
// disjunction as the pointwise bound maximum (exact on {0, 1} sets),
// exclusive or via the bitwise one.
func (d *IntervalDomain) ApplyBinaryBool(op BoolOp, x, y, z defs.Variable) {
	stats.Count(domainName + ".apply")
	if d.IsBottom() {
		return
	}
	yb := d.env.Lookup(y).Meet(boolTop())
	zb := d.env.Lookup(z).Meet(boolTop())
	if yb.IsBot() || zb.IsBot() {
		d.env = d.env.Set(x, lattice.Bottom[num.Z]())
		return
	}
	var xi zi
	switch op {
	case OpBoolAnd:
		xi = lattice.And(yb, zb)
	case OpBoolOr:
		xi = lattice.NewInterval(yb.Lb().Max(zb.Lb()), yb.Ub().Max(zb.Ub()))
	case OpBoolXor:
		xi = lattice.Xor(yb, zb)
	default:
		panic("domains: unreachable boolean operator")
	}
	d.env = d.env.Set(x, xi)
}

// AssumeBool restricts the state to the branch where v is true (or
// false when negated); an impossible branch collapses the state.
func (d *IntervalDomain) AssumeBool(v defs.Variable, negated bool) {
	stats.Count(domainName + ".assume")
	if d.IsBottom() {
		return
	}
	d.env = d.env.Set(v, d.env.Lookup(v).Meet(boolConst(!negated)))
}

// ARRAYS
// Arrays are smashed: the array variable itself holds the join of all
// element values. Loads read the summary; weak stores join into it.

func (d *IntervalDomain) ArrayInit(a defs.Variable, elemSize, lbIdx, ubIdx, val linear.Expression) {
	stats.Count(domainName + ".array_init")
	d.env = d.env.Set(a, d.Eval(val))
}

func (d *IntervalDomain) ArrayLoad(lhs, a defs.Variable, elemSize, idx linear.Expression) {
	stats.Count(domainName + ".array_load")
	d.env = d.env.Set(lhs, d.env.Lookup(a))
}

func (d *IntervalDomain) arrayStore(aNew, aOld defs.Variable, val linear.Expression, strong bool) {
	if d.IsBottom() {
		return
	}
	vi := d.Eval(val)
	if !strong {
		vi = vi.Join(d.env.Lookup(aOld))
	}
	d.env = d.env.Set(aNew, vi)
}

func (d *IntervalDomain) ArrayStore(a defs.Variable, elemSize, idx, val linear.Expression, strong bool) {
	stats.Count(domainName + ".array_store")
	d.arrayStore(a, a, val, strong)
}

func (d *IntervalDomain) ArrayStoreFrom(aNew, aOld defs.Variable, elemSize, idx, val linear.Expression, strong bool) {
	stats.Count(domainName + ".array_store")
	d.arrayStore(aNew, aOld, val, strong)
}

// ArrayStoreRange writes to several cells, so the update is always
// weak.
func (d *IntervalDomain) ArrayStoreRange(a defs.Variable, elemSize, lo, hi, val linear.Expression) {
	stats.Count(domainName + ".array_store")
	d.arrayStore(a, a, val, false)
}

func (d *IntervalDomain) ArrayStoreRangeFrom(aNew, aOld defs.Variable, elemSize, lo, hi, val linear.Expression) {
	stats.Count(domainName + ".array_store")
	d.arrayStore(aNew, aOld, val, false)
}

func (d *IntervalDomain) ArrayAssign(a, b defs.Variable) {
	stats.Count(domainName + ".array_assign")
	d.env = d.env.Set(a, d.env.Lookup(b))
}

// REFERENCES AND REGIONS
// A reference is a non-deterministic address within a region; its
// interval tracks the address. Region contents go through the region's
// alias-class summary and are always updated weakly.

// RegionInit introduces a region. Regions start zero-initialized;
// initializing a region twice is a caller bug.
func (d *IntervalDomain) RegionInit(reg *Region) {
	stats.Count(domainName + ".region_init")
	if reg.initialized {
		panic(errRegionExists)
	}
	reg.initialized = true
	d.env = d.env.Set(reg.Summary(), lattice.Singleton(num.Z{}))
}

// RefMake binds ref to a fresh, unknown non-negative address in reg.
func (d *IntervalDomain) RefMake(ref defs.Variable, reg *Region) {
	stats.Count(domainName + ".ref_make")
	d.env = d.env.Set(ref, lattice.NewInterval(lattice.Finite(num.Z{}), lattice.PlusInf[num.Z]()))
}

func (d *IntervalDomain) RefLoad(ref defs.Variable, reg *Region, res defs.Variable) {
	stats.Count(domainName + ".ref_load")
	d.env = d.env.Set(res, d.env.Lookup(reg.Summary()))
}

func (d *IntervalDomain) RefStore(ref defs.Variable, reg *Region, val linear.Expression) {
	stats.Count(domainName + ".ref_store")
	if d.IsBottom() {
		return
	}
	sum := reg.Summary()
	d.env = d.env.Set(sum, d.env.Lookup(sum).Join(d.Eval(val)))
}

// RefGep derives ref2 in reg2 by adding offset to ref1. Crossing into
// a different region makes the two regions potential aliases: their
// classes are merged and the merged summary absorbs both.
func (d *IntervalDomain) RefGep(ref1 defs.Variable, reg1 *Region, ref2 defs.Variable, reg2 *Region, offset linear.Expression) {
	stats.Count(domainName + ".ref_gep")
	if d.IsBottom() {
		return
	}
	d.env = d.env.Set(ref2, d.env.Lookup(ref1).Add(d.Eval(offset)))

	if reg1 != reg2 && !MayAlias(reg1, reg2) {
		s1 := d.env.Lookup(reg1.Summary())
		s2 := d.env.Lookup(reg2.Summary())
		MergeRegions(reg1, reg2)
		d.env = d.env.Set(reg1.Summary(), s1.Join(s2))
	}
}

func (d *IntervalDomain) RefLoadFromArray(lhs, ref defs.Variable, reg *Region, idx, elemSize linear.Expression) {
	stats.Count(domainName + ".ref_load")
	d.env = d.env.Set(lhs, d.env.Lookup(reg.Summary()))
}

func (d *IntervalDomain) RefStoreToArray(ref defs.Variable, reg *Region, idx, elemSize, val linear.Expression) {
	stats.Count(domainName + ".ref_store")
	if d.IsBottom() {
		return
	}
	sum := reg.Summary()
	d.env = d.env.Set(sum, d.env.Lookup(sum).Join(d.Eval(val)))
}

func (d *IntervalDomain) RefAssume(cst RefConstraint) {
	stats.Count(domainName + ".ref_assume")
	d.AddConstraints(linear.System(cst.Lower()))
}

// BACKWARD

func (d *IntervalDomain) BackwardAssign(x defs.Variable, e linear.Expression, invariant *IntervalDomain) {
	stats.Count(domainName + ".backward_assign")
	backwardAssign[*IntervalDomain](d, x, e, invariant)
}

func (d *IntervalDomain) BackwardApply(op ArithOp, x, y, z defs.Variable, invariant *IntervalDomain) {
	stats.Count(domainName + ".backward_apply")
	backwardApply[*IntervalDomain](d, op, x, y, z, invariant)
}

func (d *IntervalDomain) BackwardApplyConst(op ArithOp, x, y defs.Variable, k num.Z, invariant *IntervalDomain) {
	stats.Count(domainName + ".backward_apply")
	backwardApplyConst[*IntervalDomain](d, op, x, y, k, invariant)
}

// BackwardAssignBoolCst re-imposes the constraint a pinned boolean
// encodes before discarding the boolean itself.
func (d *IntervalDomain) BackwardAssignBoolCst(lhs defs.Variable, rhs linear.Constraint, invariant *IntervalDomain) {
	stats.Count(domainName + ".backward_assign")
	if d.IsBottom() {
		return
	}
	if v, ok := d.env.Lookup(lhs).Singleton(); ok {
		switch v.Sign() {
		case 0:
			d.AddConstraints(linear.System(rhs.Negate()))
		default:
			d.AddConstraints(linear.System(rhs))
		}
	}
	d.Forget(lhs)
	d.MeetWith(invariant)
}

func (d *IntervalDomain) BackwardAssignBoolVar(lhs, rhs defs.Variable, negated bool, invariant *IntervalDomain) {
	stats.Count(domainName + ".backward_assign")
	if d.IsBottom() {
		return
	}
	// lhs = rhs (or 1 - rhs): propagate the post-value of lhs into rhs.
	lv := d.env.Lookup(lhs).Meet(boolTop())
	if negated {
		lv = lattice.Singleton(num.FromInt64(1)).Sub(lv)
	}
	d.env = d.env.Set(rhs, d.env.Lookup(rhs).Meet(lv))
	d.Forget(lhs)
	d.MeetWith(invariant)
}

func (d *IntervalDomain) BackwardApplyBinaryBool(op BoolOp, x, y, z defs.Variable, invariant *IntervalDomain) {
	stats.Count(domainName + ".backward_apply")
	if d.IsBottom() {
		return
	}
	d.Forget(x)
	d.MeetWith(invariant)
}

func (d *IntervalDomain) BackwardArrayInit(a defs.Variable, elemSize, lbIdx, ubIdx, val linear.Expression, invariant *IntervalDomain) {
	stats.Count(domainName + ".backward_array")
	d.backwardForget(a, invariant)
}

func (d *IntervalDomain) BackwardArrayLoad(lhs, a defs.Variable, elemSize, idx linear.Expression, invariant *IntervalDomain) {
	stats.Count(domainName + ".backward_array")
	d.backwardForget(lhs, invariant)
}

func (d *IntervalDomain) BackwardArrayStore(a defs.Variable, elemSize, idx, val linear.Expression, strong bool, invariant *IntervalDomain) {
	stats.Count(domainName + ".backward_array")
	d.backwardForget(a, invariant)
}

func (d *IntervalDomain) BackwardArrayStoreFrom(aNew, aOld defs.Variable, elemSize, idx, val linear.Expression, strong bool, invariant *IntervalDomain) {
	stats.Count(domainName + ".backward_array")
	d.backwardForget(aNew, invariant)
}

func (d *IntervalDomain) BackwardArrayStoreRange(a defs.Variable, elemSize, lo, hi, val linear.Expression, invariant *IntervalDomain) {
	stats.Count(domainName + ".backward_array")
	d.backwardForget(a, invariant)
}

func (d *IntervalDomain) BackwardArrayAssign(a, b defs.Variable, invariant *IntervalDomain) {
	stats.Count(domainName + ".backward_array")
	d.backwardForget(a, invariant)
}

func (d *IntervalDomain) backwardForget(v defs.Variable, invariant *IntervalDomain) {
	if d.IsBottom() {
		return
	}
	d.Forget(v)
	d.MeetWith(invariant)
}

// UTILITY

func (d *IntervalDomain) Forget(v defs.Variable) {
	stats.Count(domainName + ".forget")
	d.env = d.env.Forget(v)
}

func (d *IntervalDomain) ForgetAll(vs []defs.Variable) {
	for _, v := range vs {
		d.Forget(v)
	}
}

// Project keeps only the given variables, forgetting every other
// binding.
func (d *IntervalDomain) Project(vs []defs.Variable) {
	stats.Count(domainName + ".project")
	if d.IsBottom() {
		return
	}
	keep := make(map[uint32]bool, len(vs))
	for _, v := range vs {
		keep[v.Index()] = true
	}
	var drop []defs.Variable
	d.env.ForEach(func(v defs.Variable, _ zi) {
		if !keep[v.Index()] {
			drop = append(drop, v)
		}
	})
	for _, v := range drop {
		d.env = d.env.Forget(v)
	}
}

// Rename moves the bindings of from[i] to to[i]. A target variable
// already bound in the state is a precondition violation.
func (d *IntervalDomain) Rename(from, to []defs.Variable) {
	stats.Count(domainName + ".rename")
	if len(from) != len(to) {
		panic(errRenameMismatch)
	}
	if d.IsBottom() {
		return
	}
	for _, t := range to {
		if d.env.Has(t) {
			panic(errRenameTarget)
		}
	}
	for i, f := range from {
		val := d.env.Lookup(f)
		d.env = d.env.Forget(f)
		d.env = d.env.Set(to[i], val)
	}
}

// Expand duplicates v's value into duplicate without relating the two.
func (d *IntervalDomain) Expand(v, duplicate defs.Variable) {
	stats.Count(domainName + ".expand")
	d.env = d.env.Set(duplicate, d.env.Lookup(v))
}

// Normalize is a no-op: the representation is canonical.
func (d *IntervalDomain) Normalize() {}

// Minimize is a no-op: ⊤ values are never stored.
func (d *IntervalDomain) Minimize() {}

// Intrinsic is an uninterpreted operation: its outputs become unknown.
func (d *IntervalDomain) Intrinsic(name string, inputs, outputs []defs.Variable) {
	stats.Count(domainName + ".intrinsic")
	d.ForgetAll(outputs)
}

func (d *IntervalDomain) BackwardIntrinsic(name string, inputs, outputs []defs.Variable, invariant *IntervalDomain) {
	stats.Count(domainName + ".intrinsic")
	if d.IsBottom() {
		return
	}
	d.ForgetAll(outputs)
	d.MeetWith(invariant)
}

// ToConstraints renders the state as a conjunction of bound
// constraints, one per finite interval endpoint.
func (d *IntervalDomain) ToConstraints() linear.ConstraintSystem {
	if d.IsBottom() {
		return linear.FalseSystem()
	}
	res := linear.System()
	d.env.ForEach(func(v defs.Variable, i zi) {
		if lb, ok := i.Lb().Number(); ok {
			res = res.Add(linear.Geq(linear.Var(v), linear.Const(lb)))
		}
		if ub, ok := i.Ub().Number(); ok {
			res = res.Add(linear.Leq(linear.Var(v), linear.Const(ub)))
		}
	})
	return res
}

func (d *IntervalDomain) ToDisjunctiveConstraints() linear.DisjunctiveConstraintSystem {
	csts := d.ToConstraints()
	switch {
	case csts.IsFalse():
		return linear.FalseDisjunction()
	case csts.IsTrue():
		return linear.TrueDisjunction()
	}
	return linear.Disjunction(csts)
}

func (d *IntervalDomain) String() string {
	return d.env.String()
}
