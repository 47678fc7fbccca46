// Package solver implements the linear-interval constraint solver: a
// local fixpoint propagation that refines an interval environment
// until it is consistent with a system of linear constraints, or a
// cycle budget runs out.
package solver

import (
	u "github.com/ibex-analyzer/ibex/utils"
	"github.com/ibex-analyzer/ibex/utils/worklist"

	"github.com/ibex-analyzer/ibex/analysis/defs"
	"github.com/ibex-analyzer/ibex/analysis/lattice"
	"github.com/ibex-analyzer/ibex/analysis/linear"
	"github.com/ibex-analyzer/ibex/analysis/num"

	"go.uber.org/zap"
)

type zi = lattice.Interval[num.Z]

// Solver propagates a constraint system over interval environments.
type Solver struct {
	csts      []linear.Constraint
	maxCycles int
	// occ maps a variable index to the constraints mentioning it, so
	// refining a variable re-triggers exactly those.
	occ map[uint32][]int
}

// New prepares a solver for the given system. maxCycles bounds how
// often a single constraint may fire; propagation stops at a local
// fixpoint or when the budget is exhausted, whichever comes first.
func New(csts linear.ConstraintSystem, maxCycles int) *Solver {
	s := &Solver{
		csts:      csts.Constraints(),
		maxCycles: maxCycles,
		occ:       map[uint32][]int{},
	}
	for ci, c := range s.csts {
		for _, v := range c.Variables() {
			s.occ[v.Index()] = append(s.occ[v.Index()], ci)
		}
	}
	return s
}

// Run refines the environment toward a local fixpoint of the system.
// The result is always a sound restriction of the input: every state
// satisfying the constraints and described by env is still described
// by the result.
func (s *Solver) Run(env lattice.IntervalEnv) lattice.IntervalEnv {
	if env.IsBot() {
		return env
	}
	for _, c := range s.csts {
		if c.IsContradiction() {
			return lattice.BottomIntervalEnv()
		}
	}
	if len(s.csts) == 0 {
		return env
	}

	counts := make([]int, len(s.csts))
	queued := make([]bool, len(s.csts))
	initial := make([]int, len(s.csts))
	for i := range s.csts {
		initial[i] = i
		queued[i] = true
	}
	fired := 0

	worklist.StartV(initial, func(ci int, add func(int)) {
		queued[ci] = false
		if env.IsBot() || counts[ci] >= s.maxCycles {
			return
		}
		counts[ci]++
		fired++

		for _, v := range s.refine(ci, &env) {
			for _, cj := range s.occ[v.Index()] {
				if cj != ci && !queued[cj] {
					queued[cj] = true
					add(cj)
				}
			}
		}
	})

	u.Logger().Debug("interval solver finished",
		zap.Int("constraints", len(s.csts)),
		zap.Int("fired", fired),
		zap.Bool("bottom", env.IsBot()))
	return env
}

// refine fires one constraint, tightening every variable it mentions
// from the residual of the others. It returns the changed variables.
func (s *Solver) refine(ci int, env *lattice.IntervalEnv) (changed []defs.Variable) {
	c := s.csts[ci]
	expr := c.Expression()

	expr.ForEachTerm(func(a num.Z, v defs.Variable) {
		// residual = expr - a·v, evaluated in the current environment
		residual := lattice.Singleton(expr.Constant())
		expr.ForEachTerm(func(aj num.Z, vj defs.Variable) {
			if vj.Equal(v) {
				return
			}
			residual = residual.Add(lattice.Singleton(aj).Mul(env.Lookup(vj)))
		})

		old := env.Lookup(v)
		cand := candidate(c.Kind(), a, residual, old)
		refined := old.Meet(cand)
		if refined.Eq(old) {
			return
		}
		*env = env.Set(v, refined)
		changed = append(changed, v)
	})
	return changed
}

// candidate computes the admissible interval for a variable with
// coefficient a, given the residual of the remaining terms, under
// a·v + residual ⋈ 0. Divisions are carried out exactly over Q and
// rounded back to the tightest integer bounds.
func candidate(kind linear.ConstraintKind, a num.Z, residual, old zi) zi {
	target := residual.Neg() // a·v ∈ target (up to the relation)
	qa := lattice.Singleton(a.Rat())

	switch kind {
	case linear.Equality:
		quot := lattice.QDiv(lattice.IntervalZToQ(target), qa)
		return lattice.IntervalQToZ(quot)

	case linear.Inequality:
		// a·v ≤ max(target)
		limit := lattice.BoundZToQ(target.Ub())
		quot, err := limit.Div(lattice.Finite(a.Rat()))
		if err != nil {
			panic(err)
		}
		if a.Sign() > 0 {
			return lattice.NewInterval(lattice.MinusInf[num.Z](), lattice.BoundQToZUpper(quot))
		}
		return lattice.NewInterval(lattice.BoundQToZLower(quot), lattice.PlusInf[num.Z]())

	case linear.Disequality:
		// Only a pinned residual with an exactly divisible value can
		// trim an endpoint; rationals admit no refinement here.
		r, ok := target.Singleton()
		if !ok || r.Rem(a).Sign() != 0 {
			return old
		}
		return trim(old, r.Div(a))
	}
	panic("solver: unreachable constraint kind")
}

// trim removes the forbidden value from a matching finite endpoint of
// the interval, the only sound point removal intervals can express.
func trim(i zi, forbidden num.Z) zi {
	one := num.FromInt64(1)
	fb := lattice.Finite(forbidden)
	switch {
	case i.IsBot():
		return i
	case i.Lb().Eq(fb):
		return lattice.NewInterval(lattice.Finite(forbidden.Add(one)), i.Ub())
	case i.Ub().Eq(fb):
		return lattice.NewInterval(i.Lb(), lattice.Finite(forbidden.Sub(one)))
	}
	return i
}
