package linear

import (
	"strings"

	"github.com/ibex-analyzer/ibex/analysis/defs"
)

// ConstraintSystem is a conjunction of linear constraints. The zero
// value is the empty (trivially true) system.
type ConstraintSystem struct {
	csts []Constraint
}

// System builds a constraint system from the given conjuncts.
func System(csts ...Constraint) ConstraintSystem {
	return ConstraintSystem{csts: csts}
}

// FalseSystem returns the canonical unsatisfiable system.
func FalseSystem() ConstraintSystem {
	return System(False())
}

// Add returns the system extended with c. Tautologies are not
// recorded.
func (s ConstraintSystem) Add(c Constraint) ConstraintSystem {
	if c.IsTautology() {
		return s
	}
	csts := make([]Constraint, len(s.csts), len(s.csts)+1)
	copy(csts, s.csts)
	return ConstraintSystem{csts: append(csts, c)}
}

// Concat returns the conjunction of two systems.
func (s ConstraintSystem) Concat(o ConstraintSystem) ConstraintSystem {
	res := s
	for _, c := range o.csts {
		res = res.Add(c)
	}
	return res
}

// Len returns the number of conjuncts.
func (s ConstraintSystem) Len() int {
	return len(s.csts)
}

// IsTrue reports whether the system imposes nothing.
func (s ConstraintSystem) IsTrue() bool {
	return len(s.csts) == 0
}

// IsFalse reports whether some conjunct is an outright contradiction.
func (s ConstraintSystem) IsFalse() bool {
	for _, c := range s.csts {
		if c.IsContradiction() {
			return true
		}
	}
	return false
}

// ForEach visits the conjuncts in order.
func (s ConstraintSystem) ForEach(f func(c Constraint)) {
	for _, c := range s.csts {
		f(c)
	}
}

// Constraints returns the conjuncts.
func (s ConstraintSystem) Constraints() []Constraint {
	return append([]Constraint(nil), s.csts...)
}

// Variables returns every variable mentioned by the system, deduped.
func (s ConstraintSystem) Variables() []defs.Variable {
	seen := map[uint32]bool{}
	var vs []defs.Variable
	for _, c := range s.csts {
		for _, v := range c.Variables() {
			if !seen[v.Index()] {
				seen[v.Index()] = true
				vs = append(vs, v)
			}
		}
	}
	return vs
}

func (s ConstraintSystem) String() string {
	if s.IsTrue() {
		return "true"
	}
	strs := make([]string, len(s.csts))
	for i, c := range s.csts {
		strs[i] = c.String()
	}
	return strings.Join(strs, " ∧ ")
}

// DisjunctiveConstraintSystem is a disjunction of constraint systems.
// The empty disjunction with isFalse set denotes false; the empty
// disjunction without it denotes true.
type DisjunctiveConstraintSystem struct {
	isFalse   bool
	disjuncts []ConstraintSystem
}

// TrueDisjunction denotes the trivially true disjunction.
func TrueDisjunction() DisjunctiveConstraintSystem {
	return DisjunctiveConstraintSystem{}
}

// FalseDisjunction denotes the unsatisfiable disjunction.
func FalseDisjunction() DisjunctiveConstraintSystem {
	return DisjunctiveConstraintSystem{isFalse: true}
}

// Disjunction wraps the given systems.
func Disjunction(systems ...ConstraintSystem) DisjunctiveConstraintSystem {
	return DisjunctiveConstraintSystem{disjuncts: systems}
}

func (d DisjunctiveConstraintSystem) IsFalse() bool {
	return d.isFalse
}

func (d DisjunctiveConstraintSystem) IsTrue() bool {
	return !d.isFalse && len(d.disjuncts) == 0
}

// Disjuncts returns the member systems.
func (d DisjunctiveConstraintSystem) Disjuncts() []ConstraintSystem {
	return append([]ConstraintSystem(nil), d.disjuncts...)
}

func (d DisjunctiveConstraintSystem) String() string {
	switch {
	case d.isFalse:
		return "false"
	case len(d.disjuncts) == 0:
		return "true"
	}
	strs := make([]string, len(d.disjuncts))
	for i, s := range d.disjuncts {
		strs[i] = "(" + s.String() + ")"
	}
	return strings.Join(strs, " ∨ ")
}
