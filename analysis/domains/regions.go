package domains

import (
	"fmt"

	"github.com/ibex-analyzer/ibex/analysis/defs"
	"github.com/ibex-analyzer/ibex/analysis/linear"

	"github.com/spakin/disjoint"
)

// Region is a named storage area. Its contents are smashed into a
// single summary variable holding the join of everything ever stored.
//
// Regions that may alias (connected by cross-region pointer
// arithmetic) share an alias class; loads and stores address the class
// representative's summary. Region structure is program structure, not
// abstract state: coarsening an alias class is monotone and therefore
// safe to share between all states of an analysis run.
type Region struct {
	name        string
	summary     defs.Variable
	elem        *disjoint.Element
	initialized bool
}

func (r *Region) Name() string {
	return r.name
}

// Summary returns the summary variable of the region's alias class.
func (r *Region) Summary() defs.Variable {
	return r.elem.Find().Data.(*Region).summary
}

func (r *Region) String() string {
	return r.name
}

// RegionModel mints regions and tracks which of them may alias.
type RegionModel struct {
	vars    *defs.VarContext
	regions map[string]*Region
}

func NewRegionModel(vars *defs.VarContext) *RegionModel {
	return &RegionModel{vars: vars, regions: map[string]*Region{}}
}

// Region returns the named region, creating it on first use.
func (m *RegionModel) Region(name string) *Region {
	if r, ok := m.regions[name]; ok {
		return r
	}
	r := &Region{
		name:    name,
		summary: m.vars.Fresh(fmt.Sprintf("%s!content", name)),
		elem:    disjoint.NewElement(),
	}
	r.elem.Data = r
	m.regions[name] = r
	return r
}

// Known reports whether the named region was created before.
func (m *RegionModel) Known(name string) bool {
	_, ok := m.regions[name]
	return ok
}

// MayAlias reports whether two regions are in the same alias class.
func MayAlias(a, b *Region) bool {
	return a.elem.Find() == b.elem.Find()
}

// MergeRegions unions the alias classes of two regions. The resulting
// class representative's summary absorbs both summaries at the state
// level (see IntervalDomain.RefGep).
func MergeRegions(a, b *Region) {
	disjoint.Union(a.elem, b.elem)
}

// RefConstraintKind discriminates reference constraints.
type RefConstraintKind int

const (
	RefEqual RefConstraintKind = iota
	RefNotEqual
	RefLeq
)

// RefConstraint relates two references: ref1 ⋈ ref2 + offset.
type RefConstraint struct {
	Ref1, Ref2 defs.Variable
	Kind       RefConstraintKind
	Offset     linear.Expression
}

// Lower converts the reference constraint into its linear form.
func (rc RefConstraint) Lower() linear.Constraint {
	lhs := linear.Var(rc.Ref1)
	rhs := linear.Var(rc.Ref2).Add(rc.Offset)
	switch rc.Kind {
	case RefEqual:
		return linear.Equal(lhs, rhs)
	case RefNotEqual:
		return linear.NotEqual(lhs, rhs)
	case RefLeq:
		return linear.Leq(lhs, rhs)
	}
	panic("domains: unreachable reference constraint kind")
}
