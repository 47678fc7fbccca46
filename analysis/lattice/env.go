package lattice

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ibex-analyzer/ibex/analysis/defs"
	"github.com/ibex-analyzer/ibex/analysis/num"
	"github.com/ibex-analyzer/ibex/utils/tree"

	"github.com/benbjohnson/immutable"
)

// Env is the non-relational ("separate") domain: a persistent mapping
// from keys to members of a value lattice, itself lifted to a lattice
// by pointwise operation. Keys bound to ⊤ are not stored — absence
// denotes ⊤ — and no key is ever bound to ⊥: assigning ⊥ collapses the
// whole environment to the distinguished bottom, which represents the
// unreachable state and absorbs every mutation.
type Env[K any, V Value[V]] struct {
	bottom bool
	tree   tree.Tree[K, V]
}

// TopEnv creates the environment binding nothing, i. e. ⊤.
func TopEnv[K any, V Value[V]](hasher immutable.Hasher[K]) Env[K, V] {
	return Env[K, V]{bottom: false, tree: tree.NewTree[K, V](hasher)}
}

// BottomEnv creates the unreachable environment.
func BottomEnv[K any, V Value[V]](hasher immutable.Hasher[K]) Env[K, V] {
	return Env[K, V]{bottom: true, tree: tree.NewTree[K, V](hasher)}
}

func (e Env[K, V]) IsBot() bool {
	return e.bottom
}

func (e Env[K, V]) IsTop() bool {
	return !e.bottom && e.tree.IsEmpty()
}

// SetToBot returns the unreachable environment.
func (e Env[K, V]) SetToBot() Env[K, V] {
	return Env[K, V]{bottom: true, tree: e.tree.Clear()}
}

// SetToTop returns the environment binding nothing.
func (e Env[K, V]) SetToTop() Env[K, V] {
	return Env[K, V]{bottom: false, tree: e.tree.Clear()}
}

// Set binds k to v. Binding ⊥ collapses the environment, binding ⊤
// unbinds the key.
func (e Env[K, V]) Set(k K, v V) Env[K, V] {
	switch {
	case e.bottom:
		return e
	case v.IsBot():
		return e.SetToBot()
	case v.IsTop():
		return Env[K, V]{tree: e.tree.Remove(k)}
	}
	return Env[K, V]{tree: e.tree.Insert(k, v)}
}

// Lookup returns the value bound to k: ⊥ on the unreachable
// environment, ⊤ for unbound keys.
func (e Env[K, V]) Lookup(k K) V {
	var z V
	if e.bottom {
		return z.Bot()
	}
	if v, found := e.tree.Lookup(k); found {
		return v
	}
	return z.Top()
}

// Has reports whether k is explicitly bound.
func (e Env[K, V]) Has(k K) bool {
	if e.bottom {
		return false
	}
	_, found := e.tree.Lookup(k)
	return found
}

// Forget unbinds k.
func (e Env[K, V]) Forget(k K) Env[K, V] {
	if e.bottom {
		return e
	}
	return Env[K, V]{tree: e.tree.Remove(k)}
}

// Leq computes e ⊑ o: bottom is least, and otherwise values compare
// pointwise with unbound keys read as ⊤.
func (e Env[K, V]) Leq(o Env[K, V]) bool {
	switch {
	case e.bottom:
		return true
	case o.bottom:
		return false
	}
	return e.tree.Leq(o.tree, envOrder[V]{})
}

func (e Env[K, V]) Eq(o Env[K, V]) bool {
	return e.Leq(o) && o.Leq(e)
}

// Join computes the pointwise join. Pointwise results of ⊤ drop out of
// the tree, as do keys bound on one side only.
func (e Env[K, V]) Join(o Env[K, V]) Env[K, V] {
	switch {
	case e.bottom:
		return o
	case o.bottom:
		return e
	}
	return e.apply(o, joinOp[V]{})
}

// Widen computes the pointwise widening.
func (e Env[K, V]) Widen(o Env[K, V]) Env[K, V] {
	switch {
	case e.bottom:
		return o
	case o.bottom:
		return e
	}
	return e.apply(o, extensiveOp[V]{func(x, y V) V { return x.Widen(y) }})
}

// WidenWith computes a pointwise widening through a caller-provided
// operator, e. g. widening with thresholds. The operator must be an
// upper-bound operator on the value lattice.
func (e Env[K, V]) WidenWith(o Env[K, V], widen func(x, y V) V) Env[K, V] {
	switch {
	case e.bottom:
		return o
	case o.bottom:
		return e
	}
	return e.apply(o, extensiveOp[V]{widen})
}

// Meet computes the pointwise meet; any binding meeting to ⊥ collapses
// the result to bottom.
func (e Env[K, V]) Meet(o Env[K, V]) Env[K, V] {
	if e.bottom || o.bottom {
		return e.SetToBot()
	}
	return e.apply(o, meetOp[V]{})
}

// Narrow computes the pointwise narrowing.
func (e Env[K, V]) Narrow(o Env[K, V]) Env[K, V] {
	if e.bottom || o.bottom {
		return e.SetToBot()
	}
	return e.apply(o, narrowOp[V]{})
}

func (e Env[K, V]) apply(o Env[K, V], op tree.BinaryOp[V]) Env[K, V] {
	t, err := e.tree.MergeWith(o.tree, op)
	if err != nil {
		if err == errBottomFound {
			return e.SetToBot()
		}
		panic(err)
	}
	return Env[K, V]{tree: t}
}

// ForEach visits all bindings. Iterating the unreachable environment
// is a caller bug.
func (e Env[K, V]) ForEach(f func(k K, v V)) {
	if e.bottom {
		panic(ErrIterateBottom)
	}
	e.tree.ForEach(f)
}

// Size returns the number of bound keys.
func (e Env[K, V]) Size() int {
	if e.bottom {
		return 0
	}
	return e.tree.Size()
}

// String renders the environment as {k → v; …}, or _|_ when
// unreachable. Entries are sorted for determinism.
func (e Env[K, V]) String() string {
	if e.bottom {
		return "_|_"
	}
	entries := []string{}
	e.tree.ForEach(func(k K, v V) {
		entries = append(entries, fmt.Sprintf("%v → %s", k, v))
	})
	sort.Strings(entries)
	return "{" + strings.Join(entries, "; ") + "}"
}

// POINTWISE OPERATORS

type joinOp[V Value[V]] struct{}

func (joinOp[V]) Apply(x, y V) (V, bool, error) {
	z := x.Join(y)
	if z.IsTop() {
		return z, false, nil
	}
	return z, true, nil
}

func (joinOp[V]) DefaultIsAbsorbing() bool {
	return true
}

// extensiveOp lifts any upper-bound operator (plain widening, widening
// with thresholds) pointwise.
type extensiveOp[V Value[V]] struct {
	apply func(x, y V) V
}

func (op extensiveOp[V]) Apply(x, y V) (V, bool, error) {
	z := op.apply(x, y)
	if z.IsTop() {
		return z, false, nil
	}
	return z, true, nil
}

func (extensiveOp[V]) DefaultIsAbsorbing() bool {
	return true
}

type meetOp[V Value[V]] struct{}

func (meetOp[V]) Apply(x, y V) (V, bool, error) {
	z := x.Meet(y)
	if z.IsBot() {
		return z, false, errBottomFound
	}
	return z, true, nil
}

func (meetOp[V]) DefaultIsAbsorbing() bool {
	return false
}

type narrowOp[V Value[V]] struct{}

func (narrowOp[V]) Apply(x, y V) (V, bool, error) {
	z := x.Narrow(y)
	if z.IsBot() {
		return z, false, errBottomFound
	}
	return z, true, nil
}

func (narrowOp[V]) DefaultIsAbsorbing() bool {
	return false
}

type envOrder[V Value[V]] struct{}

func (envOrder[V]) Leq(x, y V) bool {
	return x.Leq(y)
}

func (envOrder[V]) DefaultIsTop() bool {
	return true
}

// IntervalEnv is the instantiation backing the interval domain.
type IntervalEnv = Env[defs.Variable, Interval[num.Z]]

// TopIntervalEnv creates the ⊤ interval environment.
func TopIntervalEnv() IntervalEnv {
	return TopEnv[defs.Variable, Interval[num.Z]](defs.VarHasher{})
}

// BottomIntervalEnv creates the unreachable interval environment.
func BottomIntervalEnv() IntervalEnv {
	return BottomEnv[defs.Variable, Interval[num.Z]](defs.VarHasher{})
}
