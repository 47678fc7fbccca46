// Package tree implements a persistent key-value map as a Patricia
// tree over key hashes. It is the substrate of the non-relational
// abstract environments: lattice operations over environments are
// expressed as structural merges parameterized by a binary operator.
package tree

import (
	"fmt"

	i "github.com/ibex-analyzer/ibex/utils/indenter"

	"github.com/benbjohnson/immutable"
)

// BinaryOp combines the values bound to a common key when two trees
// are merged.
//
// Apply returns the combined value. A false flag means the result is
// the operator's default element (e. g. ⊤ for a join), in which case
// the key is dropped from the merged tree. A non-nil error aborts the
// whole merge; MergeWith returns it unchanged. This is the sentinel
// with which pointwise meets signal an empty result.
//
// DefaultIsAbsorbing governs keys present in only one of the two
// trees: when true, combining the bound value with the default value
// yields the default, so the key is dropped; when false the bound
// value is kept as-is.
//
// Apply must satisfy Apply(x, x) = (x, true, nil) for values stored in
// the trees; merging relies on it when skipping shared subtrees.
type BinaryOp[V any] interface {
	Apply(x, y V) (res V, ok bool, err error)
	DefaultIsAbsorbing() bool
}

// PartialOrder compares the values bound to a common key when two
// trees are compared. DefaultIsTop must report whether unbound keys
// denote the greatest value of the ordering; the comparison relies on
// it to decide entries missing on either side.
type PartialOrder[V any] interface {
	Leq(x, y V) bool
	DefaultIsTop() bool
}

// NewTree constructs a new persistent key-value map with the specified
// hasher.
func NewTree[K, V any](hasher immutable.Hasher[K]) Tree[K, V] {
	return Tree[K, V]{hasher, nil}
}

type Tree[K, V any] struct {
	hasher immutable.Hasher[K]
	root   node[K, V]
}

// Lookup finds the value bound to the given key, if any.
func (tree Tree[K, V]) Lookup(key K) (V, bool) {
	// Hashing can be expensive, so we hash the key once here and pass it on.
	return lookup(tree.root, tree.hasher.Hash(key), key, tree.hasher)
}

// Insert binds the given key-value pair, replacing a previous binding
// of the same key if it exists.
func (tree Tree[K, V]) Insert(key K, value V) Tree[K, V] {
	tree.root, _ = insert(tree.root, tree.hasher.Hash(key), key, value, tree.hasher)
	return tree
}

// Remove unbinds the given key if it is bound.
func (tree Tree[K, V]) Remove(key K) Tree[K, V] {
	tree.root = remove(tree.root, tree.hasher.Hash(key), key, tree.hasher)
	return tree
}

// ForEach calls the given function once for each key-value pair.
func (tree Tree[K, V]) ForEach(f eachFunc[K, V]) {
	if tree.root != nil {
		tree.root.each(f)
	}
}

// All reports whether the predicate holds for every binding. The
// traversal stops at the first counterexample.
func (tree Tree[K, V]) All(pred func(key K, value V) bool) bool {
	return tree.root == nil || tree.root.all(pred)
}

// IsEmpty reports whether the tree holds no bindings.
func (tree Tree[K, V]) IsEmpty() bool {
	return tree.root == nil
}

// Clear returns the empty tree with the same hasher.
func (tree Tree[K, V]) Clear() Tree[K, V] {
	tree.root = nil
	return tree
}

// MergeWith merges two trees under the given binary operator. Keys
// bound in both trees combine through op.Apply, with the receiver's
// value as the left argument; keys bound in only one tree follow the
// operator's absorbing-default policy. The first error returned by
// op.Apply aborts the merge.
//
// Shared subtrees are skipped (see the Apply contract), so merging a
// tree with a lightly edited copy of itself is fast.
func (tree Tree[K, V]) MergeWith(other Tree[K, V], op BinaryOp[V]) (Tree[K, V], error) {
	root, err := merge(tree.root, other.root, tree.hasher, op)
	if err != nil {
		return Tree[K, V]{tree.hasher, nil}, err
	}
	return Tree[K, V]{tree.hasher, root}, nil
}

// Leq compares two trees pointwise under the given partial order,
// treating unbound keys as the ordering's default element. With a
// default of ⊤ (the only supported policy), the receiver is below
// `other` iff every key bound in `other` is bound in the receiver and
// the bound values are pointwise ordered.
func (tree Tree[K, V]) Leq(other Tree[K, V], po PartialOrder[V]) bool {
	if tree.root == other.root {
		return true
	}
	if !po.DefaultIsTop() {
		panic("tree: only default-is-top orderings are supported")
	}
	return other.All(func(key K, value V) bool {
		v, found := tree.Lookup(key)
		return found && po.Leq(v, value)
	})
}

// Equal reports whether two trees hold the same bindings, comparing
// values with the provided function. Shared subtrees are skipped.
func (tree Tree[K, V]) Equal(other Tree[K, V], f cmpFunc[V]) bool {
	return equal(tree.root, other.root, tree.hasher, f)
}

// Size returns the number of bindings.
// NOTE: Runs in linear time in the size of the map.
func (tree Tree[K, V]) Size() (res int) {
	tree.ForEach(func(_ K, _ V) {
		res++
	})
	return
}

func (tree Tree[K, V]) StringFiltered(pred func(k K, v V) bool) string {
	buf := []func() string{}

	tree.ForEach(func(k K, v V) {
		if pred(k, v) {
			buf = append(buf, func() string {
				return fmt.Sprintf("%v ↦ %v", k, v)
			})
		}
	})

	return i.Indenter().Start("{").NestThunked(buf...).End("}")
}

func (tree Tree[K, V]) String() string {
	return tree.StringFiltered(func(_ K, _ V) bool { return true })
}

// End of public interface

// The patricia tree implementation is based on:
// http://ittc.ku.edu/~andygill/papers/IntMap98.pdf

type eachFunc[K, V any] func(key K, value V)

type node[K, V any] interface {
	each(eachFunc[K, V])
	all(func(key K, value V) bool) bool
}

type keyt = uint32

type branch[K, V any] struct {
	prefix keyt // Common prefix of all keys in the left and right subtrees
	// A number with exactly one positive bit. The position of the bit
	// determines where the prefixes of the left and right subtrees diverge.
	branchBit keyt
	left      node[K, V]
	right     node[K, V]
}

func (b *branch[K, V]) each(f eachFunc[K, V]) {
	b.left.each(f)
	b.right.each(f)
}

func (b *branch[K, V]) all(pred func(key K, value V) bool) bool {
	return b.left.all(pred) && b.right.all(pred)
}

// Returns whether the key matches the prefix up until the branching bit.
// Intuitively: does the key belong in the branch's subtree?
func (b *branch[K, V]) match(key keyt) bool {
	return (key & (b.branchBit - 1)) == b.prefix
}

type pair[K, V any] struct {
	key   K
	value V
}

type leaf[K, V any] struct {
	// The (shared) hash value of all keys in the leaf.
	key keyt
	// List of values to handle hash collisions. Collisions are rare:
	// environments hash variables by their dense index.
	values []pair[K, V]
}

func (l *leaf[K, V]) copy() *leaf[K, V] {
	return &leaf[K, V]{
		l.key,
		append([]pair[K, V](nil), l.values...),
	}
}

func (l *leaf[K, V]) each(f eachFunc[K, V]) {
	for _, pr := range l.values {
		f(pr.key, pr.value)
	}
}

func (l *leaf[K, V]) all(pred func(key K, value V) bool) bool {
	for _, pr := range l.values {
		if !pred(pr.key, pr.value) {
			return false
		}
	}
	return true
}

// Smart branch constructor
func br[K, V any](prefix, branchBit keyt, left, right node[K, V]) node[K, V] {
	if left == nil {
		return right
	} else if right == nil {
		return left
	}

	return &branch[K, V]{prefix, branchBit, left, right}
}

// Recursive lookup on tree.
func lookup[K, V any](tree node[K, V], hash keyt, key K, hasher immutable.Hasher[K]) (ret V, found bool) {
	if tree == nil {
		return
	}

	switch tree := tree.(type) {
	case *leaf[K, V]:
		if tree.key == hash {
			for _, pr := range tree.values {
				if hasher.Equal(key, pr.key) {
					return pr.value, true
				}
			}
		}

		return

	case *branch[K, V]:
		rec := tree.right
		if !tree.match(hash) {
			return
		} else if zeroBit(hash, tree.branchBit) {
			rec = tree.left
		}

		return lookup(rec, hash, key, hasher)

	default:
		panic(errPatternMatch)
	}
}

// Joins two trees t0 and t1 which have prefixes p0 and p1 respectively.
// The prefixes must not be equal!
func join[K, V any](p0, p1 keyt, t0, t1 node[K, V]) node[K, V] {
	bbit := branchingBit(p0, p1)
	prefix := p0 & (bbit - 1)
	if zeroBit(p0, bbit) {
		return &branch[K, V]{prefix, bbit, t0, t1}
	} else {
		return &branch[K, V]{prefix, bbit, t1, t0}
	}
}

// If the returned flag is false, the returned node is
// (reference-)equal to the input node.
func insert[K, V any](tree node[K, V], hash keyt, key K, value V, hasher immutable.Hasher[K]) (node[K, V], bool) {
	if tree == nil {
		return &leaf[K, V]{key: hash, values: []pair[K, V]{{key, value}}}, true
	}

	var prefix keyt
	switch tree := tree.(type) {
	case *leaf[K, V]:
		if tree.key == hash {
			for i, pr := range tree.values {
				// If key matches previous key, replace value
				if hasher.Equal(key, pr.key) {
					lf := tree.copy()
					lf.values[i].value = value
					return lf, true
				}
			}

			// Hash collision - append to list of values in leaf
			lf := tree.copy()
			lf.values = append(lf.values, pair[K, V]{key, value})
			return lf, true
		}

		prefix = tree.key

	case *branch[K, V]:
		if tree.match(hash) {
			l, r := tree.left, tree.right
			var changed bool
			if zeroBit(hash, tree.branchBit) {
				l, changed = insert(l, hash, key, value, hasher)
			} else {
				r, changed = insert(r, hash, key, value, hasher)
			}
			if !changed {
				return tree, false
			}
			return &branch[K, V]{tree.prefix, tree.branchBit, l, r}, true
		}

		prefix = tree.prefix

	default:
		panic(errPatternMatch)
	}

	newLeaf := &leaf[K, V]{key: hash, values: []pair[K, V]{{key, value}}}
	return join(hash, prefix, node[K, V](newLeaf), tree), true
}

func remove[K, V any](tree node[K, V], hash keyt, key K, hasher immutable.Hasher[K]) node[K, V] {
	if tree == nil {
		return tree
	}

	switch tree := tree.(type) {
	case *leaf[K, V]:
		if tree.key == hash {
			newLeaf := &leaf[K, V]{tree.key, nil}
			// Copy all pairs that do not match the key
			for _, pr := range tree.values {
				if !hasher.Equal(key, pr.key) {
					newLeaf.values = append(newLeaf.values, pr)
				}
			}

			if len(newLeaf.values) == 0 {
				return nil
			}

			return newLeaf
		}
	case *branch[K, V]:
		if tree.match(hash) {
			left, right := tree.left, tree.right
			if zeroBit(hash, tree.branchBit) {
				left = remove(left, hash, key, hasher)
			} else {
				right = remove(right, hash, key, hasher)
			}
			return br(tree.prefix, tree.branchBit, left, right)
		}
	default:
		panic(errPatternMatch)
	}

	return tree
}

// keepUnmatched implements the absorbing-default policy for a subtree
// whose keys are bound on one side only.
func keepUnmatched[K, V any](n node[K, V], absorbing bool) node[K, V] {
	if absorbing {
		return nil
	}
	return n
}

// merge combines two trees under a binary operator, keeping the
// orientation of the arguments: values of `a` are always passed as the
// left argument of op.Apply. Subtrees shared between both inputs are
// returned as-is without applying the operator (valid because
// Apply(x, x) = x).
func merge[K, V any](a, b node[K, V], hasher immutable.Hasher[K], op BinaryOp[V]) (node[K, V], error) {
	absorbing := op.DefaultIsAbsorbing()

	// Cheap pointer-equality
	if a == b {
		return a, nil
	} else if a == nil {
		return keepUnmatched(b, absorbing), nil
	} else if b == nil {
		return keepUnmatched(a, absorbing), nil
	}

	al, aIsLeaf := a.(*leaf[K, V])
	bl, bIsLeaf := b.(*leaf[K, V])

	switch {
	case aIsLeaf && bIsLeaf:
		if al.key != bl.key {
			// No shared keys.
			if absorbing {
				return nil, nil
			}
			return join(al.key, bl.key, a, b), nil
		}
		return mergeLeaves(al, bl, hasher, op)

	case aIsLeaf:
		return mergeLeafBranch(al, b.(*branch[K, V]), hasher, op, true)

	case bIsLeaf:
		return mergeLeafBranch(bl, a.(*branch[K, V]), hasher, op, false)
	}

	// Both a and b are branches
	s, t := a.(*branch[K, V]), b.(*branch[K, V])
	switch {
	case s.branchBit == t.branchBit && s.prefix == t.prefix:
		l, err := merge(s.left, t.left, hasher, op)
		if err != nil {
			return nil, err
		}
		r, err := merge(s.right, t.right, hasher, op)
		if err != nil {
			return nil, err
		}
		if l == s.left && r == s.right {
			return s, nil
		} else if l == t.left && r == t.right {
			return t, nil
		}
		return br(s.prefix, s.branchBit, l, r), nil

	case s.branchBit < t.branchBit && s.match(t.prefix):
		// s spans t: descend into the side of s that t belongs to.
		l, r := s.left, s.right
		var err error
		if zeroBit(t.prefix, s.branchBit) {
			l, err = merge(l, node[K, V](t), hasher, op)
			r = keepUnmatched(r, absorbing)
		} else {
			r, err = merge(r, node[K, V](t), hasher, op)
			l = keepUnmatched(l, absorbing)
		}
		if err != nil {
			return nil, err
		}
		return br(s.prefix, s.branchBit, l, r), nil

	case t.branchBit < s.branchBit && t.match(s.prefix):
		// t spans s.
		l, r := t.left, t.right
		var err error
		if zeroBit(s.prefix, t.branchBit) {
			l, err = merge(node[K, V](s), l, hasher, op)
			r = keepUnmatched(r, absorbing)
		} else {
			r, err = merge(node[K, V](s), r, hasher, op)
			l = keepUnmatched(l, absorbing)
		}
		if err != nil {
			return nil, err
		}
		return br(t.prefix, t.branchBit, l, r), nil

	default:
		// Prefixes disagree: no shared keys.
		if absorbing {
			return nil, nil
		}
		return join(s.prefix, t.prefix, node[K, V](s), node[K, V](t)), nil
	}
}

// mergeLeaves combines two leaves holding the same hash.
func mergeLeaves[K, V any](a, b *leaf[K, V], hasher immutable.Hasher[K], op BinaryOp[V]) (node[K, V], error) {
	absorbing := op.DefaultIsAbsorbing()
	values := make([]pair[K, V], 0, len(a.values))
	matched := make([]bool, len(b.values))

OUTER:
	for _, apr := range a.values {
		for i, bpr := range b.values {
			if hasher.Equal(apr.key, bpr.key) {
				matched[i] = true
				res, ok, err := op.Apply(apr.value, bpr.value)
				if err != nil {
					return nil, err
				}
				if ok {
					values = append(values, pair[K, V]{apr.key, res})
				}
				continue OUTER
			}
		}
		if !absorbing {
			values = append(values, apr)
		}
	}

	if !absorbing {
		for i, bpr := range b.values {
			if !matched[i] {
				values = append(values, bpr)
			}
		}
	}

	if len(values) == 0 {
		return nil, nil
	}
	return &leaf[K, V]{a.key, values}, nil
}

// mergeLeafBranch combines a leaf with a branch. leafIsLeft records
// which operand the leaf came from, preserving operator orientation.
func mergeLeafBranch[K, V any](lf *leaf[K, V], b *branch[K, V], hasher immutable.Hasher[K], op BinaryOp[V], leafIsLeft bool) (node[K, V], error) {
	absorbing := op.DefaultIsAbsorbing()

	oriented := func(x, y node[K, V]) (node[K, V], error) {
		if leafIsLeft {
			return merge(x, y, hasher, op)
		}
		return merge(y, x, hasher, op)
	}

	if !b.match(lf.key) {
		// The leaf lies outside the branch: no shared keys.
		if absorbing {
			return nil, nil
		}
		if leafIsLeft {
			return join(lf.key, b.prefix, node[K, V](lf), node[K, V](b)), nil
		}
		return join(b.prefix, lf.key, node[K, V](b), node[K, V](lf)), nil
	}

	l, r := b.left, b.right
	var err error
	if zeroBit(lf.key, b.branchBit) {
		l, err = oriented(node[K, V](lf), l)
		r = keepUnmatched(r, absorbing)
	} else {
		r, err = oriented(node[K, V](lf), r)
		l = keepUnmatched(l, absorbing)
	}
	if err != nil {
		return nil, err
	}
	return br(b.prefix, b.branchBit, l, r), nil
}

type cmpFunc[V any] func(a, b V) bool

func equal[K, V any](a, b node[K, V], hasher immutable.Hasher[K], f cmpFunc[V]) bool {
	if a == b {
		return true
	} else if a == nil || b == nil {
		return false
	}

	switch a := a.(type) {
	case *leaf[K, V]:
		b, ok := b.(*leaf[K, V])
		if !ok || len(a.values) != len(b.values) {
			return false
		}

	FOUND:
		for _, apr := range a.values {
			for _, bpr := range b.values {
				if hasher.Equal(apr.key, bpr.key) {
					if !f(apr.value, bpr.value) {
						return false
					}

					continue FOUND
				}
			}

			// a contained a key that b did not
			return false
		}

		return true

	case *branch[K, V]:
		b, ok := b.(*branch[K, V])
		if !ok {
			return false
		}

		return a.prefix == b.prefix && a.branchBit == b.branchBit &&
			equal(a.left, b.left, hasher, f) && equal(a.right, b.right, hasher, f)

	default:
		panic(errPatternMatch)
	}
}
