package tree

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/benbjohnson/immutable"
)

var intHasher = immutable.NewHasher[int](int(0))

type itree = Tree[int, int]

func mkTree(pairs ...[2]int) itree {
	tree := NewTree[int, int](intHasher)
	for _, pr := range pairs {
		tree = tree.Insert(pr[0], pr[1])
	}
	return tree
}

func testLookup(t *testing.T, tree itree, key int, expectFound bool, expectVal int) {
	t.Helper()
	val, found := tree.Lookup(key)
	if found != expectFound {
		if found {
			t.Error("Expected miss for", key)
		} else {
			t.Error("Expected hit for", key)
		}
	}
	if found && val != expectVal {
		t.Errorf("Lookup(%v) = %v, expected: %v", key, val, expectVal)
	}
}

func TestEmpty(t *testing.T) {
	tree := NewTree[int, int](intHasher)
	testLookup(t, tree, 0, false, 0)
	if !tree.IsEmpty() {
		t.Error("fresh tree should be empty")
	}
}

func TestInsertLookupRemove(t *testing.T) {
	tree := mkTree()
	for i := 0; i < 100; i++ {
		tree = tree.Insert(i, i*i)
	}
	if tree.Size() != 100 {
		t.Errorf("size = %d, expected 100", tree.Size())
	}
	for i := 0; i < 100; i++ {
		testLookup(t, tree, i, true, i*i)
	}

	// Overwrites replace.
	tree = tree.Insert(7, 1000)
	testLookup(t, tree, 7, true, 1000)

	smaller := tree.Remove(7)
	testLookup(t, smaller, 7, false, 0)
	// Persistence: the original is untouched.
	testLookup(t, tree, 7, true, 1000)
}

func TestInsertRandomOrder(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	keys := r.Perm(1000)
	tree := mkTree()
	for _, k := range keys {
		tree = tree.Insert(k, k+1)
	}
	for _, k := range keys {
		testLookup(t, tree, k, true, k+1)
	}
	if tree.Size() != 1000 {
		t.Errorf("size = %d, expected 1000", tree.Size())
	}
}

// minOp keeps the smaller value; present-on-one-side keys survive.
type minOp struct{}

func (minOp) Apply(x, y int) (int, bool, error) {
	if y < x {
		return y, true, nil
	}
	return x, true, nil
}

func (minOp) DefaultIsAbsorbing() bool {
	return false
}

// interOp keeps the smaller value on shared keys and drops the rest.
type interOp struct{}

func (interOp) Apply(x, y int) (int, bool, error) {
	if y < x {
		return y, true, nil
	}
	return x, true, nil
}

func (interOp) DefaultIsAbsorbing() bool {
	return true
}

// leftOp records the orientation of the operands it sees.
type leftOp struct {
	t *testing.T
}

func (op leftOp) Apply(x, y int) (int, bool, error) {
	if x >= 0 || y < 0 {
		op.t.Errorf("operator saw (%d, %d); left operands are negative in this test", x, y)
	}
	return x, true, nil
}

func (leftOp) DefaultIsAbsorbing() bool {
	return false
}

func TestMergeUnion(t *testing.T) {
	a := mkTree([2]int{1, 10}, [2]int{2, 20}, [2]int{3, 30})
	b := mkTree([2]int{2, 15}, [2]int{3, 40}, [2]int{4, 5})

	res, err := a.MergeWith(b, minOp{})
	if err != nil {
		t.Fatal(err)
	}
	expected := map[int]int{1: 10, 2: 15, 3: 30, 4: 5}
	if res.Size() != len(expected) {
		t.Fatalf("size = %d, expected %d", res.Size(), len(expected))
	}
	for k, v := range expected {
		testLookup(t, res, k, true, v)
	}
}

func TestMergeIntersection(t *testing.T) {
	a := mkTree([2]int{1, 10}, [2]int{2, 20}, [2]int{3, 30})
	b := mkTree([2]int{2, 15}, [2]int{3, 40}, [2]int{4, 5})

	res, err := a.MergeWith(b, interOp{})
	if err != nil {
		t.Fatal(err)
	}
	expected := map[int]int{2: 15, 3: 30}
	if res.Size() != len(expected) {
		t.Fatalf("size = %d, expected %d", res.Size(), len(expected))
	}
	for k, v := range expected {
		testLookup(t, res, k, true, v)
	}
	testLookup(t, res, 1, false, 0)
	testLookup(t, res, 4, false, 0)
}

func TestMergeOrientation(t *testing.T) {
	a := mkTree()
	b := mkTree()
	r := rand.New(rand.NewSource(11))
	for _, k := range r.Perm(500) {
		a = a.Insert(k, -1-k)
		if k%3 == 0 {
			b = b.Insert(k, k+1)
		}
	}
	if _, err := a.MergeWith(b, leftOp{t}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.MergeWith(a, flip{leftOp{t}}); err != nil {
		t.Fatal(err)
	}
}

// flip adapts an operator to swapped operands.
type flip struct {
	op leftOp
}

func (f flip) Apply(x, y int) (int, bool, error) {
	return f.op.Apply(y, x)
}

func (f flip) DefaultIsAbsorbing() bool {
	return f.op.DefaultIsAbsorbing()
}

// dropEvenOp drops keys whose merged value is even (operator-default
// results).
type dropEvenOp struct{}

func (dropEvenOp) Apply(x, y int) (int, bool, error) {
	if (x+y)%2 == 0 {
		return 0, false, nil
	}
	return x + y, true, nil
}

func (dropEvenOp) DefaultIsAbsorbing() bool {
	return true
}

func TestMergeDefaultResultDropsKey(t *testing.T) {
	a := mkTree([2]int{1, 1}, [2]int{2, 2})
	b := mkTree([2]int{1, 1}, [2]int{2, 3})

	res, err := a.MergeWith(b, dropEvenOp{})
	if err != nil {
		t.Fatal(err)
	}
	testLookup(t, res, 1, false, 0) // 1+1 even, dropped
	testLookup(t, res, 2, true, 5)
}

var errAbort = errors.New("abort")

type abortOp struct{}

func (abortOp) Apply(x, y int) (int, bool, error) {
	if x == y {
		return 0, false, errAbort
	}
	return x, true, nil
}

func (abortOp) DefaultIsAbsorbing() bool {
	return false
}

func TestMergeAborts(t *testing.T) {
	a := mkTree([2]int{1, 10}, [2]int{2, 20})
	b := mkTree([2]int{1, 11}, [2]int{2, 20})

	if _, err := a.MergeWith(b, abortOp{}); err != errAbort {
		t.Errorf("expected the operator error, got %v", err)
	}
}

func TestMergeSharedSubtrees(t *testing.T) {
	base := mkTree()
	for i := 0; i < 1000; i++ {
		base = base.Insert(i, i)
	}
	edited := base.Insert(500, -1)

	res, err := base.MergeWith(edited, minOp{})
	if err != nil {
		t.Fatal(err)
	}
	testLookup(t, res, 500, true, -1)
	for _, k := range []int{0, 250, 999} {
		testLookup(t, res, k, true, k)
	}
}

type leqOrder struct{}

func (leqOrder) Leq(x, y int) bool {
	return x <= y
}

func (leqOrder) DefaultIsTop() bool {
	return true
}

func TestLeq(t *testing.T) {
	a := mkTree([2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3})
	b := mkTree([2]int{1, 5}, [2]int{2, 2})

	// Every key of b is bound in a with a smaller value.
	if !a.Leq(b, leqOrder{}) {
		t.Error("a should be below b")
	}
	// b lacks key 3, which reads as the top of the ordering.
	if b.Leq(a, leqOrder{}) {
		t.Error("b should not be below a: it does not bound key 3")
	}
	if !a.Leq(a, leqOrder{}) {
		t.Error("leq should be reflexive")
	}

	c := mkTree([2]int{1, 0})
	if a.Leq(c, leqOrder{}) {
		t.Error("a[1] = 1 > 0 = c[1]")
	}
}

func TestStringContainsBindings(t *testing.T) {
	tree := mkTree([2]int{1, 10})
	if got := tree.String(); got != fmt.Sprintf("{%v ↦ %v}", 1, 10) {
		t.Errorf("String() = %q", got)
	}
}
