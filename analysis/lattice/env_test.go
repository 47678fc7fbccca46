package lattice

import (
	"testing"

	"github.com/ibex-analyzer/ibex/analysis/defs"
	"github.com/ibex-analyzer/ibex/analysis/num"
)

func TestEnvSetLookup(t *testing.T) {
	ctx := defs.NewVarContext()
	x, y := ctx.Var("x"), ctx.Var("y")

	env := TopIntervalEnv()
	if !env.IsTop() {
		t.Fatal("fresh environment should be ⊤")
	}

	env = env.Set(x, fin(0, 5))
	if got := env.Lookup(x); !got.Eq(fin(0, 5)) {
		t.Errorf("x = %s, expected [0, 5]", got)
	}
	if got := env.Lookup(y); !got.IsTop() {
		t.Errorf("unbound y = %s, expected ⊤", got)
	}

	// Binding ⊤ removes the key.
	env = env.Set(x, Top[num.Z]())
	if env.Has(x) {
		t.Error("binding ⊤ should unbind the key")
	}
	if !env.IsTop() {
		t.Error("environment should be ⊤ again")
	}

	// Binding ⊥ collapses the state, which then absorbs mutations.
	env = env.Set(x, fin(0, 5)).Set(y, Bottom[num.Z]())
	if !env.IsBot() {
		t.Fatal("binding ⊥ should collapse the environment")
	}
	env = env.Set(x, fin(1, 2)).Forget(x)
	if !env.IsBot() {
		t.Error("bottom must absorb further mutations")
	}
	if got := env.Lookup(x); !got.IsBot() {
		t.Errorf("lookup on bottom = %s, expected ⊥", got)
	}
}

func TestEnvForget(t *testing.T) {
	ctx := defs.NewVarContext()
	x, y := ctx.Var("x"), ctx.Var("y")

	// Scenario: {x ↦ [0, 5], y ↦ [1, 1]} forget x = {y ↦ [1, 1]}.
	env := TopIntervalEnv().Set(x, fin(0, 5)).Set(y, fin(1, 1))
	env = env.Forget(x)
	if env.Has(x) {
		t.Error("x should be forgotten")
	}
	if got := env.Lookup(x); !got.IsTop() {
		t.Errorf("forgotten x = %s, expected ⊤", got)
	}
	if got := env.Lookup(y); !got.Eq(fin(1, 1)) {
		t.Errorf("y = %s, expected [1, 1]", got)
	}
}

func TestEnvJoinMeet(t *testing.T) {
	ctx := defs.NewVarContext()
	x, y := ctx.Var("x"), ctx.Var("y")

	a := TopIntervalEnv().Set(x, fin(0, 5)).Set(y, fin(0, 0))
	b := TopIntervalEnv().Set(x, fin(3, 8))

	j := a.Join(b)
	if got := j.Lookup(x); !got.Eq(fin(0, 8)) {
		t.Errorf("join x = %s, expected [0, 8]", got)
	}
	// y is ⊤ in b, so the join drops it.
	if j.Has(y) {
		t.Error("join should drop keys that reach ⊤")
	}

	m := a.Meet(b)
	if got := m.Lookup(x); !got.Eq(fin(3, 5)) {
		t.Errorf("meet x = %s, expected [3, 5]", got)
	}
	// y is only bound in a; the meet keeps it.
	if got := m.Lookup(y); !got.Eq(fin(0, 0)) {
		t.Errorf("meet y = %s, expected [0, 0]", got)
	}

	// Scenario: {x ↦ [0, 5]} ⊓ {x ↦ [10, 20]} = ⊥.
	c := TopIntervalEnv().Set(x, fin(10, 20))
	if res := a.Meet(c); !res.IsBot() {
		t.Errorf("disjoint meet = %s, expected ⊥", res)
	}

	bot := BottomIntervalEnv()
	if !a.Join(bot).Eq(a) || !bot.Join(a).Eq(a) {
		t.Error("⊥ must be the identity of join")
	}
	if !a.Meet(bot).IsBot() || !bot.Meet(a).IsBot() {
		t.Error("⊥ must absorb meets")
	}
}

func TestEnvWidenNarrow(t *testing.T) {
	ctx := defs.NewVarContext()
	x := ctx.Var("x")

	// Scenario: {x ↦ [0, 10]} ∇ {x ↦ [0, 20]} = {x ↦ [0, ∞]}.
	a := TopIntervalEnv().Set(x, fin(0, 10))
	b := TopIntervalEnv().Set(x, fin(0, 20))
	w := a.Widen(b)
	if got := w.Lookup(x); !got.Eq(NewInterval(zb(0), PlusInf[num.Z]())) {
		t.Errorf("widen x = %s, expected [0, ∞]", got)
	}

	// With thresholds {100} the bound snaps to 100 instead.
	ts := NewThresholds(num.FromInt64(100))
	wt := a.WidenWith(b, func(p, q Interval[num.Z]) Interval[num.Z] {
		return p.WidenThresholds(q, ts)
	})
	if got := wt.Lookup(x); !got.Eq(fin(0, 100)) {
		t.Errorf("threshold widen x = %s, expected [0, 100]", got)
	}

	// Narrowing recovers the finite bound.
	n := w.Narrow(b)
	if got := n.Lookup(x); !got.Eq(fin(0, 20)) {
		t.Errorf("narrow x = %s, expected [0, 20]", got)
	}
}

func TestEnvLeq(t *testing.T) {
	ctx := defs.NewVarContext()
	x, y := ctx.Var("x"), ctx.Var("y")

	small := TopIntervalEnv().Set(x, fin(1, 3)).Set(y, fin(0, 0))
	big := TopIntervalEnv().Set(x, fin(0, 5))

	if !small.Leq(big) {
		t.Error("{x ↦ [1, 3], y ↦ [0, 0]} ⊑ {x ↦ [0, 5]} should hold")
	}
	if big.Leq(small) {
		t.Error("{x ↦ [0, 5]} ⋢ {x ↦ [1, 3], y ↦ [0, 0]}")
	}
	if !BottomIntervalEnv().Leq(small) {
		t.Error("⊥ must be least")
	}
	if small.Leq(BottomIntervalEnv()) {
		t.Error("non-bottom states are not below ⊥")
	}
	if !small.Leq(TopIntervalEnv()) {
		t.Error("⊤ must be greatest")
	}
}

func TestEnvIterateBottomPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("iterating ⊥ should fail loudly")
		}
	}()
	BottomIntervalEnv().ForEach(func(defs.Variable, Interval[num.Z]) {})
}

func TestEnvString(t *testing.T) {
	ctx := defs.NewVarContext()
	x, y := ctx.Var("x"), ctx.Var("y")

	if got := BottomIntervalEnv().String(); got != "_|_" {
		t.Errorf("⊥ prints as %q", got)
	}
	if got := TopIntervalEnv().String(); got != "{}" {
		t.Errorf("⊤ prints as %q", got)
	}
	env := TopIntervalEnv().Set(x, fin(0, 5)).Set(y, fin(1, 1))
	if got := env.String(); got != "{x → [0, 5]; y → [1, 1]}" {
		t.Errorf("environment prints as %q", got)
	}
}
