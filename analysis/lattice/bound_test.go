package lattice

import (
	"testing"

	"github.com/ibex-analyzer/ibex/analysis/num"
)

func zb(n int64) Bound[num.Z] {
	return Finite(num.FromInt64(n))
}

func TestBoundAdd(t *testing.T) {
	pinf := PlusInf[num.Z]()
	minf := MinusInf[num.Z]()

	tests := []struct {
		a, b     Bound[num.Z]
		expected Bound[num.Z]
		defined  bool
	}{
		{zb(1), zb(2), zb(3), true},
		{zb(-1), zb(1), zb(0), true},
		{zb(5), pinf, pinf, true},
		{zb(5), minf, minf, true},
		{pinf, zb(-100), pinf, true},
		{minf, zb(100), minf, true},
		{pinf, pinf, pinf, true},
		{minf, minf, minf, true},
		{pinf, minf, Bound[num.Z]{}, false},
		{minf, pinf, Bound[num.Z]{}, false},
	}

	for _, test := range tests {
		res, err := test.a.Add(test.b)
		if test.defined {
			if err != nil {
				t.Errorf("%s + %s failed: %v", test.a, test.b, err)
			} else if !res.Eq(test.expected) {
				t.Errorf("%s + %s = %s, expected %s", test.a, test.b, res, test.expected)
			}
		} else if err == nil {
			t.Errorf("%s + %s = %s, expected an undefined-operation error", test.a, test.b, res)
		}
	}
}

func TestBoundMul(t *testing.T) {
	pinf := PlusInf[num.Z]()
	minf := MinusInf[num.Z]()

	tests := []struct {
		a, b, expected Bound[num.Z]
	}{
		{zb(3), zb(-4), zb(-12)},
		{zb(0), pinf, zb(0)},
		{pinf, zb(0), zb(0)},
		{zb(0), minf, zb(0)},
		{zb(2), pinf, pinf},
		{zb(-2), pinf, minf},
		{zb(2), minf, minf},
		{zb(-2), minf, pinf},
		{pinf, pinf, pinf},
		{minf, minf, pinf},
		{pinf, minf, minf},
	}

	for _, test := range tests {
		if res := test.a.Mul(test.b); !res.Eq(test.expected) {
			t.Errorf("%s * %s = %s, expected %s", test.a, test.b, res, test.expected)
		}
	}
}

func TestBoundDiv(t *testing.T) {
	pinf := PlusInf[num.Z]()
	minf := MinusInf[num.Z]()

	tests := []struct {
		a, b     Bound[num.Z]
		expected Bound[num.Z]
		defined  bool
	}{
		{zb(7), zb(2), zb(3), true},
		{zb(-7), zb(2), zb(-3), true},
		{zb(7), zb(-2), zb(-3), true},
		{zb(0), pinf, zb(0), true},
		{zb(5), pinf, pinf, true},
		{zb(-5), pinf, minf, true},
		{pinf, zb(3), pinf, true},
		{pinf, zb(-3), minf, true},
		{minf, zb(3), minf, true},
		{pinf, pinf, pinf, true},
		{pinf, minf, minf, true},
		{zb(1), zb(0), Bound[num.Z]{}, false},
		{pinf, zb(0), Bound[num.Z]{}, false},
	}

	for _, test := range tests {
		res, err := test.a.Div(test.b)
		if test.defined {
			if err != nil {
				t.Errorf("%s / %s failed: %v", test.a, test.b, err)
			} else if !res.Eq(test.expected) {
				t.Errorf("%s / %s = %s, expected %s", test.a, test.b, res, test.expected)
			}
		} else if err == nil {
			t.Errorf("%s / %s = %s, expected a division-by-zero error", test.a, test.b, res)
		}
	}
}

func TestBoundOrder(t *testing.T) {
	pinf := PlusInf[num.Z]()
	minf := MinusInf[num.Z]()

	tests := []struct {
		a, b     Bound[num.Z]
		expected int
	}{
		{zb(1), zb(2), -1},
		{zb(2), zb(2), 0},
		{zb(3), zb(2), 1},
		{minf, zb(-1 << 62), -1},
		{zb(1 << 62), pinf, -1},
		{minf, pinf, -1},
		{minf, minf, 0},
		{pinf, pinf, 0},
	}

	for _, test := range tests {
		if res := test.a.Cmp(test.b); res != test.expected {
			t.Errorf("cmp(%s, %s) = %d, expected %d", test.a, test.b, res, test.expected)
		}
	}

	if got := minf.Min(zb(3)); !got.Eq(minf) {
		t.Errorf("min(-∞, 3) = %s", got)
	}
	if got := pinf.Max(zb(3)); !got.Eq(pinf) {
		t.Errorf("max(∞, 3) = %s", got)
	}
	if got := zb(-7).Abs(); !got.Eq(zb(7)) {
		t.Errorf("abs(-7) = %s", got)
	}
	if got := minf.Abs(); !got.Eq(pinf) {
		t.Errorf("abs(-∞) = %s", got)
	}
}

func TestBoundNeg(t *testing.T) {
	if got := zb(0).Neg(); !got.Eq(zb(0)) {
		t.Errorf("-0 = %s", got)
	}
	if got := PlusInf[num.Z]().Neg(); !got.Eq(MinusInf[num.Z]()) {
		t.Errorf("-(∞) = %s", got)
	}
}
