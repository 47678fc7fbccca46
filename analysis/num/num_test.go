package num

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZDivTruncatesTowardZero(t *testing.T) {
	tests := []struct {
		a, b, quo, rem int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -3, -1},
		{7, -2, -3, 1},
		{-7, -2, 3, -1},
		{6, 3, 2, 0},
	}
	for _, test := range tests {
		a, b := FromInt64(test.a), FromInt64(test.b)
		assert.Equal(t, test.quo, mustInt64(t, a.Div(b)), "%d / %d", test.a, test.b)
		assert.Equal(t, test.rem, mustInt64(t, a.Rem(b)), "%d %% %d", test.a, test.b)
	}
}

func TestZFillOnes(t *testing.T) {
	tests := []struct{ in, out int64 }{
		{0, 0},
		{1, 1},
		{5, 7},
		{7, 7},
		{8, 15},
		{100, 127},
	}
	for _, test := range tests {
		assert.Equal(t, test.out, mustInt64(t, FromInt64(test.in).FillOnes()), "fill_ones(%d)", test.in)
	}
}

func TestZBitwise(t *testing.T) {
	a, b := FromInt64(12), FromInt64(10)
	assert.Equal(t, int64(8), mustInt64(t, a.And(b)))
	assert.Equal(t, int64(14), mustInt64(t, a.Or(b)))
	assert.Equal(t, int64(6), mustInt64(t, a.Xor(b)))
	assert.Equal(t, int64(3), mustInt64(t, a.Rsh(2)))
	assert.Equal(t, int64(48), mustInt64(t, a.Lsh(2)))
}

func TestZZeroValue(t *testing.T) {
	var z Z
	assert.Equal(t, 0, z.Sign())
	assert.Equal(t, "0", z.String())
	assert.Equal(t, int64(5), mustInt64(t, z.Add(FromInt64(5))))
}

func TestQRounding(t *testing.T) {
	tests := []struct {
		n, d         int64
		lower, upper int64
	}{
		{7, 2, 3, 4},
		{-7, 2, -4, -3},
		{6, 3, 2, 2},
		{-6, 3, -2, -2},
		{1, 3, 0, 1},
		{-1, 3, -1, 0},
	}
	for _, test := range tests {
		q := QFromFrac(test.n, test.d)
		assert.Equal(t, test.lower, mustInt64(t, q.RoundToLower()), "floor(%d/%d)", test.n, test.d)
		assert.Equal(t, test.upper, mustInt64(t, q.RoundToUpper()), "ceil(%d/%d)", test.n, test.d)
	}
}

func TestQArithmetic(t *testing.T) {
	half := QFromFrac(1, 2)
	third := QFromFrac(1, 3)
	assert.Equal(t, 0, half.Add(third).Cmp(QFromFrac(5, 6)))
	assert.Equal(t, 0, half.Mul(third).Cmp(QFromFrac(1, 6)))
	assert.Equal(t, 0, half.Div(third).Cmp(QFromFrac(3, 2)))
	assert.Equal(t, "1/2", half.String())
	assert.Equal(t, "2", QFromFrac(4, 2).String())

	var q Q
	assert.Equal(t, 0, q.Sign())
	assert.True(t, q.Add(half).Eq(half))
}

func TestValueSemantics(t *testing.T) {
	a := FromInt64(3)
	b := a.Add(FromInt64(4))
	require.Equal(t, int64(3), mustInt64(t, a), "operand mutated by Add")
	require.Equal(t, int64(7), mustInt64(t, b))
}

func mustInt64(t *testing.T, z Z) int64 {
	t.Helper()
	n, ok := z.Int64()
	require.True(t, ok)
	return n
}
