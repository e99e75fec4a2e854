package relational

import (
	"testing"

	"github.com/gnoswap-labs/lamp/internal/domain/constant"
	"github.com/gnoswap-labs/lamp/internal/domain/interval"
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/engine/enginetest"
	"github.com/gnoswap-labs/lamp/internal/multi"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArena(script ...int) (*Arena, *enginetest.Oracle) {
	ctx, o := enginetest.NewContext(script...)
	lat := multi.New(ctx, multi.DefaultOptions())
	return New(product.New(lat, product.FromPrimary)), o
}

func iv(lo, hi int64) interval.Value {
	return interval.Value{Lo: interval.Bound(lo), Hi: interval.Bound(hi)}
}

func (a *Arena) interval(h Handle) interval.Value {
	return a.Value(h).Primary.Interval()
}

func requireFatal(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		_, ok := recover().(*engine.UsageError)
		require.True(t, ok, "expected a usage error")
	}()
	fn()
}

func TestAssumeDispatchesAddBackward(t *testing.T) {
	t.Parallel()

	ar, o := newArena(2)
	a := ar.AnyRange(1, 6, 32)
	b := ar.AnyRange(4, 10, 32)
	r := ar.Binary(op.Add, a, b)
	assert.Equal(t, iv(5, 16), ar.interval(r))
	assert.Equal(t, op.Add, ar.Tag(r))
	assert.Equal(t, [2]Handle{a, b}, ar.Args(r))

	c := ar.Binary(op.Sle, r, ar.Lift(constant.Int(10, 32)))
	ar.Assume(c, true)

	assert.Equal(t, iv(1, 1), ar.interval(c))
	assert.Equal(t, iv(5, 10), ar.interval(r))
	assert.Equal(t, []int{6}, o.Asked)
	assert.Equal(t, iv(1, 4), ar.interval(a))
	assert.Equal(t, iv(4, 6), ar.interval(b))
}

func TestUnsupportedTagIsFatal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(ar *Arena) Handle
	}{
		{"concat", func(ar *Arena) Handle {
			return ar.Concat(ar.Lift(constant.Int(1, 8)), ar.Lift(constant.Int(2, 8)), 16)
		}},
		{"extract", func(ar *Arena) Handle {
			return ar.Extract(ar.Lift(constant.Int(0x102, 16)), 8, 16)
		}},
		{"join", func(ar *Arena) Handle {
			x := ar.AnyRange(1, 6, 32)
			return ar.Binary(op.Join, x, x)
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ar, _ := newArena()
			h := tt.build(ar)
			requireFatal(t, func() { ar.Assume(h, true) })
		})
	}
}

func TestBackwardTable(t *testing.T) {
	t.Parallel()

	for tag := op.Tag(0); tag < op.NumTags; tag++ {
		require.NotNil(t, backward[tag], tag.String())
	}
}

func TestNarrowingRecurses(t *testing.T) {
	t.Parallel()

	ar, o := newArena()
	x := ar.AnyRange(0, 100, 32)
	y := ar.Binary(op.Add, x, ar.Lift(constant.Int(1, 32)))
	z := ar.Binary(op.Slt, y, ar.Lift(constant.Int(5, 32)))
	ar.Assume(z, true)

	assert.Equal(t, iv(1, 4), ar.interval(y))
	assert.Equal(t, iv(0, 3), ar.interval(x))
	assert.Empty(t, o.Asked)
}

func TestAssumeFalse(t *testing.T) {
	t.Parallel()

	ar, _ := newArena()
	x := ar.AnyRange(0, 100, 32)
	z := ar.Binary(op.Slt, x, ar.Lift(constant.Int(5, 32)))
	ar.Assume(z, false)
	assert.Equal(t, iv(0, 0), ar.interval(z))
	assert.Equal(t, iv(5, 100), ar.interval(x))

	// Assumptions compose.
	w := ar.Binary(op.Sgt, x, ar.Lift(constant.Int(50, 32)))
	ar.Assume(w, false)
	assert.Equal(t, iv(5, 50), ar.interval(x))
}

func TestSharedOperand(t *testing.T) {
	t.Parallel()

	ar, o := newArena(2, 2)
	x := ar.AnyRange(0, 10, 32)
	y := ar.Binary(op.Add, x, x)
	z := ar.Binary(op.Eq, y, ar.Lift(constant.Int(4, 32)))
	ar.Assume(z, true)

	assert.Equal(t, iv(4, 4), ar.interval(y))
	assert.Equal(t, iv(2, 2), ar.interval(x))
	assert.Equal(t, []int{5, 5}, o.Asked)
}

func TestInfeasibleAssumeCancels(t *testing.T) {
	t.Parallel()

	ar, o := newArena()
	x := ar.AnyRange(0, 3, 32)
	z := ar.Binary(op.Sgt, x, ar.Lift(constant.Int(7, 32)))
	assert.True(t, enginetest.Cancelled(func() { ar.Assume(z, true) }))
	assert.Equal(t, 1, o.Cancels)
}

func TestLowerIsLeaf(t *testing.T) {
	t.Parallel()

	ar, o := newArena(1)
	x := ar.AnyRange(0, 3, 32)
	c, w := ar.Lower(x, 32)
	assert.Equal(t, constant.Int(1, 32), c)
	assert.Equal(t, op.Lower, ar.Tag(w))
	assert.Equal(t, [2]Handle{x, None}, ar.Args(w))

	ar.Assume(w, true)
	assert.Equal(t, iv(0, 3), ar.interval(x))
	assert.Equal(t, []int{4}, o.Asked)
}

func TestSnapshotRestore(t *testing.T) {
	t.Parallel()

	ar, _ := newArena()
	x := ar.AnyRange(0, 100, 32)
	snap := ar.Snapshot()
	require.Equal(t, 1, snap.Len())

	z := ar.Binary(op.Slt, x, ar.Lift(constant.Int(5, 32)))
	ar.Assume(z, true)
	require.Equal(t, iv(0, 4), ar.interval(x))
	require.Equal(t, 3, ar.Len())

	ar.Restore(snap)
	assert.Equal(t, 1, ar.Len())
	assert.Equal(t, iv(0, 100), ar.interval(x))
	requireFatal(t, func() { ar.Value(z) })

	// The snapshot is unaffected by later work on the arena.
	ar.Assume(ar.Binary(op.Sgt, x, ar.Lift(constant.Int(90, 32))), true)
	ar.Restore(snap)
	assert.Equal(t, iv(0, 100), ar.interval(x))

	ar.Reset()
	assert.Zero(t, ar.Len())
}

func TestHandleString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "%3", Handle(3).String())
	assert.Equal(t, "_", None.String())
}
