package zero

import (
	"math"
	"testing"

	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/engine/enginetest"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/tristate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var all = []Value{Zero, NonZero, Unknown, Bottom}

func TestScenario(t *testing.T) {
	t.Parallel()

	ctx, _ := enginetest.NewContext()
	assert.Equal(t, Zero, Lift(0))
	eq := Binary(ctx, op.Eq, Zero, Zero)
	assert.Equal(t, NonZero, eq)
	assert.Equal(t, tristate.True, ToTristate(ctx, eq))

	defer func() {
		f, ok := recover().(*engine.Fault)
		require.True(t, ok)
		assert.ErrorIs(t, f, engine.ErrDivisionByZero)
	}()
	Binary(ctx, op.SDiv, Unknown, Zero)
}

func TestJoinMeet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b       Value
		join, meet Value
	}{
		{Zero, NonZero, Unknown, Bottom},
		{Zero, Unknown, Unknown, Zero},
		{NonZero, Unknown, Unknown, NonZero},
		{Bottom, NonZero, NonZero, Bottom},
		{Unknown, Unknown, Unknown, Unknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.join, Join(tt.a, tt.b), "join %s %s", tt.a, tt.b)
		assert.Equal(t, tt.join, Join(tt.b, tt.a), "join %s %s", tt.b, tt.a)
		assert.Equal(t, tt.meet, Meet(tt.a, tt.b), "meet %s %s", tt.a, tt.b)
		assert.Equal(t, tt.meet, Meet(tt.b, tt.a), "meet %s %s", tt.b, tt.a)
	}
	for _, v := range all {
		assert.Equal(t, Bottom, Meet(v, Complement(v)))
		assert.Equal(t, Bottom, Diff(v, v))
	}
	assert.Equal(t, NonZero, Diff(Unknown, Zero))
}

func TestForwardSoundnessI8(t *testing.T) {
	t.Parallel()

	b := func(v bool) int64 {
		if v {
			return 1
		}
		return 0
	}
	u := func(x int64) uint64 { return uint64(uint8(x)) }
	ops := map[op.Tag]func(x, y int64) (int64, bool){
		op.Add: func(x, y int64) (int64, bool) { return x + y, true },
		op.Sub: func(x, y int64) (int64, bool) { return x - y, true },
		op.Mul: func(x, y int64) (int64, bool) { return int64(int8(x * y)), true },
		op.SDiv: func(x, y int64) (int64, bool) {
			if y == 0 {
				return 0, false
			}
			return x / y, true
		},
		op.SRem: func(x, y int64) (int64, bool) {
			if y == 0 {
				return 0, false
			}
			return x % y, true
		},
		op.Shl:  func(x, y int64) (int64, bool) { return int64(int8(x << uint(y))), y >= 0 && y < 8 },
		op.AShr: func(x, y int64) (int64, bool) { return x >> uint(y), y >= 0 && y < 8 },
		op.And:  func(x, y int64) (int64, bool) { return x & y, true },
		op.Or:   func(x, y int64) (int64, bool) { return x | y, true },
		op.Xor:  func(x, y int64) (int64, bool) { return x ^ y, true },
		op.Eq:   func(x, y int64) (int64, bool) { return b(x == y), true },
		op.Ne:   func(x, y int64) (int64, bool) { return b(x != y), true },
		op.Slt:  func(x, y int64) (int64, bool) { return b(x < y), true },
		op.Sge:  func(x, y int64) (int64, bool) { return b(x >= y), true },
		op.Ult:  func(x, y int64) (int64, bool) { return b(u(x) < u(y)), true },
		op.Ule:  func(x, y int64) (int64, bool) { return b(u(x) <= u(y)), true },
		op.Ugt:  func(x, y int64) (int64, bool) { return b(u(x) > u(y)), true },
		op.Uge:  func(x, y int64) (int64, bool) { return b(u(x) >= u(y)), true },
	}

	ctx, _ := enginetest.NewContext()
	for tag, fn := range ops {
		for x := int64(math.MinInt8); x <= math.MaxInt8; x++ {
			for y := int64(math.MinInt8); y <= math.MaxInt8; y++ {
				want, defined := fn(x, y)
				if !defined {
					continue
				}
				got := Binary(ctx, tag, Lift(x), Lift(y))
				if !Contains(got, want) {
					t.Fatalf("%s(%d, %d) = %d not in %s", tag, x, y, want, got)
				}
			}
		}
	}
}

func TestNullDereference(t *testing.T) {
	t.Parallel()

	ctx, _ := enginetest.NewContext()
	assert.Equal(t, Unknown, Load(ctx, NonZero))
	for _, p := range []Value{Zero, Unknown} {
		func() {
			defer func() {
				f, ok := recover().(*engine.Fault)
				require.True(t, ok)
				assert.ErrorIs(t, f, engine.ErrNullDereference)
			}()
			Store(ctx, p, NonZero)
		}()
	}
}

func TestAssume(t *testing.T) {
	t.Parallel()

	ctx, o := enginetest.NewContext()
	v := Unknown
	Assume(ctx, &v, true)
	assert.Equal(t, NonZero, v)

	v = Zero
	assert.True(t, enginetest.Cancelled(func() { Assume(ctx, &v, true) }))
	assert.Equal(t, 1, o.Cancels)
}

func TestBackward(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		tag          op.Tag
		r, a, b      Value
		wantA, wantB Value
	}{
		{"eq true", op.Eq, NonZero, Unknown, Zero, Zero, Zero},
		{"ne true", op.Ne, NonZero, Unknown, Zero, NonZero, Zero},
		{"eq false", op.Eq, Zero, Zero, Unknown, Zero, NonZero},
		{"ult true", op.Ult, NonZero, Unknown, Unknown, Unknown, NonZero},
		{"ugt true", op.Ugt, NonZero, Unknown, Unknown, NonZero, Unknown},
		{"maybe", op.Eq, Unknown, Unknown, Zero, Unknown, Zero},
		{"add is a no-op", op.Add, Zero, Unknown, Unknown, Unknown, Unknown},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx, _ := enginetest.NewContext()
			a, b := tt.a, tt.b
			Backward(ctx, tt.tag, tt.r, &a, &b)
			assert.Equal(t, tt.wantA, a)
			assert.Equal(t, tt.wantB, b)
		})
	}
}
