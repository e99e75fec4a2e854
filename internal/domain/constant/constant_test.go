package constant

import (
	"testing"

	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/engine/enginetest"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/tristate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tag  op.Tag
		a, b Value
		want Value
	}{
		{"add wraps", op.Add, Int(127, 8), Int(1, 8), Int(-128, 8)},
		{"sub", op.Sub, Int(3, 16), Int(5, 16), Int(-2, 16)},
		{"mul", op.Mul, Int(-4, 32), Int(6, 32), Int(-24, 32)},
		{"sdiv truncates", op.SDiv, Int(-7, 8), Int(2, 8), Int(-3, 8)},
		{"udiv unsigned", op.UDiv, Int(-2, 8), Int(2, 8), Int(127, 8)},
		{"srem", op.SRem, Int(-7, 8), Int(2, 8), Int(-1, 8)},
		{"urem", op.URem, Int(-1, 8), Int(10, 8), Int(5, 8)},
		{"shl", op.Shl, Int(3, 8), Int(6, 8), Int(-64, 8)},
		{"shl past width", op.Shl, Int(3, 8), Int(9, 8), Int(0, 8)},
		{"lshr", op.LShr, Int(-128, 8), Int(7, 8), Int(1, 8)},
		{"ashr", op.AShr, Int(-128, 8), Int(7, 8), Int(-1, 8)},
		{"xor", op.Xor, Int(6, 8), Int(3, 8), Int(5, 8)},
		{"eq", op.Eq, Int(4, 64), Int(4, 64), Bool(true)},
		{"slt signed", op.Slt, Int(-1, 8), Int(1, 8), Bool(true)},
		{"ult unsigned", op.Ult, Int(-1, 8), Int(1, 8), Bool(false)},
		{"uge", op.Uge, Int(-1, 8), Int(1, 8), Bool(true)},
	}
	ctx, _ := enginetest.NewContext()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Binary(ctx, tt.tag, tt.a, tt.b))
		})
	}
}

func TestLiftValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(1), Bool(true).LiftValue())
	assert.Equal(t, int64(-3), Int(-3, 8).LiftValue())
	assert.Equal(t, int64(-3), Int(-3, 16).LiftValue())
	assert.Equal(t, int64(-3), Int(-3, 32).LiftValue())
	assert.Equal(t, int64(-3), Int(-3, 64).LiftValue())
	assert.Equal(t, int64(-56), New(200, 8).LiftValue())

	assert.Panics(t, func() { New(3, 12).LiftValue() })
	assert.Panics(t, func() { Float64(1.5).LiftValue() })
}

func TestCasts(t *testing.T) {
	t.Parallel()

	ctx, _ := enginetest.NewContext()
	assert.Equal(t, New(0xff, 16), Cast(ctx, op.ZExt, Int(-1, 8), 16))
	assert.Equal(t, Int(-1, 16), Cast(ctx, op.SExt, Int(-1, 8), 16))
	assert.Equal(t, New(0x34, 8), Cast(ctx, op.Trunc, New(0x1234, 16), 8))
	assert.Equal(t, New(0x34, 8), Extract(ctx, New(0x1234, 16), 0, 8))
	assert.Equal(t, New(0x12, 8), Extract(ctx, New(0x1234, 16), 8, 16))
	assert.Equal(t, New(0x1234, 16), Concat(ctx, New(0x12, 8), New(0x34, 8)))
	assert.Equal(t, Ptr, Cast(ctx, op.IntToPtr, New(8, 64), 64).Kind)
}

func TestFaultsAndFailures(t *testing.T) {
	t.Parallel()

	ctx, _ := enginetest.NewContext()

	func() {
		defer func() {
			f, ok := recover().(*engine.Fault)
			require.True(t, ok)
			assert.ErrorIs(t, f, engine.ErrDivisionByZero)
		}()
		Binary(ctx, op.SDiv, Int(1, 8), Int(0, 8))
	}()

	usage := func(fn func()) {
		defer func() {
			_, ok := recover().(*engine.UsageError)
			assert.True(t, ok)
		}()
		fn()
	}
	usage(func() { Binary(ctx, op.Add, Float32(1), Float32(2)) })
	usage(func() { Binary(ctx, op.Add, Int(1, 8), Int(1, 16)) })
	usage(func() { Binary(ctx, op.Join, Int(1, 8), Int(2, 8)) })
	usage(func() { Concat(ctx, New(1, 64), New(1, 8)) })
	usage(func() { Any(ctx) })
}

func TestAssume(t *testing.T) {
	t.Parallel()

	ctx, o := enginetest.NewContext()
	v := Int(5, 32)
	Assume(ctx, &v, true)
	assert.Equal(t, tristate.True, ToTristate(ctx, v))
	assert.True(t, enginetest.Cancelled(func() { Assume(ctx, &v, false) }))
	assert.True(t, enginetest.Cancelled(func() { Binary(ctx, op.Meet, Int(1, 8), Int(2, 8)) }))
	assert.Equal(t, 2, o.Cancels)
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-3:i8", Int(-3, 8).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "1.5", Float64(1.5).String())
	assert.Equal(t, "0x10", Pointer(16).String())
}
