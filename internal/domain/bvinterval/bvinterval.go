// Package bvinterval implements unsigned ranges over fixed-width bit
// vectors. A range never wraps: an operation that may overflow its width
// returns the full range instead.
package bvinterval

import (
	"math/bits"
	"strconv"

	"github.com/gnoswap-labs/lamp/internal/domain/constant"
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/tristate"
)

const name = "bvinterval"

// Value is the unsigned range [Lo, Hi] of a Width-bit word.
type Value struct {
	Lo, Hi uint64
	Width  uint8
}

func limit(w uint8) uint64 { return constant.Mask(w) }

// Top returns the full range of width w.
func Top(w uint8) Value { return Value{Lo: 0, Hi: limit(w), Width: w} }

// Lift abstracts a constant at its own width.
func Lift(c constant.Value) Value {
	u := c.Unsigned()
	return Value{Lo: u, Hi: u, Width: c.Width}
}

// AnyRange returns [from, to] as an unsigned range of width w.
func AnyRange(ctx *engine.Context, from, to uint64, w uint8) Value {
	from, to = from&limit(w), to&limit(w)
	if from > to {
		ctx.Cancel("bvinterval empty range")
	}
	return Value{Lo: from, Hi: to, Width: w}
}

func fromTristate(t tristate.Tristate) Value {
	switch t {
	case tristate.False:
		return Value{Width: 1}
	case tristate.True:
		return Value{Lo: 1, Hi: 1, Width: 1}
	default:
		return Top(1)
	}
}

func (v Value) IsTop() bool   { return v.Lo == 0 && v.Hi == limit(v.Width) }
func (v Value) IsPoint() bool { return v.Lo == v.Hi }

func (v Value) Contains(x uint64) bool { return v.Lo <= x && x <= v.Hi }

func (v Value) String() string {
	return "[" + strconv.FormatUint(v.Lo, 10) + ", " + strconv.FormatUint(v.Hi, 10) + "]:i" + strconv.Itoa(int(v.Width))
}

// belowSign reports whether every member reads the same signed and
// unsigned.
func (v Value) belowSign() bool {
	return v.Width > 0 && v.Hi < uint64(1)<<(v.Width-1)
}

// Leq reports a ⊑ b.
func Leq(a, b Value) bool {
	return a.Width == b.Width && b.Lo <= a.Lo && a.Hi <= b.Hi
}

func meet(ctx *engine.Context, a, b Value) Value {
	v := Value{Lo: maxU(a.Lo, b.Lo), Hi: minU(a.Hi, b.Hi), Width: a.Width}
	if v.Lo > v.Hi {
		ctx.Cancel("bvinterval meet")
	}
	return v
}

func minU(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func maxU(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// fill returns the smallest all-ones pattern covering x.
func fill(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	return 1<<bits.Len64(x) - 1
}

// Binary applies a forward binary or comparison operator.
func Binary(ctx *engine.Context, tag op.Tag, a, b Value) Value {
	if a.Width != b.Width {
		engine.Fail(name, tag.String(), "width mismatch")
	}
	w := a.Width
	top := Top(w)
	switch tag {
	case op.Join:
		return Value{Lo: minU(a.Lo, b.Lo), Hi: maxU(a.Hi, b.Hi), Width: w}
	case op.Meet:
		return meet(ctx, a, b)
	case op.Add:
		hi, carry := bits.Add64(a.Hi, b.Hi, 0)
		if carry != 0 || hi > limit(w) {
			return top
		}
		return Value{Lo: a.Lo + b.Lo, Hi: hi, Width: w}
	case op.Sub:
		if a.Lo < b.Hi {
			return top
		}
		return Value{Lo: a.Lo - b.Hi, Hi: a.Hi - b.Lo, Width: w}
	case op.Mul:
		over, hi := bits.Mul64(a.Hi, b.Hi)
		if over != 0 || hi > limit(w) {
			return top
		}
		return Value{Lo: a.Lo * b.Lo, Hi: hi, Width: w}
	case op.UDiv, op.URem:
		if b.Hi == 0 {
			ctx.Cancel("bvinterval division by zero")
		}
		lo := maxU(b.Lo, 1)
		if tag == op.UDiv {
			return Value{Lo: a.Lo / b.Hi, Hi: a.Hi / lo, Width: w}
		}
		return Value{Lo: 0, Hi: minU(a.Hi, b.Hi-1), Width: w}
	case op.SDiv, op.SRem:
		if a.belowSign() && b.belowSign() {
			return Binary(ctx, unsigned(tag), a, b)
		}
		if b.Hi == 0 {
			ctx.Cancel("bvinterval division by zero")
		}
		return top
	case op.And:
		return Value{Lo: 0, Hi: minU(a.Hi, b.Hi), Width: w}
	case op.Or:
		return Value{Lo: maxU(a.Lo, b.Lo), Hi: fill(a.Hi | b.Hi), Width: w}
	case op.Xor:
		return Value{Lo: 0, Hi: fill(a.Hi | b.Hi), Width: w}
	case op.Shl:
		if !b.IsPoint() || b.Lo >= uint64(w) || bits.Len64(a.Hi)+int(b.Lo) > int(w) {
			return top
		}
		return Value{Lo: a.Lo << b.Lo, Hi: a.Hi << b.Lo, Width: w}
	case op.LShr:
		if b.Lo >= uint64(w) {
			return Value{Width: w}
		}
		return Value{Lo: a.Lo >> minU(b.Hi, uint64(w)), Hi: a.Hi >> b.Lo, Width: w}
	case op.AShr:
		if a.belowSign() {
			return Binary(ctx, op.LShr, a, b)
		}
		return top
	}
	if tag.Class() == op.ClassCompare {
		return fromTristate(Compare(tag, a, b))
	}
	engine.Unsupported(name, tag)
	return Value{}
}

// Compare evaluates a comparison. Signed comparisons are exact only when
// both ranges stay below the sign bit.
func Compare(tag op.Tag, a, b Value) tristate.Tristate {
	switch tag {
	case op.Eq:
		if a.IsPoint() && b.IsPoint() && a.Lo == b.Lo {
			return tristate.True
		}
		if a.Hi < b.Lo || b.Hi < a.Lo {
			return tristate.False
		}
		return tristate.Maybe
	case op.Ne:
		return Compare(op.Eq, a, b).Not()
	case op.Ult:
		switch {
		case a.Hi < b.Lo:
			return tristate.True
		case a.Lo >= b.Hi:
			return tristate.False
		}
		return tristate.Maybe
	case op.Ugt:
		return Compare(op.Ult, b, a)
	case op.Ule:
		return Compare(op.Ult, b, a).Not()
	case op.Uge:
		return Compare(op.Ult, a, b).Not()
	case op.Slt, op.Sle, op.Sgt, op.Sge:
		if a.belowSign() && b.belowSign() {
			return Compare(unsigned(tag), a, b)
		}
		return tristate.Maybe
	}
	engine.Unsupported(name, tag)
	return tristate.Maybe
}

func unsigned(tag op.Tag) op.Tag {
	switch tag {
	case op.SDiv:
		return op.UDiv
	case op.SRem:
		return op.URem
	case op.Slt:
		return op.Ult
	case op.Sle:
		return op.Ule
	case op.Sgt:
		return op.Ugt
	case op.Sge:
		return op.Uge
	}
	return tag
}

// Cast changes the width.
func Cast(ctx *engine.Context, tag op.Tag, a Value, bw uint8) Value {
	switch tag {
	case op.ZExt, op.Trunc, op.ZFit, op.PtrToInt, op.IntToPtr:
		if a.Hi > limit(bw) {
			return Top(bw)
		}
		return Value{Lo: a.Lo, Hi: a.Hi, Width: bw}
	case op.SExt:
		if a.belowSign() && bw >= a.Width {
			return Value{Lo: a.Lo, Hi: a.Hi, Width: bw}
		}
		return Top(bw)
	}
	engine.Unsupported(name, tag)
	return Value{}
}

// Assume narrows v: false is [0, 0], true drops a zero low bound.
func Assume(ctx *engine.Context, v *Value, expected bool) {
	if !expected {
		*v = meet(ctx, *v, Value{Width: v.Width})
		return
	}
	if v.Hi == 0 {
		ctx.Cancel("bvinterval assume true")
	}
	if v.Lo == 0 {
		v.Lo = 1
	}
}

func ToTristate(ctx *engine.Context, v Value) tristate.Tristate {
	switch {
	case v.Hi == 0:
		return tristate.False
	case v.Lo == 0:
		return tristate.Maybe
	default:
		return tristate.True
	}
}

// Lower picks a member of v within the choose bound of its low end.
func Lower(ctx *engine.Context, v Value) constant.Value {
	span := v.Hi - v.Lo
	if b := uint64(ctx.ChooseBound()); span > b {
		span = b
	}
	return constant.New(v.Lo+uint64(ctx.Choose(int(span)+1)), v.Width)
}

// Backward narrows only through equality and width casts.
func Backward(ctx *engine.Context, tag op.Tag, r Value, a, b *Value) {
	switch tag {
	case op.Eq:
		if ToTristate(ctx, r) != tristate.True {
			return
		}
		m := meet(ctx, *a, *b)
		*a, *b = m, m
	case op.ZExt, op.ZFit, op.Trunc:
		if r.Hi <= limit(a.Width) {
			*a = meet(ctx, *a, Value{Lo: r.Lo, Hi: r.Hi, Width: a.Width})
		}
	default:
		ctx.Imprecise(name, tag)
	}
}
