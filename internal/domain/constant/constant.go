// Package constant implements the exact-witness domain. Other domains
// lift from it when coercing, and Lower produces it.
package constant

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/tristate"
)

const name = "constant"

// Kind distinguishes integer, float and pointer witnesses.
type Kind uint8

const (
	BV Kind = iota
	FP
	Ptr
)

// Value is a concrete machine word of the given width.
type Value struct {
	Bits  uint64
	Kind  Kind
	Width uint8
}

// Mask returns the all-ones pattern of width w.
func Mask(w uint8) uint64 {
	if w >= 64 {
		return math.MaxUint64
	}
	return 1<<w - 1
}

// New creates an integer constant truncated to width.
func New(bits uint64, width uint8) Value {
	return Value{Bits: bits & Mask(width), Kind: BV, Width: width}
}

// Int creates an integer constant from a signed value.
func Int(v int64, width uint8) Value { return New(uint64(v), width) }

// Bool creates a width-1 constant.
func Bool(b bool) Value {
	if b {
		return New(1, 1)
	}
	return New(0, 1)
}

func Float32(f float32) Value { return Value{Bits: uint64(math.Float32bits(f)), Kind: FP, Width: 32} }
func Float64(f float64) Value { return Value{Bits: math.Float64bits(f), Kind: FP, Width: 64} }

// Pointer creates a 64-bit pointer witness.
func Pointer(p uint64) Value { return Value{Bits: p, Kind: Ptr, Width: 64} }

// Unsigned returns the zero-extended value.
func (v Value) Unsigned() uint64 { return v.Bits & Mask(v.Width) }

// Signed returns the sign-extended value for any width.
func (v Value) Signed() int64 {
	if v.Width == 0 || v.Width >= 64 {
		return int64(v.Bits)
	}
	shift := 64 - v.Width
	return int64(v.Bits<<shift) >> shift
}

// LiftValue is the integer other domains lift from. It dispatches on the
// bit-width: i1 is read as 0 or 1, wider words as signed integers.
func (v Value) LiftValue() int64 {
	if v.Kind == FP {
		engine.Fail(name, "lift_to", "float witness")
	}
	switch v.Width {
	case 1:
		return int64(v.Bits & 1)
	case 8:
		return int64(int8(v.Bits))
	case 16:
		return int64(int16(v.Bits))
	case 32:
		return int64(int32(v.Bits))
	case 64:
		return int64(v.Bits)
	default:
		engine.Fail(name, "lift_to", "unsupported bit-width "+strconv.Itoa(int(v.Width)))
		return 0
	}
}

func (v Value) String() string {
	switch v.Kind {
	case FP:
		if v.Width == 32 {
			return strconv.FormatFloat(float64(math.Float32frombits(uint32(v.Bits))), 'g', -1, 32)
		}
		return strconv.FormatFloat(math.Float64frombits(v.Bits), 'g', -1, 64)
	case Ptr:
		return fmt.Sprintf("%#x", v.Bits)
	default:
		if v.Width == 1 {
			return strconv.FormatBool(v.Bits != 0)
		}
		return strconv.FormatInt(v.Signed(), 10) + ":i" + strconv.Itoa(int(v.Width))
	}
}

// Binary applies a binary or comparison operator exactly.
func Binary(ctx *engine.Context, tag op.Tag, a, b Value) Value {
	if a.Kind == FP || b.Kind == FP {
		engine.Unsupported(name, tag)
	}
	switch tag {
	case op.Join:
		if a != b {
			engine.Fail(name, "join", "distinct constants have no common witness")
		}
		return a
	case op.Meet:
		if a != b {
			ctx.Cancel("constant meet")
		}
		return a
	}
	if a.Width != b.Width {
		engine.Fail(name, tag.String(), fmt.Sprintf("width mismatch %d/%d", a.Width, b.Width))
	}
	w := a.Width
	ua, ub := a.Unsigned(), b.Unsigned()
	sa, sb := a.Signed(), b.Signed()

	switch tag {
	case op.Add:
		return New(ua+ub, w)
	case op.Sub:
		return New(ua-ub, w)
	case op.Mul:
		return New(ua*ub, w)
	case op.UDiv:
		if ub == 0 {
			engine.Raise(tag.String(), engine.ErrDivisionByZero)
		}
		return New(ua/ub, w)
	case op.SDiv:
		if sb == 0 {
			engine.Raise(tag.String(), engine.ErrDivisionByZero)
		}
		return Int(sa/sb, w)
	case op.URem:
		if ub == 0 {
			engine.Raise(tag.String(), engine.ErrDivisionByZero)
		}
		return New(ua%ub, w)
	case op.SRem:
		if sb == 0 {
			engine.Raise(tag.String(), engine.ErrDivisionByZero)
		}
		return Int(sa%sb, w)
	case op.And:
		return New(ua&ub, w)
	case op.Or:
		return New(ua|ub, w)
	case op.Xor:
		return New(ua^ub, w)
	case op.Shl:
		if ub >= uint64(w) {
			return New(0, w)
		}
		return New(ua<<ub, w)
	case op.LShr:
		if ub >= uint64(w) {
			return New(0, w)
		}
		return New(ua>>ub, w)
	case op.AShr:
		if ub >= uint64(w) {
			ub = uint64(w) - 1
		}
		return Int(sa>>ub, w)
	case op.Eq:
		return Bool(ua == ub)
	case op.Ne:
		return Bool(ua != ub)
	case op.Slt:
		return Bool(sa < sb)
	case op.Sle:
		return Bool(sa <= sb)
	case op.Sgt:
		return Bool(sa > sb)
	case op.Sge:
		return Bool(sa >= sb)
	case op.Ult:
		return Bool(ua < ub)
	case op.Ule:
		return Bool(ua <= ub)
	case op.Ugt:
		return Bool(ua > ub)
	case op.Uge:
		return Bool(ua >= ub)
	}
	engine.Unsupported(name, tag)
	return Value{}
}

// Cast changes the width or kind of a.
func Cast(ctx *engine.Context, tag op.Tag, a Value, bw uint8) Value {
	switch tag {
	case op.ZExt, op.Trunc, op.ZFit:
		if a.Kind == FP {
			engine.Unsupported(name, tag)
		}
		v := New(a.Unsigned(), bw)
		v.Kind = a.Kind
		return v
	case op.SExt:
		if a.Kind == FP {
			engine.Unsupported(name, tag)
		}
		return Int(a.Signed(), bw)
	case op.IntToPtr:
		return Pointer(a.Unsigned())
	case op.PtrToInt:
		return New(a.Bits, bw)
	}
	engine.Unsupported(name, tag)
	return Value{}
}

// Extract returns bits [from, to) of a.
func Extract(ctx *engine.Context, a Value, from, to uint8) Value {
	if from >= to || to > a.Width {
		engine.Fail(name, "extract", fmt.Sprintf("bad range [%d,%d) of i%d", from, to, a.Width))
	}
	return New(a.Bits>>from, to-from)
}

// Concat places a above b.
func Concat(ctx *engine.Context, a, b Value) Value {
	w := int(a.Width) + int(b.Width)
	if w > 64 {
		engine.Fail(name, "concat", "result wider than 64 bits")
	}
	return New(a.Bits<<b.Width|b.Unsigned(), uint8(w))
}

// Any has no constant representation.
func Any(ctx *engine.Context) Value {
	engine.Fail(name, "any", "a constant cannot be unconstrained")
	return Value{}
}

// Assume cancels when v disagrees with expected.
func Assume(ctx *engine.Context, v *Value, expected bool) {
	if (v.Bits != 0) != expected {
		ctx.Cancel("constant assume")
	}
}

func ToTristate(ctx *engine.Context, v Value) tristate.Tristate {
	return tristate.Lift(v.Bits != 0)
}

// Backward has nothing to refine: constant operands are already exact.
func Backward(ctx *engine.Context, tag op.Tag, r Value, a, b *Value) {}
