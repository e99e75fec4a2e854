// Package zero implements the zero-ness lattice: a value is known to be
// zero, known to be nonzero, or unknown.
package zero

import (
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/tristate"
)

const name = "zero"

// Value models the zero-ness of an integer-like value.
type Value uint8

const (
	Zero Value = iota
	NonZero
	Unknown
	Bottom // unreachable
)

func (v Value) String() string {
	switch v {
	case Zero:
		return "Z"
	case NonZero:
		return "N"
	case Unknown:
		return "U"
	case Bottom:
		return "⊥"
	default:
		return "invalid"
	}
}

// Join returns the least upper bound in the lattice.
func Join(a, b Value) Value {
	if a == Bottom {
		return b
	}
	if b == Bottom {
		return a
	}
	if a == b {
		return a
	}
	return Unknown
}

// Meet returns the greatest lower bound in the lattice.
func Meet(a, b Value) Value {
	if a == Bottom || b == Bottom {
		return Bottom
	}
	if a == Unknown {
		return b
	}
	if b == Unknown || a == b {
		return a
	}
	return Bottom
}

// Diff removes the concrete values of b from a.
func Diff(a, b Value) Value {
	switch {
	case a == Bottom || b == Unknown:
		return Bottom
	case b == Bottom:
		return a
	case a == Unknown:
		return Complement(b)
	case a == b:
		return Bottom
	default:
		return a
	}
}

// Complement returns the values not described by a.
func Complement(a Value) Value {
	switch a {
	case Zero:
		return NonZero
	case NonZero:
		return Zero
	case Unknown:
		return Bottom
	default:
		return Unknown
	}
}

// Leq reports a ⊑ b.
func Leq(a, b Value) bool { return Meet(a, b) == a }

// Lift abstracts a concrete value.
func Lift(x int64) Value {
	if x == 0 {
		return Zero
	}
	return NonZero
}

// Contains reports whether x is described by v.
func Contains(v Value, x int64) bool { return Leq(Lift(x), v) }

// FromTristate encodes a boolean result: true is nonzero.
func FromTristate(t tristate.Tristate) Value {
	switch t {
	case tristate.True:
		return NonZero
	case tristate.False:
		return Zero
	default:
		return Unknown
	}
}

func Any() Value { return Unknown }

// AnyRange abstracts every integer in [from, to].
func AnyRange(ctx *engine.Context, from, to int64) Value {
	switch {
	case from > to:
		ctx.Cancel("zero empty range")
		return Bottom
	case from == 0 && to == 0:
		return Zero
	case from > 0 || to < 0:
		return NonZero
	default:
		return Unknown
	}
}

func nonBottom(ctx *engine.Context, v Value, what string) Value {
	if v == Bottom {
		ctx.Cancel("zero " + what)
	}
	return v
}

// Binary applies a forward binary or comparison operator.
func Binary(ctx *engine.Context, tag op.Tag, a, b Value) Value {
	if a == Bottom || b == Bottom {
		ctx.Cancel("zero bottom operand")
	}
	switch tag {
	case op.Join:
		return Join(a, b)
	case op.Meet:
		return nonBottom(ctx, Meet(a, b), "meet")
	case op.Add, op.Sub:
		return addTable[a][b]
	case op.Mul:
		return mulTable[a][b]
	case op.SDiv, op.UDiv, op.SRem, op.URem:
		if b != NonZero {
			engine.Raise(tag.String(), engine.ErrDivisionByZero)
		}
		if a == Zero {
			return Zero
		}
		return Unknown
	case op.Shl, op.LShr, op.AShr:
		return shiftTable[a][b]
	case op.And:
		return andTable[a][b]
	case op.Or:
		return orTable[a][b]
	case op.Xor:
		return xorTable[a][b]
	case op.Eq:
		return eqTable[a][b]
	case op.Ne:
		return neTable[a][b]
	case op.Ugt:
		return ugtTable[a][b]
	case op.Uge:
		return ugeTable[a][b]
	case op.Sgt:
		return sgtTable[a][b]
	case op.Sge:
		return sgeTable[a][b]
	case op.Ult:
		return ugtTable[b][a]
	case op.Ule:
		return ugeTable[b][a]
	case op.Slt:
		return sgtTable[b][a]
	case op.Sle:
		return sgeTable[b][a]
	}
	if tag.Class() == op.ClassFloat {
		return Unknown
	}
	engine.Unsupported(name, tag)
	return Bottom
}

// Cast applies a width change.
func Cast(ctx *engine.Context, tag op.Tag, a Value, bw uint8) Value {
	switch tag {
	case op.SExt, op.ZExt, op.IntToPtr, op.PtrToInt:
		return a
	case op.Trunc, op.ZFit:
		if a == Zero {
			return Zero
		}
		return Unknown
	}
	if tag.Class() == op.ClassFloat {
		return Unknown
	}
	engine.Unsupported(name, tag)
	return Bottom
}

// Load dereferences p. The loaded value is unknown.
func Load(ctx *engine.Context, p Value) Value {
	if p != NonZero {
		engine.Raise("load", engine.ErrNullDereference)
	}
	return Unknown
}

// Store checks that p may be written through.
func Store(ctx *engine.Context, p, v Value) {
	if p != NonZero {
		engine.Raise("store", engine.ErrNullDereference)
	}
}

// Assume narrows v to the given truth value.
func Assume(ctx *engine.Context, v *Value, expected bool) {
	*v = nonBottom(ctx, Meet(*v, Lift(boolInt(expected))), "assume")
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func ToTristate(ctx *engine.Context, v Value) tristate.Tristate {
	switch v {
	case Zero:
		return tristate.False
	case NonZero:
		return tristate.True
	case Unknown:
		return tristate.Maybe
	default:
		ctx.Cancel("zero bottom")
		return tristate.Maybe
	}
}

// Lower picks a witness: 0, 1, or either for unknown.
func Lower(ctx *engine.Context, v Value) int64 {
	switch v {
	case Zero:
		return 0
	case NonZero:
		return 1
	case Unknown:
		return int64(ctx.Choose(2))
	default:
		ctx.Cancel("zero lower of bottom")
		return 0
	}
}

// Backward narrows a and b given the result r of tag. Only equality and
// unsigned ordering against zero narrow.
func Backward(ctx *engine.Context, tag op.Tag, r Value, a, b *Value) {
	t := ToTristate(ctx, r)
	switch tag {
	case op.Eq, op.Ne:
		if t == tristate.Maybe {
			return
		}
		if (tag == op.Eq) == (t == tristate.True) {
			m := nonBottom(ctx, Meet(*a, *b), "eq")
			*a, *b = m, m
			return
		}
		if *a == Zero {
			*b = nonBottom(ctx, Diff(*b, Zero), "ne")
		}
		if *b == Zero {
			*a = nonBottom(ctx, Diff(*a, Zero), "ne")
		}
	case op.Ult, op.Ugt:
		if t != tristate.True {
			return
		}
		if tag == op.Ugt {
			a, b = b, a
		}
		// a < b unsigned leaves no room for b to be zero.
		*b = nonBottom(ctx, Diff(*b, Zero), "ult")
	case op.SExt, op.ZExt:
		*a = nonBottom(ctx, Meet(*a, r), tag.String())
	default:
		ctx.Imprecise(name, tag)
	}
}
