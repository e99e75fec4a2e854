// Package sign implements the eight-element sign lattice. Every operator is
// a table lookup; the tables are over unbounded integers.
package sign

import (
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/tristate"
)

const name = "sign"

// Value is an element of the sign lattice.
type Value uint8

const (
	Bot Value = iota // unreachable
	Ltz
	Gtz
	Eqz
	Nez
	Gez
	Lez
	Top

	numValues
)

func (v Value) String() string {
	switch v {
	case Bot:
		return "⊥"
	case Ltz:
		return "<0"
	case Gtz:
		return ">0"
	case Eqz:
		return "=0"
	case Nez:
		return "≠0"
	case Gez:
		return "≥0"
	case Lez:
		return "≤0"
	case Top:
		return "⊤"
	default:
		return "invalid"
	}
}

// Join returns the least upper bound.
func Join(a, b Value) Value { return joinTable[a][b] }

// Meet returns the greatest lower bound.
func Meet(a, b Value) Value { return meetTable[a][b] }

// Diff removes the values of b from a.
func Diff(a, b Value) Value { return diffTable[a][b] }

// Complement returns the values not in a.
func Complement(a Value) Value { return complementTable[a] }

// Leq reports a ⊑ b.
func Leq(a, b Value) bool { return meetTable[a][b] == a }

// Lift abstracts a concrete integer.
func Lift(x int64) Value {
	switch {
	case x < 0:
		return Ltz
	case x > 0:
		return Gtz
	default:
		return Eqz
	}
}

// Contains reports whether x is described by v.
func Contains(v Value, x int64) bool { return Leq(Lift(x), v) }

// FromTristate encodes a boolean result: true is >0, false is =0.
func FromTristate(t tristate.Tristate) Value {
	switch t {
	case tristate.True:
		return Gtz
	case tristate.False:
		return Eqz
	default:
		return Gez
	}
}

func Any() Value { return Top }

// AnyRange abstracts every integer in [from, to].
func AnyRange(ctx *engine.Context, from, to int64) Value {
	if from > to {
		ctx.Cancel("sign empty range")
	}
	if from < 0 && to > 0 {
		return Top
	}
	return Join(Lift(from), Lift(to))
}

func nonBottom(ctx *engine.Context, v Value, what string) Value {
	if v == Bot {
		ctx.Cancel("sign " + what)
	}
	return v
}

func notBool(v Value) Value {
	switch v {
	case Gtz:
		return Eqz
	case Eqz:
		return Gtz
	default:
		return v
	}
}

func nonNegative(v Value) bool { return Leq(v, Gez) }

// Binary applies a forward binary or comparison operator.
func Binary(ctx *engine.Context, tag op.Tag, a, b Value) Value {
	switch tag {
	case op.Join:
		return Join(a, b)
	case op.Meet:
		return nonBottom(ctx, Meet(a, b), "meet")
	case op.Add:
		return addTable[a][b]
	case op.Sub:
		return addTable[a][negTable[b]]
	case op.Mul:
		return mulTable[a][b]
	case op.SDiv, op.SRem, op.UDiv, op.URem:
		if Meet(b, Eqz) != Bot {
			engine.Raise(tag.String(), engine.ErrDivisionByZero)
		}
		if (tag == op.UDiv || tag == op.URem) && !(nonNegative(a) && nonNegative(b)) {
			if a == Eqz {
				return Eqz
			}
			return Top
		}
		if tag == op.SDiv || tag == op.UDiv {
			return divTable[a][b]
		}
		return remTable[a][b]
	case op.And:
		if a == Eqz || b == Eqz {
			return Eqz
		}
		if nonNegative(a) || nonNegative(b) {
			return Gez
		}
		return Top
	case op.Or:
		if a == Eqz {
			return b
		}
		if b == Eqz {
			return a
		}
		if a == Ltz || b == Ltz {
			return Ltz
		}
		if nonNegative(a) && nonNegative(b) {
			if a == Gtz || b == Gtz {
				return Gtz
			}
			return Gez
		}
		return Top
	case op.Xor:
		if a == Eqz {
			return b
		}
		if b == Eqz {
			return a
		}
		if nonNegative(a) && nonNegative(b) {
			return Gez
		}
		return Top
	case op.Shl:
		if a == Eqz {
			return Eqz
		}
		return Top
	case op.LShr:
		if a == Eqz {
			return Eqz
		}
		if nonNegative(a) {
			return Gez
		}
		return Top
	case op.AShr:
		if Meet(a, Gtz) != Bot {
			return Join(a, Eqz)
		}
		return a
	case op.Eq:
		return eqTable[a][b]
	case op.Ne:
		return neTable[a][b]
	case op.Slt:
		return ltTable[a][b]
	case op.Sgt:
		return ltTable[b][a]
	case op.Sle:
		return notBool(ltTable[b][a])
	case op.Sge:
		return notBool(ltTable[a][b])
	case op.Ult, op.Ule, op.Ugt, op.Uge:
		if nonNegative(a) && nonNegative(b) {
			return Binary(ctx, tag.Signed(), a, b)
		}
		return Gez
	}
	if tag.Class() == op.ClassFloat {
		return Top
	}
	engine.Unsupported(name, tag)
	return Bot
}

// Cast applies a width change. The domain has no notion of width, so only
// the sign flip of zero extension is modelled.
func Cast(ctx *engine.Context, tag op.Tag, a Value, bw uint8) Value {
	switch tag {
	case op.SExt, op.IntToPtr, op.PtrToInt:
		return a
	case op.ZExt:
		if Meet(a, Nez) == Bot {
			return a
		}
		return Join(Meet(a, Eqz), Gtz)
	case op.Trunc, op.ZFit:
		if a == Eqz {
			return Eqz
		}
		return Top
	}
	if tag.Class() == op.ClassFloat {
		return Top
	}
	engine.Unsupported(name, tag)
	return Bot
}

// Assume narrows v to the given truth value.
func Assume(ctx *engine.Context, v *Value, expected bool) {
	if expected {
		*v = nonBottom(ctx, Meet(*v, Nez), "assume true")
		return
	}
	*v = nonBottom(ctx, Meet(*v, Eqz), "assume false")
}

func ToTristate(ctx *engine.Context, v Value) tristate.Tristate {
	switch {
	case v == Bot:
		ctx.Cancel("sign bottom")
		return tristate.Maybe
	case v == Eqz:
		return tristate.False
	case Meet(v, Eqz) == Bot:
		return tristate.True
	default:
		return tristate.Maybe
	}
}

// Lower picks a concrete witness of v through the oracle.
func Lower(ctx *engine.Context, v Value) int64 {
	var witnesses []int64
	if Meet(v, Ltz) != Bot {
		witnesses = append(witnesses, -1)
	}
	if Meet(v, Eqz) != Bot {
		witnesses = append(witnesses, 0)
	}
	if Meet(v, Gtz) != Bot {
		witnesses = append(witnesses, 1)
	}
	if len(witnesses) == 0 {
		ctx.Cancel("sign lower of bottom")
	}
	return witnesses[ctx.Choose(len(witnesses))]
}

// Backward narrows a and b given the result r of tag. Only equality,
// disequality, ordering and sign extension narrow.
func Backward(ctx *engine.Context, tag op.Tag, r Value, a, b *Value) {
	switch tag {
	case op.Eq, op.Ne:
		t := ToTristate(ctx, r)
		if t == tristate.Maybe {
			return
		}
		if (tag == op.Eq) == (t == tristate.True) {
			m := nonBottom(ctx, Meet(*a, *b), "eq")
			*a, *b = m, m
			return
		}
		if *a == Eqz {
			*b = nonBottom(ctx, Diff(*b, Eqz), "ne")
		}
		if *b == Eqz {
			*a = nonBottom(ctx, Diff(*a, Eqz), "ne")
		}
	case op.Slt, op.Sle, op.Sgt, op.Sge:
		t := ToTristate(ctx, r)
		if t == tristate.Maybe {
			return
		}
		if t == tristate.False {
			tag = tag.Negate()
		}
		switch tag {
		case op.Slt:
			less(ctx, a, b, true)
		case op.Sle:
			less(ctx, a, b, false)
		case op.Sgt:
			less(ctx, b, a, true)
		case op.Sge:
			less(ctx, b, a, false)
		}
	case op.SExt:
		*a = nonBottom(ctx, Meet(*a, r), "sext")
	default:
		ctx.Imprecise(name, tag)
	}
}

// less narrows x < y (strict) or x <= y by removing the signs that
// cannot satisfy the relation given the other side.
func less(ctx *engine.Context, x, y *Value, strict bool) {
	switch {
	case Leq(*y, Ltz), strict && Leq(*y, Lez):
		*x = nonBottom(ctx, Diff(*x, Gez), "order")
	case Leq(*y, Lez):
		*x = nonBottom(ctx, Diff(*x, Gtz), "order")
	}
	switch {
	case Leq(*x, Gtz), strict && Leq(*x, Gez):
		*y = nonBottom(ctx, Diff(*y, Lez), "order")
	case Leq(*x, Gez):
		*y = nonBottom(ctx, Diff(*y, Ltz), "order")
	}
}
