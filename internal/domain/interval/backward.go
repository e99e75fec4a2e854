package interval

import (
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/tristate"
)

// Backward narrows a and b given that r = a tag b now holds. Narrowing is
// algebraic first; where the inverse is one-to-many and the remaining
// slack is within the choose bound, the oracle picks one split.
func Backward(ctx *engine.Context, tag op.Tag, r Value, a, b *Value) {
	switch tag {
	case op.Add:
		backwardAdd(ctx, r, a, b)
	case op.Sub:
		backwardSub(ctx, r, a, b)
	case op.Mul:
		backwardMul(ctx, r, a, b)
	case op.SDiv, op.UDiv:
		backwardDiv(ctx, r, a, b)
	case op.ZExt, op.SExt, op.Trunc, op.ZFit:
		Intersect(ctx, a, r)
	case op.Eq, op.Ne, op.Slt, op.Sle, op.Sgt, op.Sge, op.Ult, op.Ule, op.Ugt, op.Uge:
		backwardCompare(ctx, tag, r, a, b)
	default:
		ctx.Imprecise(name, tag)
	}
}

func narrow(ctx *engine.Context, v *Value, with Value, ok bool) {
	if ok {
		Intersect(ctx, v, with)
	}
}

func backwardAdd(ctx *engine.Context, r Value, a, b *Value) {
	v, ok := sub(r, *b)
	narrow(ctx, a, v, ok)
	v, ok = sub(r, *a)
	narrow(ctx, b, v, ok)

	sum, ok := add(*a, *b)
	if !ok {
		return
	}
	// Raise both low bounds so that their sum reaches r.Lo.
	if diff, ok := r.Lo.Sub(sum.Lo); ok && ctx.WithinBound(int64(diff)) {
		i := Bound(ctx.Choose(int(diff) + 1))
		meetLow(ctx, a, a.Lo+i)
		meetLow(ctx, b, b.Lo+diff-i)
	}
	if diff, ok := sum.Hi.Sub(r.Hi); ok && ctx.WithinBound(int64(diff)) {
		i := Bound(ctx.Choose(int(diff) + 1))
		meetHigh(ctx, a, a.Hi-i)
		meetHigh(ctx, b, b.Hi-diff+i)
	}
}

func backwardSub(ctx *engine.Context, r Value, a, b *Value) {
	v, ok := add(r, *b)
	narrow(ctx, a, v, ok)
	v, ok = sub(*a, r)
	narrow(ctx, b, v, ok)

	d, ok := sub(*a, *b)
	if !ok {
		return
	}
	if diff, ok := r.Lo.Sub(d.Lo); ok && ctx.WithinBound(int64(diff)) {
		i := Bound(ctx.Choose(int(diff) + 1))
		meetLow(ctx, a, a.Lo+i)
		meetHigh(ctx, b, b.Hi-diff+i)
	}
	if diff, ok := d.Hi.Sub(r.Hi); ok && ctx.WithinBound(int64(diff)) {
		i := Bound(ctx.Choose(int(diff) + 1))
		meetHigh(ctx, a, a.Hi-i)
		meetLow(ctx, b, b.Lo+diff-i)
	}
}

func backwardMul(ctx *engine.Context, r Value, a, b *Value) {
	if !a.IsFinite() || !b.IsFinite() {
		return
	}
	if !b.Contains(0) {
		v, ok := div(r, *b)
		narrow(ctx, a, v, ok)
	}
	if !a.Contains(0) {
		v, ok := div(r, *a)
		narrow(ctx, b, v, ok)
	}
	if a.Lo < 1 || b.Lo < 1 || !r.IsFinite() {
		return
	}

	// Both operands are positive: pick a's new bound, then derive b's.
	if p, _ := a.Lo.Mul(b.Lo); p < r.Lo {
		hi := minBound(ceilDiv(r.Lo, b.Lo), a.Hi)
		meetLow(ctx, a, ceilDiv(r.Lo, b.Hi))
		if n := hi - a.Lo + 1; ctx.WithinBound(int64(n)) {
			pick := hi - Bound(ctx.Choose(int(n)))
			meetLow(ctx, a, pick)
			meetLow(ctx, b, ceilDiv(r.Lo, pick))
		}
	}
	if p, _ := a.Hi.Mul(b.Hi); p > r.Hi && r.Hi > 0 {
		lo := maxBound(r.Hi/b.Hi, a.Lo)
		if n := a.Hi - lo + 1; ctx.WithinBound(int64(n)) {
			pick := lo + Bound(ctx.Choose(int(n)))
			meetHigh(ctx, a, pick)
			meetHigh(ctx, b, r.Hi/pick)
		}
	}
}

func backwardDiv(ctx *engine.Context, r Value, a, b *Value) {
	if !b.IsFinite() || b.Contains(0) {
		return
	}
	p, ok := mul(*b, r)
	if !ok {
		return
	}
	m := maxBound(b.Lo.Neg(), b.Hi) - 1
	lo, _ := p.Lo.Sub(m)
	hi, _ := p.Hi.Add(m)
	Intersect(ctx, a, Value{Lo: lo, Hi: hi})
}

func backwardCompare(ctx *engine.Context, tag op.Tag, r Value, a, b *Value) {
	t := ToTristate(ctx, r)
	if t == tristate.Maybe {
		return
	}
	if t == tristate.False {
		tag = tag.Negate()
	}
	switch tag.Signed() {
	case op.Eq:
		backwardEq(ctx, a, b)
	case op.Ne:
		backwardNe(ctx, a, b)
	case op.Sgt:
		greater(ctx, a, b, true)
	case op.Sge:
		greater(ctx, a, b, false)
	case op.Slt:
		greater(ctx, b, a, true)
	case op.Sle:
		greater(ctx, b, a, false)
	}
}

// backwardEq intersects both sides and, when few values remain, collapses
// them onto one chosen point.
func backwardEq(ctx *engine.Context, a, b *Value) {
	Intersect(ctx, a, *b)
	*b = *a
	size := a.Size()
	if !ctx.WithinBound(int64(size)) {
		return
	}
	p := a.Lo + Bound(ctx.Choose(int(size)))
	*a = Value{Lo: p, Hi: p}
	*b = *a
}

func backwardNe(ctx *engine.Context, a, b *Value) {
	if Meet(*a, *b).IsBottom() {
		return
	}
	switch {
	case a.IsPoint() && (a.Lo == b.Lo || a.Lo == b.Hi):
		exclude(ctx, b, a.Lo)
	case b.IsPoint() && (b.Lo == a.Lo || b.Lo == a.Hi):
		exclude(ctx, a, b.Lo)
	case ctx.Choose(2) == 0:
		greater(ctx, a, b, true)
	default:
		greater(ctx, b, a, true)
	}
}

// greater narrows a > b, or a >= b when strict is false.
func greater(ctx *engine.Context, a, b *Value, strict bool) {
	meetLow(ctx, a, b.Lo)
	if strict {
		exclude(ctx, a, b.Lo)
	}
	meetHigh(ctx, b, a.Hi)
	if strict {
		exclude(ctx, b, a.Hi)
	}

	overlap := Meet(*a, *b)
	if overlap.IsBottom() {
		return
	}
	size := overlap.Size()
	if !ctx.WithinBound(int64(size)) {
		return
	}
	n := int(size)
	if strict {
		n++
	}
	delim := overlap.Lo + Bound(ctx.Choose(n))
	meetLow(ctx, a, delim)
	if strict {
		meetHigh(ctx, b, delim-1)
	} else {
		meetHigh(ctx, b, delim)
	}
}
