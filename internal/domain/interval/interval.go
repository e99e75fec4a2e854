// Package interval implements the interval domain over saturating bounds.
//
// The domain is unaware of bit-widths: casts are the identity and unsigned
// operators reuse their signed counterparts.
package interval

import (
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/tristate"
)

const name = "interval"

// Value is the closed range [Lo, Hi]. Lo > Hi is the empty range.
type Value struct {
	Lo, Hi Bound
}

// New returns [lo, hi], cancelling the path when it is empty.
func New(ctx *engine.Context, lo, hi Bound) Value {
	v := Value{Lo: lo, Hi: hi}
	if v.IsBottom() {
		ctx.Cancel("interval " + v.String())
	}
	return v
}

// Point returns [x, x].
func Point(x int64) Value { return Value{Lo: Bound(x), Hi: Bound(x)} }

func Lift(x int64) Value { return Point(x) }

func Any() Value { return Value{Lo: NegInf, Hi: PosInf} }

// AnyRange returns [from, to].
func AnyRange(ctx *engine.Context, from, to int64) Value {
	return New(ctx, Bound(from), Bound(to))
}

func FromTristate(t tristate.Tristate) Value {
	switch t {
	case tristate.False:
		return Point(0)
	case tristate.True:
		return Point(1)
	default:
		return Value{Lo: 0, Hi: 1}
	}
}

func (v Value) IsBottom() bool { return v.Lo > v.Hi }
func (v Value) IsPoint() bool  { return v.Lo == v.Hi }
func (v Value) IsTop() bool    { return v.Lo == NegInf && v.Hi == PosInf }

// IsFinite reports whether neither endpoint is infinite.
func (v Value) IsFinite() bool { return !v.Lo.IsInf() && !v.Hi.IsInf() }

func (v Value) Contains(x int64) bool {
	return v.Lo <= Bound(x) && Bound(x) <= v.Hi
}

// Size is the number of integers in v, saturating at +∞.
func (v Value) Size() Bound {
	if v.IsBottom() {
		return 0
	}
	d, ok := v.Hi.Sub(v.Lo)
	if !ok || d == PosInf {
		return PosInf
	}
	s, _ := d.Add(1)
	return s
}

func (v Value) String() string {
	if v.IsBottom() {
		return "⊥"
	}
	return "[" + v.Lo.String() + ", " + v.Hi.String() + "]"
}

// Leq reports a ⊑ b. The empty range is below everything.
func Leq(a, b Value) bool {
	return a.IsBottom() || (b.Lo <= a.Lo && a.Hi <= b.Hi)
}

// Join returns the smallest range covering a and b.
func Join(a, b Value) Value {
	if a.IsBottom() {
		return b
	}
	if b.IsBottom() {
		return a
	}
	return Value{Lo: minBound(a.Lo, b.Lo), Hi: maxBound(a.Hi, b.Hi)}
}

// Meet returns the intersection, which may be empty.
func Meet(a, b Value) Value {
	return Value{Lo: maxBound(a.Lo, b.Lo), Hi: minBound(a.Hi, b.Hi)}
}

// Intersect narrows v in place, cancelling when nothing is left.
func Intersect(ctx *engine.Context, v *Value, with Value) {
	*v = Meet(*v, with)
	if v.IsBottom() {
		ctx.Cancel("interval intersect")
	}
}

func meetLow(ctx *engine.Context, v *Value, lo Bound) {
	Intersect(ctx, v, Value{Lo: lo, Hi: PosInf})
}

func meetHigh(ctx *engine.Context, v *Value, hi Bound) {
	Intersect(ctx, v, Value{Lo: NegInf, Hi: hi})
}

// exclude removes x from v when it is one of the endpoints.
func exclude(ctx *engine.Context, v *Value, x Bound) {
	if x.IsInf() {
		return
	}
	lo, hi := v.Lo, v.Hi
	if lo == x {
		lo++
	}
	if hi == x {
		hi--
	}
	*v = New(ctx, lo, hi)
}

type boundOp func(a, b Bound) (Bound, bool)

// corners applies f to every pair of endpoints and keeps the extremes.
func corners(f boundOp, a, b Value) (Value, bool) {
	ll, ok1 := f(a.Lo, b.Lo)
	lh, ok2 := f(a.Lo, b.Hi)
	hl, ok3 := f(a.Hi, b.Lo)
	hh, ok4 := f(a.Hi, b.Hi)
	if !(ok1 && ok2 && ok3 && ok4) {
		return Value{}, false
	}
	return Value{Lo: minBound(ll, lh, hl, hh), Hi: maxBound(ll, lh, hl, hh)}, true
}

func add(a, b Value) (Value, bool) {
	lo, ok1 := a.Lo.Add(b.Lo)
	hi, ok2 := a.Hi.Add(b.Hi)
	return Value{Lo: lo, Hi: hi}, ok1 && ok2
}

func sub(a, b Value) (Value, bool) {
	lo, ok1 := a.Lo.Sub(b.Hi)
	hi, ok2 := a.Hi.Sub(b.Lo)
	return Value{Lo: lo, Hi: hi}, ok1 && ok2
}

func mul(a, b Value) (Value, bool) { return corners(Bound.Mul, a, b) }

// div requires b to exclude zero.
func div(a, b Value) (Value, bool) {
	if b.Contains(0) {
		return Value{}, false
	}
	return corners(Bound.Div, a, b)
}

// rem bounds the truncated remainder by the divisor's magnitude and the
// dividend's sign.
func rem(a, b Value) (Value, bool) {
	if b.Contains(0) {
		return Value{}, false
	}
	m := maxBound(b.Lo.Neg(), b.Hi)
	if m.IsInf() {
		return Value{Lo: minBound(a.Lo, 0), Hi: maxBound(a.Hi, 0)}, true
	}
	r := Value{Lo: -(m - 1), Hi: m - 1}
	if a.Lo >= 0 {
		r.Lo = 0
	}
	if a.Hi <= 0 {
		r.Hi = 0
	}
	return Value{Lo: maxBound(r.Lo, minBound(a.Lo, 0)), Hi: minBound(r.Hi, maxBound(a.Hi, 0))}, true
}

func must(ctx *engine.Context, tag op.Tag, v Value, ok bool) Value {
	if !ok {
		ctx.Cancel("interval " + tag.String() + " undefined")
	}
	return New(ctx, v.Lo, v.Hi)
}

// Compare evaluates a comparison on two ranges.
func Compare(tag op.Tag, a, b Value) tristate.Tristate {
	switch tag.Signed() {
	case op.Eq:
		if a.IsPoint() && b.IsPoint() && a.Lo == b.Lo {
			return tristate.True
		}
		if Meet(a, b).IsBottom() {
			return tristate.False
		}
		return tristate.Maybe
	case op.Ne:
		return Compare(op.Eq, a, b).Not()
	case op.Slt:
		switch {
		case a.Hi < b.Lo:
			return tristate.True
		case a.Lo >= b.Hi:
			return tristate.False
		}
		return tristate.Maybe
	case op.Sgt:
		return Compare(op.Slt, b, a)
	case op.Sle:
		return Compare(op.Slt, b, a).Not()
	case op.Sge:
		return Compare(op.Slt, a, b).Not()
	}
	engine.Unsupported(name, tag)
	return tristate.Maybe
}

// Binary applies a forward binary or comparison operator.
func Binary(ctx *engine.Context, tag op.Tag, a, b Value) Value {
	switch tag {
	case op.Join:
		return Join(a, b)
	case op.Meet:
		m := Meet(a, b)
		return New(ctx, m.Lo, m.Hi)
	case op.Add:
		v, ok := add(a, b)
		return must(ctx, tag, v, ok)
	case op.Sub:
		v, ok := sub(a, b)
		return must(ctx, tag, v, ok)
	case op.Mul:
		v, ok := mul(a, b)
		return must(ctx, tag, v, ok)
	case op.SDiv, op.UDiv:
		v, ok := div(a, b)
		return must(ctx, tag, v, ok)
	case op.SRem, op.URem:
		v, ok := rem(a, b)
		return must(ctx, tag, v, ok)
	case op.Shl:
		v, ok := corners(Bound.Shl, a, b)
		return must(ctx, tag, v, ok)
	case op.AShr:
		v, ok := corners(Bound.Shr, a, b)
		return must(ctx, tag, v, ok)
	case op.LShr:
		if a.Lo < 0 {
			return Any()
		}
		v, ok := corners(Bound.Shr, a, b)
		return must(ctx, tag, v, ok)
	case op.And, op.Or, op.Xor:
		return Any()
	}
	if tag.Class() == op.ClassCompare {
		return FromTristate(Compare(tag, a, b))
	}
	engine.Unsupported(name, tag)
	return Value{}
}

// Cast is the identity on every integer cast.
func Cast(ctx *engine.Context, tag op.Tag, a Value, bw uint8) Value {
	switch tag {
	case op.ZExt, op.SExt, op.Trunc, op.ZFit, op.IntToPtr, op.PtrToInt:
		return a
	}
	engine.Unsupported(name, tag)
	return Value{}
}

// Assume narrows v to a truth value: false is [0, 0], true excludes 0.
func Assume(ctx *engine.Context, v *Value, expected bool) {
	if expected {
		exclude(ctx, v, 0)
		return
	}
	Intersect(ctx, v, Point(0))
}

func ToTristate(ctx *engine.Context, v Value) tristate.Tristate {
	switch {
	case v.IsBottom():
		ctx.Cancel("interval bottom")
		return tristate.Maybe
	case v.Lo == 0 && v.Hi == 0:
		return tristate.False
	case v.Contains(0):
		return tristate.Maybe
	default:
		return tristate.True
	}
}

// Lower picks a concrete member of v: the low bound plus a chosen offset.
// An infinite side is clamped so that at most ChooseBound+1 values remain
// on that side.
func Lower(ctx *engine.Context, v Value) int64 {
	if v.IsBottom() {
		ctx.Cancel("interval lower of bottom")
	}
	window := Bound(ctx.ChooseBound())
	lo, hi := v.Lo, v.Hi
	switch {
	case lo == NegInf && hi == PosInf:
		lo, hi = 0, window
	case lo == NegInf:
		lo, _ = hi.Sub(window)
	case hi == PosInf:
		hi, _ = lo.Add(window)
	}
	n := Value{Lo: lo, Hi: hi}.Size()
	return int64(lo) + int64(ctx.Choose(int(n)))
}
