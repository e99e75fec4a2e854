package multi

import (
	"math"

	"github.com/gnoswap-labs/lamp/internal/domain/bvinterval"
	"github.com/gnoswap-labs/lamp/internal/domain/constant"
	"github.com/gnoswap-labs/lamp/internal/domain/interval"
	"github.com/gnoswap-labs/lamp/internal/domain/sign"
	"github.com/gnoswap-labs/lamp/internal/domain/zero"
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/tristate"
	"go.uber.org/zap"
)

// Lattice dispatches operators over multi-domain values.
type Lattice struct {
	ctx  *engine.Context
	opts Options
}

// New creates a Lattice. The options must already be valid.
func New(ctx *engine.Context, opts Options) *Lattice {
	return &Lattice{ctx: ctx, opts: opts}
}

func (l *Lattice) Context() *engine.Context { return l.ctx }

// Join resolves the common domain of a and b, failing when the table
// leaves the pair undefined.
func (l *Lattice) Join(a, b Domain) Domain {
	d, ok := l.opts.Joins.Lookup(a, b)
	if !ok {
		failf("join", "undefined join of %s and %s", a, b)
	}
	return d
}

// Coerce lifts v into the domain it must take when consumed by a value of
// domain target in the given role.
func (l *Lattice) Coerce(v Value, target Domain, flavor Flavor) Value {
	switch flavor {
	case Index:
		target = l.opts.IndexDomain[target]
	case Scalar:
		target = l.opts.ScalarDomain[target]
	}
	return coerce(l.ctx, v, l.Join(v.dom, target))
}

// Lift abstracts a concrete witness in the configured lift domain.
func (l *Lattice) Lift(c constant.Value) Value {
	return coerce(l.ctx, OfConstant(c), l.opts.LiftDomain)
}

// Any returns an unconstrained value of the given width.
func (l *Lattice) Any(width uint8) Value {
	switch l.opts.AnyDomain {
	case Sign:
		return OfSign(sign.Any())
	case Zero:
		return OfZero(zero.Any())
	case Interval:
		return OfInterval(interval.Any())
	case Bitvec:
		return OfBitvec(bvinterval.Top(width))
	}
	failf("any", "%s cannot hold an unknown value", l.opts.AnyDomain)
	return Value{}
}

// AnyRange returns a value covering [from, to].
func (l *Lattice) AnyRange(from, to int64, width uint8) Value {
	switch l.opts.AnyDomain {
	case Sign:
		return OfSign(sign.AnyRange(l.ctx, from, to))
	case Zero:
		return OfZero(zero.AnyRange(l.ctx, from, to))
	case Interval:
		return OfInterval(interval.AnyRange(l.ctx, from, to))
	case Bitvec:
		return OfBitvec(bvinterval.AnyRange(l.ctx, uint64(from), uint64(to), width))
	}
	failf("any", "%s cannot hold a range", l.opts.AnyDomain)
	return Value{}
}

// AnyURange is AnyRange over unsigned bounds. Domains that read words as
// signed integers see a bound above MaxInt64 as +∞.
func (l *Lattice) AnyURange(from, to uint64, width uint8) Value {
	if l.opts.AnyDomain == Bitvec {
		return OfBitvec(bvinterval.AnyRange(l.ctx, from, to, width))
	}
	return l.AnyRange(saturate(from, math.MaxInt64-1), saturate(to, math.MaxInt64), width)
}

func saturate(x uint64, limit int64) int64 {
	if x > uint64(limit) {
		return limit
	}
	return int64(x)
}

func (l *Lattice) trace(tag op.Tag, dom Domain) {
	if ce := l.ctx.Logger().Check(zap.DebugLevel, "dispatch"); ce != nil {
		ce.Write(zap.Stringer("op", tag), zap.Stringer("domain", dom))
	}
}

// Binary applies a binary or comparison operator.
func (l *Lattice) Binary(tag op.Tag, a, b Value) Value {
	dom := l.Join(a.dom, b.dom)
	l.trace(tag, dom)
	x, y := coerce(l.ctx, a, dom), coerce(l.ctx, b, dom)
	switch dom {
	case Constant:
		return OfConstant(constant.Binary(l.ctx, tag, x.c, y.c))
	case Sign:
		return OfSign(sign.Binary(l.ctx, tag, x.s, y.s))
	case Zero:
		return OfZero(zero.Binary(l.ctx, tag, x.z, y.z))
	case Interval:
		return OfInterval(interval.Binary(l.ctx, tag, x.i, y.i))
	case Bitvec:
		return OfBitvec(bvinterval.Binary(l.ctx, tag, x.bv, y.bv))
	}
	failf(tag.String(), "bad domain tag %d", dom)
	return Value{}
}

// Cast applies a width or kind change; bw passes through unchanged.
func (l *Lattice) Cast(tag op.Tag, a Value, bw uint8) Value {
	l.trace(tag, a.dom)
	switch a.dom {
	case Constant:
		return OfConstant(constant.Cast(l.ctx, tag, a.c, bw))
	case Sign:
		return OfSign(sign.Cast(l.ctx, tag, a.s, bw))
	case Zero:
		return OfZero(zero.Cast(l.ctx, tag, a.z, bw))
	case Interval:
		return OfInterval(interval.Cast(l.ctx, tag, a.i, bw))
	case Bitvec:
		return OfBitvec(bvinterval.Cast(l.ctx, tag, a.bv, bw))
	}
	failf(tag.String(), "bad domain tag %d", a.dom)
	return Value{}
}

// top returns the least precise value of d.
func (l *Lattice) top(d Domain, width uint8) Value {
	switch d {
	case Sign:
		return OfSign(sign.Top)
	case Zero:
		return OfZero(zero.Unknown)
	case Interval:
		return OfInterval(interval.Any())
	case Bitvec:
		return OfBitvec(bvinterval.Top(width))
	}
	failf("top", "%s has no top", d)
	return Value{}
}

// Extract returns bits [from, to) of a. Only constants model sub-word
// structure.
func (l *Lattice) Extract(a Value, from, to uint8) Value {
	if a.dom == Constant {
		return OfConstant(constant.Extract(l.ctx, a.c, from, to))
	}
	return l.top(a.dom, to-from)
}

// Concat places a above b.
func (l *Lattice) Concat(a, b Value, width uint8) Value {
	dom := l.Join(a.dom, b.dom)
	if dom == Constant {
		return OfConstant(constant.Concat(l.ctx, a.c, b.c))
	}
	return l.top(dom, width)
}

// Load reads a width-bit value through p.
func (l *Lattice) Load(p Value, width uint8) Value {
	switch p.dom {
	case Constant:
		engine.Unsupported("constant", op.Load)
	case Zero:
		return OfZero(zero.Load(l.ctx, p.z))
	}
	return l.top(p.dom, width)
}

// LoadAt reads through p at index idx. No domain tracks offsets, so the
// index only has to join with the index flavor of p's domain; a missing
// join is fatal.
func (l *Lattice) LoadAt(p, idx Value, width uint8) Value {
	_ = l.Coerce(idx, p.dom, Index)
	return l.Load(p, width)
}

// Store writes v through p. The stored value is lifted in the scalar
// flavor of p's domain.
func (l *Lattice) Store(p, v Value) {
	v = l.Coerce(v, p.dom, Scalar)
	switch p.dom {
	case Constant:
		engine.Unsupported("constant", op.Store)
	case Zero:
		if v.dom == Zero {
			zero.Store(l.ctx, p.z, v.z)
			return
		}
		zero.Store(l.ctx, p.z, zero.Unknown)
	}
}

func (l *Lattice) ToTristate(v Value) tristate.Tristate {
	switch v.dom {
	case Constant:
		return constant.ToTristate(l.ctx, v.c)
	case Sign:
		return sign.ToTristate(l.ctx, v.s)
	case Zero:
		return zero.ToTristate(l.ctx, v.z)
	case Interval:
		return interval.ToTristate(l.ctx, v.i)
	case Bitvec:
		return bvinterval.ToTristate(l.ctx, v.bv)
	}
	failf("to_tristate", "bad domain tag %d", v.dom)
	return tristate.Maybe
}

// Assume narrows v in place to the given truth value.
func (l *Lattice) Assume(v *Value, expected bool) {
	switch v.dom {
	case Constant:
		constant.Assume(l.ctx, &v.c, expected)
	case Sign:
		sign.Assume(l.ctx, &v.s, expected)
	case Zero:
		zero.Assume(l.ctx, &v.z, expected)
	case Interval:
		interval.Assume(l.ctx, &v.i, expected)
	case Bitvec:
		bvinterval.Assume(l.ctx, &v.bv, expected)
	default:
		failf("assume", "bad domain tag %d", v.dom)
	}
}

// Lower extracts a concrete witness of v as a width-bit constant.
func (l *Lattice) Lower(v Value, width uint8) constant.Value {
	switch v.dom {
	case Constant:
		return v.c
	case Sign:
		return constant.Int(sign.Lower(l.ctx, v.s), width)
	case Zero:
		return constant.Int(zero.Lower(l.ctx, v.z), width)
	case Interval:
		return constant.Int(interval.Lower(l.ctx, v.i), width)
	case Bitvec:
		return bvinterval.Lower(l.ctx, v.bv)
	}
	failf("lower", "bad domain tag %d", v.dom)
	return constant.Value{}
}

// Backward narrows the operands of r = a tag b in place. All three values
// are brought into their common domain first; narrowed operands keep that
// domain.
func (l *Lattice) Backward(tag op.Tag, r Value, a, b *Value) {
	dom := l.Join(l.Join(a.dom, b.dom), r.dom)
	x, y, res := coerce(l.ctx, *a, dom), coerce(l.ctx, *b, dom), coerce(l.ctx, r, dom)
	l.backward(tag, dom, res, &x, &y)
	*a, *b = x, y
}

// BackwardCast narrows the operand of a cast.
func (l *Lattice) BackwardCast(tag op.Tag, r Value, a *Value) {
	dom := l.Join(a.dom, r.dom)
	x, res := coerce(l.ctx, *a, dom), coerce(l.ctx, r, dom)
	unused := x
	l.backward(tag, dom, res, &x, &unused)
	*a = x
}

func (l *Lattice) backward(tag op.Tag, dom Domain, r Value, a, b *Value) {
	switch dom {
	case Constant:
		constant.Backward(l.ctx, tag, r.c, &a.c, &b.c)
	case Sign:
		sign.Backward(l.ctx, tag, r.s, &a.s, &b.s)
	case Zero:
		zero.Backward(l.ctx, tag, r.z, &a.z, &b.z)
	case Interval:
		interval.Backward(l.ctx, tag, r.i, &a.i, &b.i)
	case Bitvec:
		bvinterval.Backward(l.ctx, tag, r.bv, &a.bv, &b.bv)
	default:
		failf(tag.String(), "bad domain tag %d", dom)
	}
}
