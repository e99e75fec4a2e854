package multi

import (
	"github.com/gnoswap-labs/lamp/internal/domain/bvinterval"
	"github.com/gnoswap-labs/lamp/internal/domain/interval"
	"github.com/gnoswap-labs/lamp/internal/domain/sign"
	"github.com/gnoswap-labs/lamp/internal/domain/zero"
	"github.com/gnoswap-labs/lamp/internal/engine"
)

// CanCoerce reports whether values of from can be represented in to.
func CanCoerce(from, to Domain) bool {
	switch {
	case from == to, from == Constant:
		return to < NumDomains
	case from == Zero:
		return to == Sign || to == Interval
	case from == Sign:
		return to == Interval
	default:
		return false
	}
}

// coerce re-expresses v in domain to. Constants go through lift_to; the
// other conversions over-approximate.
func coerce(ctx *engine.Context, v Value, to Domain) Value {
	if v.dom == to {
		return v
	}
	if !CanCoerce(v.dom, to) {
		failf("coerce", "no coercion from %s to %s", v.dom, to)
	}
	if v.dom == Constant {
		c := v.c
		switch to {
		case Sign:
			return OfSign(sign.Lift(c.LiftValue()))
		case Zero:
			return OfZero(zero.Lift(c.LiftValue()))
		case Interval:
			return OfInterval(interval.Lift(c.LiftValue()))
		case Bitvec:
			return OfBitvec(bvinterval.Lift(c))
		}
	}
	switch to {
	case Sign:
		return OfSign(zeroToSign(v.z))
	case Interval:
		if v.dom == Zero {
			return OfInterval(zeroToInterval(ctx, v.z))
		}
		return OfInterval(signToInterval(ctx, v.s))
	}
	failf("coerce", "no coercion from %s to %s", v.dom, to)
	return Value{}
}

func zeroToSign(z zero.Value) sign.Value {
	switch z {
	case zero.Zero:
		return sign.Eqz
	case zero.NonZero:
		return sign.Nez
	case zero.Unknown:
		return sign.Top
	default:
		return sign.Bot
	}
}

func zeroToInterval(ctx *engine.Context, z zero.Value) interval.Value {
	switch z {
	case zero.Zero:
		return interval.Point(0)
	case zero.Bottom:
		ctx.Cancel("coerce bottom")
	}
	return interval.Any()
}

func signToInterval(ctx *engine.Context, s sign.Value) interval.Value {
	switch s {
	case sign.Ltz:
		return interval.Value{Lo: interval.NegInf, Hi: -1}
	case sign.Gtz:
		return interval.Value{Lo: 1, Hi: interval.PosInf}
	case sign.Eqz:
		return interval.Point(0)
	case sign.Gez:
		return interval.Value{Lo: 0, Hi: interval.PosInf}
	case sign.Lez:
		return interval.Value{Lo: interval.NegInf, Hi: 0}
	case sign.Bot:
		ctx.Cancel("coerce bottom")
	}
	return interval.Any()
}
