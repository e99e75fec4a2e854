package interval

import (
	"math"
	"strconv"
)

// Bound is an integer endpoint. The extreme int64 values stand for the
// infinities; arithmetic saturates toward them instead of wrapping.
type Bound int64

const (
	NegInf Bound = math.MinInt64
	PosInf Bound = math.MaxInt64
)

func (b Bound) IsInf() bool { return b == NegInf || b == PosInf }

func (b Bound) String() string {
	switch b {
	case NegInf:
		return "-∞"
	case PosInf:
		return "+∞"
	default:
		return strconv.FormatInt(int64(b), 10)
	}
}

func (b Bound) sign() int {
	switch {
	case b < 0:
		return -1
	case b > 0:
		return 1
	default:
		return 0
	}
}

func infOfSign(s int) Bound {
	if s < 0 {
		return NegInf
	}
	return PosInf
}

// Neg negates b; the infinities swap.
func (b Bound) Neg() Bound {
	switch b {
	case NegInf:
		return PosInf
	case PosInf:
		return NegInf
	default:
		return -b
	}
}

// Add returns b+o. It is undefined for opposite infinities.
func (b Bound) Add(o Bound) (Bound, bool) {
	switch {
	case b.IsInf() && o.IsInf():
		if b != o {
			return 0, false
		}
		return b, true
	case b.IsInf():
		return b, true
	case o.IsInf():
		return o, true
	}
	s := b + o
	switch {
	case o > 0 && s < b, s == PosInf:
		return PosInf, true
	case o < 0 && s > b, s == NegInf:
		return NegInf, true
	}
	return s, true
}

// Sub returns b-o. It is undefined for like infinities.
func (b Bound) Sub(o Bound) (Bound, bool) {
	return b.Add(o.Neg())
}

// Mul returns b*o. Zero absorbs the infinities.
func (b Bound) Mul(o Bound) (Bound, bool) {
	if b == 0 || o == 0 {
		return 0, true
	}
	s := b.sign() * o.sign()
	if b.IsInf() || o.IsInf() {
		return infOfSign(s), true
	}
	p := b * o
	if p/o != b || p == PosInf || p == NegInf {
		return infOfSign(s), true
	}
	return p, true
}

// Div returns the truncated quotient b/o. It is undefined for a zero
// divisor and for two infinities.
func (b Bound) Div(o Bound) (Bound, bool) {
	switch {
	case o == 0:
		return 0, false
	case b.IsInf() && o.IsInf():
		return 0, false
	case o.IsInf():
		return 0, true
	case b.IsInf():
		return infOfSign(b.sign() * o.sign()), true
	}
	return b / o, true
}

// Shl returns b shifted left by o. A negative amount is undefined.
func (b Bound) Shl(o Bound) (Bound, bool) {
	switch {
	case o < 0:
		return 0, false
	case b == 0:
		return 0, true
	case b.IsInf() || o >= 63:
		return infOfSign(b.sign()), true
	}
	return b.Mul(Bound(1) << uint(o))
}

// Shr returns b arithmetically shifted right by o.
func (b Bound) Shr(o Bound) (Bound, bool) {
	switch {
	case o < 0:
		return 0, false
	case b.IsInf():
		return b, true
	case o >= 63:
		if b < 0 {
			return -1, true
		}
		return 0, true
	}
	return b >> uint(o), true
}

func minBound(bs ...Bound) Bound {
	m := bs[0]
	for _, b := range bs[1:] {
		if b < m {
			m = b
		}
	}
	return m
}

func maxBound(bs ...Bound) Bound {
	m := bs[0]
	for _, b := range bs[1:] {
		if b > m {
			m = b
		}
	}
	return m
}

// ceilDiv divides two positive finite bounds rounding up.
func ceilDiv(a, b Bound) Bound {
	return (a-1)/b + 1
}
