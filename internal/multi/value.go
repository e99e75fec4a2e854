// Package multi combines the leaf domains behind one tagged value. Binary
// operators resolve the common domain of their operands through an explicit
// join table, coerce both operands into it and dispatch to that domain.
package multi

import (
	"github.com/gnoswap-labs/lamp/internal/domain/bvinterval"
	"github.com/gnoswap-labs/lamp/internal/domain/constant"
	"github.com/gnoswap-labs/lamp/internal/domain/interval"
	"github.com/gnoswap-labs/lamp/internal/domain/sign"
	"github.com/gnoswap-labs/lamp/internal/domain/zero"
)

// Domain identifies a leaf domain.
type Domain uint8

const (
	Constant Domain = iota
	Sign
	Zero
	Interval
	Bitvec

	NumDomains
)

var domainNames = [NumDomains]string{
	Constant: "constant",
	Sign:     "sign",
	Zero:     "zero",
	Interval: "interval",
	Bitvec:   "bvinterval",
}

func (d Domain) String() string {
	if d < NumDomains {
		return domainNames[d]
	}
	return "invalid"
}

// ParseDomain looks a domain up by name.
func ParseDomain(name string) (Domain, bool) {
	for i, n := range domainNames {
		if n == name {
			return Domain(i), true
		}
	}
	return NumDomains, false
}

// Value holds exactly one leaf payload, selected by dom. The other
// payload fields are zero.
type Value struct {
	dom Domain
	c   constant.Value
	s   sign.Value
	z   zero.Value
	i   interval.Value
	bv  bvinterval.Value
}

func OfConstant(c constant.Value) Value  { return Value{dom: Constant, c: c} }
func OfSign(s sign.Value) Value          { return Value{dom: Sign, s: s} }
func OfZero(z zero.Value) Value          { return Value{dom: Zero, z: z} }
func OfInterval(i interval.Value) Value  { return Value{dom: Interval, i: i} }
func OfBitvec(bv bvinterval.Value) Value { return Value{dom: Bitvec, bv: bv} }

// Domain returns the tag of the active payload.
func (v Value) Domain() Domain { return v.dom }

func (v Value) Constant() constant.Value {
	v.expect(Constant)
	return v.c
}

func (v Value) Sign() sign.Value {
	v.expect(Sign)
	return v.s
}

func (v Value) Zero() zero.Value {
	v.expect(Zero)
	return v.z
}

func (v Value) Interval() interval.Value {
	v.expect(Interval)
	return v.i
}

func (v Value) Bitvec() bvinterval.Value {
	v.expect(Bitvec)
	return v.bv
}

func (v Value) expect(d Domain) {
	if v.dom != d {
		failf("payload", "value is %s, not %s", v.dom, d)
	}
}

// Payload returns the active leaf value's diagnostic form.
func (v Value) Payload() string {
	switch v.dom {
	case Constant:
		return v.c.String()
	case Sign:
		return v.s.String()
	case Zero:
		return v.z.String()
	case Interval:
		return v.i.String()
	case Bitvec:
		return v.bv.String()
	default:
		return "invalid"
	}
}

func (v Value) String() string {
	return v.dom.String() + " " + v.Payload()
}
