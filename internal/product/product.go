// Package product pairs every multi-domain value with the tag of the
// operator that produced it.
package product

import (
	"fmt"

	"github.com/gnoswap-labs/lamp/internal/domain/constant"
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/multi"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/tristate"
)

const name = "product"

// Strategy selects the component that answers ToTristate.
type Strategy uint8

const (
	FromPrimary Strategy = iota
	FromTag
	Disabled
)

var strategyNames = [...]string{
	FromPrimary: "primary",
	FromTag:     "tag",
	Disabled:    "disabled",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", s)
}

// ParseStrategy maps a configuration name to a Strategy.
func ParseStrategy(s string) (Strategy, bool) {
	for i, n := range strategyNames {
		if n == s {
			return Strategy(i), true
		}
	}
	return 0, false
}

// Value is a primary abstraction together with its producing operator.
type Value struct {
	Primary multi.Value
	Tag     op.Tag
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%s)", v.Tag, v.Primary)
}

// Domain applies operators componentwise.
type Domain struct {
	lat      *multi.Lattice
	strategy Strategy
}

func New(lat *multi.Lattice, strategy Strategy) *Domain {
	return &Domain{lat: lat, strategy: strategy}
}

func (d *Domain) Lattice() *multi.Lattice { return d.lat }

func (d *Domain) Lift(c constant.Value) Value {
	return Value{Primary: d.lat.Lift(c), Tag: op.Lift}
}

func (d *Domain) Any(width uint8) Value {
	return Value{Primary: d.lat.Any(width), Tag: op.Any}
}

func (d *Domain) AnyRange(from, to int64, width uint8) Value {
	return Value{Primary: d.lat.AnyRange(from, to, width), Tag: op.Any}
}

func (d *Domain) AnyURange(from, to uint64, width uint8) Value {
	return Value{Primary: d.lat.AnyURange(from, to, width), Tag: op.Any}
}

// Binary covers the arithmetic, bitwise, comparison and lattice operators.
func (d *Domain) Binary(tag op.Tag, a, b Value) Value {
	switch tag.Class() {
	case op.ClassBinary, op.ClassCompare, op.ClassFloat:
	default:
		engine.Fail(name, tag.String(), "not a binary operator")
	}
	return Value{Primary: d.lat.Binary(tag, a.Primary, b.Primary), Tag: tag}
}

func (d *Domain) Cast(tag op.Tag, a Value, bw uint8) Value {
	if tag.Class() != op.ClassCast {
		engine.Fail(name, tag.String(), "not a cast")
	}
	return Value{Primary: d.lat.Cast(tag, a.Primary, bw), Tag: tag}
}

func (d *Domain) Extract(a Value, from, to uint8) Value {
	return Value{Primary: d.lat.Extract(a.Primary, from, to), Tag: op.Extract}
}

func (d *Domain) Concat(a, b Value, width uint8) Value {
	return Value{Primary: d.lat.Concat(a.Primary, b.Primary, width), Tag: op.Concat}
}

func (d *Domain) Load(p Value, width uint8) Value {
	return Value{Primary: d.lat.Load(p.Primary, width), Tag: op.Load}
}

func (d *Domain) LoadAt(p, idx Value, width uint8) Value {
	return Value{Primary: d.lat.LoadAt(p.Primary, idx.Primary, width), Tag: op.Load}
}

func (d *Domain) Store(p, v Value) {
	d.lat.Store(p.Primary, v.Primary)
}

// ToTristate reads the truth value of v through the configured component.
func (d *Domain) ToTristate(v Value) tristate.Tristate {
	switch d.strategy {
	case FromPrimary:
		return d.lat.ToTristate(v.Primary)
	case FromTag:
		engine.Fail(name, "to_tristate", "an operator tag has no truth value")
	default:
		engine.Fail(name, "to_tristate", "tristate conversion is disabled")
	}
	return tristate.Maybe
}

// Assume narrows the primary component. Tags carry no truth value to
// narrow.
func (d *Domain) Assume(v *Value, expected bool) {
	d.lat.Assume(&v.Primary, expected)
}

// Lower picks a witness of v. The returned value holds the witness and is
// tagged as a lowering.
func (d *Domain) Lower(v Value, width uint8) (constant.Value, Value) {
	c := d.lat.Lower(v.Primary, width)
	w := d.lat.Coerce(multi.OfConstant(c), v.Primary.Domain(), multi.Plain)
	return c, Value{Primary: w, Tag: op.Lower}
}

// Backward narrows the operands of r using the operator r was produced by.
func (d *Domain) Backward(r Value, a, b *Value) {
	d.lat.Backward(r.Tag, r.Primary, &a.Primary, &b.Primary)
}

// BackwardCast narrows the operand of a cast result.
func (d *Domain) BackwardCast(r Value, a *Value) {
	d.lat.BackwardCast(r.Tag, r.Primary, &a.Primary)
}
