package multi

import (
	"errors"
	"fmt"

	"github.com/gnoswap-labs/lamp/internal/engine"
)

// undefined marks a pair of domains with no common domain.
const undefined = NumDomains

var (
	ErrNotReflexive = errors.New("join table is not reflexive")
	ErrNoCoercion   = errors.New("join result is not reachable by coercion")
	ErrBadDomain    = errors.New("unknown domain")
)

// JoinTable maps an unordered pair of domains to the domain both are
// lifted into before an operator runs.
type JoinTable [NumDomains][NumDomains]Domain

// DefaultJoinTable orders the numeric domains by precision of their
// common representation: constant < zero < sign < interval. Bit-vector
// ranges only meet constants.
func DefaultJoinTable() JoinTable {
	var t JoinTable
	for a := Domain(0); a < NumDomains; a++ {
		for b := Domain(0); b < NumDomains; b++ {
			t[a][b] = undefined
		}
		t.Set(a, a, a)
		t.Set(Constant, a, a)
	}
	t.Set(Zero, Sign, Sign)
	t.Set(Zero, Interval, Interval)
	t.Set(Sign, Interval, Interval)
	return t
}

// Set defines join(a, b) = join(b, a) = r.
func (t *JoinTable) Set(a, b, r Domain) {
	t[a][b] = r
	t[b][a] = r
}

// Lookup returns join(a, b).
func (t *JoinTable) Lookup(a, b Domain) (Domain, bool) {
	if a >= NumDomains || b >= NumDomains {
		return undefined, false
	}
	r := t[a][b]
	return r, r != undefined
}

// Validate checks reflexivity and that every defined join is reachable
// from both operands.
func (t *JoinTable) Validate() error {
	for a := Domain(0); a < NumDomains; a++ {
		if t[a][a] != a {
			return fmt.Errorf("%w: join(%s, %s) = %s", ErrNotReflexive, a, a, t[a][a])
		}
		for b := Domain(0); b < NumDomains; b++ {
			r, ok := t.Lookup(a, b)
			if !ok {
				continue
			}
			if !CanCoerce(a, r) || !CanCoerce(b, r) {
				return fmt.Errorf("%w: join(%s, %s) = %s", ErrNoCoercion, a, b, r)
			}
		}
	}
	return nil
}

// Flavor selects the join used when a value is consumed in a particular
// role.
type Flavor uint8

const (
	Plain Flavor = iota
	Index
	Scalar
)

// Options configures a Lattice.
type Options struct {
	Joins JoinTable
	// LiftDomain receives lifted constants.
	LiftDomain Domain
	// AnyDomain receives unconstrained values.
	AnyDomain Domain
	// IndexDomain and ScalarDomain give, per domain, the target joined
	// with a value consumed as a memory index or as a stored scalar.
	IndexDomain  [NumDomains]Domain
	ScalarDomain [NumDomains]Domain
}

// DefaultOptions lifts into Constant, draws unknowns from Interval and
// resolves both flavors to the consuming domain itself.
func DefaultOptions() Options {
	o := Options{
		Joins:      DefaultJoinTable(),
		LiftDomain: Constant,
		AnyDomain:  Interval,
	}
	for d := Domain(0); d < NumDomains; d++ {
		o.IndexDomain[d] = d
		o.ScalarDomain[d] = d
	}
	return o
}

func (o *Options) Validate() error {
	if err := o.Joins.Validate(); err != nil {
		return err
	}
	if o.LiftDomain >= NumDomains {
		return fmt.Errorf("%w: lift domain %d", ErrBadDomain, o.LiftDomain)
	}
	if o.AnyDomain >= NumDomains || o.AnyDomain == Constant {
		return fmt.Errorf("%w: any domain %s cannot hold an unknown value", ErrBadDomain, o.AnyDomain)
	}
	for d := Domain(0); d < NumDomains; d++ {
		if o.IndexDomain[d] >= NumDomains || o.ScalarDomain[d] >= NumDomains {
			return fmt.Errorf("%w: flavor target of %s", ErrBadDomain, d)
		}
	}
	return nil
}

func failf(op, format string, args ...any) {
	engine.Fail("multi", op, fmt.Sprintf(format, args...))
}
