// Package tristate implements the three-valued logic used to interpret
// abstract booleans.
package tristate

import "github.com/gnoswap-labs/lamp/internal/engine"

// Tristate is a boolean that may be undetermined.
type Tristate uint8

const (
	False Tristate = iota
	True
	Maybe
)

// Lift converts a concrete boolean.
func Lift(b bool) Tristate {
	if b {
		return True
	}
	return False
}

func (t Tristate) String() string {
	switch t {
	case False:
		return "false"
	case True:
		return "true"
	case Maybe:
		return "maybe"
	default:
		return "invalid"
	}
}

// IsTrue reports whether t is definitely true.
func (t Tristate) IsTrue() bool { return t == True }

// IsFalse reports whether t is definitely false.
func (t Tristate) IsFalse() bool { return t == False }

// Not negates t. Maybe stays maybe.
func (t Tristate) Not() Tristate {
	switch t {
	case False:
		return True
	case True:
		return False
	default:
		return Maybe
	}
}

// And is the Kleene conjunction.
func (t Tristate) And(o Tristate) Tristate {
	if t == False || o == False {
		return False
	}
	if t == True && o == True {
		return True
	}
	return Maybe
}

// Or is the Kleene disjunction.
func (t Tristate) Or(o Tristate) Tristate {
	if t == True || o == True {
		return True
	}
	if t == False && o == False {
		return False
	}
	return Maybe
}

// Eq compares two tristates; any maybe operand yields maybe.
func (t Tristate) Eq(o Tristate) Tristate {
	if t == Maybe || o == Maybe {
		return Maybe
	}
	return Lift(t == o)
}

// Ne is the negation of Eq.
func (t Tristate) Ne(o Tristate) Tristate {
	return t.Eq(o).Not()
}

// Lower resolves t to a concrete boolean, asking the oracle when t is maybe.
func (t Tristate) Lower(ctx *engine.Context) bool {
	switch t {
	case True:
		return true
	case False:
		return false
	default:
		return ctx.Choose(2) == 1
	}
}
