package relational

import (
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/product"
)

// backwardFunc narrows the operands of node h from its current value.
type backwardFunc func(a *Arena, h Handle)

var backward [op.NumTags]backwardFunc

func init() {
	for t := op.Tag(0); t < op.NumTags; t++ {
		switch t.Class() {
		case op.ClassBinary, op.ClassCompare:
			backward[t] = binary
		case op.ClassCast:
			backward[t] = cast
		case op.ClassFloat:
			if t >= op.FPTrunc {
				backward[t] = cast
			} else {
				backward[t] = binary
			}
		default:
			backward[t] = unsupported
		}
	}
	backward[op.Unknown] = unknown
	backward[op.Lift] = leaf
	backward[op.Any] = leaf
	backward[op.Lower] = leaf

	for _, t := range []op.Tag{op.Join, op.Meet, op.FNeg, op.IntToPtr, op.PtrToInt} {
		backward[t] = unsupported
	}
}

// propagate narrows the producers of h and then, recursively, their own
// producers. Leaves stop the recursion.
func (a *Arena) propagate(h Handle) {
	backward[a.node(h).val.Tag](a, h)
}

func leaf(*Arena, Handle) {}

func unknown(a *Arena, h Handle) {
	engine.Fail(name, "backward", "unknown operator tag at "+h.String())
}

func unsupported(a *Arena, h Handle) {
	engine.Fail(name, "backward", "unsupported operator "+a.Tag(h).String())
}

func binary(a *Arena, h Handle) {
	n := a.node(h)
	x, y := n.args[0], n.args[1]
	xv, yv := a.Value(x), a.Value(y)
	a.dom.Backward(n.val, &xv, &yv)
	if x == y {
		xv = a.meet(xv, yv)
		yv = xv
	}
	a.node(x).val = xv
	a.node(y).val = yv
	a.propagate(x)
	if y != x {
		a.propagate(y)
	}
}

func cast(a *Arena, h Handle) {
	n := a.node(h)
	x := n.args[0]
	xv := a.Value(x)
	a.dom.BackwardCast(n.val, &xv)
	a.node(x).val = xv
	a.propagate(x)
}

// meet combines two narrowings of the same operand.
func (a *Arena) meet(x, y product.Value) product.Value {
	if x.Primary == y.Primary {
		return x
	}
	lat := a.dom.Lattice()
	return product.Value{Primary: lat.Binary(op.Meet, x.Primary, y.Primary), Tag: x.Tag}
}
