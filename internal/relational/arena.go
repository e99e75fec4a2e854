// Package relational records the operator graph behind every value so
// that assumptions on a result narrow the values it was computed from.
package relational

import (
	"fmt"

	"github.com/gnoswap-labs/lamp/internal/domain/constant"
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/product"
	"github.com/gnoswap-labs/lamp/internal/tristate"
)

const name = "relational"

// Handle identifies a node in an Arena. Handles stay valid until the
// arena is reset or restored to a snapshot taken before they existed.
type Handle int32

// None marks a missing operand.
const None Handle = -1

func (h Handle) String() string {
	if h == None {
		return "_"
	}
	return fmt.Sprintf("%%%d", int32(h))
}

type node struct {
	val  product.Value
	args [2]Handle
}

// Arena owns the nodes of one exploration path. Operands always precede
// the nodes built from them.
type Arena struct {
	dom   *product.Domain
	nodes []node
}

func New(dom *product.Domain) *Arena {
	return &Arena{dom: dom}
}

func (a *Arena) Domain() *product.Domain { return a.dom }

func (a *Arena) Context() *engine.Context { return a.dom.Lattice().Context() }

// Len returns the number of nodes.
func (a *Arena) Len() int { return len(a.nodes) }

func (a *Arena) push(v product.Value, x, y Handle) Handle {
	a.nodes = append(a.nodes, node{val: v, args: [2]Handle{x, y}})
	return Handle(len(a.nodes) - 1)
}

func (a *Arena) node(h Handle) *node {
	if h < 0 || int(h) >= len(a.nodes) {
		engine.Fail(name, "handle", fmt.Sprintf("%s is not in an arena of %d nodes", h, len(a.nodes)))
	}
	return &a.nodes[h]
}

// Value returns the current abstraction of h.
func (a *Arena) Value(h Handle) product.Value { return a.node(h).val }

// Tag returns the operator that produced h.
func (a *Arena) Tag(h Handle) op.Tag { return a.node(h).val.Tag }

// Args returns the operands of h; absent operands are None.
func (a *Arena) Args(h Handle) [2]Handle { return a.node(h).args }

func (a *Arena) Lift(c constant.Value) Handle {
	return a.push(a.dom.Lift(c), None, None)
}

func (a *Arena) Any(width uint8) Handle {
	return a.push(a.dom.Any(width), None, None)
}

func (a *Arena) AnyRange(from, to int64, width uint8) Handle {
	return a.push(a.dom.AnyRange(from, to, width), None, None)
}

func (a *Arena) AnyURange(from, to uint64, width uint8) Handle {
	return a.push(a.dom.AnyURange(from, to, width), None, None)
}

func (a *Arena) Binary(tag op.Tag, x, y Handle) Handle {
	v := a.dom.Binary(tag, a.Value(x), a.Value(y))
	return a.push(v, x, y)
}

func (a *Arena) Cast(tag op.Tag, x Handle, bw uint8) Handle {
	v := a.dom.Cast(tag, a.Value(x), bw)
	return a.push(v, x, None)
}

func (a *Arena) Extract(x Handle, from, to uint8) Handle {
	return a.push(a.dom.Extract(a.Value(x), from, to), x, None)
}

func (a *Arena) Concat(x, y Handle, width uint8) Handle {
	return a.push(a.dom.Concat(a.Value(x), a.Value(y), width), x, y)
}

func (a *Arena) Load(p Handle, width uint8) Handle {
	return a.push(a.dom.Load(a.Value(p), width), p, None)
}

func (a *Arena) LoadAt(p, idx Handle, width uint8) Handle {
	return a.push(a.dom.LoadAt(a.Value(p), a.Value(idx), width), p, idx)
}

func (a *Arena) Store(p, v Handle) {
	a.dom.Store(a.Value(p), a.Value(v))
}

func (a *Arena) ToTristate(h Handle) tristate.Tristate {
	return a.dom.ToTristate(a.Value(h))
}

// Lower picks a witness of h and records it as a new node.
func (a *Arena) Lower(h Handle, width uint8) (constant.Value, Handle) {
	c, v := a.dom.Lower(a.Value(h), width)
	return c, a.push(v, h, None)
}

// Assume narrows h to the given truth value and propagates the
// narrowing backward through the operators h was computed from.
func (a *Arena) Assume(h Handle, expected bool) {
	a.dom.Assume(&a.node(h).val, expected)
	a.propagate(h)
}

// Snapshot captures the arena contents.
type Snapshot struct {
	nodes []node
}

// Len returns the number of nodes captured.
func (s Snapshot) Len() int { return len(s.nodes) }

func (a *Arena) Snapshot() Snapshot {
	return Snapshot{nodes: append([]node(nil), a.nodes...)}
}

// Restore rewinds the arena to s. Handles created after s was taken
// become invalid.
func (a *Arena) Restore(s Snapshot) {
	a.nodes = append(a.nodes[:0], s.nodes...)
}

// Reset drops every node.
func (a *Arena) Reset() {
	a.nodes = a.nodes[:0]
}
