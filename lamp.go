// Package lamp is the uniform operation surface of the abstraction engine.
// A Lamp owns one engine context and one relational arena; every value it
// hands out is a handle into that arena.
package lamp

import (
	"io"

	"github.com/gnoswap-labs/lamp/internal/domain/constant"
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/multi"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/product"
	"github.com/gnoswap-labs/lamp/internal/relational"
	"github.com/gnoswap-labs/lamp/internal/trace"
	"github.com/gnoswap-labs/lamp/internal/tristate"
	"go.uber.org/zap"
)

type (
	// Handle refers to an abstract value owned by a Lamp.
	Handle = relational.Handle
	// Constant is a concrete witness extracted by Lower.
	Constant = constant.Value
	// Tristate is the truth value of an abstract boolean.
	Tristate = tristate.Tristate
	// Oracle answers choices and cancels infeasible paths.
	Oracle = engine.Oracle
	// Snapshot is a saved arena state.
	Snapshot = relational.Snapshot
)

const (
	False = tristate.False
	True  = tristate.True
	Maybe = tristate.Maybe
)

// Lamp evaluates operators over abstract values.
type Lamp struct {
	cfg   Config
	ctx   *engine.Context
	arena *relational.Arena
}

// New creates a Lamp over oracle. A nil logger disables logging.
func New(cfg Config, oracle Oracle, logger *zap.Logger) (*Lamp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := cfg.latticeOptions()
	if err != nil {
		return nil, err
	}
	strategy, _ := product.ParseStrategy(cfg.Product.Tristate)

	ctx := engine.NewContext(oracle, engine.Config{ChooseBound: cfg.ChooseBound}, logger)
	dom := product.New(multi.New(ctx, opts), strategy)
	return &Lamp{cfg: cfg, ctx: ctx, arena: relational.New(dom)}, nil
}

func (l *Lamp) Config() Config           { return l.cfg }
func (l *Lamp) Context() *engine.Context { return l.ctx }
func (l *Lamp) Arena() *relational.Arena { return l.arena }
func (l *Lamp) Logger() *zap.Logger      { return l.ctx.Logger() }

func (l *Lamp) lift(c constant.Value) Handle { return l.arena.Lift(c) }

func (l *Lamp) LiftI1(v bool) Handle     { return l.lift(constant.Bool(v)) }
func (l *Lamp) LiftI8(v uint8) Handle    { return l.lift(constant.New(uint64(v), 8)) }
func (l *Lamp) LiftI16(v uint16) Handle  { return l.lift(constant.New(uint64(v), 16)) }
func (l *Lamp) LiftI32(v uint32) Handle  { return l.lift(constant.New(uint64(v), 32)) }
func (l *Lamp) LiftI64(v uint64) Handle  { return l.lift(constant.New(v, 64)) }
func (l *Lamp) LiftSI8(v int8) Handle    { return l.lift(constant.Int(int64(v), 8)) }
func (l *Lamp) LiftSI16(v int16) Handle  { return l.lift(constant.Int(int64(v), 16)) }
func (l *Lamp) LiftSI32(v int32) Handle  { return l.lift(constant.Int(int64(v), 32)) }
func (l *Lamp) LiftSI64(v int64) Handle  { return l.lift(constant.Int(v, 64)) }
func (l *Lamp) LiftF32(v float32) Handle { return l.lift(constant.Float32(v)) }
func (l *Lamp) LiftF64(v float64) Handle { return l.lift(constant.Float64(v)) }
func (l *Lamp) LiftPtr(p uint64) Handle  { return l.lift(constant.Pointer(p)) }

// LiftArr lifts every byte of b.
func (l *Lamp) LiftArr(b []byte) []Handle {
	hs := make([]Handle, len(b))
	for i, v := range b {
		hs[i] = l.LiftI8(v)
	}
	return hs
}

// Integer lists the machine integer types Any and AnyRange accept.
type Integer interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64
}

func widthOf[T Integer]() uint8 {
	var zero T
	switch any(zero).(type) {
	case int8, uint8:
		return 8
	case int16, uint16:
		return 16
	case int32, uint32:
		return 32
	default:
		return 64
	}
}

// Any returns an unconstrained value of type T.
func Any[T Integer](l *Lamp) Handle {
	return l.arena.Any(widthOf[T]())
}

// AnyBool returns an unconstrained boolean.
func (l *Lamp) AnyBool() Handle {
	return l.arena.AnyRange(0, 1, 1)
}

// AnyRange returns a value of type T known to lie in [from, to].
func AnyRange[T Integer](l *Lamp, from, to T) Handle {
	if unsigned[T]() {
		return l.arena.AnyURange(uint64(from), uint64(to), widthOf[T]())
	}
	return l.arena.AnyRange(int64(from), int64(to), widthOf[T]())
}

func unsigned[T Integer]() bool {
	var zero T
	return zero-1 > 0
}

func (l *Lamp) binary(tag op.Tag, a, b Handle) Handle { return l.arena.Binary(tag, a, b) }

func (l *Lamp) Add(a, b Handle) Handle  { return l.binary(op.Add, a, b) }
func (l *Lamp) Sub(a, b Handle) Handle  { return l.binary(op.Sub, a, b) }
func (l *Lamp) Mul(a, b Handle) Handle  { return l.binary(op.Mul, a, b) }
func (l *Lamp) SDiv(a, b Handle) Handle { return l.binary(op.SDiv, a, b) }
func (l *Lamp) UDiv(a, b Handle) Handle { return l.binary(op.UDiv, a, b) }
func (l *Lamp) SRem(a, b Handle) Handle { return l.binary(op.SRem, a, b) }
func (l *Lamp) URem(a, b Handle) Handle { return l.binary(op.URem, a, b) }
func (l *Lamp) And(a, b Handle) Handle  { return l.binary(op.And, a, b) }
func (l *Lamp) Or(a, b Handle) Handle   { return l.binary(op.Or, a, b) }
func (l *Lamp) Xor(a, b Handle) Handle  { return l.binary(op.Xor, a, b) }
func (l *Lamp) Shl(a, b Handle) Handle  { return l.binary(op.Shl, a, b) }
func (l *Lamp) LShr(a, b Handle) Handle { return l.binary(op.LShr, a, b) }
func (l *Lamp) AShr(a, b Handle) Handle { return l.binary(op.AShr, a, b) }
func (l *Lamp) Eq(a, b Handle) Handle   { return l.binary(op.Eq, a, b) }
func (l *Lamp) Ne(a, b Handle) Handle   { return l.binary(op.Ne, a, b) }
func (l *Lamp) Slt(a, b Handle) Handle  { return l.binary(op.Slt, a, b) }
func (l *Lamp) Sle(a, b Handle) Handle  { return l.binary(op.Sle, a, b) }
func (l *Lamp) Sgt(a, b Handle) Handle  { return l.binary(op.Sgt, a, b) }
func (l *Lamp) Sge(a, b Handle) Handle  { return l.binary(op.Sge, a, b) }
func (l *Lamp) Ult(a, b Handle) Handle  { return l.binary(op.Ult, a, b) }
func (l *Lamp) Ule(a, b Handle) Handle  { return l.binary(op.Ule, a, b) }
func (l *Lamp) Ugt(a, b Handle) Handle  { return l.binary(op.Ugt, a, b) }
func (l *Lamp) Uge(a, b Handle) Handle  { return l.binary(op.Uge, a, b) }
func (l *Lamp) Join(a, b Handle) Handle { return l.binary(op.Join, a, b) }
func (l *Lamp) Meet(a, b Handle) Handle { return l.binary(op.Meet, a, b) }

func (l *Lamp) ZExt(a Handle, bw uint8) Handle  { return l.arena.Cast(op.ZExt, a, bw) }
func (l *Lamp) SExt(a Handle, bw uint8) Handle  { return l.arena.Cast(op.SExt, a, bw) }
func (l *Lamp) Trunc(a Handle, bw uint8) Handle { return l.arena.Cast(op.Trunc, a, bw) }
func (l *Lamp) ZFit(a Handle, bw uint8) Handle  { return l.arena.Cast(op.ZFit, a, bw) }

// Extract returns bits [from, to) of a.
func (l *Lamp) Extract(a Handle, from, to uint8) Handle { return l.arena.Extract(a, from, to) }

// Concat places a above b in a value of the given width.
func (l *Lamp) Concat(a, b Handle, width uint8) Handle { return l.arena.Concat(a, b, width) }

func (l *Lamp) Load(p Handle, width uint8) Handle        { return l.arena.Load(p, width) }
func (l *Lamp) LoadAt(p, idx Handle, width uint8) Handle { return l.arena.LoadAt(p, idx, width) }
func (l *Lamp) Store(p, v Handle)                        { l.arena.Store(p, v) }

func (l *Lamp) ToTristate(h Handle) Tristate { return l.arena.ToTristate(h) }

// Assume restricts execution to the paths where h is expected. Operands h
// was computed from are narrowed accordingly.
func (l *Lamp) Assume(h Handle, expected bool) { l.arena.Assume(h, expected) }

// Lower picks a concrete witness of h. The witness is also recorded as a
// new value.
func (l *Lamp) Lower(h Handle, width uint8) (Constant, Handle) {
	return l.arena.Lower(h, width)
}

// Trace returns the one-line description of h.
func (l *Lamp) Trace(h Handle) string { return trace.Value(l.arena.Value(h)) }

// Dump writes every value to w.
func (l *Lamp) Dump(w io.Writer) error { return trace.Dump(w, l.arena) }

func (l *Lamp) Snapshot() Snapshot { return l.arena.Snapshot() }
func (l *Lamp) Restore(s Snapshot) { l.arena.Restore(s) }
