package interval

import (
	"math"
	"testing"

	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/engine/enginetest"
	"github.com/gnoswap-labs/lamp/internal/op"
	"github.com/gnoswap-labs/lamp/internal/tristate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv(lo, hi Bound) Value { return Value{Lo: lo, Hi: hi} }

// forEachPath runs fn once per distinct sequence of oracle answers and
// reports whether each run survived without a cancel.
func forEachPath(bound uint32, fn func(ctx *engine.Context), done func(feasible bool)) int {
	var prefix []int
	paths := 0
	for {
		ctx, o := enginetest.NewContextWithBound(bound, prefix...)
		cancelled := enginetest.Cancelled(func() { fn(ctx) })
		done(!cancelled)
		paths++

		choices := make([]int, len(o.Asked))
		copy(choices, prefix)
		k := len(choices) - 1
		for k >= 0 && choices[k]+1 >= o.Asked[k] {
			k--
		}
		if k < 0 {
			return paths
		}
		prefix = append(choices[:k:k], choices[k]+1)
	}
}

func TestScenario(t *testing.T) {
	t.Parallel()

	ctx, _ := enginetest.NewContext()
	a, b := iv(1, 6), iv(4, 10)
	r := Binary(ctx, op.Add, a, b)
	assert.Equal(t, iv(5, 16), r)

	t.Run("no overshoot is deterministic", func(t *testing.T) {
		t.Parallel()
		ctx, o := enginetest.NewContext()
		a, b := iv(1, 6), iv(4, 10)
		Backward(ctx, op.Add, iv(5, 16), &a, &b)
		assert.Empty(t, o.Asked)
		assert.Equal(t, iv(1, 6), a)
		assert.Equal(t, iv(4, 10), b)
	})

	t.Run("overshoot asks the oracle", func(t *testing.T) {
		t.Parallel()
		ctx, o := enginetest.NewContext(2)
		a, b := iv(1, 6), iv(4, 10)
		narrowed := Meet(r, iv(NegInf, 10))
		Backward(ctx, op.Add, narrowed, &a, &b)
		// b is first cut to [4, 9]; the high sum overshoots by 5.
		assert.Equal(t, []int{6}, o.Asked)
		assert.Equal(t, iv(1, 4), a)
		assert.Equal(t, iv(4, 6), b)
	})

	t.Run("bound zero disables choice", func(t *testing.T) {
		t.Parallel()
		ctx, o := enginetest.NewContextWithBound(0)
		a, b := iv(1, 6), iv(4, 10)
		Backward(ctx, op.Add, iv(5, 10), &a, &b)
		assert.Empty(t, o.Asked)
		assert.Equal(t, iv(1, 6), a)
		assert.Equal(t, iv(4, 9), b)
	})
}

func TestForwardSoundnessI8(t *testing.T) {
	t.Parallel()

	b := func(v bool) int64 {
		if v {
			return 1
		}
		return 0
	}
	ops := map[op.Tag]func(x, y int64) (int64, bool){
		op.Add: func(x, y int64) (int64, bool) { return x + y, true },
		op.Sub: func(x, y int64) (int64, bool) { return x - y, true },
		op.Mul: func(x, y int64) (int64, bool) { return x * y, true },
		op.SDiv: func(x, y int64) (int64, bool) {
			if y == 0 {
				return 0, false
			}
			return x / y, true
		},
		op.SRem: func(x, y int64) (int64, bool) {
			if y == 0 {
				return 0, false
			}
			return x % y, true
		},
		op.Shl:  func(x, y int64) (int64, bool) { return x << uint(y), y >= 0 && y < 8 },
		op.AShr: func(x, y int64) (int64, bool) { return x >> uint(y), y >= 0 && y < 8 },
		op.Eq:   func(x, y int64) (int64, bool) { return b(x == y), true },
		op.Ne:   func(x, y int64) (int64, bool) { return b(x != y), true },
		op.Slt:  func(x, y int64) (int64, bool) { return b(x < y), true },
		op.Sle:  func(x, y int64) (int64, bool) { return b(x <= y), true },
		op.Sgt:  func(x, y int64) (int64, bool) { return b(x > y), true },
		op.Sge:  func(x, y int64) (int64, bool) { return b(x >= y), true },
		op.And:  func(x, y int64) (int64, bool) { return x & y, true },
	}

	ctx, _ := enginetest.NewContext()
	for tag, fn := range ops {
		for x := int64(math.MinInt8); x <= math.MaxInt8; x++ {
			for y := int64(math.MinInt8); y <= math.MaxInt8; y++ {
				want, defined := fn(x, y)
				if !defined {
					continue
				}
				got := Binary(ctx, tag, Lift(x), Lift(y))
				if !got.Contains(want) {
					t.Fatalf("%s(%d, %d) = %d not in %s", tag, x, y, want, got)
				}
			}
		}
	}
}

func smallRanges() []Value {
	var out []Value
	for lo := Bound(-4); lo <= 4; lo++ {
		for hi := lo; hi <= 4; hi++ {
			out = append(out, iv(lo, hi))
		}
	}
	return out
}

func TestForwardSoundnessRanges(t *testing.T) {
	t.Parallel()

	ops := map[op.Tag]func(x, y int64) (int64, bool){
		op.Add: func(x, y int64) (int64, bool) { return x + y, true },
		op.Sub: func(x, y int64) (int64, bool) { return x - y, true },
		op.Mul: func(x, y int64) (int64, bool) { return x * y, true },
		op.SDiv: func(x, y int64) (int64, bool) {
			if y == 0 {
				return 0, false
			}
			return x / y, true
		},
		op.SRem: func(x, y int64) (int64, bool) {
			if y == 0 {
				return 0, false
			}
			return x % y, true
		},
		op.Shl:  func(x, y int64) (int64, bool) { return x << uint(y), y >= 0 },
		op.AShr: func(x, y int64) (int64, bool) { return x >> uint(y), y >= 0 },
	}
	ctx, _ := enginetest.NewContext()
	for tag, fn := range ops {
		for _, a := range smallRanges() {
			for _, b := range smallRanges() {
				if (tag == op.SDiv || tag == op.SRem) && b.Contains(0) {
					continue
				}
				if (tag == op.Shl || tag == op.AShr) && b.Lo < 0 {
					continue
				}
				got := Binary(ctx, tag, a, b)
				for x := a.Lo; x <= a.Hi; x++ {
					for y := b.Lo; y <= b.Hi; y++ {
						want, _ := fn(int64(x), int64(y))
						if !got.Contains(want) {
							t.Fatalf("%s(%s, %s) = %s misses %d", tag, a, b, got, want)
						}
					}
				}
			}
		}
	}
}

func TestDivisorContainingZeroCancels(t *testing.T) {
	t.Parallel()

	for _, tag := range []op.Tag{op.SDiv, op.SRem, op.UDiv, op.URem} {
		ctx, o := enginetest.NewContext()
		assert.True(t, enginetest.Cancelled(func() { Binary(ctx, tag, iv(1, 5), iv(-1, 1)) }), tag.String())
		assert.Equal(t, 1, o.Cancels)
	}
}

func TestMeetCommutesIntersectIdempotent(t *testing.T) {
	t.Parallel()

	ctx, _ := enginetest.NewContext()
	for _, a := range smallRanges() {
		for _, b := range smallRanges() {
			assert.Equal(t, Meet(a, b), Meet(b, a))
			assert.Equal(t, Join(a, b), Join(b, a))
			if Meet(a, b).IsBottom() {
				continue
			}
			once := a
			Intersect(ctx, &once, b)
			twice := once
			Intersect(ctx, &twice, b)
			assert.Equal(t, once, twice)
		}
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  op.Tag
		a, b Value
		want tristate.Tristate
	}{
		{op.Eq, iv(3, 3), iv(3, 3), tristate.True},
		{op.Eq, iv(1, 2), iv(3, 4), tristate.False},
		{op.Eq, iv(1, 3), iv(3, 4), tristate.Maybe},
		{op.Slt, iv(1, 2), iv(3, 4), tristate.True},
		{op.Slt, iv(3, 4), iv(1, 3), tristate.False},
		{op.Sle, iv(1, 3), iv(3, 4), tristate.True},
		{op.Sgt, iv(5, 9), iv(1, 4), tristate.True},
		{op.Sge, iv(1, 3), iv(3, 4), tristate.Maybe},
		{op.Ult, iv(1, 2), iv(3, 4), tristate.True},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compare(tt.tag, tt.a, tt.b), "%s %s %s", tt.tag, tt.a, tt.b)
	}
}

func TestAssumeAndTristate(t *testing.T) {
	t.Parallel()

	ctx, _ := enginetest.NewContext()
	assert.Equal(t, tristate.False, ToTristate(ctx, Point(0)))
	assert.Equal(t, tristate.Maybe, ToTristate(ctx, iv(0, 1)))
	assert.Equal(t, tristate.True, ToTristate(ctx, iv(2, 9)))

	v := iv(0, 1)
	Assume(ctx, &v, true)
	assert.Equal(t, Point(1), v)

	v = iv(-3, 8)
	Assume(ctx, &v, false)
	assert.Equal(t, Point(0), v)
}

func TestCancelPropagation(t *testing.T) {
	t.Parallel()

	ctx, o := enginetest.NewContext()
	v := Point(5)
	reached := false
	cancelled := enginetest.Cancelled(func() {
		Assume(ctx, &v, false)
		reached = true
	})
	assert.True(t, cancelled)
	assert.False(t, reached)
	assert.Equal(t, 1, o.Cancels)
}

func TestBackwardAddSound(t *testing.T) {
	t.Parallel()

	ranges := smallRanges()
	for _, a := range ranges {
		for _, b := range ranges {
			r, _ := add(a, b)
			for lo := r.Lo; lo <= r.Hi; lo += 2 {
				for hi := lo; hi <= r.Hi; hi += 3 {
					constraint := iv(lo, hi)
					covered := map[[2]Bound]bool{}
					var gotA, gotB Value
					forEachPath(200, func(ctx *engine.Context) {
						gotA, gotB = a, b
						Backward(ctx, op.Add, constraint, &gotA, &gotB)
					}, func(feasible bool) {
						if !feasible {
							return
						}
						require.True(t, Leq(gotA, a), "a' %s not in %s", gotA, a)
						require.True(t, Leq(gotB, b), "b' %s not in %s", gotB, b)
						sum, _ := add(gotA, gotB)
						require.False(t, Meet(sum, constraint).IsBottom())
						for x := gotA.Lo; x <= gotA.Hi; x++ {
							for y := gotB.Lo; y <= gotB.Hi; y++ {
								covered[[2]Bound{x, y}] = true
							}
						}
					})
					for x := a.Lo; x <= a.Hi; x++ {
						for y := b.Lo; y <= b.Hi; y++ {
							if constraint.Contains(int64(x + y)) {
								require.True(t, covered[[2]Bound{x, y}],
									"a=%s b=%s r=%s lost (%d, %d)", a, b, constraint, x, y)
							}
						}
					}
				}
			}
		}
	}
}

func TestBackwardCompareSound(t *testing.T) {
	t.Parallel()

	rel := map[op.Tag]func(x, y Bound) bool{
		op.Eq:  func(x, y Bound) bool { return x == y },
		op.Ne:  func(x, y Bound) bool { return x != y },
		op.Slt: func(x, y Bound) bool { return x < y },
		op.Sle: func(x, y Bound) bool { return x <= y },
		op.Sgt: func(x, y Bound) bool { return x > y },
		op.Sge: func(x, y Bound) bool { return x >= y },
	}
	ranges := smallRanges()
	for tag, holds := range rel {
		for _, outcome := range []bool{true, false} {
			for _, a := range ranges {
				for _, b := range ranges {
					covered := map[[2]Bound]bool{}
					var gotA, gotB Value
					forEachPath(200, func(ctx *engine.Context) {
						gotA, gotB = a, b
						Backward(ctx, tag, FromTristate(tristate.Lift(outcome)), &gotA, &gotB)
					}, func(feasible bool) {
						if !feasible {
							return
						}
						for x := gotA.Lo; x <= gotA.Hi; x++ {
							for y := gotB.Lo; y <= gotB.Hi; y++ {
								covered[[2]Bound{x, y}] = true
							}
						}
					})
					for x := a.Lo; x <= a.Hi; x++ {
						for y := b.Lo; y <= b.Hi; y++ {
							if holds(x, y) == outcome {
								require.True(t, covered[[2]Bound{x, y}],
									"%s=%v a=%s b=%s lost (%d, %d)", tag, outcome, a, b, x, y)
							}
						}
					}
				}
			}
		}
	}
}

func TestBackwardSubMulSound(t *testing.T) {
	t.Parallel()

	concrete := map[op.Tag]func(x, y Bound) Bound{
		op.Sub: func(x, y Bound) Bound { return x - y },
		op.Mul: func(x, y Bound) Bound { return x * y },
	}
	ranges := smallRanges()
	for tag, fn := range concrete {
		for _, a := range ranges {
			for _, b := range ranges {
				ctx, _ := enginetest.NewContext()
				r := Binary(ctx, tag, a, b)
				constraint := Meet(r, iv(r.Lo+1, r.Hi-1))
				if constraint.IsBottom() {
					continue
				}
				covered := map[[2]Bound]bool{}
				var gotA, gotB Value
				forEachPath(200, func(ctx *engine.Context) {
					gotA, gotB = a, b
					Backward(ctx, tag, constraint, &gotA, &gotB)
				}, func(feasible bool) {
					if !feasible {
						return
					}
					for x := gotA.Lo; x <= gotA.Hi; x++ {
						for y := gotB.Lo; y <= gotB.Hi; y++ {
							covered[[2]Bound{x, y}] = true
						}
					}
				})
				for x := a.Lo; x <= a.Hi; x++ {
					for y := b.Lo; y <= b.Hi; y++ {
						if constraint.Contains(int64(fn(x, y))) {
							require.True(t, covered[[2]Bound{x, y}],
								"%s a=%s b=%s r=%s lost (%d, %d)", tag, a, b, constraint, x, y)
						}
					}
				}
			}
		}
	}
}

func TestBackwardUnsupportedIsNoop(t *testing.T) {
	t.Parallel()

	ctx, o := enginetest.NewContext()
	a, b := iv(0, 9), iv(1, 2)
	Backward(ctx, op.Xor, iv(3, 3), &a, &b)
	assert.Equal(t, iv(0, 9), a)
	assert.Equal(t, iv(1, 2), b)
	assert.Zero(t, o.Cancels)
}

func TestLower(t *testing.T) {
	t.Parallel()

	ctx, o := enginetest.NewContextWithBound(10, 3, 4)
	assert.Equal(t, int64(5), Lower(ctx, iv(2, 8)))
	assert.Equal(t, int64(-6), Lower(ctx, iv(NegInf, 0)))
	assert.Equal(t, []int{7, 11}, o.Asked)
}
