package explore

// signal is the panic value the replay oracle unwinds a path with.
type signal uint8

const (
	cancelled signal = iota + 1
	bounded
)

// choice is one answered Choose call.
type choice struct {
	value, n int
}

// replay answers choices from a fixed prefix and picks 0 beyond it,
// recording every answer so the next path can be derived.
type replay struct {
	prefix   []int
	taken    []choice
	maxDepth int
}

func (r *replay) reset(prefix []int) {
	r.prefix = prefix
	r.taken = r.taken[:0]
}

func (r *replay) Choose(n int) int {
	depth := len(r.taken)
	if depth >= r.maxDepth {
		panic(bounded)
	}
	v := 0
	if depth < len(r.prefix) {
		v = r.prefix[depth]
	}
	r.taken = append(r.taken, choice{value: v, n: n})
	return v
}

func (r *replay) Cancel() {
	panic(cancelled)
}

// choices returns the answers given on the current path.
func (r *replay) choices() []int {
	out := make([]int, len(r.taken))
	for i, c := range r.taken {
		out[i] = c.value
	}
	return out
}

// next advances the odometer: the deepest choice with an untried
// alternative is incremented and everything below it is dropped.
func (r *replay) next() ([]int, bool) {
	for i := len(r.taken) - 1; i >= 0; i-- {
		c := r.taken[i]
		if c.value+1 < c.n {
			prefix := r.choices()[:i+1]
			prefix[i]++
			return prefix, true
		}
	}
	return nil, false
}
