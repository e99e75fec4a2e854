// Package enginetest provides a scripted oracle for tests.
package enginetest

import (
	"errors"

	"github.com/gnoswap-labs/lamp/internal/engine"
	"go.uber.org/zap"
)

// ErrCancelled is the panic value raised by Oracle.Cancel.
var ErrCancelled = errors.New("enginetest: path cancelled")

// Oracle answers Choose from a script and counts calls. Once the script
// is exhausted every answer is 0.
type Oracle struct {
	Script  []int
	Asked   []int
	Cancels int
}

func (o *Oracle) Choose(n int) int {
	o.Asked = append(o.Asked, n)
	if len(o.Script) == 0 {
		return 0
	}
	v := o.Script[0]
	o.Script = o.Script[1:]
	return v
}

func (o *Oracle) Cancel() {
	o.Cancels++
	panic(ErrCancelled)
}

// NewContext returns a context over a fresh scripted oracle.
func NewContext(script ...int) (*engine.Context, *Oracle) {
	o := &Oracle{Script: script}
	return engine.NewContext(o, engine.DefaultConfig(), zap.NewNop()), o
}

// NewContextWithBound is NewContext with a custom choose bound.
func NewContextWithBound(bound uint32, script ...int) (*engine.Context, *Oracle) {
	o := &Oracle{Script: script}
	return engine.NewContext(o, engine.Config{ChooseBound: bound}, zap.NewNop()), o
}

// Cancelled runs fn and reports whether it ended in a cancel.
func Cancelled(fn func()) (cancelled bool) {
	defer func() {
		if r := recover(); r != nil {
			if r != ErrCancelled {
				panic(r)
			}
			cancelled = true
		}
	}()
	fn()
	return false
}
