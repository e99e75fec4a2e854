// Package explore enumerates every path of a program over the abstract
// engine by depth-first replay of the oracle's choices.
package explore

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnoswap-labs/lamp"
	"github.com/gnoswap-labs/lamp/internal/analysis/lattice"
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/trie"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrSetupChoice is returned when a program's setup asks the oracle.
var ErrSetupChoice = errors.New("setup must not make choices")

// Outcome is how a path ended.
type Outcome uint8

const (
	Completed Outcome = iota
	Cancelled
	Faulted
	Bounded
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Faulted:
		return "faulted"
	case Bounded:
		return "bounded"
	default:
		return fmt.Sprintf("outcome(%d)", o)
	}
}

// Program is explored from the state Setup leaves behind.
type Program struct {
	Name  string
	Setup func(*Path)
	Body  func(*Path)
}

// PathResult records one explored path.
type PathResult struct {
	Choices []int
	Outcome Outcome
	Fault   error
}

// Report summarizes the exploration of one program.
type Report struct {
	Program string
	Paths   []PathResult
	// Common holds the bindings every completed path ended with.
	Common lattice.State
	// Truncated is set when the path budget ran out before the search
	// space was exhausted.
	Truncated bool
}

// Count returns the number of paths with outcome o.
func (r Report) Count(o Outcome) int {
	n := 0
	for _, p := range r.Paths {
		if p.Outcome == o {
			n++
		}
	}
	return n
}

// Tree returns the explored choice tree, each path labelled with its
// outcome.
func (r Report) Tree() *trie.Trie {
	t := trie.New()
	for _, p := range r.Paths {
		t.Insert(p.Choices, p.Outcome.String())
	}
	return t
}

// Path is the view a program body has of the current path.
type Path struct {
	l    *lamp.Lamp
	vars lattice.State
}

func (p *Path) Lamp() *lamp.Lamp { return p.l }

// Bind names h for later Lookup calls on this path.
func (p *Path) Bind(name string, h lamp.Handle) {
	p.vars.Set(name, h)
}

// Lookup returns the value bound to name. An unbound name is a usage
// error.
func (p *Path) Lookup(name string) lamp.Handle {
	h, ok := p.vars.Get(name)
	if !ok {
		engine.Fail("explore", "lookup", fmt.Sprintf("%q is not bound", name))
	}
	return h
}

// Vars returns the bindings of the current path.
func (p *Path) Vars() lattice.State { return p.vars }

// Branch decides cond, splitting the path when both outcomes are possible,
// and assumes the taken outcome.
func (p *Path) Branch(cond lamp.Handle) bool {
	taken := p.l.ToTristate(cond).Lower(p.l.Context())
	p.l.Assume(cond, taken)
	return taken
}

// Explorer runs programs under a fixed configuration.
type Explorer struct {
	cfg    lamp.Config
	logger *zap.Logger
}

// New creates an Explorer. A nil logger disables logging.
func New(cfg lamp.Config, logger *zap.Logger) *Explorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Explorer{cfg: cfg, logger: logger}
}

// Run explores every path of prog, up to the configured limits. Usage
// errors raised by the program are not recovered.
func (e *Explorer) Run(ctx context.Context, prog Program) (Report, error) {
	logger := e.logger.With(zap.String("program", prog.Name))
	oracle := &replay{maxDepth: e.cfg.Explore.MaxDepth}
	l, err := lamp.New(e.cfg, oracle, logger)
	if err != nil {
		return Report{}, err
	}

	report := Report{Program: prog.Name}
	root := &Path{l: l, vars: lattice.State{}}
	if prog.Setup != nil {
		out, fault := run(prog.Setup, root)
		if len(oracle.taken) > 0 {
			return report, fmt.Errorf("%s: %w", prog.Name, ErrSetupChoice)
		}
		if out != Completed {
			report.Paths = append(report.Paths, PathResult{Outcome: out, Fault: fault})
			return report, nil
		}
	}
	snap := l.Snapshot()
	vars := root.vars

	var prefix []int
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if len(report.Paths) >= e.cfg.Explore.MaxPaths {
			report.Truncated = true
			logger.Warn("path budget exhausted", zap.Int("paths", len(report.Paths)))
			break
		}

		l.Restore(snap)
		oracle.reset(prefix)
		path := &Path{l: l, vars: vars.Clone()}
		out, fault := run(prog.Body, path)

		result := PathResult{Choices: oracle.choices(), Outcome: out, Fault: fault}
		report.Paths = append(report.Paths, result)
		if out == Completed {
			if report.Count(Completed) == 1 {
				report.Common = path.vars.Clone()
			} else {
				report.Common = lattice.Join(report.Common, path.vars)
			}
		}
		logger.Debug("path explored",
			zap.Ints("choices", result.Choices),
			zap.Stringer("outcome", out),
			zap.Error(fault),
		)

		var ok bool
		if prefix, ok = oracle.next(); !ok {
			break
		}
	}

	logger.Info("exploration finished",
		zap.Int("paths", len(report.Paths)),
		zap.Int("completed", report.Count(Completed)),
		zap.Int("cancelled", report.Count(Cancelled)),
		zap.Int("faulted", report.Count(Faulted)),
		zap.Int("bounded", report.Count(Bounded)),
	)
	return report, nil
}

// run executes fn on p and classifies how it ended.
func run(fn func(*Path), p *Path) (out Outcome, fault error) {
	defer func() {
		switch r := recover().(type) {
		case nil:
		case signal:
			if r == bounded {
				out = Bounded
			} else {
				out = Cancelled
			}
		case *engine.Fault:
			out, fault = Faulted, r
		default:
			panic(r)
		}
	}()
	fn(p)
	return Completed, nil
}

// RunAll explores independent programs in parallel, each on its own
// engine. Reports are returned in the order of progs.
func (e *Explorer) RunAll(ctx context.Context, progs []Program) ([]Report, error) {
	reports := make([]Report, len(progs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Explore.Parallel)
	for i, prog := range progs {
		i, prog := i, prog
		g.Go(func() error {
			r, err := e.Run(ctx, prog)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
