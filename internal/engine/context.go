package engine

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// DefaultChooseBound limits how many alternatives interval narrowing may
// enumerate before leaving a value unrefined.
const DefaultChooseBound = 200

// Oracle selects among alternatives and aborts infeasible paths.
type Oracle interface {
	// Choose returns a value in [0, n).
	Choose(n int) int
	// Cancel terminates the current path. It must not return.
	Cancel()
}

// Config is the read-only engine configuration.
type Config struct {
	// ChooseBound caps the search space of choice-driven narrowing.
	// Zero disables it.
	ChooseBound uint32
}

func DefaultConfig() Config {
	return Config{ChooseBound: DefaultChooseBound}
}

// Context carries the oracle, configuration and logger for one
// exploration path.
type Context struct {
	oracle Oracle
	config Config
	logger *zap.Logger
}

// NewContext creates a context. A nil logger disables logging.
func NewContext(oracle Oracle, config Config, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{oracle: oracle, config: config, logger: logger}
}

func (c *Context) Config() Config      { return c.config }
func (c *Context) Logger() *zap.Logger { return c.logger }

// ChooseBound returns the configured bound as an int64 for bound arithmetic.
func (c *Context) ChooseBound() int64 { return int64(c.config.ChooseBound) }

// WithinBound reports whether 0 < n <= ChooseBound.
func (c *Context) WithinBound(n int64) bool {
	return n > 0 && n <= c.ChooseBound()
}

// Choose asks the oracle for a value in [0, n). A single alternative is
// answered without consulting the oracle.
func (c *Context) Choose(n int) int {
	if n <= 0 {
		Fail("", "choose", "non-positive alternative count "+strconv.Itoa(n))
	}
	if n == 1 {
		return 0
	}
	v := c.oracle.Choose(n)
	if v < 0 || v >= n {
		Fail("", "choose", "oracle answered "+strconv.Itoa(v)+" out of "+strconv.Itoa(n))
	}
	return v
}

// Cancel abandons the current path. It never returns.
func (c *Context) Cancel(reason string) {
	c.logger.Debug("path cancelled", zap.String("reason", reason))
	c.oracle.Cancel()
	Fail("", "cancel", "oracle returned from Cancel")
}

// Imprecise records that an operator left its operands unrefined.
func (c *Context) Imprecise(domain string, op fmt.Stringer) {
	c.logger.Warn("unsupported backward operation",
		zap.String("domain", domain),
		zap.Stringer("op", op),
	)
}
