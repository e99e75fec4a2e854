package lamp

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/gnoswap-labs/lamp/internal/engine"
	"github.com/gnoswap-labs/lamp/internal/multi"
	"github.com/gnoswap-labs/lamp/internal/product"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the configuration schema this package writes.
const SchemaVersion = "1.0.0"

// supportedVersions is the range of schema versions LoadConfig accepts.
const supportedVersions = "^1.0"

var (
	ErrUnsupportedVersion = errors.New("unsupported configuration version")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// Config is the on-disk configuration of an engine.
type Config struct {
	Version     string        `yaml:"version"`
	ChooseBound uint32        `yaml:"choose_bound"`
	Domains     DomainsConfig `yaml:"domains"`
	Product     ProductConfig `yaml:"product"`
	Explore     ExploreConfig `yaml:"explore"`
	Log         LogConfig     `yaml:"log"`
}

// DomainsConfig selects the domains values are created in and overrides
// entries of the join table.
type DomainsConfig struct {
	Lift   string            `yaml:"lift"`
	Any    string            `yaml:"any"`
	Index  map[string]string `yaml:"index,omitempty"`
	Scalar map[string]string `yaml:"scalar,omitempty"`
	// Joins holds [a, b, result] triples.
	Joins [][]string `yaml:"joins,omitempty"`
}

type ProductConfig struct {
	Tristate string `yaml:"tristate"`
}

// ExploreConfig bounds path exploration.
type ExploreConfig struct {
	MaxDepth int `yaml:"max_depth"`
	MaxPaths int `yaml:"max_paths"`
	Parallel int `yaml:"parallel"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Version:     SchemaVersion,
		ChooseBound: engine.DefaultChooseBound,
		Domains: DomainsConfig{
			Lift: multi.Constant.String(),
			Any:  multi.Interval.String(),
		},
		Product: ProductConfig{Tristate: product.FromPrimary.String()},
		Explore: ExploreConfig{
			MaxDepth: 64,
			MaxPaths: 10000,
			Parallel: 4,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads and validates a YAML configuration file. Fields absent
// from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	cfg, err := DecodeConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig reads and validates a YAML configuration.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration without building anything from it.
func (c Config) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}
	if _, err := c.latticeOptions(); err != nil {
		return err
	}
	if _, ok := product.ParseStrategy(c.Product.Tristate); !ok {
		return fmt.Errorf("%w: product.tristate %q", ErrInvalidConfig, c.Product.Tristate)
	}
	if c.Explore.MaxDepth <= 0 || c.Explore.MaxPaths <= 0 || c.Explore.Parallel <= 0 {
		return fmt.Errorf("%w: explore limits must be positive", ErrInvalidConfig)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	return nil
}

func checkVersion(version string) error {
	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return err
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, supportedVersions)
	}
	return nil
}

func parseDomain(field, name string) (multi.Domain, error) {
	d, ok := multi.ParseDomain(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s: unknown domain %q", ErrInvalidConfig, field, name)
	}
	return d, nil
}

// latticeOptions builds the multi-domain options the configuration
// describes.
func (c Config) latticeOptions() (multi.Options, error) {
	opts := multi.DefaultOptions()
	var err error
	if opts.LiftDomain, err = parseDomain("domains.lift", c.Domains.Lift); err != nil {
		return opts, err
	}
	if opts.AnyDomain, err = parseDomain("domains.any", c.Domains.Any); err != nil {
		return opts, err
	}
	if err := applyFlavor(&opts.IndexDomain, "domains.index", c.Domains.Index); err != nil {
		return opts, err
	}
	if err := applyFlavor(&opts.ScalarDomain, "domains.scalar", c.Domains.Scalar); err != nil {
		return opts, err
	}
	for i, triple := range c.Domains.Joins {
		field := fmt.Sprintf("domains.joins[%d]", i)
		if len(triple) != 3 {
			return opts, fmt.Errorf("%w: %s: want [a, b, result], got %d entries", ErrInvalidConfig, field, len(triple))
		}
		var ds [3]multi.Domain
		for j, name := range triple {
			if ds[j], err = parseDomain(field, name); err != nil {
				return opts, err
			}
		}
		opts.Joins.Set(ds[0], ds[1], ds[2])
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("%w: domains: %w", ErrInvalidConfig, err)
	}
	return opts, nil
}

func applyFlavor(targets *[multi.NumDomains]multi.Domain, field string, m map[string]string) error {
	for from, to := range m {
		d, err := parseDomain(field, from)
		if err != nil {
			return err
		}
		if targets[d], err = parseDomain(field+"."+from, to); err != nil {
			return err
		}
	}
	return nil
}

// NewLogger builds a zap logger from the log section.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
