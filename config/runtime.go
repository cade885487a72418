package config

import (
	"runtime"

	"github.com/kbukum/skeletons/logger"
	"github.com/kbukum/skeletons/observability"
	"github.com/kbukum/skeletons/validation"
)

// DefaultFibN is the Fibonacci index each benchmark item computes.
const DefaultFibN = 100000

// RuntimeConfig is the skelbench configuration.
type RuntimeConfig struct {
	Name          string               `yaml:"name" mapstructure:"name" validate:"required"`
	Environment   string               `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Farm          FarmConfig           `yaml:"farm" mapstructure:"farm"`
	Bench         BenchConfig          `yaml:"bench" mapstructure:"bench"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// FarmConfig sizes the farms built by the benchmarks.
type FarmConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=1,lte=1024"`
}

// BenchConfig drives the farm and pipeline benchmarks.
type BenchConfig struct {
	// Rounds is the number of farm batches; the batch size doubles each round.
	Rounds int `yaml:"rounds" mapstructure:"rounds" validate:"gte=1,lte=24"`
	// FibN is the Fibonacci index computed per item.
	FibN int `yaml:"fib_n" mapstructure:"fib_n" validate:"gte=0,lte=100000000"`
	// Items is the number of items pushed through the pipeline benchmark.
	Items int `yaml:"items" mapstructure:"items" validate:"gte=1"`
	// Stages is the number of stages, alternating Worker and Farm.
	Stages     int  `yaml:"stages" mapstructure:"stages" validate:"gte=1,lte=64"`
	Concurrent bool `yaml:"concurrent" mapstructure:"concurrent"`
}

// ApplyDefaults fills unset fields.
func (c *RuntimeConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "skelbench"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Farm.Workers == 0 {
		c.Farm.Workers = runtime.NumCPU()
	}
	if c.Bench.Rounds == 0 {
		c.Bench.Rounds = 10
	}
	if c.Bench.FibN == 0 {
		c.Bench.FibN = DefaultFibN
	}
	if c.Bench.Items == 0 {
		c.Bench.Items = 1000
	}
	if c.Bench.Stages == 0 {
		c.Bench.Stages = 2
	}
	c.Logging.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks struct tags and the nested logging config, reporting every
// failure in one error.
func (c *RuntimeConfig) Validate() error {
	v := validation.New()
	v.Merge("config", validation.Validate(c))
	if err := c.Logging.Validate(); err != nil {
		v.AddError("logging", err.Error())
	}
	if c.Observability.Enabled {
		v.Required("observability.endpoint", c.Observability.Endpoint)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Load reads the named service's configuration, applies defaults and
// validates the result.
func Load(serviceName string, opts ...LoaderOption) (*RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
