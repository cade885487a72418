package main

import (
	"context"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/kbukum/skeletons/bench"
	"github.com/kbukum/skeletons/config"
	"github.com/kbukum/skeletons/logger"
	"github.com/kbukum/skeletons/observability"
	"github.com/kbukum/skeletons/pipeline"
	"github.com/kbukum/skeletons/version"
)

const serviceName = "skelbench"

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.RuntimeConfig
	configErr  error

	metrics    *observability.StageMetrics
	shutdownFn observability.ShutdownFunc
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

// ensureConfig loads and validates configuration once, then installs the
// global logger.
func (c *commandContext) ensureConfig() (*config.RuntimeConfig, error) {
	c.configOnce.Do(func() {
		var opts []config.LoaderOption
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			opts = append(opts, config.WithConfigFile(path))
		}
		cfg, err := config.Load(serviceName, opts...)
		if err != nil {
			c.configErr = err
			return
		}
		if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
			cfg.Logging.Level = level
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		logger.Init(cfg.Logging)
		c.config = cfg
	})
	return c.config, c.configErr
}

// startTelemetry installs exporters when observability is enabled.
func (c *commandContext) startTelemetry(ctx context.Context) error {
	cfg := c.config
	shutdown, err := observability.Setup(ctx, cfg.Observability, cfg.Name, version.Version, cfg.Environment)
	if err != nil {
		return err
	}
	c.shutdownFn = shutdown
	if cfg.Observability.Enabled {
		m, err := observability.NewStageMetrics(observability.Meter(serviceName))
		if err != nil {
			return err
		}
		c.metrics = m
	}
	logger.Debug("skelbench starting", version.Current().Fields())
	return nil
}

// shutdown flushes and stops telemetry. Only the first call does any work.
func (c *commandContext) shutdown(ctx context.Context) error {
	fn := c.shutdownFn
	if fn == nil {
		return nil
	}
	c.shutdownFn = nil
	return fn(ctx)
}

// benchOptions builds bench options from config, overridden by flags.
func (c *commandContext) benchOptions() bench.Options {
	cfg := c.config
	mode := pipeline.Sequential
	if cfg.Bench.Concurrent {
		mode = pipeline.Concurrent
	}
	return bench.Options{
		Workers: cfg.Farm.Workers,
		FibN:    cfg.Bench.FibN,
		Rounds:  cfg.Bench.Rounds,
		Items:   cfg.Bench.Items,
		Stages:  cfg.Bench.Stages,
		Mode:    mode,
		Logger:  logger.Get("bench"),
		Metrics: c.metrics,
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
