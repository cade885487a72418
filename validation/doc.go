// Package validation checks configuration values before a pipeline is built.
//
// Struct tags cover per-field rules:
//
//	type FarmConfig struct {
//	    Workers int `mapstructure:"workers" validate:"gte=1,lte=1024"`
//	}
//	err := validation.Validate(cfg)
//
// A Validator collects cross-field rules that tags cannot express:
//
//	v := validation.New()
//	v.Min("bench.stages", cfg.Bench.Stages, 1)
//	if appErr := v.Validate(); appErr != nil { ... }
package validation
