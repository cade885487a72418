// Package config loads skelbench configuration from files and the
// environment.
//
// It uses Viper to read a config file (YAML, TOML or JSON) and then overlays
// environment variables, including those loaded from a .env file with
// godotenv. Environment keys carry the service prefix and underscore-separated
// paths: SKELBENCH_FARM_WORKERS sets farm.workers.
//
// # Usage
//
//	var cfg config.RuntimeConfig
//	if err := config.LoadConfig("skelbench", &cfg, config.WithConfigFile(path)); err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//	err := cfg.Validate()
package config
