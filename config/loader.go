package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/skeletons/errors"
	"github.com/kbukum/skeletons/logger"
)

// configExtensions are the file types searched for, in order.
var configExtensions = []string{"yml", "yaml", "toml", "json"}

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	UserConfigDir() (string, error)
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (rfs *RealFileSystem) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// Resolver handles finding and resolving config and env files.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles finds config and env files for a service.
// Returns explicit paths if provided, otherwise searches for them.
func (cr *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = cr.findConfigFile(serviceName)
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = cr.findEnvFile(serviceName)
	}

	return resolved
}

// findConfigFile searches the working directory, ./config, ./cmd/<name> and
// the user config directory, trying each known extension.
func (cr *Resolver) findConfigFile(serviceName string) string {
	bases := []string{
		"./" + serviceName,
		"./config/" + serviceName,
		"./config/config",
		fmt.Sprintf("./cmd/%s/config", serviceName),
		"./config",
	}
	if dir, err := cr.FileSystem.UserConfigDir(); err == nil && dir != "" {
		bases = append(bases, filepath.Join(dir, serviceName, "config"))
	}

	for _, base := range bases {
		for _, ext := range configExtensions {
			path := base + "." + ext
			if cr.FileSystem.Exists(path) {
				return path
			}
		}
	}
	return ""
}

// findEnvFile searches for .env files in standard locations.
func (cr *Resolver) findEnvFile(serviceName string) string {
	envFiles := []string{
		fmt.Sprintf(".env.%s", serviceName),
		".env",
	}
	dirs := []string{".", "./config", fmt.Sprintf("./cmd/%s", serviceName)}

	for _, envFile := range envFiles {
		for _, dir := range dirs {
			path := dir + "/" + envFile
			if cr.FileSystem.Exists(path) {
				return path
			}
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path. LoadConfig fails if it
// does not exist.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig loads configuration for a service into cfg. A config file is
// read first, then environment variables prefixed with the upper-cased
// service name override it.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}
	if lc.ConfigFile != "" && !lc.FileSystem.Exists(lc.ConfigFile) {
		return errors.InvalidInput("config", fmt.Sprintf("config file %s not found", lc.ConfigFile))
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(serviceName, lc)

	return loadFromResolvedFiles(serviceName, cfg, files, lc.FileSystem)
}

// loadFromResolvedFiles loads configuration from specific files.
func loadFromResolvedFiles(serviceName string, cfg any, files ResolvedFiles, fs FileSystem) error {
	log := logger.Get("config")
	v := viper.New()

	if files.ConfigFile != "" {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.InvalidInput("config", fmt.Sprintf("reading %s", files.ConfigFile)).WithCause(err)
		}
		log.Debug("config file loaded", logger.Fields("path", files.ConfigFile))
	}

	if files.EnvFile != "" && fs.Exists(files.EnvFile) {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			log.Warn("failed to load .env file", logger.Fields("path", files.EnvFile, logger.FieldError, err.Error()))
		}
	}

	bindPrefixedEnv(v, envPrefix(serviceName), os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return errors.InvalidInput("config", fmt.Sprintf("decoding config for %s", serviceName)).WithCause(err)
	}
	return nil
}

// envPrefix turns "skel-bench" into "SKEL_BENCH_".
func envPrefix(serviceName string) string {
	return strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_")) + "_"
}

// bindPrefixedEnv sets every environment variable carrying prefix on v under
// each nested key it could address.
func bindPrefixedEnv(v *viper.Viper, prefix string, environ []string) {
	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		for _, variant := range generateEnvKeyVariants(strings.TrimPrefix(key, prefix)) {
			v.Set(variant, value)
		}
	}
}

// generateEnvKeyVariants creates all possible key variants for environment variable binding.
// Examples:
//
//	FARM_WORKERS -> [farm_workers, farm.workers]
//	BENCH_FIB_N  -> [bench_fib_n, bench.fib.n, bench.fib_n]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// Progressive nesting: a.b_c, a.b.c_d, ...
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
