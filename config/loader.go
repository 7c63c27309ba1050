package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/inkforge/novelkit/logger"
)

// EnvPrefix namespaces the environment variables this package reads.
const EnvPrefix = "NOVELKIT"

// Loader holds optional overrides for Load.
type Loader struct {
	configFile string
	envFile    string
}

// Option customizes a Load call.
type Option func(*Loader)

// WithConfigFile sets an explicit YAML config path instead of the
// default search.
func WithConfigFile(path string) Option {
	return func(l *Loader) { l.configFile = path }
}

// WithEnvFile sets an explicit .env path instead of the default search.
func WithEnvFile(path string) Option {
	return func(l *Loader) { l.envFile = path }
}

// Load fills cfg from YAML config, .env file and NOVELKIT_ environment
// variables, later sources overriding earlier ones. Missing files are
// not errors; a present but malformed file is logged and skipped.
func Load(cfg any, opts ...Option) error {
	var l Loader
	for _, opt := range opts {
		opt(&l)
	}

	log := logger.WithComponent("config")
	v := viper.New()

	if path := l.resolveConfigFile(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			log.Warn("config file unreadable, continuing without it",
				logger.Fields("path", path, logger.FieldError, err.Error()))
		}
	}

	if path := l.resolveEnvFile(); path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Warn("env file unreadable, continuing without it",
				logger.Fields("path", path, logger.FieldError, err.Error()))
		}
	}

	bindPrefixedEnv(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}
	return nil
}

func (l *Loader) resolveConfigFile() string {
	if l.configFile != "" {
		return l.configFile
	}
	for _, path := range []string{"./novelkit.yml", "./config/novelkit.yml", "./config.yml"} {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func (l *Loader) resolveEnvFile() string {
	if l.envFile != "" {
		return l.envFile
	}
	for _, path := range []string{".env.novelkit", ".env"} {
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// bindPrefixedEnv maps NOVELKIT_A_B_C variables onto viper keys. The
// first underscore after the prefix becomes the section separator, the
// rest stay underscores, and the fully dotted form is set too, so both
// api.base_url and api.base.url styles resolve.
func bindPrefixedEnv(v *viper.Viper) {
	prefix := EnvPrefix + "_"
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, prefix))
		for _, variant := range keyVariants(key) {
			v.Set(variant, value)
		}
	}
}

func keyVariants(key string) []string {
	parts := strings.Split(key, "_")
	if len(parts) == 1 {
		return []string{key}
	}
	variants := []string{
		key,
		strings.ReplaceAll(key, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return variants
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
