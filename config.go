package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/neonwatty/seating-arrangement-sub002/seating"
)

// Config holds the settings shared by every optimization a process runs.
// Per-event options in the input document override MaxIterations and Preserve.
type Config struct {
	// Weights is the default weighting for events that do not carry their own.
	Weights seating.Weights `mapstructure:"weights"`
	// MaxIterations caps local-search passes per event.
	MaxIterations int `mapstructure:"max-iterations"`
	// Timeout bounds refinement wall-clock time per event; 0 disables it.
	Timeout time.Duration `mapstructure:"timeout"`
	// Workers is how many events are optimized concurrently.
	Workers int `mapstructure:"workers"`
	// Preserve keeps guests at their current tables where possible.
	Preserve bool `mapstructure:"preserve"`
	// Format selects the CLI output: text, json or yaml.
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`
	// Addr is the listen address of the serve mode.
	Addr string `mapstructure:"addr"`
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		Weights:       seating.DefaultWeights(),
		MaxIterations: seating.DefaultMaxIterations,
		Timeout:       30 * time.Second,
		Workers:       4,
		Format:        "text",
		Addr:          ":8080",
	}
}

// Validate checks for settings the optimizer cannot run with.
func (c *Config) Validate() error {
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("format must be one of text, json, yaml, got %q", c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", c.Timeout)
	}
	if c.Weights.Relationships == nil || c.Weights.Constraints == nil {
		return fmt.Errorf("weights must define relationships and constraints")
	}
	return nil
}

// LoadConfig layers, lowest first: defaults, a YAML config file (--config or
// SEATING_CONFIG), SEATING_* environment variables (a .env file is read when
// present) and finally any flags set on fs.
func LoadConfig(fs *pflag.FlagSet) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SEATING")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newFlagSet declares the command line flags LoadConfig binds.
func newFlagSet() *pflag.FlagSet {
	def := DefaultConfig()
	fs := pflag.NewFlagSet("seating-optimizer", pflag.ContinueOnError)
	fs.String("config", "", "YAML config file")
	fs.Int("max-iterations", def.MaxIterations, "Local search passes per event (negative disables)")
	fs.Duration("timeout", def.Timeout, "Refinement time limit per event (0 = none)")
	fs.Int("workers", def.Workers, "Events optimized concurrently")
	fs.Bool("preserve", def.Preserve, "Keep guests at their current tables where possible")
	fs.String("format", def.Format, "Output format: text, json or yaml")
	fs.Bool("verbose", def.Verbose, "Print detailed search progress to stderr")
	fs.String("addr", def.Addr, "Listen address for serve")
	return fs
}

func setDefaults(v *viper.Viper, def Config) {
	v.SetDefault("config", "")
	v.SetDefault("max-iterations", def.MaxIterations)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("preserve", def.Preserve)
	v.SetDefault("format", def.Format)
	v.SetDefault("verbose", def.Verbose)
	v.SetDefault("addr", def.Addr)
	// Leaf keys so a config file or env var can override a single weight.
	for t, w := range def.Weights.Relationships {
		v.SetDefault("weights.relationships."+string(t), w)
	}
	for p, w := range def.Weights.Constraints {
		v.SetDefault("weights.constraints."+string(p), w)
	}
	v.SetDefault("weights.groupcohesion", def.Weights.GroupCohesion)
	v.SetDefault("weights.interestmatch", def.Weights.InterestMatch)
}
