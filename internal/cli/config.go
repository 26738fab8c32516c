// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/bayestree/builder"
)

const (
	maxWalkDepth = 25

	envPrefix = "CLIQUETREE"
)

// Config file names tried in each directory, in order.
var configNames = []string{"cliquetree.yaml", "cliquetree.yml"}

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the cliquetree configuration from cliquetree.yaml.
type Config struct {
	Log  LogConfig  `mapstructure:"log" yaml:"log"`
	Keys KeysConfig `mapstructure:"keys" yaml:"keys"`

	// Tolerance is the absolute tolerance used when comparing trees.
	Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance"`

	Generate GenerateConfig `mapstructure:"generate" yaml:"generate"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// KeysConfig selects how keys are printed and generated.
type KeysConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// GenerateConfig holds random tree generation settings.
type GenerateConfig struct {
	Seed      int64  `mapstructure:"seed" yaml:"seed"`
	Shape     string `mapstructure:"shape" yaml:"shape"`
	Cliques   int    `mapstructure:"cliques" yaml:"cliques"`
	Frontals  int    `mapstructure:"frontals" yaml:"frontals"`
	Separator int    `mapstructure:"separator" yaml:"separator"`
	Dim       int    `mapstructure:"dim" yaml:"dim"`
}

// FlagKeys maps command-line flag names to configuration keys. Flags
// present in the set passed to LoadConfig override every other source,
// but only when set explicitly.
var FlagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"keys":       "keys.format",
	"tolerance":  "tolerance",
	"seed":       "generate.seed",
	"shape":      "generate.shape",
	"cliques":    "generate.cliques",
	"frontals":   "generate.frontals",
	"separator":  "generate.separator",
	"dim":        "generate.dim",
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered. flags may be nil.
func LoadConfig(explicitConfigPath string, flags *pflag.FlagSet) (*Config, string, error) {
	v := viper.New()

	// 1. Defaults
	setDefaults(v)

	// 2. Environment, CLIQUETREE_LOG_LEVEL for log.level
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 3. Config file
	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	// 4. Flags
	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, configPath, fmt.Errorf("binding flag %q: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("keys.format", KeyFormatSymbol)

	v.SetDefault("tolerance", 1e-9)

	v.SetDefault("generate.seed", 1)
	v.SetDefault("generate.shape", string(builder.ShapeChain))
	v.SetDefault("generate.cliques", 8)
	v.SetDefault("generate.frontals", builder.DefaultFrontals)
	v.SetDefault("generate.separator", builder.DefaultSeparator)
	v.SetDefault("generate.dim", builder.DefaultDim)
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for cliquetree.yaml or cliquetree.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Repo boundary
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// Validate reports the first out-of-range setting, wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q (want %s or %s)", ErrInvalidConfig, c.Log.Format, LogFormatText, LogFormatJSON)
	}
	if _, err := KeyFormatter(c.Keys.Format); err != nil {
		return fmt.Errorf("%w: keys.format: %w", ErrInvalidConfig, err)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance %g < 0", ErrInvalidConfig, c.Tolerance)
	}
	return c.Generate.validate()
}

func (g GenerateConfig) validate() error {
	if _, err := builder.ParseShape(g.Shape); err != nil {
		return fmt.Errorf("%w: generate.shape: %w", ErrInvalidConfig, err)
	}
	switch {
	case g.Cliques < builder.MinCliques:
		return fmt.Errorf("%w: generate.cliques %d < %d", ErrInvalidConfig, g.Cliques, builder.MinCliques)
	case g.Frontals < 1:
		return fmt.Errorf("%w: generate.frontals %d < 1", ErrInvalidConfig, g.Frontals)
	case g.Separator < 0:
		return fmt.Errorf("%w: generate.separator %d < 0", ErrInvalidConfig, g.Separator)
	case g.Dim < 1:
		return fmt.Errorf("%w: generate.dim %d < 1", ErrInvalidConfig, g.Dim)
	}
	return nil
}

// BuilderOptions translates the generate settings into builder options.
// Symbol key format generates x0, x1, ...; index format plain integers.
func (c *Config) BuilderOptions() []builder.BuilderOption {
	opts := []builder.BuilderOption{
		builder.WithSeed(c.Generate.Seed),
		builder.WithFrontals(c.Generate.Frontals),
		builder.WithSeparator(c.Generate.Separator),
		builder.WithDim(c.Generate.Dim),
	}
	if strings.EqualFold(strings.TrimSpace(c.Keys.Format), KeyFormatSymbol) {
		opts = append(opts, builder.WithSymbolKeys('x'))
	}
	return opts
}
