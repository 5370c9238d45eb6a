package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "PAGEFIT"

const (
	MaxQuality = 4.0

	defaultOutputDir = "resized"
)

// Config holds the settings shared by the resize commands.
type Config struct {
	Quality     float64 `mapstructure:"quality"`
	JPEGQuality int     `mapstructure:"jpeg_quality"`
	OutputDir   string  `mapstructure:"output"`
	Progress    bool    `mapstructure:"progress"`
	Verbose     bool    `mapstructure:"verbose"`
}

// flagKeys maps configuration keys to the cobra flag names bound to them.
var flagKeys = map[string]string{
	"quality":      "quality",
	"jpeg_quality": "jpeg-quality",
	"output":       "output",
	"progress":     "progress",
	"verbose":      "verbose",
}

// Load resolves configuration from flags, PAGEFIT_* environment variables,
// an optional YAML file and defaults, in that order of precedence.
func Load(flags *pflag.FlagSet, path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func Default() Config {
	return Config{
		Quality:     1.0,
		JPEGQuality: 95,
		OutputDir:   defaultOutputDir,
		Progress:    true,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("quality", d.Quality)
	v.SetDefault("jpeg_quality", d.JPEGQuality)
	v.SetDefault("output", d.OutputDir)
	v.SetDefault("progress", d.Progress)
	v.SetDefault("verbose", d.Verbose)
}

func (c Config) Validate() error {
	if math.IsNaN(c.Quality) || c.Quality <= 0 || c.Quality > MaxQuality {
		return fmt.Errorf("quality must be greater than 0 and at most %g", MaxQuality)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be between 1 and 100")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output is required")
	}
	return nil
}
