package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/comigor/lifeloop/internal/console"
	"github.com/comigor/lifeloop/pkg/scenario"
)

// Config holds the application configuration
type Config struct {
	Console   ConsoleConfig       `mapstructure:"console"`
	Reveal    RevealConfig        `mapstructure:"reveal"`
	Scenarios []scenario.Scenario `mapstructure:"scenarios"`
	Log       LogConfig           `mapstructure:"log"`
}

// ConsoleConfig holds the session timing
type ConsoleConfig struct {
	ThinkMin        time.Duration `mapstructure:"think_min"`
	ThinkMax        time.Duration `mapstructure:"think_max"`
	CompletionDelay time.Duration `mapstructure:"completion_delay"`
	CompletionTurns int           `mapstructure:"completion_turns"`
}

// RevealConfig holds the per-character typing speeds
type RevealConfig struct {
	SystemRate time.Duration `mapstructure:"system_rate"`
	OutputRate time.Duration `mapstructure:"output_rate"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	d := console.DefaultConfig()
	v.SetDefault("console.think_min", d.ThinkMin)
	v.SetDefault("console.think_max", d.ThinkMax)
	v.SetDefault("console.completion_delay", d.CompletionDelay)
	v.SetDefault("console.completion_turns", d.CompletionTurns)
	v.SetDefault("reveal.system_rate", 20*time.Millisecond)
	v.SetDefault("reveal.output_rate", 30*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "lifeloop.log")
}

// Load loads the configuration from config.yaml in the working directory, or
// from the file named by CONFIG_PATH. A missing config.yaml is not an error;
// the defaults apply. LIFELOOP_* environment variables override file values.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LIFELOOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks ranges and scenario entries.
func (c *Config) Validate() error {
	if c.Console.ThinkMin < 0 || c.Console.ThinkMax < c.Console.ThinkMin {
		return fmt.Errorf("console: think range %s..%s is invalid", c.Console.ThinkMin, c.Console.ThinkMax)
	}
	if c.Console.CompletionDelay < 0 {
		return fmt.Errorf("console: negative completion_delay %s", c.Console.CompletionDelay)
	}
	if c.Console.CompletionTurns < 1 {
		return fmt.Errorf("console: completion_turns must be at least 1, got %d", c.Console.CompletionTurns)
	}
	if c.Reveal.SystemRate < 0 || c.Reveal.OutputRate < 0 {
		return errors.New("reveal: rates must not be negative")
	}
	for i, s := range c.Scenarios {
		if strings.TrimSpace(s.Query) == "" {
			return fmt.Errorf("scenarios[%d]: empty query", i)
		}
	}
	return nil
}

// Session converts the console section for console.New.
func (c ConsoleConfig) Session() console.Config {
	return console.Config{
		ThinkMin:        c.ThinkMin,
		ThinkMax:        c.ThinkMax,
		CompletionDelay: c.CompletionDelay,
		CompletionTurns: c.CompletionTurns,
	}
}

// Catalog returns the configured scenarios, or the stock ones when none are set.
func (c *Config) Catalog() *scenario.Catalog {
	if len(c.Scenarios) == 0 {
		return scenario.Default()
	}
	return scenario.FromList(c.Scenarios)
}
