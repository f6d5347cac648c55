// Package config loads the i18n-lint configuration from defaults, a config
// file, the environment and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rancher-sandbox/i18n-lint/internal/logger"
	"github.com/rancher-sandbox/i18n-lint/internal/rules"
)

const (
	// FileName is the config file looked up in the search paths, with any
	// extension viper understands.
	FileName = ".i18n-lint"
	// EnvPrefix prefixes every environment variable, e.g. I18N_LINT_FORMAT.
	EnvPrefix = "I18N_LINT"
)

// Config is the complete tool configuration.
type Config struct {
	// Project is a glob or directory selecting the view files.
	Project string `mapstructure:"project"`
	// Languages is a glob or directory selecting the locale files, or an
	// http(s) URL of a single catalog document.
	Languages string `mapstructure:"languages"`
	// Ignore is a comma-separated list of paths or globs to skip.
	Ignore       string        `mapstructure:"ignore"`
	Format       string        `mapstructure:"format"`
	Concurrency  int           `mapstructure:"concurrency"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	Log          LogConfig     `mapstructure:"log"`
	Rules        rules.Config  `mapstructure:"rules"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// Formats lists the supported report formats.
var Formats = []string{"text", "json", "sarif"}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"project":       "project",
	"languages":     "languages",
	"ignore":        "ignore",
	"format":        "format",
	"concurrency":   "concurrency",
	"fetch-timeout": "fetch_timeout",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"deep-search":   "rules.deepSearch",
}

func setDefaults(v *viper.Viper) {
	d := rules.DefaultConfig()

	v.SetDefault("project", "")
	v.SetDefault("languages", "")
	v.SetDefault("ignore", "")
	v.SetDefault("format", "text")
	v.SetDefault("concurrency", 0)
	v.SetDefault("fetch_timeout", 10*time.Second)

	v.SetDefault("log.level", string(logger.WarnLevel))
	v.SetDefault("log.format", string(logger.TextFormat))

	v.SetDefault("rules.keysOnViews", string(d.KeysOnViews))
	v.SetDefault("rules.zombieKeys", string(d.ZombieKeys))
	v.SetDefault("rules.emptyKeys", string(d.EmptyKeys))
	v.SetDefault("rules.misprintKeys", string(d.MisprintKeys))
	v.SetDefault("rules.deepSearch", string(d.DeepSearch))
	v.SetDefault("rules.maxWarning", d.MaxWarning)
	v.SetDefault("rules.misprintCoefficient", d.MisprintCoefficient)
	v.SetDefault("rules.ignoredKeys", []string{})
	v.SetDefault("rules.ignoredMisprintKeys", []string{})
	v.SetDefault("rules.customPatterns", []string{})
}

// Loader reads the configuration.
type Loader struct {
	configFile  string
	searchPaths []string
	flags       *pflag.FlagSet
}

// NewLoader creates a loader. An empty configFile searches the search paths
// for FileName; a missing file there is not an error.
func NewLoader(configFile string, flags *pflag.FlagSet) *Loader {
	return &Loader{configFile: configFile, flags: flags, searchPaths: []string{"."}}
}

// WithSearchPaths replaces the directories searched for the config file.
func (l *Loader) WithSearchPaths(paths ...string) *Loader {
	l.searchPaths = paths
	return l
}

// Load returns the validated configuration and the config file used, if any.
// Unknown keys in the file are rejected.
func (l *Loader) Load() (*Config, string, error) {
	v := viper.New()
	setDefaults(v)

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read config %s: %w", l.configFile, err)
		}
	} else {
		v.SetConfigName(FileName)
		for _, p := range l.searchPaths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, "", fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.flags != nil {
		for name, key := range flagKeys {
			if f := l.flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, "", fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, v.ConfigFileUsed(), nil
}

// Validate checks the settings outside the rules and then the rules.
func (c *Config) Validate() error {
	if !isFormat(c.Format) {
		return &rules.ValidationError{Field: "format", Value: c.Format, Reason: "want " + strings.Join(Formats, ", ")}
	}
	if c.Concurrency < 0 {
		return &rules.ValidationError{Field: "concurrency", Value: c.Concurrency, Reason: "must not be negative"}
	}
	if c.FetchTimeout <= 0 {
		return &rules.ValidationError{Field: "fetch_timeout", Value: c.FetchTimeout, Reason: "must be positive"}
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return &rules.ValidationError{Field: "log.level", Value: c.Log.Level, Reason: err.Error()}
	}
	if _, err := logger.ParseFormat(c.Log.Format); err != nil {
		return &rules.ValidationError{Field: "log.format", Value: c.Log.Format, Reason: err.Error()}
	}
	return c.Rules.Validate()
}

// LoggerConfig converts the log settings. Validate must have passed.
func (c *Config) LoggerConfig() logger.Config {
	level, _ := logger.ParseLevel(c.Log.Level)
	format, _ := logger.ParseFormat(c.Log.Format)
	return logger.Config{Level: level, Format: format}
}

func isFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
