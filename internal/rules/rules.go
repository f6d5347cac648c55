// Package rules holds the lint rule configuration: a severity per
// discrepancy class, deep search, the warning budget and key exclusions.
package rules

import "fmt"

// Severity is the level assigned to every discrepancy of a class.
type Severity string

const (
	Disable Severity = "disable"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Enabled reports whether discrepancies of this severity are emitted.
func (s Severity) Enabled() bool {
	return s == Warning || s == Error
}

// Toggle switches an optional behavior on or off.
type Toggle string

const (
	Enabled  Toggle = "enable"
	Disabled Toggle = "disable"
)

// On reports whether the toggle is enabled.
func (t Toggle) On() bool { return t == Enabled }

// Config is the rule set for one lint run. Field names in configuration
// files follow the mapstructure tags.
type Config struct {
	KeysOnViews         Severity `mapstructure:"keysOnViews" json:"keysOnViews"`
	ZombieKeys          Severity `mapstructure:"zombieKeys" json:"zombieKeys"`
	EmptyKeys           Severity `mapstructure:"emptyKeys" json:"emptyKeys"`
	MisprintKeys        Severity `mapstructure:"misprintKeys" json:"misprintKeys"`
	DeepSearch          Toggle   `mapstructure:"deepSearch" json:"deepSearch"`
	MaxWarning          int      `mapstructure:"maxWarning" json:"maxWarning"`
	MisprintCoefficient float64  `mapstructure:"misprintCoefficient" json:"misprintCoefficient"`
	IgnoredKeys         []string `mapstructure:"ignoredKeys" json:"ignoredKeys"`
	IgnoredMisprintKeys []string `mapstructure:"ignoredMisprintKeys" json:"ignoredMisprintKeys"`
	CustomPatterns      []string `mapstructure:"customPatterns" json:"customPatterns"`
}

// DefaultConfig returns the rules used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		KeysOnViews:         Error,
		ZombieKeys:          Warning,
		EmptyKeys:           Warning,
		MisprintKeys:        Disable,
		DeepSearch:          Disabled,
		MaxWarning:          0,
		MisprintCoefficient: 0.9,
	}
}

// ValidationError reports a rule field with an unusable value.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid rules config: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Validate checks every field and returns the first problem as a
// *ValidationError.
func (c Config) Validate() error {
	severities := []struct {
		field string
		value Severity
	}{
		{"keysOnViews", c.KeysOnViews},
		{"zombieKeys", c.ZombieKeys},
		{"emptyKeys", c.EmptyKeys},
		{"misprintKeys", c.MisprintKeys},
	}
	for _, s := range severities {
		switch s.value {
		case Disable, Warning, Error:
		default:
			return &ValidationError{Field: s.field, Value: s.value, Reason: "want disable, warning or error"}
		}
	}
	if c.DeepSearch != Enabled && c.DeepSearch != Disabled {
		return &ValidationError{Field: "deepSearch", Value: c.DeepSearch, Reason: "want enable or disable"}
	}
	if c.MaxWarning < 0 {
		return &ValidationError{Field: "maxWarning", Value: c.MaxWarning, Reason: "must not be negative"}
	}
	if c.MisprintCoefficient < 0 || c.MisprintCoefficient > 1 {
		return &ValidationError{Field: "misprintCoefficient", Value: c.MisprintCoefficient, Reason: "must be within [0, 1]"}
	}
	return nil
}
