package validator

// Config carries per-validator configuration. It is constructed once at
// pipeline setup and read-only during a run.
type Config struct {
	// Enabled reports whether the validator runs. Nil means enabled;
	// the zero Config is a fully-default, enabled configuration.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// SeverityOverrides maps rule identifiers to replacement severities,
	// upgrading or downgrading specific checks.
	SeverityOverrides map[string]Severity `json:"severity_overrides,omitempty" yaml:"severity_overrides,omitempty"`

	// Options is an open mapping of validator-specific settings.
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// IsEnabled reports whether the validator should run.
func (c Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// RuleSeverity returns the severity for a rule, honoring overrides.
func (c Config) RuleSeverity(rule string, def Severity) Severity {
	if s, ok := c.SeverityOverrides[rule]; ok {
		return s
	}
	return def
}

// BoolOption returns a boolean option, or def when absent or mistyped.
func (c Config) BoolOption(key string, def bool) bool {
	if v, ok := c.Options[key].(bool); ok {
		return v
	}
	return def
}

// IntOption returns an integer option, or def when absent or mistyped.
// YAML and JSON decoders produce different numeric types, so both int
// and float64 are accepted.
func (c Config) IntOption(key string, def int) int {
	switch v := c.Options[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// StringOption returns a string option, or def when absent or mistyped.
func (c Config) StringOption(key string, def string) string {
	if v, ok := c.Options[key].(string); ok {
		return v
	}
	return def
}

// StringSliceOption returns a string-list option, nil when absent.
// Both []string and []any (as produced by YAML decoding) are accepted;
// non-string elements are skipped.
func (c Config) StringSliceOption(key string) []string {
	switch v := c.Options[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Bool is a convenience for building Config literals with Enabled set.
func Bool(v bool) *bool {
	return &v
}
