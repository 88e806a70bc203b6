package domain

import (
	"fmt"
	"strings"
)

// Rule IDs, in engine execution order.
const (
	RulePOUStructure    = "pou-structure"
	RuleTypeAnnotation  = "type-annotation"
	RuleRecursion       = "recursion"
	RuleHardwareMapping = "hardware-mapping"
)

// ValidRules enumerates all rule IDs in execution order.
var ValidRules = []string{
	RulePOUStructure,
	RuleTypeAnnotation,
	RuleRecursion,
	RuleHardwareMapping,
}

// DefaultExtensions lists the source file extensions scanned when the config
// does not name any.
var DefaultExtensions = []string{".scl", ".st"}

// ProjectConfig holds project-level configuration loaded from .sclkraft.yaml.
type ProjectConfig struct {
	Extensions   []string    `yaml:"extensions"              json:"extensions,omitempty"`
	ExcludePaths []string    `yaml:"exclude_paths,omitempty" json:"exclude_paths,omitempty"`
	Strict       bool        `yaml:"strict,omitempty"        json:"strict,omitempty"`
	Rules        RulesConfig `yaml:"rules,omitempty"         json:"rules,omitempty"`
	Types        TypesConfig `yaml:"types,omitempty"         json:"types,omitempty"`
}

// RulesConfig selects which rules run.
type RulesConfig struct {
	Disabled []string `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// TypesConfig extends the accepted type names of the annotation rule.
type TypesConfig struct {
	Extra []string `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Extensions: append([]string(nil), DefaultExtensions...),
	}
}

// IsDisabledRule reports whether the named rule is switched off.
func (c ProjectConfig) IsDisabledRule(name string) bool {
	for _, r := range c.Rules.Disabled {
		if r == name {
			return true
		}
	}
	return false
}

// SourceExtensions returns the configured extensions or the defaults.
func (c ProjectConfig) SourceExtensions() []string {
	if len(c.Extensions) == 0 {
		return DefaultExtensions
	}
	return c.Extensions
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	for _, r := range c.Rules.Disabled {
		if !isValidRule(r) {
			return fmt.Errorf("unknown rule %q in rules.disabled (valid: %s)", r, strings.Join(ValidRules, ", "))
		}
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	for _, t := range c.Types.Extra {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("types.extra contains an empty type name")
		}
	}

	return nil
}

func isValidRule(name string) bool {
	for _, r := range ValidRules {
		if r == name {
			return true
		}
	}
	return false
}
