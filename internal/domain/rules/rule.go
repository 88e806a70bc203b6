// Package rules implements the SCL compliance rule engine.
//
// Each rule is a pure function of the source text. The engine runs the
// registered rules in order and assembles their issues into a report. No
// rule builds a syntax tree: matching is line and substring based.
package rules

import "github.com/abdidvp/sclkraft/internal/domain"

// Rule inspects source text and returns the issues it finds. A non-nil error
// means the rule itself failed, never that the source violates it.
type Rule interface {
	Name() string
	Description() string
	Check(source string) ([]domain.Issue, error)
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc struct {
	ID      string
	Summary string
	Fn      func(source string) ([]domain.Issue, error)
}

func (r RuleFunc) Name() string        { return r.ID }
func (r RuleFunc) Description() string { return r.Summary }

func (r RuleFunc) Check(source string) ([]domain.Issue, error) {
	return r.Fn(source)
}

// DefaultRules returns the built-in rules in execution order.
func DefaultRules(types TypeChecker) []Rule {
	if types == nil {
		types = ElementaryTypeChecker{}
	}
	return []Rule{
		POUStructureRule{},
		TypeAnnotationRule{Types: types},
		RecursionRule{},
		HardwareMappingRule{},
	}
}

// Without drops the rules whose names are listed, keeping the order of the rest.
func Without(all []Rule, disabled []string) []Rule {
	if len(disabled) == 0 {
		return all
	}
	skip := make(map[string]bool, len(disabled))
	for _, d := range disabled {
		skip[d] = true
	}
	kept := make([]Rule, 0, len(all))
	for _, r := range all {
		if !skip[r.Name()] {
			kept = append(kept, r)
		}
	}
	return kept
}

// ForConfig builds the rule set described by a project config.
func ForConfig(cfg domain.ProjectConfig) []Rule {
	var types TypeChecker = ElementaryTypeChecker{}
	if len(cfg.Types.Extra) > 0 {
		types = NewExtendedTypeChecker(cfg.Types.Extra)
	}
	return Without(DefaultRules(types), cfg.Rules.Disabled)
}
