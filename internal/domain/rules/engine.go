package rules

import (
	"errors"
	"fmt"

	"github.com/abdidvp/sclkraft/internal/domain"
)

// ErrInternalFault marks a failure inside the engine itself. Rule violations
// are reported as issues and never wrap this error.
var ErrInternalFault = errors.New("internal engine error")

// Engine runs an ordered list of rules over source text. It keeps no state
// between calls, so one Engine can serve concurrent callers.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine that runs the given rules in order.
func NewEngine(rs ...Rule) *Engine {
	return &Engine{rules: rs}
}

// Default returns an engine running DefaultRules with the elementary type checker.
func Default() *Engine {
	return NewEngine(DefaultRules(nil)...)
}

// Rules returns the engine's rules in execution order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Validate runs every rule against source and returns the assembled report.
// The error is non-nil only when a rule faults.
func (e *Engine) Validate(source string) (domain.ValidationReport, error) {
	var issues []domain.Issue
	for _, r := range e.rules {
		found, err := runRule(r, source)
		if err != nil {
			return domain.ValidationReport{}, err
		}
		issues = append(issues, found...)
	}
	return domain.NewReport(issues), nil
}

func runRule(r Rule, source string) (issues []domain.Issue, err error) {
	defer func() {
		if p := recover(); p != nil {
			issues = nil
			err = fmt.Errorf("%w: rule %s panicked: %v", ErrInternalFault, r.Name(), p)
		}
	}()

	issues, err = r.Check(source)
	if err != nil {
		if !errors.Is(err, ErrInternalFault) {
			err = fmt.Errorf("%w: rule %s: %v", ErrInternalFault, r.Name(), err)
		}
		return nil, err
	}
	for _, issue := range issues {
		if !issue.Severity.Known() {
			return nil, fmt.Errorf("%w: rule %s reported unknown severity %q", ErrInternalFault, r.Name(), issue.Severity)
		}
	}
	return issues, nil
}
