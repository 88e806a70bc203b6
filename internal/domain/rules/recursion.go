package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abdidvp/sclkraft/internal/domain"
)

const descRecursion = "Forbids call-shaped self references in the first declared FUNCTION or FUNCTION_BLOCK"

var unitHeaderPattern = regexp.MustCompile(`(?i)(FUNCTION_BLOCK|FUNCTION)\s+(\w+)`)

// RecursionRule reports a unit that calls itself.
//
// Only the first FUNCTION or FUNCTION_BLOCK header in the document is
// analyzed. Units declared after it are not checked.
type RecursionRule struct{}

func (RecursionRule) Name() string        { return domain.RuleRecursion }
func (RecursionRule) Description() string { return descRecursion }

func (RecursionRule) Check(source string) ([]domain.Issue, error) {
	m := unitHeaderPattern.FindStringSubmatch(source)
	if m == nil {
		return nil, nil
	}
	name := m[2]

	// The body is everything after the first textual occurrence of the name,
	// which is the header itself in well-formed input.
	idx := strings.Index(source, name)
	if idx < 0 {
		return nil, fmt.Errorf("unit name %q not found in its own source", name)
	}
	body := source[idx+len(name):]

	call, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\s*\(`)
	if err != nil {
		return nil, fmt.Errorf("compiling call pattern for %q: %w", name, err)
	}
	if !call.MatchString(body) {
		return nil, nil
	}

	return []domain.Issue{
		domain.NewError(domain.RuleRecursion, domain.DocumentLine,
			fmt.Sprintf("recursion detected in '%s'; forbidden by IEC 61131-3", name)),
	}, nil
}
