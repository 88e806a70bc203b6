package rules

import (
	"fmt"
	"strings"

	"github.com/abdidvp/sclkraft/internal/domain"
)

const descTypeAnnotation = "Warns on declared types that are neither elementary nor FB_ instances"

// ElementaryTypes are the built-in type names accepted by substring match.
var ElementaryTypes = []string{"BOOL", "INT", "REAL", "TIME", "BYTE", "WORD", "DWORD", "STRING"}

// functionBlockPrefix is the naming convention for function block instance types.
const functionBlockPrefix = "FB_"

// TypeChecker decides whether an uppercased type token is acceptable.
type TypeChecker interface {
	Accepts(token string) bool
}

// ElementaryTypeChecker accepts any token containing an elementary type name,
// or starting with FB_. It is a heuristic: CUSTOMREALTYPE passes.
type ElementaryTypeChecker struct{}

func (ElementaryTypeChecker) Accepts(token string) bool {
	return containsAny(token, ElementaryTypes) || strings.HasPrefix(token, functionBlockPrefix)
}

// ExtendedTypeChecker accepts everything ElementaryTypeChecker does plus
// tokens containing one of the configured extra names.
type ExtendedTypeChecker struct {
	extra []string
}

func NewExtendedTypeChecker(extra []string) *ExtendedTypeChecker {
	names := make([]string, 0, len(extra))
	for _, e := range extra {
		if e = strings.ToUpper(strings.TrimSpace(e)); e != "" {
			names = append(names, e)
		}
	}
	return &ExtendedTypeChecker{extra: names}
}

func (c *ExtendedTypeChecker) Accepts(token string) bool {
	return ElementaryTypeChecker{}.Accepts(token) || containsAny(token, c.extra)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// TypeAnnotationRule warns about declaration lines whose type is not
// recognized by its TypeChecker.
type TypeAnnotationRule struct {
	Types TypeChecker
}

func (TypeAnnotationRule) Name() string        { return domain.RuleTypeAnnotation }
func (TypeAnnotationRule) Description() string { return descTypeAnnotation }

func (r TypeAnnotationRule) Check(source string) ([]domain.Issue, error) {
	types := r.Types
	if types == nil {
		types = ElementaryTypeChecker{}
	}

	var issues []domain.Issue
	for i, line := range strings.Split(source, "\n") {
		token, ok := declaredType(line)
		if !ok || types.Accepts(token) {
			continue
		}
		issues = append(issues, domain.NewWarning(domain.RuleTypeAnnotation, i+1,
			fmt.Sprintf("unrecognized data type '%s'; verify it is a valid user-defined type or function-block instance", token)))
	}
	return issues, nil
}

// declaredType extracts the uppercased type annotation of a declaration line.
// Comment lines and assignments are not declarations. With several colons
// the text between the first and second one is used.
func declaredType(line string) (string, bool) {
	if strings.HasPrefix(strings.TrimSpace(line), "//") {
		return "", false
	}
	if strings.Contains(line, ":=") || !strings.Contains(line, ":") {
		return "", false
	}

	segment := strings.Split(line, ":")[1]
	segment = strings.TrimSpace(segment)
	segment = strings.TrimSuffix(segment, ";")
	token := strings.ToUpper(strings.TrimSpace(segment))
	return token, token != ""
}
