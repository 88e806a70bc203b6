package rules

import (
	"regexp"
	"strings"

	"github.com/abdidvp/sclkraft/internal/domain"
)

const (
	msgMissingPOU    = "missing organizational-unit definition (FUNCTION, FUNCTION_BLOCK or PROGRAM)"
	msgStaticInFunc  = "functions cannot contain persistent variables (VAR); use temporary storage (VAR_TEMP) instead"
	descPOUStructure = "Requires a FUNCTION, FUNCTION_BLOCK or PROGRAM and forbids persistent VAR blocks in functions"
)

var (
	pouKeywordPattern = regexp.MustCompile(`(?i)FUNCTION_BLOCK|FUNCTION|PROGRAM`)

	// Whitespace right after FUNCTION keeps FUNCTION_BLOCK headers out.
	functionHeaderPattern = regexp.MustCompile(`(?i)FUNCTION\s+\w+`)

	// VAR at a word start, optionally with an underscore suffix. END_VAR has
	// no word boundary before VAR and never matches.
	varBlockPattern = regexp.MustCompile(`(?i)\bVAR(_\w+)?\b`)
)

// nonPersistentSuffixes are the VAR block suffixes allowed inside a function.
// VAR_GLOBAL is intentionally absent, so a global block counts as persistent.
var nonPersistentSuffixes = []string{"_INPUT", "_OUTPUT", "_IN_OUT", "_TEMP"}

// POUStructureRule checks that the text declares an organizational unit and
// that a pure function does not declare persistent variables.
type POUStructureRule struct{}

func (POUStructureRule) Name() string        { return domain.RulePOUStructure }
func (POUStructureRule) Description() string { return descPOUStructure }

func (POUStructureRule) Check(source string) ([]domain.Issue, error) {
	var issues []domain.Issue

	if !pouKeywordPattern.MatchString(source) {
		issues = append(issues, domain.NewError(domain.RulePOUStructure, 1, msgMissingPOU))
	}

	if functionHeaderPattern.MatchString(source) && hasPersistentVarBlock(source) {
		issues = append(issues, domain.NewError(domain.RulePOUStructure, domain.DocumentLine, msgStaticInFunc))
	}

	return issues, nil
}

func hasPersistentVarBlock(source string) bool {
	for _, m := range varBlockPattern.FindAllStringSubmatch(source, -1) {
		if !isNonPersistentSuffix(m[1]) {
			return true
		}
	}
	return false
}

func isNonPersistentSuffix(suffix string) bool {
	if suffix == "" {
		return false
	}
	upper := strings.ToUpper(suffix)
	for _, s := range nonPersistentSuffixes {
		if strings.HasPrefix(upper, s) {
			return true
		}
	}
	return false
}
