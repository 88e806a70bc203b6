// Package normalize rewrites SCL source into canonical keyword casing.
package normalize

import (
	"regexp"
	"strings"
)

// Keywords lists the reserved words that are uppercased.
var Keywords = []string{
	"FUNCTION", "FUNCTION_BLOCK", "PROGRAM",
	"VAR", "VAR_INPUT", "VAR_OUTPUT", "END_VAR",
	"END_FUNCTION", "END_FUNCTION_BLOCK",
	"CASE", "OF", "END_CASE",
	"IF", "THEN", "ELSIF", "ELSE", "END_IF",
	"TRUE", "FALSE",
}

var keywordPattern = buildPattern(Keywords)

// Underscore is a word character, so FUNCTION never matches inside
// FUNCTION_BLOCK and each keyword is replaced whole.
func buildPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// KeywordCase returns source with every whole-word keyword uppercased.
// Comments and string literals are not skipped.
func KeywordCase(source string) string {
	return keywordPattern.ReplaceAllStringFunc(source, strings.ToUpper)
}
