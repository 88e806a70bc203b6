// Package remediation maps issue messages to operator guidance.
package remediation

import "strings"

const fallback = "Check the technical documentation to confirm compliance with the required Safety Integrity Level (SIL)."

// suggestions are matched in order; the first substring found wins.
var suggestions = []struct {
	match string
	text  string
}{
	{"recursion", "Use an iterative construct (FOR/WHILE) or an external state machine."},
	{"persistent variables", "Move the state into a function block (FB) or use VAR_TEMP if it does not need to persist."},
	{"hardware address binding", "Declare the physical address (e.g. %I0.0) so the compiler can map the variable to real hardware."},
	{"organizational-unit", "Encapsulate the code in a FUNCTION, FUNCTION_BLOCK or PROGRAM."},
}

// Suggest returns remediation guidance for an issue message.
func Suggest(message string) string {
	for _, s := range suggestions {
		if strings.Contains(message, s.match) {
			return s.text
		}
	}
	return fallback
}
