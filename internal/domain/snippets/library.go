// Package snippets holds the library of insertable SCL fragments: complete
// example units and standard function block instances.
package snippets

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/camelcase"
)

var (
	ErrUnknownSnippet = errors.New("unknown snippet")
	ErrUnknownBlock   = errors.New("unknown function block")
)

// Snippet is a named, complete source template.
type Snippet struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Unit   string `json:"unit"`
	Source string `json:"source"`
}

var unitPrefixes = []string{"FB_", "FC_", "PLC_"}

func newSnippet(name, source string) Snippet {
	unit := unitName(source)
	return Snippet{Name: name, Title: titleFor(unit), Unit: unit, Source: source}
}

// unitName returns the identifier after the keyword on the first line.
func unitName(source string) string {
	first, _, _ := strings.Cut(source, "\n")
	fields := strings.Fields(first)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// titleFor turns FB_StateMachine into "State Machine".
func titleFor(unit string) string {
	for _, p := range unitPrefixes {
		if strings.HasPrefix(unit, p) {
			unit = unit[len(p):]
			break
		}
	}
	return strings.Join(camelcase.Split(unit), " ")
}

// Get returns the named template.
func Get(name string) (Snippet, error) {
	src, ok := templates[name]
	if !ok {
		return Snippet{}, fmt.Errorf("%w %q", ErrUnknownSnippet, name)
	}
	return newSnippet(name, src), nil
}

// List returns all templates sorted by name.
func List() []Snippet {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Snippet, 0, len(names))
	for _, name := range names {
		out = append(out, newSnippet(name, templates[name]))
	}
	return out
}

// Blocks returns the standard function block names, sorted.
func Blocks() []string {
	names := make([]string, 0, len(blocks))
	for name := range blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instance returns a declaration and call for the n-th instance of a
// standard function block.
func Instance(block string, n int) (string, error) {
	block = strings.ToUpper(strings.TrimSpace(block))
	inputs, ok := blocks[block]
	if !ok {
		return "", fmt.Errorf("%w %q (known: %s)", ErrUnknownBlock, block, strings.Join(Blocks(), ", "))
	}
	if n < 1 {
		n = 1
	}

	inst := fmt.Sprintf("inst%s_%d", block, n)
	args := make([]string, len(inputs))
	for i, in := range inputs {
		args[i] = in + " := "
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Instance of %s\n", block)
	fmt.Fprintf(&b, "%s : %s;\n", inst, block)
	fmt.Fprintf(&b, "%s(%s);", inst, strings.Join(args, ", "))
	return b.String(), nil
}

// InsertAtLine inserts snippet after the given 1-based line. Line 0 inserts
// at the top; lines past the end append.
func InsertAtLine(source string, line int, snippet string) string {
	if source == "" {
		return snippet
	}
	lines := strings.Split(source, "\n")
	if line < 0 {
		line = 0
	}
	if line > len(lines) {
		line = len(lines)
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:line]...)
	out = append(out, snippet)
	out = append(out, lines[line:]...)
	return strings.Join(out, "\n")
}
