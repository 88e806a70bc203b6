package tui

import (
	"fmt"
	"strings"

	"github.com/abdidvp/sclkraft/internal/domain/rules"
	"github.com/abdidvp/sclkraft/internal/domain/snippets"
)

// RenderSnippetList lists the template library.
func RenderSnippetList(list []snippets.Snippet) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Snippets") + "\n\n")
	for _, s := range list {
		fmt.Fprintf(&b, "  %s %s  %s\n",
			sectionHeaderStyle.Render(padRight(s.Name, 16)),
			s.Title,
			dimStyle.Render(s.Unit),
		)
	}

	blocks := snippets.Blocks()
	if len(blocks) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Standard blocks") + "\n\n")
		b.WriteString("  " + dimStyle.Render(strings.Join(blocks, "  ")) + "\n")
	}
	return b.String()
}

// RenderRuleCatalog lists the rules in execution order, marking disabled ones.
func RenderRuleCatalog(all []rules.Rule, disabled map[string]bool) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Rules") + "\n\n")
	for _, r := range all {
		mark := passStyle.Render("●")
		name := r.Name()
		if disabled[name] {
			mark = faintStyle.Render("○")
			name = faintStyle.Render(padRight(name, 18))
		} else {
			name = padRight(name, 18)
		}
		fmt.Fprintf(&b, "  %s %s %s\n", mark, name, dimStyle.Render(r.Description()))
	}
	return b.String()
}
