package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/ka2n/postview/api/record"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
	"<", `\<`,
)

// Markdown renders the record titles as a markdown bullet list
func Markdown(records []record.Record) string {
	var b strings.Builder
	b.WriteString("# Posts\n\n")
	if len(records) == 0 {
		b.WriteString("_No posts._\n")
		return b.String()
	}
	for _, r := range records {
		b.WriteString("- ")
		b.WriteString(markdownEscaper.Replace(r.Title))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderText renders the titles for a terminal, or as plain text when styled
// is false
func RenderText(records []record.Record, width int, styled bool) (string, error) {
	style := styles.NoTTYStyle
	if styled {
		style = styles.AutoStyle
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(Markdown(records))
}
