package desk

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/marcus/empdesk/pkg/desk/modal"
)

const helpMarkdown = `
# Keys

| Key | Action |
|-----|--------|
| n | New employee |
| e, enter | Edit selected |
| d, delete | Delete selected |
| r | Reload list |
| / | Filter by name |
| y | Copy selected |
| ? | This help |
| q | Quit |

## In a dialog

| Key | Action |
|-----|--------|
| tab | Next field or button |
| ctrl+s | Save |
| esc | Close without saving |

Clicking outside a dialog closes it.
`

// renderHelp renders the help text for the given width. Falls back to the
// raw markdown if glamour fails.
func renderHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.Trim(out, "\n")
}

// buildHelp creates the help modal. The body is rendered once, on first draw.
func (m Model) buildHelp() *modal.Modal {
	width := min(64, max(30, m.Width-4))
	var body string
	title := "Help"
	if m.Version != "" {
		title += " · empdesk " + m.Version
	}
	md := modal.New(title,
		modal.WithWidth(width),
		modal.WithVariant(modal.VariantInfo),
		modal.WithHints(false),
		modal.WithCloseOnBackdropClick(true),
	)
	md.AddSection(modal.Custom(func(contentWidth int) string {
		if body == "" {
			body = renderHelp(contentWidth)
		}
		return body
	}, nil))
	md.AddSection(modal.Custom(func(int) string {
		return hintStyle.Render("esc or ? to close")
	}, nil))
	return md
}
