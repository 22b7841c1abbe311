package desk

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/marcus/empdesk/internal/config"
	"github.com/marcus/empdesk/internal/models"
)

// copyToClipboard copies text to the system clipboard
func copyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard tool found (install xclip or xsel)")
	}
	return clipboard.WriteAll(text)
}

// formatEmployee formats an employee as markdown for the clipboard
func formatEmployee(e models.Employee, baseURL string, routes config.Routes) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", e.FullName())
	fmt.Fprintf(&sb, "- ID: %s\n", e.ID)
	fmt.Fprintf(&sb, "- First name: %s\n", e.FirstName)
	fmt.Fprintf(&sb, "- Last name: %s\n", e.LastName)
	if baseURL != "" && e.ID != "" {
		fmt.Fprintf(&sb, "- Edit: %s%s\n", strings.TrimRight(baseURL, "/"), routes.EditURL(e.ID))
	}
	return sb.String()
}
