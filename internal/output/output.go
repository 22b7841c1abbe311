// Package output prints command results for humans and scripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/empdesk/internal/models"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Stdout and Stderr are swapped out in tests
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Error prints an error message to stderr
func Error(format string, args ...any) {
	fmt.Fprintln(Stderr, errorStyle.Render("ERROR:")+" "+fmt.Sprintf(format, args...))
}

// Warning prints a warning to stderr
func Warning(format string, args ...any) {
	fmt.Fprintln(Stderr, warningStyle.Render("WARNING:")+" "+fmt.Sprintf(format, args...))
}

// Success prints a success line to stdout
func Success(format string, args ...any) {
	fmt.Fprintln(Stdout, successStyle.Render(fmt.Sprintf(format, args...)))
}

// JSON writes v as indented JSON to stdout
func JSON(v any) error {
	enc := json.NewEncoder(Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// JSONError writes an error envelope to stdout
func JSONError(code, message string) {
	_ = JSON(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// EmployeeTable writes employees as aligned columns
func EmployeeTable(w io.Writer, employees []models.Employee) error {
	if len(employees) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("no employees"))
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFIRST NAME\tLAST NAME")
	for _, e := range employees {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.FirstName, e.LastName)
	}
	return tw.Flush()
}

// FormatEmployeeShort returns "Jane Doe (#5)"
func FormatEmployeeShort(e models.Employee) string {
	return fmt.Sprintf("%s %s", e.FullName(), mutedStyle.Render("(#"+e.ID+")"))
}
