package desk

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/empdesk/internal/models"
	"github.com/marcus/empdesk/pkg/desk/modal"
)

// regionRow prefixes the hit region of each list row
const regionRow = "row:"

// header: title, column names. footer: blank, status or hints.
const (
	headerLines = 2
	footerLines = 2
)

func (m Model) dialogWidth() int {
	return min(60, max(30, m.Width-4))
}

func (m Model) formWidth() int {
	return m.dialogWidth() - 6
}

// listRows is the number of employee rows that fit on screen
func (m Model) listRows() int {
	rows := m.Height - headerLines - footerLines
	if m.filterShown() {
		rows--
	}
	return max(1, rows)
}

func (m Model) filterShown() bool {
	return m.Filtering || m.Filter.Value() != ""
}

// buildDialog creates the modal box for the controller's open session
func (m Model) buildDialog() *modal.Modal {
	state := m.Ctl.State()
	ctl := m.Ctl

	errLine := modal.When(func() bool { return ctl.Err() != "" },
		modal.Custom(func(w int) string {
			return modal.ErrorText.Width(w).Render(ctl.Err())
		}, nil))
	busyLine := modal.When(ctl.Submitting,
		modal.Custom(func(int) string {
			return hintStyle.Render("Sending...")
		}, nil))

	if state.Variant == models.VariantDeleteConfirm {
		return modal.New(state.Title,
			modal.WithWidth(m.dialogWidth()),
			modal.WithVariant(modal.VariantDanger),
			modal.WithPrimaryAction(actionDelete),
			modal.WithCloseOnBackdropClick(true),
		).
			AddSection(modal.Text(m.deletePrompt())).
			AddSection(errLine).
			AddSection(busyLine).
			AddSection(modal.Spacer()).
			AddSection(modal.Buttons(
				modal.Btn(" Delete ", actionDelete, modal.BtnDanger()),
				modal.Btn(" Cancel ", actionCancel),
			))
	}

	form := ctl.Form()
	return modal.New(state.Title,
		modal.WithWidth(m.dialogWidth()),
		modal.WithHints(false),
		modal.WithCloseOnBackdropClick(true),
	).
		AddSection(modal.Custom(func(int) string {
			return form.Form.View()
		}, nil)).
		AddSection(errLine).
		AddSection(busyLine).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Save ", actionSave),
			modal.Btn(" Cancel ", actionCancel),
		)).
		AddSection(modal.Custom(func(int) string {
			return hintStyle.Render("enter next · ctrl+s save · esc close")
		}, nil))
}

func (m Model) deletePrompt() string {
	action := m.Ctl.Pending()
	if action == nil {
		return "Delete this employee?"
	}
	for _, e := range m.Employees {
		if e.ID == action.EntityID {
			return fmt.Sprintf("Delete %s? This cannot be undone.", e.FullName())
		}
	}
	return fmt.Sprintf("Delete employee #%s? This cannot be undone.", action.EntityID)
}

// View renders the list and, when a session is open, the modal over it
func (m Model) View() string {
	m.mouse.Clear()

	base := m.renderList()
	switch {
	case m.HelpOpen && m.help != nil:
		box := m.help.Render(m.Width, m.Height, m.mouse)
		return modal.Overlay(base, box, m.Width, m.Height)
	case m.Ctl.OverlayVisible() && m.dialog != nil:
		box := m.dialog.Render(m.Width, m.Height, m.mouse)
		return modal.Overlay(base, box, m.Width, m.Height)
	}
	return base
}

func (m Model) renderList() string {
	var lines []string

	title := titleStyle.Render("Employees")
	if m.BaseURL != "" {
		title += hintStyle.Render("  " + m.BaseURL)
	}
	if m.Loading {
		title += hintStyle.Render("  loading...")
	}
	lines = append(lines, title)
	lines = append(lines, headerStyle.Render(fmt.Sprintf("  %-8s %s", "ID", "NAME")))
	if m.filterShown() {
		lines = append(lines, m.Filter.View())
	}

	rows := m.listRows()
	switch {
	case len(m.Visible) == 0 && m.LoadErr != nil:
		lines = append(lines, statusErrStyle.Render("  "+describeError(m.LoadErr)))
	case len(m.Visible) == 0 && !m.Loading:
		lines = append(lines, hintStyle.Render("  no employees"))
	}

	for i := m.Offset; i < len(m.Visible) && i < m.Offset+rows; i++ {
		y := len(lines)
		lines = append(lines, m.renderRow(i))
		m.mouse.HitMap.AddRect(fmt.Sprintf("%s%d", regionRow, i), 0, y, m.Width, 1, i)
	}

	for len(lines) < m.Height-footerLines {
		lines = append(lines, "")
	}
	lines = append(lines, "", m.renderFooter())
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(i int) string {
	e := m.Visible[i]
	marker := "  "
	style := rowStyle
	if i == m.Cursor {
		marker = "> "
		style = selectedRowStyle
	}
	line := marker + idStyle.Render(fmt.Sprintf("%-8s", ansi.Truncate(e.ID, 8, "…"))) + " " + e.FullName()
	line = ansi.Truncate(line, max(1, m.Width), "…")
	if pad := m.Width - lipgloss.Width(line); pad > 0 && i == m.Cursor {
		line += strings.Repeat(" ", pad)
	}
	return style.Render(line)
}

func (m Model) renderFooter() string {
	if m.StatusMessage != "" {
		if m.StatusIsError {
			return statusErrStyle.Render(m.StatusMessage)
		}
		return statusOKStyle.Render(m.StatusMessage)
	}
	hints := "n new · e edit · d delete · / filter · r reload · ? help · q quit"
	return hintStyle.Render(ansi.Truncate(hints, max(1, m.Width), "…"))
}
