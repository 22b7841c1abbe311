package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

type textSection struct {
	text  string
	style lipgloss.Style
}

// Text creates a wrapped static text section
func Text(s string) Section {
	return &textSection{text: s, style: Body}
}

// ErrorLine creates a text section in the error color
func ErrorLine(s string) Section {
	return &textSection{text: s, style: ErrorText}
}

func (s *textSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return RenderedSection{Content: s.style.Render(cellbuf.Wrap(s.text, contentWidth, ""))}
}

func (s *textSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	return "", nil
}

type spacerSection struct{}

// Spacer creates a blank line
func Spacer() Section {
	return spacerSection{}
}

func (spacerSection) Render(int, string, string) RenderedSection {
	return RenderedSection{Content: " "}
}

func (spacerSection) Update(tea.Msg, string) (string, tea.Cmd) {
	return "", nil
}

// ButtonDef describes one button
type ButtonDef struct {
	Label    string
	ID       string
	Danger   bool
	Disabled bool
}

// ButtonOption configures a ButtonDef
type ButtonOption func(*ButtonDef)

// BtnDanger renders the button in the danger palette when focused
func BtnDanger() ButtonOption {
	return func(b *ButtonDef) { b.Danger = true }
}

// BtnDisabled greys the button out and removes it from focus and hits
func BtnDisabled(disabled bool) ButtonOption {
	return func(b *ButtonDef) { b.Disabled = disabled }
}

// Btn creates a button definition
func Btn(label, id string, opts ...ButtonOption) ButtonDef {
	b := ButtonDef{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type buttonsSection struct {
	buttons []ButtonDef
}

// Buttons creates a row of buttons
func Buttons(btns ...ButtonDef) Section {
	return &buttonsSection{buttons: btns}
}

func (s *buttonsSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	var parts []string
	var focusables []FocusableInfo
	x := 0

	for i, b := range s.buttons {
		if i > 0 {
			parts = append(parts, "  ")
			x += 2
		}

		style := Button
		switch {
		case b.Disabled:
			style = ButtonDisabled
		case b.ID == focusID && b.Danger:
			style = ButtonDangerFocused
		case b.ID == focusID:
			style = ButtonFocused
		case b.ID == hoverID && b.Danger:
			style = ButtonDangerHover
		case b.ID == hoverID:
			style = ButtonHover
		}

		rendered := style.Render(b.Label)
		w := lipgloss.Width(rendered)
		if !b.Disabled {
			focusables = append(focusables, FocusableInfo{ID: b.ID, OffsetX: x, Width: w, Height: 1})
		}
		parts = append(parts, rendered)
		x += w
	}

	return RenderedSection{
		Content:    strings.Join(parts, ""),
		Focusables: focusables,
	}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	return "", nil
}

type customSection struct {
	render func(contentWidth int) string
	update func(msg tea.Msg) (string, tea.Cmd)
}

// Custom wraps arbitrary content. update may be nil.
func Custom(render func(contentWidth int) string, update func(msg tea.Msg) (string, tea.Cmd)) Section {
	return &customSection{render: render, update: update}
}

func (s *customSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	return RenderedSection{Content: s.render(contentWidth)}
}

func (s *customSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if s.update == nil {
		return "", nil
	}
	return s.update(msg)
}

type whenSection struct {
	cond    func() bool
	section Section
}

// When renders section only while cond returns true
func When(cond func() bool, section Section) Section {
	return &whenSection{cond: cond, section: section}
}

func (s *whenSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if !s.cond() {
		return RenderedSection{}
	}
	return s.section.Render(contentWidth, focusID, hoverID)
}

func (s *whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if !s.cond() {
		return "", nil
	}
	return s.section.Update(msg, focusID)
}
