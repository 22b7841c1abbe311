package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/empdesk/pkg/desk/mouse"
)

// Actions reported by HandleKey and HandleMouse that do not come from a button.
const (
	ActionEscape   = "esc"
	ActionBackdrop = "backdrop"
)

// Region IDs registered in the hit map
const (
	RegionBackdrop = "modal:backdrop"
	RegionBody     = "modal:body"
)

// box chrome: rounded border (1) + Padding(1, 2)
const (
	chromeX = 1 + 2
	chromeY = 1 + 1
)

// Variant selects the border color
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

// FocusableInfo describes a focusable element relative to its section
type FocusableInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// RenderedSection is the output of Section.Render
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
}

// Section is one block of modal content
type Section interface {
	Render(contentWidth int, focusID, hoverID string) RenderedSection
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// Option configures a Modal
type Option func(*Modal)

// WithWidth sets the outer width of the box
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithVariant sets the visual style
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithHints shows or hides the key hint line
func WithHints(show bool) Option {
	return func(m *Modal) { m.showHints = show }
}

// WithPrimaryAction is returned by Enter when no button has focus
func WithPrimaryAction(actionID string) Option {
	return func(m *Modal) { m.primaryAction = actionID }
}

// WithCloseOnBackdropClick reports clicks outside the box as ActionBackdrop
func WithCloseOnBackdropClick(close bool) Option {
	return func(m *Modal) { m.closeOnBackdrop = close }
}

// Modal is a titled dialog made of sections
type Modal struct {
	title           string
	width           int
	variant         Variant
	showHints       bool
	primaryAction   string
	closeOnBackdrop bool

	sections []Section
	focusIDs []string
	focusIdx int
	hoverID  string
}

// New creates a modal
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:     title,
		width:     50,
		showHints: true,
		focusIdx:  -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends a section
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// Title returns the modal title
func (m *Modal) Title() string {
	return m.title
}

// Width returns the outer box width
func (m *Modal) Width() int {
	return m.width
}

// ContentWidth is the space available to sections
func (m *Modal) ContentWidth() int {
	return max(10, m.width-2*chromeX)
}

// FocusedID returns the focused element's ID, or ""
func (m *Modal) FocusedID() string {
	if m.focusIdx < 0 || m.focusIdx >= len(m.focusIDs) {
		return ""
	}
	return m.focusIDs[m.focusIdx]
}

// SetFocus focuses the element with id if it was rendered
func (m *Modal) SetFocus(id string) {
	for i, fid := range m.focusIDs {
		if fid == id {
			m.focusIdx = i
			return
		}
	}
}

// Render draws the box and registers hit regions in handler.
// The returned string is the box only; see Overlay for compositing.
func (m *Modal) Render(screenW, screenH int, handler *mouse.Handler) string {
	contentWidth := m.ContentWidth()
	focusID := m.FocusedID()

	var blocks []string
	type placed struct {
		info mouse.Rect
		id   string
	}
	var hits []placed
	var ids []string

	blocks = append(blocks, ModalTitle.Render(m.title), "")
	lineY := 2

	for _, s := range m.sections {
		rs := s.Render(contentWidth, focusID, m.hoverID)
		if rs.Content == "" && len(rs.Focusables) == 0 {
			continue
		}
		for _, f := range rs.Focusables {
			ids = append(ids, f.ID)
			hits = append(hits, placed{
				id:   f.ID,
				info: mouse.Rect{X: f.OffsetX, Y: lineY + f.OffsetY, W: f.Width, H: max(1, f.Height)},
			})
		}
		blocks = append(blocks, rs.Content)
		lineY += lipgloss.Height(rs.Content)
	}

	if m.showHints {
		blocks = append(blocks, "", MutedText.Render("tab focus · enter select · esc close"))
	}

	m.focusIDs = ids
	if m.focusIdx >= len(ids) {
		m.focusIdx = len(ids) - 1
	}

	content := strings.Join(blocks, "\n")
	box := boxStyle(m.variant).Width(m.width - 2).Render(content)

	if handler != nil {
		boxW, boxH := lipgloss.Width(box), lipgloss.Height(box)
		x, y := Position(boxW, boxH, screenW, screenH)
		if m.closeOnBackdrop {
			handler.HitMap.AddRect(RegionBackdrop, 0, 0, screenW, screenH, nil)
		}
		handler.HitMap.AddRect(RegionBody, x, y, boxW, boxH, nil)
		for _, h := range hits {
			handler.HitMap.AddRect(h.id, x+chromeX+h.info.X, y+chromeY+h.info.Y, h.info.W, h.info.H, nil)
		}
	}

	return box
}

// HandleKey processes a key press. Returns a non-empty action ID when a
// button was activated, ActionEscape for Esc, or whatever a section reports.
func (m *Modal) HandleKey(msg tea.KeyMsg) (string, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return ActionEscape, nil
	case "tab", "right":
		if len(m.focusIDs) > 0 {
			m.focusIdx = (m.focusIdx + 1) % len(m.focusIDs)
		}
		return "", nil
	case "shift+tab", "left":
		if len(m.focusIDs) > 0 {
			m.focusIdx--
			if m.focusIdx < 0 {
				m.focusIdx = len(m.focusIDs) - 1
			}
		}
		return "", nil
	case "enter":
		if id := m.FocusedID(); id != "" {
			return id, nil
		}
		return m.primaryAction, nil
	}

	focusID := m.FocusedID()
	var cmds []tea.Cmd
	for _, s := range m.sections {
		action, cmd := s.Update(msg, focusID)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if action != "" {
			return action, tea.Batch(cmds...)
		}
	}
	return "", tea.Batch(cmds...)
}

// HandleMouse resolves a mouse event against the regions registered by the
// last Render. Clicks on a button return its ID; clicks outside the box
// return ActionBackdrop when enabled.
func (m *Modal) HandleMouse(msg tea.MouseMsg, handler *mouse.Handler) string {
	if handler == nil {
		return ""
	}
	action := handler.HandleMouse(msg)
	switch action.Type {
	case mouse.ActionHover:
		m.hoverID = ""
		if action.Region != nil && m.isFocusable(action.Region.ID) {
			m.hoverID = action.Region.ID
		}
	case mouse.ActionClick, mouse.ActionDoubleClick:
		if action.Region == nil {
			return ""
		}
		switch id := action.Region.ID; {
		case id == RegionBackdrop:
			return ActionBackdrop
		case id == RegionBody:
			return ""
		case m.isFocusable(id):
			m.SetFocus(id)
			return id
		}
	}
	return ""
}

func (m *Modal) isFocusable(id string) bool {
	for _, fid := range m.focusIDs {
		if fid == id {
			return true
		}
	}
	return false
}

// Position returns the top-left corner that centers a box on screen
func Position(boxW, boxH, screenW, screenH int) (int, int) {
	return max(0, (screenW-boxW)/2), max(0, (screenH-boxH)/2)
}
