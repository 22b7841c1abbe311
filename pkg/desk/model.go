package desk

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/marcus/empdesk/internal/config"
	"github.com/marcus/empdesk/internal/models"
	"github.com/marcus/empdesk/pkg/desk/modal"
	"github.com/marcus/empdesk/pkg/desk/mouse"
	"github.com/sahilm/fuzzy"
)

// Dialog action IDs
const (
	actionSave   = "save"
	actionDelete = "delete"
	actionCancel = "cancel"
)

const statusTTL = 2 * time.Second

// ClearStatusMsg clears the status line
type ClearStatusMsg struct{}

// Options configures a desk Model
type Options struct {
	Client  EmployeeClient
	Routes  config.Routes
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
	Version string
}

// Model is the employee desk TUI: a list of employees with one shared modal
// for create, edit and delete confirmation.
type Model struct {
	Wiring *Wiring
	Ctl    *ModalController
	Routes config.Routes

	BaseURL string
	Version string
	logger  *slog.Logger

	// List
	Employees []models.Employee
	Visible   []models.Employee
	Cursor    int
	Offset    int
	Loading   bool
	LoadErr   error

	// Filter
	Filter    textinput.Model
	Filtering bool

	Width  int
	Height int

	StatusMessage string
	StatusIsError bool

	HelpOpen bool

	dialog *modal.Modal
	help   *modal.Modal
	mouse  *mouse.Handler
}

// NewModel creates the desk model
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctl := NewModalController(NewEmployeeForm())
	ti := textinput.New()
	ti.Placeholder = "filter by name"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return Model{
		Wiring:  NewWiring(ctl, opts.Client, opts.Routes, opts.Timeout, logger),
		Ctl:     ctl,
		Routes:  opts.Routes,
		BaseURL: opts.BaseURL,
		Version: opts.Version,
		logger:  logger,
		Loading: true,
		Filter:  ti,
		Width:   80,
		Height:  24,
		mouse:   mouse.NewHandler(),
	}
}

// Init starts the first list fetch
func (m Model) Init() tea.Cmd {
	return m.Wiring.Reload()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Ctl.Form().SetWidth(m.formWidth())
		m.clampScroll()
		return m, nil

	case EmployeesMsg:
		m.Loading = false
		m.LoadErr = msg.Err
		if msg.Err != nil {
			m.logger.Error("list employees", "err", msg.Err)
			return m.setStatus("Load failed: "+describeError(msg.Err), true)
		}
		m.Employees = msg.Employees
		m.applyFilter()
		return m, nil

	case EditFetchedMsg:
		wasOpen := m.Ctl.IsOpen()
		cmd := m.Wiring.HandleEditFetched(msg)
		if !wasOpen && m.Ctl.IsOpen() {
			m.dialog = m.buildDialog()
		}
		return m, cmd

	case SubmitDoneMsg:
		reload := m.Wiring.HandleSubmitDone(msg)
		return m.afterResult(reload, "Employee saved")

	case DeleteDoneMsg:
		reload := m.Wiring.HandleDeleteDone(msg)
		return m.afterResult(reload, "Employee deleted")

	case ClearStatusMsg:
		m.StatusMessage = ""
		m.StatusIsError = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	// huh drives its own focus changes through internal messages
	if m.formOpen() {
		return m.updateForm(msg)
	}
	return m, nil
}

// afterResult syncs the dialog with the controller after a request finished
// and reloads the list when the server changed it.
func (m Model) afterResult(reload bool, okMsg string) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if !m.Ctl.IsOpen() {
		m.dialog = nil
	} else if m.formOpen() {
		cmds = append(cmds, m.Ctl.Form().Form.Init())
	}
	if reload {
		m.Loading = true
		cmds = append(cmds, m.Wiring.Reload())
		next, cmd := m.setStatus(okMsg, false)
		return next, tea.Batch(append(cmds, cmd)...)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.HelpOpen:
		switch msg.String() {
		case "esc", "?", "q", "enter":
			m.HelpOpen = false
			m.help = nil
		}
		return m, nil

	case m.formOpen():
		switch msg.String() {
		case "esc":
			return m.dispatch(Trigger{Kind: TriggerEscape})
		case "ctrl+s":
			return m, m.Wiring.Submit()
		}
		return m.updateForm(msg)

	case m.Ctl.IsOpen():
		if m.dialog == nil {
			m.dialog = m.buildDialog()
		}
		action, cmd := m.dialog.HandleKey(msg)
		next, actionCmd := m.handleDialogAction(action)
		return next, tea.Batch(cmd, actionCmd)

	case m.Filtering:
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.Cursor = 0
		m.clampScroll()
	case "G", "end":
		m.Cursor = len(m.Visible) - 1
		m.clampScroll()
	case "n":
		return m.dispatch(CreateTrigger())
	case "e", "enter":
		if e, ok := m.Selected(); ok {
			return m.dispatch(EditTrigger(m.Routes, e))
		}
	case "d", "delete":
		if e, ok := m.Selected(); ok {
			return m.dispatch(DeleteTrigger(m.Routes, e))
		}
	case "r":
		m.Loading = true
		return m, m.Wiring.Reload()
	case "/":
		m.Filtering = true
		cmd := m.Filter.Focus()
		return m, cmd
	case "esc":
		if m.Filter.Value() != "" {
			m.Filter.SetValue("")
			m.applyFilter()
		}
	case "y":
		return m.copySelected()
	case "?":
		m.HelpOpen = true
		m.help = m.buildHelp()
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Filtering = false
		m.Filter.Blur()
		m.Filter.SetValue("")
		m.applyFilter()
		return m, nil
	case "enter":
		m.Filtering = false
		m.Filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.Filter, cmd = m.Filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// updateForm forwards msg to the huh form and submits once it completes
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form := m.Ctl.Form()
	next, cmd := form.Form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		form.Form = f
	}

	switch form.Form.State {
	case huh.StateCompleted:
		return m, tea.Batch(cmd, m.Wiring.Submit())
	case huh.StateAborted:
		next, closeCmd := m.dispatch(Trigger{Kind: TriggerCancel})
		return next, tea.Batch(cmd, closeCmd)
	}
	return m, cmd
}

func (m Model) handleDialogAction(action string) (tea.Model, tea.Cmd) {
	switch action {
	case actionSave:
		return m, m.Wiring.Submit()
	case actionDelete:
		return m, m.Wiring.Confirm()
	case actionCancel:
		return m.dispatch(Trigger{Kind: TriggerCancel})
	case modal.ActionEscape:
		return m.dispatch(Trigger{Kind: TriggerEscape})
	case modal.ActionBackdrop:
		return m.dispatch(Trigger{Kind: TriggerOverlay})
	}
	return m, nil
}

// dispatch runs a trigger through the wiring and keeps the dialog in step
// with the controller
func (m Model) dispatch(t Trigger) (tea.Model, tea.Cmd) {
	wasOpen := m.Ctl.IsOpen()
	cmd, err := m.Wiring.Dispatch(t)
	if err != nil {
		return m.setStatus(describeError(err), true)
	}
	switch {
	case !m.Ctl.IsOpen():
		m.dialog = nil
	case !wasOpen:
		m.dialog = m.buildDialog()
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.HelpOpen {
		if m.help != nil && m.help.HandleMouse(msg, m.mouse) != "" {
			m.HelpOpen = false
			m.help = nil
		}
		return m, nil
	}

	if m.Ctl.IsOpen() {
		if m.dialog == nil {
			return m, nil
		}
		return m.handleDialogAction(m.dialog.HandleMouse(msg, m.mouse))
	}

	action := m.mouse.HandleMouse(msg)
	switch action.Type {
	case mouse.ActionScrollUp:
		m.moveCursor(-1)
	case mouse.ActionScrollDown:
		m.moveCursor(1)
	case mouse.ActionClick, mouse.ActionDoubleClick:
		if action.Region == nil {
			return m, nil
		}
		idx, ok := action.Region.Data.(int)
		if !ok || !strings.HasPrefix(action.Region.ID, regionRow) {
			return m, nil
		}
		m.Cursor = idx
		m.clampScroll()
		if action.Type == mouse.ActionDoubleClick {
			if e, ok := m.Selected(); ok {
				return m.dispatch(EditTrigger(m.Routes, e))
			}
		}
	}
	return m, nil
}

// Selected returns the employee under the cursor
func (m Model) Selected() (models.Employee, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Visible) {
		return models.Employee{}, false
	}
	return m.Visible[m.Cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.Cursor += delta
	m.clampScroll()
}

// clampScroll keeps the cursor in range and on screen
func (m *Model) clampScroll() {
	if m.Cursor >= len(m.Visible) {
		m.Cursor = len(m.Visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	rows := m.listRows()
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+rows {
		m.Offset = m.Cursor - rows + 1
	}
	if m.Offset < 0 {
		m.Offset = 0
	}
}

// applyFilter recomputes Visible from Employees and the filter text.
// Matches are ordered by fuzzy score.
func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.Filter.Value())
	if query == "" {
		m.Visible = m.Employees
		m.clampScroll()
		return
	}

	names := make([]string, len(m.Employees))
	for i, e := range m.Employees {
		names[i] = e.FullName()
	}
	matches := fuzzy.Find(query, names)
	m.Visible = make([]models.Employee, 0, len(matches))
	for _, match := range matches {
		m.Visible = append(m.Visible, m.Employees[match.Index])
	}
	m.clampScroll()
}

func (m Model) formOpen() bool {
	return m.Ctl.IsOpen() && m.Ctl.State().Variant.IsFormVariant()
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.StatusMessage = text
	m.StatusIsError = isErr
	return m, tea.Tick(statusTTL, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

func (m Model) copySelected() (tea.Model, tea.Cmd) {
	e, ok := m.Selected()
	if !ok {
		return m, nil
	}
	if err := copyToClipboard(formatEmployee(e, m.BaseURL, m.Routes)); err != nil {
		return m.setStatus("Copy failed: "+err.Error(), true)
	}
	return m.setStatus(fmt.Sprintf("Copied %s", e.FullName()), false)
}
