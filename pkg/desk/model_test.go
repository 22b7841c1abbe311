package desk

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/empdesk/internal/config"
	"github.com/marcus/empdesk/internal/crud"
	"github.com/marcus/empdesk/internal/models"
)

var testEmployees = []models.Employee{
	{ID: "1", FirstName: "Alice", LastName: "Smith"},
	{ID: "5", FirstName: "Jane", LastName: "Doe"},
	{ID: "7", FirstName: "Bo", LastName: "Li"},
}

func newTestModel(stub *stubClient) Model {
	m := NewModel(Options{
		Client:  stub,
		Routes:  config.DefaultRoutes(),
		BaseURL: "http://localhost:8000",
		Logger:  discardLogger(),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	next, _ = next.Update(EmployeesMsg{Employees: testEmployees})
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m, cmd = next.(Model), c
	}
	return m, cmd
}

func TestModelLoadsEmployees(t *testing.T) {
	m := newTestModel(&stubClient{})
	if m.Loading {
		t.Error("still loading after EmployeesMsg")
	}
	if len(m.Visible) != 3 {
		t.Fatalf("Visible = %d rows, want 3", len(m.Visible))
	}
	if e, ok := m.Selected(); !ok || e.ID != "1" {
		t.Errorf("Selected() = %+v, %v", e, ok)
	}

	view := m.View()
	for _, name := range []string{"Alice Smith", "Jane Doe", "Bo Li"} {
		if !strings.Contains(view, name) {
			t.Errorf("view missing %q", name)
		}
	}
}

func TestModelCursorMovement(t *testing.T) {
	m := newTestModel(&stubClient{})
	m, _ = press(t, m, "j", "j", "j")
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 (clamped)", m.Cursor)
	}
	m, _ = press(t, m, "k")
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}
	m, _ = press(t, m, "g")
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
}

func TestModelCreateAndEscape(t *testing.T) {
	m := newTestModel(&stubClient{})
	m, _ = press(t, m, "n")
	if !m.Ctl.IsOpen() || m.Ctl.State().Variant != models.VariantCreate {
		t.Fatalf("state after n = %+v", m.Ctl.State())
	}
	if m.dialog == nil {
		t.Fatal("no dialog built")
	}
	if !strings.Contains(m.View(), "Create Employee") {
		t.Error("view missing modal title")
	}

	m, _ = press(t, m, "esc")
	if m.Ctl.IsOpen() || m.dialog != nil {
		t.Error("esc did not close the create modal")
	}
}

func TestModelEditFlow(t *testing.T) {
	stub := &stubClient{employee: &testEmployees[1]}
	m := newTestModel(stub)
	m, cmd := press(t, m, "j", "e")
	if m.Ctl.IsOpen() {
		t.Fatal("edit modal opened before fetch")
	}
	msg := run(t, cmd)
	if len(stub.fetched) != 1 || stub.fetched[0] != "/employee/5/edit" {
		t.Fatalf("fetched %v", stub.fetched)
	}

	next, _ := m.Update(msg)
	m = next.(Model)
	if m.Ctl.State().Variant != models.VariantEdit {
		t.Fatalf("variant = %s", m.Ctl.State().Variant)
	}
	if f := m.Ctl.Form(); f.FirstName != "Jane" || f.LastName != "Doe" {
		t.Errorf("form = %q %q", f.FirstName, f.LastName)
	}
}

func TestModelDeleteConfirmWithEnter(t *testing.T) {
	stub := &stubClient{}
	m := newTestModel(stub)
	m, _ = press(t, m, "G", "d")
	if m.Ctl.State().Variant != models.VariantDeleteConfirm {
		t.Fatalf("variant = %s", m.Ctl.State().Variant)
	}
	if !strings.Contains(m.View(), "Delete Bo Li?") {
		t.Error("confirmation does not name the employee")
	}

	m, cmd := press(t, m, "enter")
	msg := run(t, cmd)
	if len(stub.deleted) != 1 || stub.deleted[0] != "/employee/7/" {
		t.Fatalf("deleted %v", stub.deleted)
	}

	next, reload := m.Update(msg)
	m = next.(Model)
	if m.Ctl.IsOpen() {
		t.Error("modal open after delete")
	}
	if reload == nil || !m.Loading {
		t.Error("delete did not trigger a reload")
	}
	if m.StatusMessage != "Employee deleted" {
		t.Errorf("status = %q", m.StatusMessage)
	}
}

func TestModelDeleteCancelByEscape(t *testing.T) {
	stub := &stubClient{}
	m := newTestModel(stub)
	m, _ = press(t, m, "d", "esc")
	if m.Ctl.IsOpen() || len(stub.deleted) != 0 {
		t.Errorf("open=%v deleted=%v", m.Ctl.IsOpen(), stub.deleted)
	}
}

func TestModelBackdropClickCloses(t *testing.T) {
	m := newTestModel(&stubClient{})
	m, _ = press(t, m, "d")
	_ = m.View()

	next, _ := m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	if m.Ctl.IsOpen() {
		t.Error("click outside the box did not close the modal")
	}
}

func TestModelSubmitFailureShowsError(t *testing.T) {
	stub := &stubClient{result: &crud.SubmitResult{Success: false}}
	m := newTestModel(stub)
	m, _ = press(t, m, "n")
	m, cmd := press(t, m, "ctrl+s")

	next, _ := m.Update(run(t, cmd))
	m = next.(Model)
	if !m.Ctl.IsOpen() {
		t.Fatal("modal closed after a rejected submit")
	}
	if !strings.Contains(m.View(), "rejected") {
		t.Error("inline error not rendered")
	}
}

func TestModelFilter(t *testing.T) {
	m := newTestModel(&stubClient{})
	m, _ = press(t, m, "/", "j", "a")
	if !m.Filtering {
		t.Fatal("not filtering after /")
	}
	if len(m.Visible) != 1 || m.Visible[0].ID != "5" {
		t.Errorf("Visible = %+v, want only Jane Doe", m.Visible)
	}

	m, _ = press(t, m, "enter")
	if m.Filtering || len(m.Visible) != 1 {
		t.Error("enter should keep the filter and leave filter mode")
	}
	m, _ = press(t, m, "esc")
	if len(m.Visible) != 3 {
		t.Errorf("esc did not clear the filter: %d rows", len(m.Visible))
	}
}

func TestModelMissingConfigSetsStatus(t *testing.T) {
	m := newTestModel(&stubClient{})
	m.Visible = []models.Employee{{FirstName: "No", LastName: "Id"}}
	m, _ = press(t, m, "e")
	if m.Ctl.IsOpen() {
		t.Error("modal opened for a row without id")
	}
	if !m.StatusIsError || !strings.Contains(m.StatusMessage, "data-id") {
		t.Errorf("status = %q", m.StatusMessage)
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(&stubClient{})
	m, _ = press(t, m, "?")
	if !m.HelpOpen {
		t.Fatal("help not open")
	}
	m, _ = press(t, m, "n")
	if m.Ctl.IsOpen() {
		t.Error("keys reached the list while help was open")
	}
	m, _ = press(t, m, "?")
	if m.HelpOpen {
		t.Error("help still open")
	}
}
