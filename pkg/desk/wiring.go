package desk

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/marcus/empdesk/internal/config"
	"github.com/marcus/empdesk/internal/crud"
	"github.com/marcus/empdesk/internal/models"
)

// EmployeeClient is the part of crud.Client the wiring needs
type EmployeeClient interface {
	FetchOne(ctx context.Context, ref string) (*models.Employee, error)
	SubmitForm(ctx context.Context, method, ref string, values url.Values) (*crud.SubmitResult, error)
	DeleteOne(ctx context.Context, ref string) error
	List(ctx context.Context) ([]models.Employee, error)
}

// EditFetchedMsg carries the record loaded for an edit trigger
type EditFetchedMsg struct {
	EmployeeID string
	URL        string
	Title      string
	Employee   *models.Employee
	Err        error
}

// SubmitDoneMsg reports a create/update result
type SubmitDoneMsg struct {
	ActionID string
	Result   *crud.SubmitResult
	Err      error
}

// DeleteDoneMsg reports a delete result
type DeleteDoneMsg struct {
	ActionID   string
	EmployeeID string
	Err        error
}

// EmployeesMsg carries a reloaded employee list
type EmployeesMsg struct {
	Employees []models.Employee
	Err       error
}

// Wiring connects triggers to the controller, the form and the client.
// Handlers run on the bubbletea update loop; network calls are returned as
// commands and their results come back as messages.
type Wiring struct {
	ctl     *ModalController
	binder  FormBinder
	client  EmployeeClient
	routes  config.Routes
	timeout time.Duration
	logger  *slog.Logger
}

// NewWiring creates the wiring. A zero timeout means no deadline.
func NewWiring(ctl *ModalController, client EmployeeClient, routes config.Routes, timeout time.Duration, logger *slog.Logger) *Wiring {
	if logger == nil {
		logger = slog.Default()
	}
	return &Wiring{
		ctl:     ctl,
		client:  client,
		routes:  routes,
		timeout: timeout,
		logger:  logger,
	}
}

func (w *Wiring) context() (context.Context, context.CancelFunc) {
	if w.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), w.timeout)
}

// Dispatch routes a trigger to its handler. Dismissal triggers close the
// modal; the rest may return a command to run.
func (w *Wiring) Dispatch(t Trigger) (tea.Cmd, error) {
	switch t.Kind {
	case TriggerCreate:
		return w.OnCreate(t)
	case TriggerEdit:
		return w.OnEdit(t)
	case TriggerDelete:
		return w.OnDelete(t)
	case TriggerOverlay, TriggerEscape, TriggerCancel:
		w.OnDismiss(t.Kind)
		return nil, nil
	}
	return nil, nil
}

// OnCreate opens the create modal with an empty form
func (w *Wiring) OnCreate(t Trigger) (tea.Cmd, error) {
	if w.ctl.IsOpen() {
		w.logger.Debug("trigger dropped, modal open", "trigger", t.Kind)
		return nil, nil
	}
	if _, err := t.Attr(AttrModalID); err != nil {
		w.logger.Error("trigger aborted", "err", err)
		return nil, err
	}
	if w.routes.Create == "" {
		err := &MissingConfigError{Trigger: t.Kind, Attr: "routes.create"}
		w.logger.Error("trigger aborted", "err", err)
		return nil, err
	}

	form := w.ctl.Form()
	w.binder.Reset(form)
	w.binder.Bind(form, http.MethodPost, w.routes.Create)

	action := &models.PendingAction{ID: uuid.NewString(), Method: http.MethodPost, URL: w.routes.Create}
	title := t.AttrOr(AttrModalTitle, "Create Employee")
	if !w.ctl.Open(models.VariantCreate, title, action) {
		return nil, nil
	}
	w.logger.Info("modal opened", "variant", models.VariantCreate, "action_id", action.ID)
	return form.Form.Init(), nil
}

// OnEdit validates the trigger and starts loading the record. The modal
// opens when the EditFetchedMsg is handled, after the form is populated.
func (w *Wiring) OnEdit(t Trigger) (tea.Cmd, error) {
	if w.ctl.IsOpen() {
		w.logger.Debug("trigger dropped, modal open", "trigger", t.Kind)
		return nil, nil
	}

	var attrs [4]string
	for i, name := range []string{AttrModalID, AttrID, AttrEditURL, AttrModalTitle} {
		v, err := t.Attr(name)
		if err != nil {
			w.logger.Error("trigger aborted", "err", err)
			return nil, err
		}
		attrs[i] = v
	}
	id, editURL, title := attrs[1], attrs[2], attrs[3]

	client := w.client
	return func() tea.Msg {
		ctx, cancel := w.context()
		defer cancel()
		emp, err := client.FetchOne(ctx, editURL)
		return EditFetchedMsg{EmployeeID: id, URL: editURL, Title: title, Employee: emp, Err: err}
	}, nil
}

// HandleEditFetched populates the form and opens the edit modal. When the
// fetch failed the modal still opens, with empty fields and an inline notice.
// If another session opened meanwhile the result is dropped untouched.
func (w *Wiring) HandleEditFetched(msg EditFetchedMsg) tea.Cmd {
	if w.ctl.IsOpen() {
		w.logger.Debug("edit result dropped, modal open", "employee_id", msg.EmployeeID)
		return nil
	}

	form := w.ctl.Form()
	w.binder.Reset(form)
	w.binder.Bind(form, http.MethodPost, msg.URL)
	if msg.Err != nil {
		w.logger.Error("fetch employee", "employee_id", msg.EmployeeID, "url", msg.URL, "err", msg.Err)
	} else {
		w.binder.Populate(form, msg.Employee)
	}

	action := &models.PendingAction{
		ID:       uuid.NewString(),
		Method:   http.MethodPost,
		URL:      msg.URL,
		EntityID: msg.EmployeeID,
	}
	if !w.ctl.Open(models.VariantEdit, msg.Title, action) {
		return nil
	}
	if msg.Err != nil {
		w.ctl.SetError("Could not load this employee. " + describeError(msg.Err))
	}
	w.logger.Info("modal opened", "variant", models.VariantEdit, "action_id", action.ID, "employee_id", msg.EmployeeID)
	return form.Form.Init()
}

// OnDelete opens the delete confirmation. Nothing is sent until Confirm.
func (w *Wiring) OnDelete(t Trigger) (tea.Cmd, error) {
	if w.ctl.IsOpen() {
		w.logger.Debug("trigger dropped, modal open", "trigger", t.Kind)
		return nil, nil
	}

	var attrs [3]string
	for i, name := range []string{AttrModalID, AttrID, AttrDeleteURL} {
		v, err := t.Attr(name)
		if err != nil {
			w.logger.Error("trigger aborted", "err", err)
			return nil, err
		}
		attrs[i] = v
	}
	id, deleteURL := attrs[1], attrs[2]

	action := &models.PendingAction{
		ID:       uuid.NewString(),
		Method:   http.MethodDelete,
		URL:      deleteURL,
		EntityID: id,
	}
	title := t.AttrOr(AttrModalTitle, "Confirm Deletion")
	if w.ctl.Open(models.VariantDeleteConfirm, title, action) {
		w.logger.Info("modal opened", "variant", models.VariantDeleteConfirm, "action_id", action.ID, "employee_id", id)
	}
	return nil, nil
}

// OnDismiss closes the modal for overlay clicks, Escape and Cancel
func (w *Wiring) OnDismiss(kind TriggerKind) {
	if !w.ctl.IsOpen() {
		return
	}
	w.logger.Info("modal closed", "by", kind)
	w.ctl.Close()
}

// Submit sends the shared form to its action URL. A second submit while
// one is in flight is ignored.
func (w *Wiring) Submit() tea.Cmd {
	state := w.ctl.State()
	if !state.Variant.IsFormVariant() {
		return nil
	}
	if !w.ctl.BeginSubmit() {
		w.logger.Debug("submit ignored, request in flight")
		return nil
	}

	action := *w.ctl.Pending()
	form := w.ctl.Form()
	values := w.binder.Values(form)
	method := form.Method

	client := w.client
	return func() tea.Msg {
		ctx, cancel := w.context()
		defer cancel()
		res, err := client.SubmitForm(ctx, method, action.URL, values)
		return SubmitDoneMsg{ActionID: action.ID, Result: res, Err: err}
	}
}

// HandleSubmitDone closes the modal on success. Failures keep it open with
// an inline error. Returns true when the list should be reloaded.
func (w *Wiring) HandleSubmitDone(msg SubmitDoneMsg) bool {
	success := msg.Err == nil && msg.Result != nil && msg.Result.Success
	if !w.ctl.owns(msg.ActionID) {
		w.logger.Debug("stale submit result", "action_id", msg.ActionID, "success", success)
		return success
	}
	w.ctl.EndSubmit()

	switch {
	case msg.Err != nil:
		w.logger.Error("submit employee", "action_id", msg.ActionID, "err", msg.Err)
		w.ctl.SetError(describeError(msg.Err))
	case !success:
		w.logger.Warn("submit rejected", "action_id", msg.ActionID)
		w.ctl.SetError(describeRejection(msg.Result))
	default:
		w.logger.Info("submit ok", "action_id", msg.ActionID)
		w.ctl.Close()
		return true
	}
	w.ctl.Form().Rebuild()
	return false
}

// Confirm sends the DELETE for an open confirmation
func (w *Wiring) Confirm() tea.Cmd {
	if w.ctl.State().Variant != models.VariantDeleteConfirm {
		return nil
	}
	if !w.ctl.BeginSubmit() {
		return nil
	}

	action := *w.ctl.Pending()
	client := w.client
	return func() tea.Msg {
		ctx, cancel := w.context()
		defer cancel()
		err := client.DeleteOne(ctx, action.URL)
		return DeleteDoneMsg{ActionID: action.ID, EmployeeID: action.EntityID, Err: err}
	}
}

// HandleDeleteDone closes the modal on success. Returns true when the list
// should be reloaded.
func (w *Wiring) HandleDeleteDone(msg DeleteDoneMsg) bool {
	if !w.ctl.owns(msg.ActionID) {
		w.logger.Debug("stale delete result", "action_id", msg.ActionID)
		return msg.Err == nil
	}
	w.ctl.EndSubmit()

	if msg.Err != nil {
		w.logger.Error("delete employee", "action_id", msg.ActionID, "employee_id", msg.EmployeeID, "err", msg.Err)
		w.ctl.SetError(describeError(msg.Err))
		return false
	}
	w.logger.Info("delete ok", "action_id", msg.ActionID, "employee_id", msg.EmployeeID)
	w.ctl.Close()
	return true
}

// Reload fetches the employee list
func (w *Wiring) Reload() tea.Cmd {
	client := w.client
	return func() tea.Msg {
		ctx, cancel := w.context()
		defer cancel()
		list, err := client.List(ctx)
		return EmployeesMsg{Employees: list, Err: err}
	}
}
