package desk

import (
	"github.com/marcus/empdesk/internal/models"
)

// ModalController owns the shared modal. It is the only writer of
// ModalState: at most one session is open, a second Open while one is
// active is dropped, and Close always frees the lock.
type ModalController struct {
	state   models.ModalState
	pending *models.PendingAction
	form    *EmployeeForm
	binder  FormBinder

	submitting bool
	errMsg     string
}

// NewModalController creates a closed controller bound to the shared form
func NewModalController(form *EmployeeForm) *ModalController {
	return &ModalController{
		state: models.ClosedState(),
		form:  form,
	}
}

// Open shows the modal if none is open. Returns false when the request was
// dropped because a session is already active or the variant is not openable.
func (c *ModalController) Open(variant models.ModalVariant, title string, action *models.PendingAction) bool {
	if c.state.Visible {
		return false
	}
	if variant == models.VariantClosed || !models.IsValidVariant(variant) {
		return false
	}

	c.state = models.ModalState{Visible: true, Variant: variant, Title: title}
	c.pending = action
	c.submitting = false
	c.errMsg = ""
	return true
}

// Close hides the modal and overlay, clears the pending action and resets
// the form. Safe to call in any state.
func (c *ModalController) Close() {
	c.state = models.ClosedState()
	c.pending = nil
	c.submitting = false
	c.errMsg = ""
	if c.form != nil {
		c.binder.Reset(c.form)
	}
}

// State returns a copy of the current modal state
func (c *ModalController) State() models.ModalState {
	return c.state
}

// IsOpen reports whether a session is active
func (c *ModalController) IsOpen() bool {
	return c.state.Visible
}

// OverlayVisible reports whether the backdrop is shown
func (c *ModalController) OverlayVisible() bool {
	return c.state.OverlayVisible()
}

// Pending returns the action bound to the open session, or nil
func (c *ModalController) Pending() *models.PendingAction {
	return c.pending
}

// Form returns the shared form
func (c *ModalController) Form() *EmployeeForm {
	return c.form
}

// BeginSubmit marks a request in flight for the open session. Returns false
// when the modal is closed or a request is already in flight.
func (c *ModalController) BeginSubmit() bool {
	if !c.state.Visible || c.pending == nil || c.submitting {
		return false
	}
	c.submitting = true
	c.errMsg = ""
	return true
}

// EndSubmit releases the in-flight mark
func (c *ModalController) EndSubmit() {
	c.submitting = false
}

// Submitting reports whether a request is in flight
func (c *ModalController) Submitting() bool {
	return c.submitting
}

// SetError shows msg inline in the open modal. Ignored when closed.
func (c *ModalController) SetError(msg string) {
	if !c.state.Visible {
		return
	}
	c.errMsg = msg
}

// Err returns the inline error for the open session
func (c *ModalController) Err() string {
	return c.errMsg
}

// owns reports whether actionID belongs to the open session
func (c *ModalController) owns(actionID string) bool {
	return c.state.Visible && c.pending != nil && c.pending.ID == actionID
}
