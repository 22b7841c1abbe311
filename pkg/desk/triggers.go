package desk

import (
	"strings"

	"github.com/marcus/empdesk/internal/config"
	"github.com/marcus/empdesk/internal/models"
)

// TriggerKind is the class of element or event that starts or ends a session
type TriggerKind string

const (
	TriggerCreate  TriggerKind = "create"
	TriggerEdit    TriggerKind = "edit"
	TriggerDelete  TriggerKind = "delete"
	TriggerOverlay TriggerKind = "overlay"
	TriggerEscape  TriggerKind = "escape"
	TriggerCancel  TriggerKind = "cancel"
)

// Attributes a trigger may carry
const (
	AttrModalID    = "data-modal-id"
	AttrID         = "data-id"
	AttrEditURL    = "data-edit-url"
	AttrDeleteURL  = "data-delete-url"
	AttrModalTitle = "data-modal-title"
)

// SharedModalID is the data-modal-id every trigger targets
const SharedModalID = "employee-modal"

// Trigger is an activated element with its data-* attributes
type Trigger struct {
	Kind  TriggerKind
	Attrs map[string]string
}

// Attr returns a required attribute. Missing or blank values yield a
// *MissingConfigError.
func (t Trigger) Attr(name string) (string, error) {
	v, ok := t.Attrs[name]
	if !ok || strings.TrimSpace(v) == "" {
		return "", &MissingConfigError{Trigger: t.Kind, Attr: name}
	}
	return v, nil
}

// AttrOr returns an optional attribute, or def when absent
func (t Trigger) AttrOr(name, def string) string {
	if v, ok := t.Attrs[name]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

// CreateTrigger builds the trigger for the create button
func CreateTrigger() Trigger {
	return Trigger{
		Kind: TriggerCreate,
		Attrs: map[string]string{
			AttrModalID:    SharedModalID,
			AttrModalTitle: "Create Employee",
		},
	}
}

// EditTrigger builds the trigger for an employee row's edit button
func EditTrigger(routes config.Routes, e models.Employee) Trigger {
	return Trigger{
		Kind: TriggerEdit,
		Attrs: map[string]string{
			AttrModalID:    SharedModalID,
			AttrID:         e.ID,
			AttrEditURL:    routes.EditURL(e.ID),
			AttrModalTitle: "Update Employee",
		},
	}
}

// DeleteTrigger builds the trigger for an employee row's delete button
func DeleteTrigger(routes config.Routes, e models.Employee) Trigger {
	return Trigger{
		Kind: TriggerDelete,
		Attrs: map[string]string{
			AttrModalID:    SharedModalID,
			AttrID:         e.ID,
			AttrDeleteURL:  routes.DeleteURL(e.ID),
			AttrModalTitle: "Confirm Deletion",
		},
	}
}
