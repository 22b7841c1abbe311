package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ModalVariant identifies what the shared modal is currently showing
type ModalVariant string

const (
	VariantClosed        ModalVariant = "closed"
	VariantCreate        ModalVariant = "create"
	VariantEdit          ModalVariant = "edit"
	VariantDeleteConfirm ModalVariant = "delete_confirm"
)

// IsValidVariant checks if a variant is one of the known values
func IsValidVariant(v ModalVariant) bool {
	switch v {
	case VariantClosed, VariantCreate, VariantEdit, VariantDeleteConfirm:
		return true
	}
	return false
}

// IsFormVariant reports whether the variant shows the employee form
func (v ModalVariant) IsFormVariant() bool {
	return v == VariantCreate || v == VariantEdit
}

// ModalState is the visible state of the shared modal.
// Visible is true iff Variant != VariantClosed.
type ModalState struct {
	Visible bool
	Variant ModalVariant
	Title   string
}

// ClosedState returns the state the modal starts in
func ClosedState() ModalState {
	return ModalState{Visible: false, Variant: VariantClosed}
}

// OverlayVisible reports whether the dimmed backdrop is shown
func (s ModalState) OverlayVisible() bool {
	return s.Visible
}

// Employee is the part of a server-side employee record the UI reads and writes
type Employee struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName returns "First Last", skipping empty parts
func (e Employee) FullName() string {
	return strings.TrimSpace(strings.Join([]string{e.FirstName, e.LastName}, " "))
}

// PendingAction is the request bound into the shared form while a modal is open
type PendingAction struct {
	ID       string // correlates log lines for one modal session
	Method   string // POST or DELETE
	URL      string
	EntityID string // empty for create
}

// UnmarshalJSON accepts the id as a JSON string or number, and falls back to
// "pk" as Django's serializers emit it.
func (e *Employee) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        json.RawMessage `json:"id"`
		PK        json.RawMessage `json:"pk"`
		FirstName string          `json:"first_name"`
		LastName  string          `json:"last_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := rawID(raw.ID)
	if err != nil {
		return err
	}
	if id == "" {
		if id, err = rawID(raw.PK); err != nil {
			return err
		}
	}

	e.ID = id
	e.FirstName = raw.FirstName
	e.LastName = raw.LastName
	return nil
}

func rawID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
