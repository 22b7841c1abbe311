package models

import (
	"encoding/json"
	"testing"
)

func TestIsValidVariant(t *testing.T) {
	valid := []ModalVariant{VariantClosed, VariantCreate, VariantEdit, VariantDeleteConfirm}
	for _, v := range valid {
		if !IsValidVariant(v) {
			t.Errorf("Expected %q to be valid variant", v)
		}
	}

	invalid := []ModalVariant{"", "open", "Create", "delete"}
	for _, v := range invalid {
		if IsValidVariant(v) {
			t.Errorf("Expected %q to be invalid variant", v)
		}
	}
}

func TestIsFormVariant(t *testing.T) {
	tests := []struct {
		v    ModalVariant
		want bool
	}{
		{VariantCreate, true},
		{VariantEdit, true},
		{VariantDeleteConfirm, false},
		{VariantClosed, false},
	}
	for _, tt := range tests {
		if got := tt.v.IsFormVariant(); got != tt.want {
			t.Errorf("%q.IsFormVariant() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestClosedState(t *testing.T) {
	s := ClosedState()
	if s.Visible {
		t.Error("closed state should not be visible")
	}
	if s.OverlayVisible() {
		t.Error("overlay should be hidden when closed")
	}
	if s.Variant != VariantClosed {
		t.Errorf("Variant = %q, want %q", s.Variant, VariantClosed)
	}
}

func TestEmployeeFullName(t *testing.T) {
	tests := []struct {
		name string
		emp  Employee
		want string
	}{
		{"both", Employee{FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{"first only", Employee{FirstName: "Jane"}, "Jane"},
		{"last only", Employee{LastName: "Doe"}, "Doe"},
		{"empty", Employee{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.emp.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmployeeUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Employee
	}{
		{"string id", `{"id":"5","first_name":"Jane","last_name":"Doe"}`, Employee{ID: "5", FirstName: "Jane", LastName: "Doe"}},
		{"numeric id", `{"id":5,"first_name":"Jane","last_name":"Doe"}`, Employee{ID: "5", FirstName: "Jane", LastName: "Doe"}},
		{"pk fallback", `{"pk":12,"first_name":"A","last_name":"B"}`, Employee{ID: "12", FirstName: "A", LastName: "B"}},
		{"no id", `{"first_name":"Jane","last_name":"Doe","department":3}`, Employee{FirstName: "Jane", LastName: "Doe"}},
		{"null id", `{"id":null,"first_name":"Jane"}`, Employee{FirstName: "Jane"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Employee
			if err := json.Unmarshal([]byte(tt.json), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	var bad Employee
	if err := json.Unmarshal([]byte(`{"id":true}`), &bad); err == nil {
		t.Error("expected error for boolean id")
	}
}
