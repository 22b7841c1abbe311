package desk

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/marcus/empdesk/internal/models"
)

func TestBindDefaultsToPost(t *testing.T) {
	f := NewEmployeeForm()
	var b FormBinder

	b.Bind(f, "", "/employee/")
	if f.Method != http.MethodPost || f.Action != "/employee/" {
		t.Errorf("Bind = %s %s, want POST /employee/", f.Method, f.Action)
	}
	if !f.Bound() {
		t.Error("Bound() = false after Bind")
	}

	b.Bind(f, http.MethodPut, "/employee/5/edit")
	if f.Method != http.MethodPut {
		t.Errorf("Method = %s, want PUT", f.Method)
	}
}

func TestPopulateCopiesVerbatim(t *testing.T) {
	tests := []struct {
		name   string
		record models.Employee
	}{
		{"plain", models.Employee{ID: "5", FirstName: "Jane", LastName: "Doe"}},
		{"whitespace kept", models.Employee{ID: "6", FirstName: "  Ann ", LastName: "\tLee"}},
		{"unicode", models.Employee{ID: "7", FirstName: "Zoë", LastName: "Ångström"}},
		{"empty", models.Employee{ID: "8"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewEmployeeForm()
			var b FormBinder
			b.Populate(f, &tt.record)

			got := b.Values(f)
			want := map[string][]string{
				FieldFirstName: {tt.record.FirstName},
				FieldLastName:  {tt.record.LastName},
			}
			if diff := cmp.Diff(want, map[string][]string(got)); diff != "" {
				t.Errorf("values (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPopulateNilLeavesFormUntouched(t *testing.T) {
	f := NewEmployeeForm()
	f.FirstName = "typed"
	var b FormBinder
	b.Populate(f, nil)
	if f.FirstName != "typed" {
		t.Errorf("FirstName = %q, want unchanged", f.FirstName)
	}
}

func TestResetClearsEverything(t *testing.T) {
	f := NewEmployeeForm()
	var b FormBinder
	b.Bind(f, http.MethodPost, "/employee/5/edit")
	b.Populate(f, &models.Employee{FirstName: "Jane", LastName: "Doe"})

	b.Reset(f)
	if f.FirstName != "" || f.LastName != "" || f.Action != "" || f.Method != "" {
		t.Errorf("Reset left data: %+v", f)
	}
	if f.Form == nil {
		t.Error("Reset dropped the huh form")
	}
}
