package desk

import (
	"net/http"
	"net/url"

	"github.com/charmbracelet/huh"
	"github.com/marcus/empdesk/internal/models"
)

// Form field names, matching the server-side form
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
)

// EmployeeForm is the single form shared by the create and edit modals.
// Fields are bound by pointer into a huh form, which is rebuilt whenever the
// values change from outside.
type EmployeeForm struct {
	Method string
	Action string

	FirstName string
	LastName  string

	Width int
	Form  *huh.Form
}

// NewEmployeeForm creates an empty, unbound form
func NewEmployeeForm() *EmployeeForm {
	f := &EmployeeForm{Width: 40}
	f.build()
	return f
}

// build recreates the huh form over the current field values
func (f *EmployeeForm) build() {
	f.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key(FieldFirstName).
				Title("First Name").
				CharLimit(100).
				Value(&f.FirstName),
			huh.NewInput().
				Key(FieldLastName).
				Title("Last Name").
				CharLimit(100).
				Value(&f.LastName),
		),
	).WithShowHelp(false).WithWidth(f.Width)
}

// Rebuild refreshes the huh form after a failed submit so it accepts input
// again. Field values are kept.
func (f *EmployeeForm) Rebuild() {
	f.build()
}

// SetWidth resizes the form
func (f *EmployeeForm) SetWidth(w int) {
	if w <= 0 || w == f.Width {
		return
	}
	f.Width = w
	if f.Form != nil {
		f.Form.WithWidth(w)
	}
}

// Bound reports whether the form has a submission target
func (f *EmployeeForm) Bound() bool {
	return f.Action != ""
}

// FormBinder configures the shared form for a modal session
type FormBinder struct{}

// Bind sets the form's submission target
func (FormBinder) Bind(f *EmployeeForm, method, actionURL string) {
	if method == "" {
		method = http.MethodPost
	}
	f.Method = method
	f.Action = actionURL
}

// Populate copies record into the form fields verbatim. A nil record (create)
// leaves the form untouched.
func (FormBinder) Populate(f *EmployeeForm, record *models.Employee) {
	if record == nil {
		return
	}
	f.FirstName = record.FirstName
	f.LastName = record.LastName
	f.build()
}

// Reset clears every field and the submission target
func (FormBinder) Reset(f *EmployeeForm) {
	f.Method = ""
	f.Action = ""
	f.FirstName = ""
	f.LastName = ""
	f.build()
}

// Values returns the form-encoded payload
func (FormBinder) Values(f *EmployeeForm) url.Values {
	return url.Values{
		FieldFirstName: {f.FirstName},
		FieldLastName:  {f.LastName},
	}
}
