package desk

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/marcus/empdesk/internal/crud"
	"github.com/marcus/empdesk/internal/csrf"
)

// MissingConfigError means a trigger lacks an attribute it needs. The
// trigger is aborted and no modal opens.
type MissingConfigError struct {
	Trigger TriggerKind
	Attr    string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("%s trigger: missing %s", e.Trigger, e.Attr)
}

// describeError turns a request failure into a short line for the operator.
func describeError(err error) string {
	var (
		httpErr      *crud.HTTPError
		netErr       *crud.NetworkError
		malformedErr *crud.MalformedResponseError
		configErr    *MissingConfigError
	)
	switch {
	case errors.Is(err, csrf.ErrMissingToken):
		return "Not sent: no CSRF token. Reload the list to get a fresh session."
	case errors.As(err, &httpErr):
		switch httpErr.Status {
		case http.StatusForbidden:
			return "Server refused the request (403). The session or CSRF token may have expired."
		case http.StatusNotFound:
			return "Employee not found (404). It may have been deleted."
		default:
			return fmt.Sprintf("Server error: %d %s", httpErr.Status, http.StatusText(httpErr.Status))
		}
	case errors.As(err, &malformedErr):
		return "Server sent an unexpected response."
	case errors.As(err, &netErr):
		return "Could not reach the server: " + netErr.Err.Error()
	case errors.As(err, &configErr):
		return "Cannot open: " + configErr.Error()
	case err != nil:
		return err.Error()
	}
	return ""
}

// describeRejection formats the field errors of an unsuccessful submit
func describeRejection(res *crud.SubmitResult) string {
	if res == nil || len(res.Errors) == 0 {
		return "The server rejected the form."
	}
	fields := make([]string, 0, len(res.Errors))
	for field := range res.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(res.Errors[field], " "))
	}
	return "The server rejected the form. " + strings.Join(parts, "; ")
}
