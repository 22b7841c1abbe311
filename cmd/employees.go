package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/marcus/empdesk/internal/config"
	"github.com/marcus/empdesk/internal/crud"
	"github.com/marcus/empdesk/internal/models"
	"github.com/marcus/empdesk/pkg/desk"
	"golang.org/x/sync/errgroup"
)

// maxParallel bounds concurrent requests for bulk commands
const maxParallel = 4

// employeeWriter is the part of crud.Client the bulk commands use
type employeeWriter interface {
	SubmitForm(ctx context.Context, method, ref string, values url.Values) (*crud.SubmitResult, error)
	DeleteOne(ctx context.Context, ref string) error
}

// opResult is the outcome of one request in a bulk command
type opResult struct {
	Ref string `json:"ref"`
	OK  bool   `json:"ok"`
	Err string `json:"error,omitempty"`
}

func employeeValues(e models.Employee) url.Values {
	return url.Values{
		desk.FieldFirstName: {e.FirstName},
		desk.FieldLastName:  {e.LastName},
	}
}

// submitEmployee posts e to ref and turns an unsuccessful result into an error
func submitEmployee(ctx context.Context, client employeeWriter, ref string, e models.Employee) error {
	res, err := client.SubmitForm(ctx, http.MethodPost, ref, employeeValues(e))
	if err != nil {
		return err
	}
	if !res.Success {
		return rejectionError(res)
	}
	return nil
}

func rejectionError(res *crud.SubmitResult) error {
	if len(res.Errors) == 0 {
		return fmt.Errorf("server rejected the form")
	}
	fields := make([]string, 0, len(res.Errors))
	for f := range res.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + strings.Join(res.Errors[f], " ")
	}
	return fmt.Errorf("server rejected the form: %s", strings.Join(parts, "; "))
}

// deleteEmployees deletes every id, at most maxParallel at a time. Results
// keep the order of ids. One failure does not stop the others.
func deleteEmployees(ctx context.Context, client employeeWriter, routes config.Routes, ids []string) []opResult {
	results := make([]opResult, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = opResult{Ref: id, OK: true}
			if err := client.DeleteOne(ctx, routes.DeleteURL(id)); err != nil {
				results[i] = opResult{Ref: id, Err: err.Error()}
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// createEmployees creates every employee, at most maxParallel at a time
func createEmployees(ctx context.Context, client employeeWriter, routes config.Routes, list []models.Employee) []opResult {
	results := make([]opResult, len(list))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, e := range list {
		g.Go(func() error {
			results[i] = opResult{Ref: e.FullName(), OK: true}
			if err := submitEmployee(ctx, client, routes.Create, e); err != nil {
				results[i] = opResult{Ref: e.FullName(), Err: err.Error()}
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// failures counts unsuccessful results
func failures(results []opResult) int {
	n := 0
	for _, r := range results {
		if !r.OK {
			n++
		}
	}
	return n
}
