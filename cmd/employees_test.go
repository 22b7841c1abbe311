package cmd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marcus/empdesk/internal/config"
	"github.com/marcus/empdesk/internal/crud"
	"github.com/marcus/empdesk/internal/models"
	"go.uber.org/goleak"
)

// countingWriter tracks how many requests run at once
type countingWriter struct {
	inFlight atomic.Int32
	peak     atomic.Int32

	mu      sync.Mutex
	refs    []string
	failRef string
}

func (c *countingWriter) enter(ref string) {
	n := c.inFlight.Add(1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	c.mu.Lock()
	c.refs = append(c.refs, ref)
	c.mu.Unlock()
	time.Sleep(5 * time.Millisecond)
	c.inFlight.Add(-1)
}

func (c *countingWriter) SubmitForm(_ context.Context, _, ref string, values url.Values) (*crud.SubmitResult, error) {
	c.enter(ref + "?" + values.Encode())
	if values.Get("first_name") == "Bad" {
		return &crud.SubmitResult{Success: false}, nil
	}
	return &crud.SubmitResult{Success: true}, nil
}

func (c *countingWriter) DeleteOne(_ context.Context, ref string) error {
	c.enter(ref)
	if ref == c.failRef {
		return &crud.HTTPError{Method: http.MethodDelete, URL: ref, Status: http.StatusNotFound}
	}
	return nil
}

func TestDeleteEmployeesKeepsOrderAndLimit(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	w := &countingWriter{failRef: "/employee/3/"}
	ids := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}

	results := deleteEmployees(context.Background(), w, config.DefaultRoutes(), ids)

	if len(results) != len(ids) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Ref != ids[i] {
			t.Errorf("results[%d].Ref = %q, want %q", i, r.Ref, ids[i])
		}
		if wantOK := ids[i] != "3"; r.OK != wantOK {
			t.Errorf("results[%d].OK = %v", i, r.OK)
		}
	}
	if failures(results) != 1 {
		t.Errorf("failures = %d, want 1", failures(results))
	}
	if p := w.peak.Load(); p > maxParallel {
		t.Errorf("peak concurrency %d exceeds %d", p, maxParallel)
	}
	if len(w.refs) != len(ids) {
		t.Errorf("sent %d deletes, want %d (a failure must not stop the rest)", len(w.refs), len(ids))
	}
}

func TestCreateEmployeesReportsRejections(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	w := &countingWriter{}
	list := []models.Employee{
		{FirstName: "Ann", LastName: "Lee"},
		{FirstName: "Bad", LastName: "Row"},
	}
	results := createEmployees(context.Background(), w, config.DefaultRoutes(), list)
	if !results[0].OK || results[1].OK {
		t.Errorf("results = %+v", results)
	}
	if !strings.Contains(results[1].Err, "rejected") {
		t.Errorf("rejection message = %q", results[1].Err)
	}
	for _, ref := range w.refs {
		if !strings.HasPrefix(ref, "/employee/?") {
			t.Errorf("create sent to %q", ref)
		}
	}
}

func TestEnsureTokenPrimesOnce(t *testing.T) {
	var lists atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/employees/" {
			lists.Add(1)
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "abc", Path: "/"})
			w.Write([]byte("[]"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client, err := crud.New(crud.Options{BaseURL: srv.URL, Routes: config.DefaultRoutes()})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := ensureToken(ctx, client); err != nil {
		t.Fatalf("ensureToken: %v", err)
	}
	if err := ensureToken(ctx, client); err != nil {
		t.Fatalf("ensureToken (second): %v", err)
	}
	if n := lists.Load(); n != 1 {
		t.Errorf("list page loaded %d times, want 1", n)
	}
}

func TestEnsureTokenFailsWithoutCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client, err := crud.New(crud.Options{BaseURL: srv.URL, Routes: config.DefaultRoutes()})
	if err != nil {
		t.Fatal(err)
	}
	err = ensureToken(context.Background(), client)
	if err == nil {
		t.Fatal("expected an error when the server sets no CSRF cookie")
	}
	var httpErr *crud.HTTPError
	if errors.As(err, &httpErr) {
		t.Errorf("unexpected HTTP error %v", err)
	}
}
