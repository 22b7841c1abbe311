package desk

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/empdesk/internal/config"
	"github.com/marcus/empdesk/internal/crud"
	"github.com/marcus/empdesk/internal/models"
)

const testToken = "tok-123"

// recorded is one request seen by employeeServer
type recorded struct {
	Method string
	Path   string
	CSRF   string
	First  string
	Last   string
}

// employeeServer mimics the employee app: it sets the csrftoken cookie on
// the list page and rejects mutating requests without a matching header.
type employeeServer struct {
	mu        sync.Mutex
	token     string
	employees map[string]models.Employee
	nextID    int
	requests  []recorded
	failEdit  bool
}

func newEmployeeServer(t *testing.T, seed ...models.Employee) (*employeeServer, *httptest.Server) {
	t.Helper()
	s := &employeeServer{token: testToken, employees: map[string]models.Employee{}, nextID: 100}
	for _, e := range seed {
		s.employees[e.ID] = e
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /employees/{$}", s.list)
	mux.HandleFunc("POST /employee/{$}", s.create)
	mux.HandleFunc("GET /employee/{id}/edit", s.get)
	mux.HandleFunc("POST /employee/{id}/edit", s.update)
	mux.HandleFunc("DELETE /employee/{id}/{$}", s.remove)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		s.mu.Lock()
		s.requests = append(s.requests, recorded{
			Method: r.Method,
			Path:   r.URL.Path,
			CSRF:   r.Header.Get("X-CSRFToken"),
			First:  r.PostForm.Get(FieldFirstName),
			Last:   r.PostForm.Get(FieldLastName),
		})
		s.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return s, srv
}

func (s *employeeServer) Requests() []recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recorded(nil), s.requests...)
}

func (s *employeeServer) Employee(id string) (models.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[id]
	return e, ok
}

func (s *employeeServer) FailEdits() {
	s.mu.Lock()
	s.failEdit = true
	s.mu.Unlock()
}

func (s *employeeServer) checkToken(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("X-CSRFToken") != s.token {
		http.Error(w, "CSRF verification failed", http.StatusForbidden)
		return false
	}
	return true
}

func (s *employeeServer) list(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: s.token, Path: "/"})
	s.mu.Lock()
	list := make([]models.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		list = append(list, e)
	}
	s.mu.Unlock()
	writeJSON(w, list)
}

func (s *employeeServer) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	fail := s.failEdit
	s.mu.Unlock()
	if fail {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	e, ok := s.Employee(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, e)
}

func (s *employeeServer) create(w http.ResponseWriter, r *http.Request) {
	if !s.checkToken(w, r) {
		return
	}
	first := r.PostForm.Get(FieldFirstName)
	if first == "" {
		writeJSON(w, map[string]any{"success": false, "errors": map[string][]string{"first_name": {"This field is required."}}})
		return
	}
	s.mu.Lock()
	s.nextID++
	id := strconv.Itoa(s.nextID)
	s.employees[id] = models.Employee{ID: id, FirstName: first, LastName: r.PostForm.Get(FieldLastName)}
	s.mu.Unlock()
	writeJSON(w, map[string]bool{"success": true})
}

func (s *employeeServer) update(w http.ResponseWriter, r *http.Request) {
	if !s.checkToken(w, r) {
		return
	}
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		http.NotFound(w, r)
		return
	}
	s.employees[id] = models.Employee{ID: id, FirstName: r.PostForm.Get(FieldFirstName), LastName: r.PostForm.Get(FieldLastName)}
	writeJSON(w, map[string]bool{"success": true})
}

func (s *employeeServer) remove(w http.ResponseWriter, r *http.Request) {
	if !s.checkToken(w, r) {
		return
	}
	s.mu.Lock()
	delete(s.employees, r.PathValue("id"))
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient returns a client for srv. With prime set the list page is
// loaded first so the jar holds the CSRF cookie.
func newTestClient(t *testing.T, srv *httptest.Server, prime bool) *crud.Client {
	t.Helper()
	c, err := crud.New(crud.Options{
		BaseURL: srv.URL,
		Routes:  config.DefaultRoutes(),
		Logger:  discardLogger(),
	})
	if err != nil {
		t.Fatalf("crud.New: %v", err)
	}
	if prime {
		if err := c.Prime(context.Background()); err != nil {
			t.Fatalf("Prime: %v", err)
		}
	}
	return c
}

func newTestWiring(client EmployeeClient) (*Wiring, *ModalController) {
	ctl := NewModalController(NewEmployeeForm())
	return NewWiring(ctl, client, config.DefaultRoutes(), 0, discardLogger()), ctl
}

// run executes a command that is expected to produce a single message
func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	return cmd()
}
