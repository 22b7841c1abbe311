package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/marcus/empdesk/internal/models"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	t.Cleanup(func() { Stdout, Stderr = oldOut, oldErr })
	return &out, &errOut
}

func TestMessagesGoToTheRightStream(t *testing.T) {
	out, errOut := capture(t)

	Error("failed %s", "x")
	Warning("careful")
	Success("done %d", 3)

	if !strings.Contains(errOut.String(), "failed x") || !strings.Contains(errOut.String(), "careful") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if !strings.Contains(out.String(), "done 3") {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestJSONError(t *testing.T) {
	out, _ := capture(t)
	JSONError("not_found", "no such employee")

	var got struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if got.Error.Code != "not_found" || got.Error.Message != "no such employee" {
		t.Errorf("got %+v", got)
	}
}

func TestEmployeeTable(t *testing.T) {
	var buf bytes.Buffer
	err := EmployeeTable(&buf, []models.Employee{
		{ID: "1", FirstName: "Alice", LastName: "Smith"},
		{ID: "12", FirstName: "Jane", LastName: "Doe"},
	})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[2], "Jane") {
		t.Errorf("table = %q", buf.String())
	}
	// columns line up
	if strings.Index(lines[1], "Alice") != strings.Index(lines[2], "Jane") {
		t.Errorf("columns misaligned:\n%s", buf.String())
	}
}

func TestEmployeeTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := EmployeeTable(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no employees") {
		t.Errorf("got %q", buf.String())
	}
}
