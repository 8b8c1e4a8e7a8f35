// internal/provision/report.go
package provision

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// StepResult is the outcome of one provisioning step
type StepResult struct {
	Seq    int
	Name   string
	Method string
	Path   string
	Status int
	Err    error
}

// OK reports whether the step created its entity. The management API
// answers 201 on creation; anything else counts as a failure.
func (s StepResult) OK() bool {
	return s.Err == nil && s.Status == http.StatusCreated
}

// Report aggregates one full provisioning run
type Report struct {
	RunID        string
	ContainerID  string
	Catalog      string
	NotebookPath string
	Started      time.Time
	Finished     time.Time
	Steps        []StepResult
}

// OKCount returns the number of successful steps
func (r *Report) OKCount() int {
	return len(r.Steps) - r.FailedCount()
}

// FailedCount returns the number of failed steps
func (r *Report) FailedCount() int {
	n := 0
	for _, s := range r.Steps {
		if !s.OK() {
			n++
		}
	}
	return n
}

// Summary renders the report for the terminal
func (r *Report) Summary() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Provisioning report") + "\n")

	for _, s := range r.Steps {
		errText := ""
		if s.Err != nil {
			errText = s.Err.Error()
		}
		b.WriteString(renderStepLine(s.Name, s.Method, s.Path, s.Status, errText) + "\n")
	}

	elapsed := r.Finished.Sub(r.Started).Round(time.Millisecond)
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d ok, %d failed in %s", r.OKCount(), r.FailedCount(), elapsed)) + "\n")

	if r.NotebookPath != "" {
		b.WriteString(dimStyle.Render("  notebook: "+r.NotebookPath) + "\n")
	}

	return b.String()
}

// renderStepLine renders one step outcome, shared by the live report
// and the recorded history views
func renderStepLine(name, method, path string, status int, errText string) string {
	if status == http.StatusCreated && errText == "" {
		return okStyle.Render(fmt.Sprintf("  ✓ %-38s %-4s %s", name, method, path))
	}

	line := fmt.Sprintf("  ✗ %-38s %-4s %s", name, method, path)
	if errText != "" {
		line += fmt.Sprintf(" (%s)", errText)
	} else {
		line += fmt.Sprintf(" (http %d)", status)
	}
	return failStyle.Render(line)
}
