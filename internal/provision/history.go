// internal/provision/history.go
package provision

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dataloomhq/polaris-bootstrap/internal/storage"
)

// RenderRuns renders recorded runs for the terminal, newest first
func RenderRuns(runs []storage.RunRecord) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Provisioning history") + "\n")

	for _, r := range runs {
		mark, style := "✓", okStyle
		if r.StepsFailed > 0 {
			mark, style = "✗", failStyle
		}

		line := fmt.Sprintf("  %s %s  %-20s %d ok, %d failed  %s",
			mark,
			r.StartedAt.Format("2006-01-02 15:04"),
			r.Catalog,
			r.StepsOK,
			r.StepsFailed,
			r.ID,
		)
		b.WriteString(style.Render(line) + "\n")
	}

	return b.String()
}

// RenderRunSteps renders the step outcomes of one recorded run
func RenderRunSteps(runID string, steps []storage.StepRecord) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Run "+runID) + "\n")

	ok, failed := 0, 0
	for _, s := range steps {
		if s.Status == http.StatusCreated && s.Error == "" {
			ok++
		} else {
			failed++
		}
		b.WriteString(renderStepLine(s.Name, s.Method, s.Path, s.Status, s.Error) + "\n")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d ok, %d failed", ok, failed)) + "\n")

	return b.String()
}
