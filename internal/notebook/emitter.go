// Package notebook renders the verification notebook written at the
// end of a provisioning run.
package notebook

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed templates/setup_verify_notebook.ipynb.tmpl
var notebookTemplate string

var notebookTmpl = template.Must(template.New("setup_verify").Parse(notebookTemplate))

const (
	// DefaultDir is where the notebook lands relative to the working
	// directory
	DefaultDir = "notebooks"

	// FileName of the rendered notebook
	FileName = "polaris_setup_verify.ipynb"
)

// Data fills the notebook template
type Data struct {
	CatalogName  string
	ClientID     string
	ClientSecret string
}

// Write renders the verification notebook into dir, creating the
// directory if needed, and returns the path of the written file.
func Write(dir string, data Data) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create notebook directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create notebook file: %w", err)
	}
	defer f.Close()

	if err := notebookTmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render notebook: %w", err)
	}

	return path, nil
}
