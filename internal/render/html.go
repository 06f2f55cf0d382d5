// Package render produces the HTML and PDF documents for an expanded invoice
// record and its task attachment.
package render

import (
	"fmt"
	"html/template"
	"os"
)

// HTMLFile renders a template file with the given data and writes the result.
// Every key of the expanded record is visible to the template by its exact
// field name.
func HTMLFile(templatePath string, data map[string]any, outPath string) error {
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	tmpl, err := template.New("invoice").Parse(string(raw))
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}
