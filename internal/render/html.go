// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

const documentTitle = "Project Documentation"

//go:embed templates/*.tmpl
var templateFS embed.FS

var shellTmpl = template.Must(template.ParseFS(templateFS, "templates/shell.html.tmpl"))

// ToHTML converts markdown with HTMLSteps and wraps the result in a styled
// HTML5 document. The converted markup is inserted without escaping.
func ToHTML(markdown string) (string, error) {
	return Shell(HTMLSteps().Apply(markdown))
}

// Shell wraps already-converted body markup in the HTML document template.
func Shell(body string) (string, error) {
	data := struct {
		Title string
		Body  template.HTML
	}{
		Title: documentTitle,
		Body:  template.HTML(body),
	}

	var buf bytes.Buffer
	if err := shellTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing html shell template: %w", err)
	}
	return buf.String(), nil
}
