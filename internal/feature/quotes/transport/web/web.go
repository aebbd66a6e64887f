// Package web holds the server-rendered panel page.
package web

import (
	"embed"
	"html/template"

	"quotepanel/internal/feature/quotes/transport/view"
)

// PageTemplate is the name handlers pass to gin's HTML renderer.
const PageTemplate = "panel.html"

//go:embed templates/*.html
var files embed.FS

// Page is the data the panel template renders.
type Page struct {
	view.Panel
	Draft       string
	Recent      []string
	Placeholder string
	ButtonLabel string
	RetryLabel  string
}

// NewPage wraps p with the input form state.
func NewPage(p view.Panel, draft string, recent []string) Page {
	return Page{
		Panel:       p,
		Draft:       draft,
		Recent:      recent,
		Placeholder: view.Placeholder,
		ButtonLabel: view.ButtonLabel,
		RetryLabel:  view.RetryLabel,
	}
}

// Templates parses the embedded templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(files, "templates/*.html"))
}
