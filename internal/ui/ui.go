// Package ui renders the configurator page. Templates are embedded so the
// binary is self-contained; the page's client script drives the generation
// API and keeps the current config in the URL fragment.
package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/pubtools/gptsampler/internal/presets"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer renders the configurator page from the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// PageData feeds the index template.
type PageData struct {
	Title   string
	BaseURL string
	Catalog presets.Catalog
}

// indexData is PageData with the catalog pre-marshaled for the page script.
type indexData struct {
	Title       string
	BaseURL     string
	CatalogJSON template.JS
}

// RenderIndex writes the configurator page.
func (r *Renderer) RenderIndex(w io.Writer, data PageData) error {
	catalogJSON, err := json.Marshal(data.Catalog)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return r.tmpl.ExecuteTemplate(w, "index.html.tmpl", indexData{
		Title:       data.Title,
		BaseURL:     data.BaseURL,
		CatalogJSON: template.JS(catalogJSON),
	})
}
