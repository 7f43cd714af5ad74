// Package render turns page and fragment data into HTML using the embedded templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/sketchy-app/sketchy/model"
	"github.com/sketchy-app/sketchy/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// sketchCard is the data of the shared sketch preview block.
type sketchCard struct {
	Sketch        model.Sketch
	AuthorContext bool
}

var funcs = template.FuncMap{
	"card": func(s model.Sketch, authorContext bool) sketchCard {
		return sketchCard{Sketch: s, AuthorContext: authorContext}
	},
}

// Renderer implements services.Renderer over html/template.
type Renderer struct {
	tmpl *template.Template
}

var _ services.Renderer = (*Renderer)(nil)

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("sketchy").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNew is like New but panics on error.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// RenderPage renders a full page by name (see services.Page* constants).
func (r *Renderer) RenderPage(name string, data any) (string, error) {
	return r.execute("page:"+name, data)
}

// RenderFragment renders a single listing item.
func (r *Renderer) RenderFragment(kind services.FragmentKind, item any) (string, error) {
	return r.execute("fragment:"+string(kind), item)
}

func (r *Renderer) execute(name string, data any) (string, error) {
	if r.tmpl.Lookup(name) == nil {
		return "", fmt.Errorf("template %q is not defined", name)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
