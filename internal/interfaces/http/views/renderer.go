// Package views holds the server-rendered HTML templates and the gin
// HTMLRender that serves them.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

// Page names accepted by Renderer.Instance
const (
	PageStatusHistory = "status_history"
	PageUpdateStatus  = "update_status"
	PageCategory      = "category"
	PageReason        = "reason"
	PageConfirm       = "confirm"
	PagePni           = "pni"
	PageError         = "error"
)

// layoutName is the root template every page executes
const layoutName = "layout"

// Renderer implements gin's render.HTMLRender over the embedded templates.
// Each page is parsed together with the layout and partials so pages can
// redefine the layout's blocks independently.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template
func NewRenderer() (*Renderer, error) {
	shared, err := fs.Glob(templateFS, "templates/layouts/*.html")
	if err != nil {
		return nil, err
	}
	partials, err := fs.Glob(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, err
	}
	shared = append(shared, partials...)

	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")
		files := append([]string{page}, shared...)
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// MustNewRenderer is NewRenderer for program start-up; it panics on error
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Instance implements render.HTMLRender
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		tmpl = template.Must(template.New(name).Parse(`{{ define "` + layoutName + `" }}unknown page ` + template.HTMLEscapeString(name) + `{{ end }}`))
	}
	return render.HTML{Template: tmpl, Name: layoutName, Data: data}
}

// Has reports whether a page with name exists
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

var _ render.HTMLRender = (*Renderer)(nil)

var funcs = template.FuncMap{
	// dict builds a map from alternating keys and values for partials
	"dict": func(pairs ...any) (map[string]any, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("dict: odd number of arguments")
		}
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
	"testid": func(id string) template.HTMLAttr {
		if id == "" {
			return ""
		}
		return template.HTMLAttr(`data-testid="` + template.HTMLEscapeString(id) + `"`)
	},
}
