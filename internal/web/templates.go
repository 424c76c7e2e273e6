package web

import (
	"embed"
	"html/template"
	"net/http"

	"linkdrop/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates holds the parsed presentation templates. The presentation
// layer is deliberately thin; all it does is render what the core
// services hand it.
type Templates struct {
	all *template.Template
}

// MustParseTemplates parses the embedded templates, panicking on a
// broken template set since that is a build defect.
func MustParseTemplates() *Templates {
	t := template.New("").Funcs(template.FuncMap{
		// The extracted article HTML is stored as-is and rendered
		// unescaped on the detail page.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	})
	t = template.Must(t.ParseFS(templateFS, "templates/*.html"))
	return &Templates{all: t}
}

// PageData is the single shape every template renders from.
type PageData struct {
	Links   []domain.Link
	Link    *domain.Link
	Tags    []string
	Tag     string
	Archive bool
	Error   string
	View    SwitchLink
}

// Render writes the named template. A template execution failure is a
// server bug and surfaces as a 500.
func (t *Templates) Render(w http.ResponseWriter, name string, data PageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.all.ExecuteTemplate(w, name+".html", data)
}
