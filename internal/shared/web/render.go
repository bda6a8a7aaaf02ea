// Package web holds the server-rendered HTML views.
package web

import (
	"embed"
	"html/template"

	"movielist-backend/internal/domains/movie/gateway"
	"movielist-backend/internal/shared/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"rating": utils.FormatRating,
		"year":   gateway.ReleaseYearToken,
	}
}

// Templates parses every page and partial. Pages are addressed by file
// name, e.g. "index.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
}

// MustTemplates panics when the embedded templates do not parse.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
