package email

import (
	"embed"
	"html/template"
)

// Template names an HTML file under templates/, without the extension.
type Template string

const (
	TemplateWelcome Template = "welcome"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))
