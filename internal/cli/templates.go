package cli

import (
	"bytes"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jakoblorz/go-factory/internal/filesystem"
)

// DefaultPlanTemplate renders a plan as one block per target.
const DefaultPlanTemplate = `{{- range .Targets }}
▶ {{ .Name | upper }} ({{ .Dir }})
  📁 {{ join " " .Folders }}
{{- range .Projects }}
  📦 {{ .Name }} [{{ .Type }}]{{ if .Includes }} {{ join " " .Includes }}{{ end }}
{{- range .Compile }}
     {{ .Line }}
{{- end }}
{{- with .Link }}
  🔗 {{ .Line }}
{{- end }}
{{- end }}
{{ end -}}
`

// ParseTemplateFile reads a plan template, with sprig functions available.
func ParseTemplateFile(fs filesystem.FileSystem, path string) (*template.Template, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return template.New(filepath.Base(path)).Funcs(sprig.TxtFuncMap()).Parse(string(data))
}

// ParseDefaultTemplate parses DefaultPlanTemplate.
func ParseDefaultTemplate() (*template.Template, error) {
	return template.New("plan").Funcs(sprig.TxtFuncMap()).Parse(DefaultPlanTemplate)
}

// ExecuteTemplate renders tmpl with data.
func ExecuteTemplate(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
