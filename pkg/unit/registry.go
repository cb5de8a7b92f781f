// pkg/unit/registry.go

package unit

import (
	cerr "github.com/cockroachdb/errors"
)

// Template identifiers. Extending the registry is a data addition here, not
// a code change elsewhere.
const (
	TemplateStandardPython = "standard_python"
	TemplateGunicorn       = "gunicorn"
)

// Template describes one built-in unit-file template.
type Template struct {
	ID          string
	Name        string
	Description string
	body        string
}

const standardPythonTemplate = `[Unit]
Description={{ .Description }}
After=network.target

[Service]
ExecStart=/bin/bash -c "source {{ .VenvPath }}/bin/activate && python3 {{ .ScriptPath }} {{ .ScriptArgs }}"
WorkingDirectory={{ .WorkingDirectory }}
User={{ .User }}
Group={{ .Group }}
Restart={{ .RestartPolicy }}
RestartSec={{ .RestartSec }}
Environment="PATH={{ .VenvPath }}/bin:$PATH"
Environment="PYTHONUNBUFFERED=1"
{{- range .AdditionalEnvVars }}
Environment="{{ . }}"
{{- end }}

[Install]
WantedBy=multi-user.target
`

const gunicornTemplate = `[Unit]
Description={{ .Description }}
After=network.target

[Service]
ExecStart=/bin/bash -c "source {{ .VenvPath }}/bin/activate && gunicorn --bind {{ .BindAddress }} {{ .AppModule }}"
WorkingDirectory={{ .WorkingDirectory }}
User={{ .User }}
Group={{ .Group }}
Restart={{ .RestartPolicy }}
RestartSec={{ .RestartSec }}
Environment="PATH={{ .VenvPath }}/bin:$PATH"
Environment="PYTHONUNBUFFERED=1"
{{- range .AdditionalEnvVars }}
Environment="{{ . }}"
{{- end }}

[Install]
WantedBy=multi-user.target
`

// templates holds the registry in stable display order.
var templates = []Template{
	{
		ID:          TemplateStandardPython,
		Name:        "Standard Python Script",
		Description: "Run a Python script in a virtual environment",
		body:        standardPythonTemplate,
	},
	{
		ID:          TemplateGunicorn,
		Name:        "Gunicorn Web Application",
		Description: "Run a Flask/Django app with Gunicorn",
		body:        gunicornTemplate,
	},
}

// Lookup returns the template for id, or an error when id is not registered.
func Lookup(id string) (Template, error) {
	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, cerr.Newf("unknown template: %s", id)
}

// IDs returns all template identifiers in display order.
func IDs() []string {
	ids := make([]string, 0, len(templates))
	for _, t := range templates {
		ids = append(ids, t.ID)
	}
	return ids
}

// All returns the registry entries in display order.
func All() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}
