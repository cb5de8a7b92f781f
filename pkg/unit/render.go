// pkg/unit/render.go

package unit

import (
	"strings"
	"text/template"

	cerr "github.com/cockroachdb/errors"
)

// Context carries the fields substituted into a template body. Substitution
// is pure text generation; no file or network I/O happens here.
type Context struct {
	Description       string
	WorkingDirectory  string
	VenvPath          string
	ScriptPath        string
	ScriptArgs        string
	BindAddress       string
	AppModule         string
	User              string
	Group             string
	RestartPolicy     string
	RestartSec        string
	AdditionalEnvVars []string
}

// Render substitutes ctx into the template identified by id and returns the
// final unit-file text. Fails when id is not registered.
func Render(id string, ctx Context) (string, error) {
	t, err := Lookup(id)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(t.ID).Parse(t.body)
	if err != nil {
		return "", cerr.Wrapf(err, "parsing template %s", t.ID)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, ctx); err != nil {
		return "", cerr.Wrapf(err, "rendering template %s", t.ID)
	}
	return sb.String(), nil
}
