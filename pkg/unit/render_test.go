// pkg/unit/render_test.go

package unit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullContext() Context {
	return Context{
		Description:      "Demo service",
		WorkingDirectory: "/srv/demo",
		VenvPath:         "/tmp/venv",
		ScriptPath:       "/tmp/x.py",
		ScriptArgs:       "",
		BindAddress:      "0.0.0.0:8000",
		AppModule:        "app:app",
		User:             "demo",
		Group:            "demo",
		RestartPolicy:    "always",
		RestartSec:       "3",
	}
}

func TestRenderNoUnresolvedPlaceholders(t *testing.T) {
	t.Parallel()
	for _, id := range IDs() {
		id := id
		t.Run(id, func(t *testing.T) {
			t.Parallel()
			out, err := Render(id, fullContext())
			require.NoError(t, err)
			assert.NotContains(t, out, "{{")
			assert.NotContains(t, out, "}}")
		})
	}
}

func TestRenderStandardPythonExecStart(t *testing.T) {
	t.Parallel()
	out, err := Render(TemplateStandardPython, fullContext())
	require.NoError(t, err)

	assert.Contains(t, out,
		`ExecStart=/bin/bash -c "source /tmp/venv/bin/activate && python3 /tmp/x.py "`)
	assert.Contains(t, out, `Environment="PATH=/tmp/venv/bin:$PATH"`)
	assert.Contains(t, out, `Environment="PYTHONUNBUFFERED=1"`)
	assert.Contains(t, out, "WantedBy=multi-user.target")
}

func TestRenderGunicornExecStart(t *testing.T) {
	t.Parallel()
	out, err := Render(TemplateGunicorn, fullContext())
	require.NoError(t, err)

	assert.Contains(t, out,
		`ExecStart=/bin/bash -c "source /tmp/venv/bin/activate && gunicorn --bind 0.0.0.0:8000 app:app"`)
}

func TestRenderSectionOrder(t *testing.T) {
	t.Parallel()
	out, err := Render(TemplateStandardPython, fullContext())
	require.NoError(t, err)

	unitIdx := strings.Index(out, "[Unit]")
	serviceIdx := strings.Index(out, "[Service]")
	installIdx := strings.Index(out, "[Install]")
	require.True(t, unitIdx >= 0 && serviceIdx > unitIdx && installIdx > serviceIdx,
		"sections out of order:\n%s", out)
}

func TestRenderEnvVarLines(t *testing.T) {
	t.Parallel()

	countExtraEnv := func(out string) int {
		n := 0
		for _, line := range strings.Split(out, "\n") {
			if strings.HasPrefix(line, `Environment="`) &&
				!strings.HasPrefix(line, `Environment="PATH=`) &&
				line != `Environment="PYTHONUNBUFFERED=1"` {
				n++
			}
		}
		return n
	}

	ctx := fullContext()
	out, err := Render(TemplateStandardPython, ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, countExtraEnv(out), "empty list must emit no extra Environment lines")

	ctx.AdditionalEnvVars = []string{"FOO=bar", "GREETING=hello world"}
	out, err = Render(TemplateStandardPython, ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, countExtraEnv(out))
	assert.Contains(t, out, `Environment="FOO=bar"`)
	assert.Contains(t, out, `Environment="GREETING=hello world"`)
}

func TestRenderUnknownTemplate(t *testing.T) {
	t.Parallel()
	_, err := Render("nonexistent", fullContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tmpl, err := Lookup(TemplateStandardPython)
	require.NoError(t, err)
	assert.Equal(t, "Standard Python Script", tmpl.Name)

	tmpl, err = Lookup(TemplateGunicorn)
	require.NoError(t, err)
	assert.Equal(t, "Gunicorn Web Application", tmpl.Name)

	_, err = Lookup("bogus")
	require.Error(t, err)
}

func TestIDsOrder(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{TemplateStandardPython, TemplateGunicorn}, IDs())
}
