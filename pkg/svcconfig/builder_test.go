// pkg/svcconfig/builder_test.go

package svcconfig

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_err"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptedReader(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestGatherInteractiveStandardPython(t *testing.T) {
	t.Parallel()
	reader := scriptedReader(
		"demo",          // service name
		"Demo service",  // description
		"1",             // template: standard_python
		"",              // working directory, keep default
		"/tmp/venv",     // venv path
		"/tmp/x.py",     // script path
		"--port 8080",   // script args
		"alice",         // user
		"",              // group defaults to user
		"",              // restart policy defaults to always
		"",              // restart sec defaults to 3
		"FOO=bar",       // env vars
		"y",             // confirm
	)

	cfg, err := GatherInteractive(context.Background(), reader)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Name)
	assert.Equal(t, "Demo service", cfg.Description)
	assert.Equal(t, unit.TemplateStandardPython, cfg.Template)
	cwd, _ := os.Getwd()
	assert.Equal(t, cwd, cfg.WorkingDirectory)
	assert.Equal(t, "/tmp/venv", cfg.VenvPath)
	assert.Equal(t, "/tmp/x.py", cfg.ScriptPath)
	assert.Equal(t, "--port 8080", cfg.ScriptArgs)
	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, "alice", cfg.Group)
	assert.Equal(t, "always", cfg.RestartPolicy)
	assert.Equal(t, "3", cfg.RestartSec)
	assert.Equal(t, []string{"FOO=bar"}, cfg.AdditionalEnvVars)
}

func TestGatherInteractiveGunicorn(t *testing.T) {
	t.Parallel()
	reader := scriptedReader(
		"web",
		"Web app",
		"2",         // template: gunicorn
		"/srv/app",  // working directory
		"/tmp/venv",
		"",          // bind address, keep default
		"app:app",   // app module
		"bob",
		"web",       // explicit group
		"4",         // restart policy: on-failure
		"5",
		"",          // no extra env vars
		"yes",
	)

	cfg, err := GatherInteractive(context.Background(), reader)
	require.NoError(t, err)

	assert.Equal(t, unit.TemplateGunicorn, cfg.Template)
	assert.Equal(t, "/srv/app", cfg.WorkingDirectory)
	assert.Equal(t, DefaultBindAddress, cfg.BindAddress)
	assert.Equal(t, "app:app", cfg.AppModule)
	assert.Equal(t, "bob", cfg.User)
	assert.Equal(t, "web", cfg.Group)
	assert.Equal(t, "on-failure", cfg.RestartPolicy)
	assert.Equal(t, "5", cfg.RestartSec)
	assert.Empty(t, cfg.AdditionalEnvVars)
}

func TestGatherInteractiveDeclined(t *testing.T) {
	t.Parallel()
	reader := scriptedReader(
		"demo", "Demo service", "1", "", "/tmp/venv", "/tmp/x.py", "",
		"alice", "", "", "", "",
		"n", // reject the summary
	)

	cfg, err := GatherInteractive(context.Background(), reader)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, sysd_err.IsExpectedUserError(err))
	assert.Contains(t, err.Error(), "configuration cancelled")
}

func TestEditLoop(t *testing.T) {
	t.Parallel()
	cfg := demoConfig()
	reader := scriptedReader(
		"2", "Updated description", // edit description
		"abc",                       // non-numeric input re-prompts
		"99",                        // out-of-range re-prompts
		"12", `X=1 "Y=two words"`,   // replace env var list
		"13",                        // done
	)

	require.NoError(t, EditLoop(context.Background(), reader, cfg))
	assert.Equal(t, "Updated description", cfg.Description)
	assert.Equal(t, []string{"X=1", "Y=two words"}, cfg.AdditionalEnvVars)
	assert.Equal(t, "demo", cfg.Name)
}

func TestEditLoopBlankKeepsScalar(t *testing.T) {
	t.Parallel()
	cfg := demoConfig()
	reader := scriptedReader(
		"1", "", // blank input leaves the name alone
		"13",
	)

	require.NoError(t, EditLoop(context.Background(), reader, cfg))
	assert.Equal(t, "demo", cfg.Name)
}

func TestEditLoopClearsEnvVars(t *testing.T) {
	t.Parallel()
	cfg := demoConfig()
	reader := scriptedReader(
		"12", "", // list fields replace wholesale, even with an empty line
		"13",
	)

	require.NoError(t, EditLoop(context.Background(), reader, cfg))
	assert.Empty(t, cfg.AdditionalEnvVars)
}

func TestAbsPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", AbsPath(""))
	assert.Equal(t, "/tmp/venv", AbsPath("/tmp/venv"))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "venv"), AbsPath("~/venv"))

	got := AbsPath("relative/dir")
	assert.True(t, filepath.IsAbs(got))
	assert.True(t, strings.HasSuffix(got, filepath.Join("relative", "dir")))
}
