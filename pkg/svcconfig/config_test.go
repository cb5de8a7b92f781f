// pkg/svcconfig/config_test.go

package svcconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, demoConfig().Validate())
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		cfg := demoConfig()
		cfg.Name = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("unsafe name", func(t *testing.T) {
		t.Parallel()
		cfg := demoConfig()
		cfg.Name = "bad/name"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()
		cfg := demoConfig()
		cfg.Template = "mystery"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown template")
	})

	t.Run("script template without script path", func(t *testing.T) {
		t.Parallel()
		cfg := demoConfig()
		cfg.ScriptPath = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("gunicorn without app module", func(t *testing.T) {
		t.Parallel()
		cfg := demoConfig()
		cfg.Template = unit.TemplateGunicorn
		cfg.BindAddress = "0.0.0.0:8000"
		cfg.AppModule = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown restart policy", func(t *testing.T) {
		t.Parallel()
		cfg := demoConfig()
		cfg.RestartPolicy = "sometimes"
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative restart sec", func(t *testing.T) {
		t.Parallel()
		cfg := demoConfig()
		cfg.RestartSec = "-1"
		assert.Error(t, cfg.Validate())
	})

	t.Run("malformed env var", func(t *testing.T) {
		t.Parallel()
		cfg := demoConfig()
		cfg.AdditionalEnvVars = []string{"NOEQUALS"}
		assert.Error(t, cfg.Validate())
	})
}

func TestFromFlagsRequiredFields(t *testing.T) {
	t.Parallel()

	_, err := FromFlags(FlagOptions{
		Name:       "demo",
		Template:   unit.TemplateStandardPython,
		VenvPath:   "/tmp/venv",
		Restart:    DefaultRestartPolicy,
		RestartSec: DefaultRestartSec,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--script-path is required for standard_python template")

	_, err = FromFlags(FlagOptions{
		Name:       "demo",
		Template:   unit.TemplateGunicorn,
		VenvPath:   "/tmp/venv",
		Restart:    DefaultRestartPolicy,
		RestartSec: DefaultRestartSec,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--app-module is required for gunicorn template")

	_, err = FromFlags(FlagOptions{Name: "demo", Template: "mystery", VenvPath: "/tmp/venv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestFromFlagsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := FromFlags(FlagOptions{
		Name:       "demo",
		Template:   unit.TemplateStandardPython,
		VenvPath:   "/tmp/venv",
		ScriptPath: "/tmp/x.py",
		Restart:    DefaultRestartPolicy,
		RestartSec: DefaultRestartSec,
	})
	require.NoError(t, err)

	assert.Equal(t, "Python service demo", cfg.Description)
	assert.NotEmpty(t, cfg.WorkingDirectory)
	assert.Equal(t, CurrentUser(), cfg.User)
	// Group falls back to the resolved user, same as interactive mode.
	assert.Equal(t, cfg.User, cfg.Group)
	assert.Equal(t, "always", cfg.RestartPolicy)
	assert.Equal(t, "3", cfg.RestartSec)
	assert.Empty(t, cfg.AdditionalEnvVars)
}

func TestFromFlagsGroupFollowsExplicitUser(t *testing.T) {
	t.Parallel()

	cfg, err := FromFlags(FlagOptions{
		Name:       "demo",
		Template:   unit.TemplateGunicorn,
		VenvPath:   "/tmp/venv",
		AppModule:  "app:app",
		User:       "www-data",
		Restart:    DefaultRestartPolicy,
		RestartSec: DefaultRestartSec,
	})
	require.NoError(t, err)

	assert.Equal(t, "www-data", cfg.User)
	assert.Equal(t, "www-data", cfg.Group)
	assert.Equal(t, DefaultBindAddress, cfg.BindAddress)
}

func TestEndToEndCreateDemo(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	script := filepath.Join(dir, "x.py")
	require.NoError(t, os.WriteFile(script, nil, 0o644))

	venv := filepath.Join(dir, "venv")
	require.NoError(t, os.MkdirAll(filepath.Join(venv, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(venv, "bin", "activate"), nil, 0o644))

	cfg, err := FromFlags(FlagOptions{
		Name:       "demo",
		Template:   unit.TemplateStandardPython,
		VenvPath:   venv,
		ScriptPath: script,
		Restart:    DefaultRestartPolicy,
		RestartSec: DefaultRestartSec,
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	ok, _ := CheckVenv(cfg.VenvPath)
	assert.True(t, ok)
	ok, _ = CheckScript(cfg.ScriptPath)
	assert.True(t, ok)

	rendered, err := cfg.Render()
	require.NoError(t, err)
	assert.Contains(t, rendered, fmt.Sprintf(
		`ExecStart=/bin/bash -c "source %s/bin/activate && python3 %s "`, venv, script))

	store := NewStoreAt(filepath.Join(dir, "configs"))
	path, err := store.Save(cfg)
	require.NoError(t, err)
	assert.Equal(t, "demo.json", filepath.Base(path))

	loaded, err := store.Load("demo")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSummaryListsFieldsInOrder(t *testing.T) {
	t.Parallel()

	summary := demoConfig().Summary()
	assert.Contains(t, summary, "name: demo\n")
	assert.Contains(t, summary, "script_path: /tmp/x.py\n")
	assert.NotContains(t, summary, "bind_address")

	gCfg := demoConfig()
	gCfg.Template = unit.TemplateGunicorn
	gCfg.AppModule = "app:app"
	gSummary := gCfg.Summary()
	assert.Contains(t, gSummary, "app_module: app:app\n")
	assert.NotContains(t, gSummary, "script_path")
}
