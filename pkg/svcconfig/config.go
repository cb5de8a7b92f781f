// pkg/svcconfig/config.go

package svcconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/unit"
	cerr "github.com/cockroachdb/errors"
)

// RestartPolicies is the closed set systemd accepts for Restart=, in menu order.
var RestartPolicies = []string{
	"no", "always", "on-success", "on-failure", "on-abnormal", "on-abort", "on-watchdog",
}

const (
	DefaultRestartPolicy = "always"
	DefaultRestartSec    = "3"
	DefaultBindAddress   = "0.0.0.0:8000"
)

// ServiceConfig is the persisted record describing one service deployment.
type ServiceConfig struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Template         string `json:"template"`
	WorkingDirectory string `json:"working_directory"`
	VenvPath         string `json:"venv_path"`

	// standard_python only
	ScriptPath string `json:"script_path,omitempty"`
	ScriptArgs string `json:"script_args,omitempty"`

	// gunicorn only
	BindAddress string `json:"bind_address,omitempty"`
	AppModule   string `json:"app_module,omitempty"`

	User              string   `json:"user"`
	Group             string   `json:"group"`
	RestartPolicy     string   `json:"restart_policy"`
	RestartSec        string   `json:"restart_sec"`
	AdditionalEnvVars []string `json:"additional_env_vars"`
}

// Validate checks the invariants that must hold before rendering or persisting.
func (c *ServiceConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return cerr.New("service name must not be empty")
	}
	if !isFilesystemSafe(c.Name) {
		return cerr.Newf("service name %q contains characters unsafe for a filename", c.Name)
	}

	if _, err := unit.Lookup(c.Template); err != nil {
		return err
	}

	switch c.Template {
	case unit.TemplateStandardPython:
		if c.ScriptPath == "" {
			return cerr.New("script_path is required for standard_python template")
		}
	case unit.TemplateGunicorn:
		if c.AppModule == "" {
			return cerr.New("app_module is required for gunicorn template")
		}
	}

	if !isKnownRestartPolicy(c.RestartPolicy) {
		return cerr.Newf("unknown restart policy: %s", c.RestartPolicy)
	}
	if sec, err := strconv.Atoi(c.RestartSec); err != nil || sec < 0 {
		return cerr.Newf("restart_sec must be a non-negative integer, got %q", c.RestartSec)
	}

	for _, ev := range c.AdditionalEnvVars {
		if err := ValidateEnvVar(ev); err != nil {
			return err
		}
	}
	return nil
}

// UnitContext maps the record onto the renderer's substitution context.
func (c *ServiceConfig) UnitContext() unit.Context {
	return unit.Context{
		Description:       c.Description,
		WorkingDirectory:  c.WorkingDirectory,
		VenvPath:          c.VenvPath,
		ScriptPath:        c.ScriptPath,
		ScriptArgs:        c.ScriptArgs,
		BindAddress:       c.BindAddress,
		AppModule:         c.AppModule,
		User:              c.User,
		Group:             c.Group,
		RestartPolicy:     c.RestartPolicy,
		RestartSec:        c.RestartSec,
		AdditionalEnvVars: c.AdditionalEnvVars,
	}
}

// Render produces the final unit-file text for this record.
func (c *ServiceConfig) Render() (string, error) {
	return unit.Render(c.Template, c.UnitContext())
}

// UnitFileName is the filename stem plus the systemd unit suffix.
func (c *ServiceConfig) UnitFileName() string {
	return c.Name + ".service"
}

// Summary returns the full-field listing shown before confirmation.
func (c *ServiceConfig) Summary() string {
	var sb strings.Builder
	for _, f := range c.fields() {
		fmt.Fprintf(&sb, "%s: %s\n", f.key, f.get())
	}
	return sb.String()
}

// field is one editable entry: a stable key, a getter for display, and a
// setter that replaces the value from one line of input.
type field struct {
	key    string
	isList bool
	get    func() string
	set    func(string)
}

// fields returns the editable fields in wizard prompt order, with the
// template-specific pair matching the selected template.
func (c *ServiceConfig) fields() []field {
	fs := []field{
		{key: "name", get: func() string { return c.Name }, set: func(v string) { c.Name = v }},
		{key: "description", get: func() string { return c.Description }, set: func(v string) { c.Description = v }},
		{key: "template", get: func() string { return c.Template }, set: func(v string) { c.Template = v }},
		{key: "working_directory", get: func() string { return c.WorkingDirectory }, set: func(v string) { c.WorkingDirectory = v }},
		{key: "venv_path", get: func() string { return c.VenvPath }, set: func(v string) { c.VenvPath = v }},
	}

	switch c.Template {
	case unit.TemplateGunicorn:
		fs = append(fs,
			field{key: "bind_address", get: func() string { return c.BindAddress }, set: func(v string) { c.BindAddress = v }},
			field{key: "app_module", get: func() string { return c.AppModule }, set: func(v string) { c.AppModule = v }},
		)
	default:
		fs = append(fs,
			field{key: "script_path", get: func() string { return c.ScriptPath }, set: func(v string) { c.ScriptPath = v }},
			field{key: "script_args", get: func() string { return c.ScriptArgs }, set: func(v string) { c.ScriptArgs = v }},
		)
	}

	fs = append(fs,
		field{key: "user", get: func() string { return c.User }, set: func(v string) { c.User = v }},
		field{key: "group", get: func() string { return c.Group }, set: func(v string) { c.Group = v }},
		field{key: "restart_policy", get: func() string { return c.RestartPolicy }, set: func(v string) { c.RestartPolicy = v }},
		field{key: "restart_sec", get: func() string { return c.RestartSec }, set: func(v string) { c.RestartSec = v }},
		field{
			key:    "additional_env_vars",
			isList: true,
			get:    func() string { return strings.Join(c.AdditionalEnvVars, " ") },
			set:    func(v string) { c.AdditionalEnvVars = ParseEnvVars(v) },
		},
	)
	return fs
}

func isFilesystemSafe(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

func isKnownRestartPolicy(policy string) bool {
	for _, p := range RestartPolicies {
		if p == policy {
			return true
		}
	}
	return false
}
