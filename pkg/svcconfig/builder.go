// pkg/svcconfig/builder.go

package svcconfig

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_err"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/unit"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// GatherInteractive walks the operator through every field in order and
// returns the confirmed configuration. Declining the final confirmation
// ends the command with no side effects.
func GatherInteractive(ctx context.Context, reader *bufio.Reader) (*ServiceConfig, error) {
	logger := otelzap.Ctx(ctx)
	logger.Info("Starting interactive service wizard")

	fmt.Fprintln(os.Stderr, "\n=== Service Deployment Wizard ===")

	cfg := &ServiceConfig{}
	var err error

	if cfg.Name, err = interaction.ReadLine(ctx, reader, "Service name"); err != nil {
		return nil, err
	}
	if cfg.Description, err = interaction.ReadLine(ctx, reader, "Service description"); err != nil {
		return nil, err
	}

	all := unit.All()
	options := make([]string, 0, len(all))
	for _, t := range all {
		options = append(options, fmt.Sprintf("%s - %s", t.Name, t.Description))
	}
	idx, _, err := interaction.PromptSelect(ctx, reader, "\nAvailable templates:", options, 0)
	if err != nil {
		return nil, err
	}
	cfg.Template = all[idx].ID

	cwd, _ := os.Getwd()
	if cfg.WorkingDirectory, err = interaction.PromptInput(ctx, reader, "Working directory", cwd); err != nil {
		return nil, err
	}

	venv, err := interaction.ReadLine(ctx, reader, "Path to virtual environment (e.g., /path/to/venv)")
	if err != nil {
		return nil, err
	}
	cfg.VenvPath = AbsPath(venv)

	switch cfg.Template {
	case unit.TemplateStandardPython:
		script, err := interaction.ReadLine(ctx, reader, "Full path to Python script")
		if err != nil {
			return nil, err
		}
		cfg.ScriptPath = AbsPath(script)
		if cfg.ScriptArgs, err = interaction.ReadLine(ctx, reader, "Script arguments (if any)"); err != nil {
			return nil, err
		}
	case unit.TemplateGunicorn:
		if cfg.BindAddress, err = interaction.PromptInput(ctx, reader, "Bind address (e.g., 0.0.0.0:8000)", DefaultBindAddress); err != nil {
			return nil, err
		}
		if cfg.AppModule, err = interaction.ReadLine(ctx, reader, "App module (e.g., app:app for Flask or wsgi:application for Django)"); err != nil {
			return nil, err
		}
	}

	defaultUser := CurrentUser()
	if cfg.User, err = interaction.PromptInput(ctx, reader, "User to run the service", defaultUser); err != nil {
		return nil, err
	}
	if cfg.Group, err = interaction.PromptInput(ctx, reader, "Group to run the service", cfg.User); err != nil {
		return nil, err
	}

	policyIdx := indexOf(RestartPolicies, DefaultRestartPolicy)
	_, cfg.RestartPolicy, err = interaction.PromptSelect(ctx, reader, "\nRestart policies:", RestartPolicies, policyIdx)
	if err != nil {
		return nil, err
	}

	if cfg.RestartSec, err = interaction.PromptInput(ctx, reader, "Restart delay in seconds", DefaultRestartSec); err != nil {
		return nil, err
	}

	fmt.Fprintln(os.Stderr, "\nAdditional environment variables (beyond PATH and PYTHONUNBUFFERED)")
	fmt.Fprintln(os.Stderr, `Format: KEY1=VALUE1 "KEY2=VALUE WITH SPACES" (space-separated)`)
	envLine, err := interaction.ReadLine(ctx, reader, "Environment variables")
	if err != nil {
		return nil, err
	}
	cfg.AdditionalEnvVars = ParseEnvVars(envLine)

	fmt.Fprintln(os.Stderr, "\n=== Service Configuration Summary ===")
	fmt.Fprint(os.Stderr, cfg.Summary())

	confirmed, err := interaction.PromptYesNo(ctx, reader, "\nDoes this look correct?", true)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		logger.Info("Operator declined configuration summary")
		return nil, sysd_err.NewUserError("configuration cancelled, please run the wizard again")
	}

	return cfg, nil
}

// FlagOptions carries the create command's discrete flag values.
type FlagOptions struct {
	Name        string
	Template    string
	Description string
	WorkingDir  string
	VenvPath    string
	ScriptPath  string
	ScriptArgs  string
	BindAddress string
	AppModule   string
	User        string
	Group       string
	Restart     string
	RestartSec  string
	Env         string
}

// FromFlags builds a configuration from discrete flag values, applying the
// same defaults the wizard uses.
func FromFlags(opts FlagOptions) (*ServiceConfig, error) {
	switch opts.Template {
	case unit.TemplateStandardPython:
		if opts.ScriptPath == "" {
			return nil, cerr.New("--script-path is required for standard_python template")
		}
	case unit.TemplateGunicorn:
		if opts.AppModule == "" {
			return nil, cerr.New("--app-module is required for gunicorn template")
		}
	default:
		if _, err := unit.Lookup(opts.Template); err != nil {
			return nil, err
		}
	}

	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("Python service %s", opts.Name)
	}

	workingDir := opts.WorkingDir
	if workingDir == "" {
		workingDir, _ = os.Getwd()
	} else {
		workingDir = AbsPath(workingDir)
	}

	runAs := opts.User
	if runAs == "" {
		runAs = CurrentUser()
	}
	group := opts.Group
	if group == "" {
		// Same fallback chain as the wizard: group defaults to the resolved user.
		group = runAs
	}

	cfg := &ServiceConfig{
		Name:              opts.Name,
		Description:       description,
		Template:          opts.Template,
		WorkingDirectory:  workingDir,
		VenvPath:          AbsPath(opts.VenvPath),
		User:              runAs,
		Group:             group,
		RestartPolicy:     opts.Restart,
		RestartSec:        opts.RestartSec,
		AdditionalEnvVars: ParseEnvVars(opts.Env),
	}

	switch opts.Template {
	case unit.TemplateStandardPython:
		cfg.ScriptPath = AbsPath(opts.ScriptPath)
		cfg.ScriptArgs = opts.ScriptArgs
	case unit.TemplateGunicorn:
		cfg.BindAddress = opts.BindAddress
		if cfg.BindAddress == "" {
			cfg.BindAddress = DefaultBindAddress
		}
		cfg.AppModule = opts.AppModule
	}

	return cfg, nil
}

// EditLoop presents every field as a numbered menu and re-prompts for the
// selected one until the operator chooses done. List fields re-enter as one
// quote-aware line replacing the whole list.
func EditLoop(ctx context.Context, reader *bufio.Reader, cfg *ServiceConfig) error {
	logger := otelzap.Ctx(ctx)

	for {
		fmt.Fprintln(os.Stderr, "\n=== Edit Service Configuration ===")
		fields := cfg.fields()
		for i, f := range fields {
			fmt.Fprintf(os.Stderr, "%d) %s: %s\n", i+1, f.key, f.get())
		}
		fmt.Fprintf(os.Stderr, "%d) Done editing\n", len(fields)+1)

		choice, err := interaction.ReadLine(ctx, reader, fmt.Sprintf("Select field to edit [1-%d]", len(fields)+1))
		if err != nil {
			return err
		}

		idx, err := strconv.Atoi(choice)
		if err != nil {
			continue
		}
		if idx == len(fields)+1 {
			return nil
		}
		if idx < 1 || idx > len(fields) {
			fmt.Fprintln(os.Stderr, "Invalid choice")
			continue
		}

		f := fields[idx-1]
		if f.isList {
			fmt.Fprintf(os.Stderr, "Current value: %s\n", f.get())
			value, err := interaction.ReadLine(ctx, reader, fmt.Sprintf("Enter new value for %s (space-separated list)", f.key))
			if err != nil {
				return err
			}
			f.set(value)
		} else {
			value, err := interaction.ReadLine(ctx, reader, fmt.Sprintf("Enter new value for %s [current: %s]", f.key, f.get()))
			if err != nil {
				return err
			}
			if value != "" {
				f.set(value)
			}
		}
		logger.Debug("Field edited", zap.String("field", f.key))
	}
}

// AbsPath expands a leading ~ and makes the path absolute.
func AbsPath(p string) string {
	if p == "" {
		return p
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(p, "~"), "/"))
		}
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// CurrentUser returns the invoking OS account name.
func CurrentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

func indexOf(options []string, value string) int {
	for i, o := range options {
		if o == value {
			return i
		}
	}
	return 0
}
