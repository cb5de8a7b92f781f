// cmd/create.go

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/svcconfig"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_cli"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_err"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_io"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/systemd"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/unit"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var createFlags = struct {
	interactive bool
	load        string
	preview     bool
	edit        bool
	output      string
	opts        svcconfig.FlagOptions
}{}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new systemd service",
	Long: `Create a systemd service from a built-in template. Fields come from an
interactive wizard, from flags, or from a previously saved configuration.`,
	RunE: sysd_cli.Wrap(runCreate),
}

func init() {
	f := createCmd.Flags()
	registerConfigFlags(f)
	f.BoolVar(&createFlags.interactive, "interactive", false, "Run in interactive wizard mode")
	f.StringVar(&createFlags.load, "load", "", "Load service configuration from file")
	f.BoolVar(&createFlags.preview, "preview", false, "Preview service file before creating")
	f.BoolVar(&createFlags.edit, "edit", false, "Edit configuration interactively")
	f.StringVar(&createFlags.output, "output", "", "Output directory for service files")
}

func registerConfigFlags(f *pflag.FlagSet) {
	o := &createFlags.opts
	f.StringVar(&o.Name, "name", "", "Service name")
	f.StringVar(&o.Template, "template", "", "Service template to use (standard_python, gunicorn)")
	f.StringVar(&o.Description, "description", "", "Service description")
	f.StringVar(&o.WorkingDir, "working-dir", "", "Working directory")
	f.StringVar(&o.VenvPath, "venv-path", "", "Path to virtual environment")
	f.StringVar(&o.ScriptPath, "script-path", "", "Path to Python script (for standard_python template)")
	f.StringVar(&o.ScriptArgs, "script-args", "", "Script arguments (for standard_python template)")
	f.StringVar(&o.BindAddress, "bind-address", "", "Bind address (for gunicorn template)")
	f.StringVar(&o.AppModule, "app-module", "", "App module (for gunicorn template)")
	f.StringVar(&o.User, "user", "", "User to run the service as")
	f.StringVar(&o.Group, "group", "", "Group to run the service as")
	f.StringVar(&o.Restart, "restart", svcconfig.DefaultRestartPolicy, "Restart policy")
	f.StringVar(&o.RestartSec, "restart-sec", svcconfig.DefaultRestartSec, "Restart delay in seconds")
	f.StringVar(&o.Env, "env", "", `Additional environment variables (KEY1=VALUE1 "KEY2=VALUE 2" ...)`)
}

func runCreate(rc *sysd_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	log := otelzap.Ctx(rc.Ctx)
	reader := bufio.NewReader(os.Stdin)

	cfg, err := buildConfig(rc, reader)
	if err != nil {
		return err
	}

	if createFlags.edit {
		if err := svcconfig.EditLoop(rc.Ctx, reader, cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := runAdvisoryChecks(rc, reader, cfg); err != nil {
		return err
	}

	if createFlags.preview {
		rendered, err := cfg.Render()
		if err != nil {
			return err
		}
		fmt.Println("\n=== Service File Preview ===")
		fmt.Println(rendered)
		fmt.Println("===========================")

		proceed, err := interaction.PromptYesNo(rc.Ctx, reader, "\nProceed with creation?", true)
		if err != nil {
			return err
		}
		if !proceed {
			return sysd_err.NewUserError("creation cancelled after preview")
		}
	}

	store := svcconfig.NewStore()
	configPath, err := store.Save(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Configuration saved to: %s\n", configPath)

	rendered, err := cfg.Render()
	if err != nil {
		return err
	}

	outputDir := createFlags.output
	if outputDir == "" {
		outputDir = systemd.DefaultOutputDir()
	}
	unitPath, err := systemd.WriteUnit(rc, outputDir, cfg.UnitFileName(), rendered)
	if err != nil {
		return err
	}
	fmt.Printf("Service file created at: %s\n", unitPath)

	fmt.Println("\n=== Service File ===")
	fmt.Println(rendered)
	fmt.Println("===================")

	deploy, err := interaction.PromptYesNo(rc.Ctx, reader, "Deploy service now?", false)
	if err != nil {
		return err
	}
	if !deploy {
		return nil
	}

	log.Info("Deploying service", zap.String("service", cfg.Name))
	if err := systemd.Install(rc, unitPath, cfg.UnitFileName()); err != nil {
		return err
	}
	fmt.Printf("Service %s deployed successfully\n", cfg.Name)

	start, err := interaction.PromptYesNo(rc.Ctx, reader, "Start and enable service?", true)
	if err != nil {
		return err
	}
	if !start {
		return nil
	}

	msg, err := systemd.EnableAndStart(rc, cfg.Name)
	if err != nil {
		return err
	}
	fmt.Println(msg)

	time.Sleep(2 * time.Second) // give the service time to settle before querying
	status, err := systemd.Status(rc, cfg.Name)
	if err != nil {
		return err
	}
	fmt.Println("\nService Status:")
	fmt.Println(status)
	return nil
}

// buildConfig picks the construction mode: load, interactive wizard, or flags.
// The wizard also triggers when the minimum flag set is incomplete.
func buildConfig(rc *sysd_io.RuntimeContext, reader *bufio.Reader) (*svcconfig.ServiceConfig, error) {
	log := otelzap.Ctx(rc.Ctx)
	o := createFlags.opts

	if createFlags.load != "" {
		cfg, err := svcconfig.LoadPath(createFlags.load)
		if err != nil {
			return nil, err
		}
		if cfg == nil {
			return nil, cerr.Newf("could not load configuration from %s", createFlags.load)
		}
		log.Info("Loaded service configuration", zap.String("path", createFlags.load))
		fmt.Printf("Loaded service configuration from %s\n", createFlags.load)
		return cfg, nil
	}

	if createFlags.interactive || o.Name == "" || o.Template == "" || o.VenvPath == "" {
		return svcconfig.GatherInteractive(rc.Ctx, reader)
	}

	return svcconfig.FromFlags(o)
}

// runAdvisoryChecks validates the venv (and the script, for the script
// template). Failures warn and require explicit confirmation to continue.
func runAdvisoryChecks(rc *sysd_io.RuntimeContext, reader *bufio.Reader, cfg *svcconfig.ServiceConfig) error {
	log := otelzap.Ctx(rc.Ctx)

	fmt.Printf("\nValidating virtual environment at %s...\n", cfg.VenvPath)
	if ok, msg := svcconfig.CheckVenv(cfg.VenvPath); !ok {
		log.Warn("Virtual environment validation failed", zap.String("message", msg))
		fmt.Printf("Warning: %s\n", msg)
		proceed, err := interaction.PromptYesNo(rc.Ctx, reader, "Virtual environment validation failed. Proceed anyway?", false)
		if err != nil {
			return err
		}
		if !proceed {
			return sysd_err.NewUserError("cancelled after failed virtual environment validation")
		}
	}

	if cfg.Template == unit.TemplateStandardPython {
		fmt.Printf("Validating script at %s...\n", cfg.ScriptPath)
		if ok, msg := svcconfig.CheckScript(cfg.ScriptPath); !ok {
			log.Warn("Script validation failed", zap.String("message", msg))
			fmt.Printf("Warning: %s\n", msg)
			proceed, err := interaction.PromptYesNo(rc.Ctx, reader, "Script validation failed. Proceed anyway?", false)
			if err != nil {
				return err
			}
			if !proceed {
				return sysd_err.NewUserError("cancelled after failed script validation")
			}
		}
	}
	return nil
}
