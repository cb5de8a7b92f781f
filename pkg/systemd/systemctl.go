// pkg/systemd/systemctl.go

package systemd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_io"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// SystemUnitDir is where installed unit files live. Writing there requires
// elevated privilege, so the copy goes through sudo.
const SystemUnitDir = "/etc/systemd/system"

// DefaultOutputDir is where rendered unit files are staged before install.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "systemd-services"
	}
	return filepath.Join(home, "systemd-services")
}

// WriteUnit writes rendered unit text under outputDir, creating parent
// directories as needed, and returns the written path.
func WriteUnit(rc *sysd_io.RuntimeContext, outputDir, unitFileName, content string) (string, error) {
	log := otelzap.Ctx(rc.Ctx)

	if err := os.MkdirAll(outputDir, xdg.DirPermStandard); err != nil {
		return "", cerr.Wrapf(err, "creating output directory %s", outputDir)
	}

	path := filepath.Join(outputDir, unitFileName)
	if err := os.WriteFile(path, []byte(content), xdg.FilePermStandard); err != nil {
		return "", cerr.Wrapf(err, "writing unit file %s", path)
	}

	log.Info("Unit file written", zap.String("path", path))
	return path, nil
}

// Install copies the staged unit file into the system unit directory and
// reloads the service manager's unit definitions. A failed copy is terminal
// and surfaces the underlying command's error text.
func Install(rc *sysd_io.RuntimeContext, unitPath, unitFileName string) error {
	log := otelzap.Ctx(rc.Ctx)

	dest := filepath.Join(SystemUnitDir, unitFileName)
	log.Info("Installing unit file", zap.String("source", unitPath), zap.String("dest", dest))

	output, err := execute.Run(rc.Ctx, execute.Options{
		Command: "sudo",
		Args:    []string{"cp", unitPath, dest},
		Capture: true,
	})
	if err != nil {
		return cerr.Wrapf(err, "failed to deploy service: %s", strings.TrimSpace(output))
	}

	if err := DaemonReload(rc); err != nil {
		return err
	}
	return nil
}

// DaemonReload asks systemd to re-read its unit definitions.
func DaemonReload(rc *sysd_io.RuntimeContext) error {
	if err := execute.RunSimple(rc.Ctx, "sudo", "systemctl", "daemon-reload"); err != nil {
		return cerr.Wrap(err, "failed to reload systemd")
	}
	return nil
}

// EnableAndStart enables the unit for boot, starts it, and verifies the
// queried active-state is exactly "active". On any other state the returned
// error points the operator at the journal.
func EnableAndStart(rc *sysd_io.RuntimeContext, name string) (string, error) {
	log := otelzap.Ctx(rc.Ctx)

	if err := execute.RunSimple(rc.Ctx, "sudo", "systemctl", "enable", name); err != nil {
		return "", cerr.Wrapf(err, "failed to enable service %s", name)
	}
	if err := execute.RunSimple(rc.Ctx, "sudo", "systemctl", "start", name); err != nil {
		return "", cerr.Wrapf(err, "failed to start service %s", name)
	}

	state, err := IsActive(rc, name)
	log.Info("Queried service state", zap.String("service", name), zap.String("state", state))
	if err == nil && state == "active" {
		return fmt.Sprintf("Service %s is now active and enabled at boot", name), nil
	}
	return "", cerr.Newf("service %s is not active, check logs with: sudo journalctl -u %s", name, name)
}

// IsActive returns the unit's active-state string as reported by systemd.
// systemctl is-active exits non-zero for inactive units; the state text is
// still the answer, so the exit code is ignored here.
func IsActive(rc *sysd_io.RuntimeContext, name string) (string, error) {
	output, err := execute.Run(rc.Ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{"is-active", name},
		Capture: true,
	})
	state := strings.TrimSpace(output)
	if state == "" && err != nil {
		return "", cerr.Wrapf(err, "querying active-state of %s", name)
	}
	return state, nil
}

// Status returns the full human-readable status text for a unit. A non-zero
// exit with output is not an error: systemctl status exits 3 for stopped
// units while still printing the report.
func Status(rc *sysd_io.RuntimeContext, name string) (string, error) {
	output, err := execute.Run(rc.Ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{"status", name},
		Capture: true,
	})
	if strings.TrimSpace(output) == "" && err != nil {
		return "", cerr.Wrapf(err, "failed to get status for %s", name)
	}
	return output, nil
}

// Start starts a unit immediately.
func Start(rc *sysd_io.RuntimeContext, name string) error {
	output, err := execute.Run(rc.Ctx, execute.Options{
		Command: "sudo",
		Args:    []string{"systemctl", "start", name},
		Capture: true,
	})
	if err != nil {
		return cerr.Wrapf(err, "failed to start service: %s", strings.TrimSpace(output))
	}
	return nil
}

// Stop stops a unit immediately.
func Stop(rc *sysd_io.RuntimeContext, name string) error {
	output, err := execute.Run(rc.Ctx, execute.Options{
		Command: "sudo",
		Args:    []string{"systemctl", "stop", name},
		Capture: true,
	})
	if err != nil {
		return cerr.Wrapf(err, "failed to stop service: %s", strings.TrimSpace(output))
	}
	return nil
}
