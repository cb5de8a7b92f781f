// cmd/status.go

package cmd

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_cli"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_io"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/systemd"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Check service status",
	Args:  cobra.ExactArgs(1),
	RunE: sysd_cli.Wrap(func(rc *sysd_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		status, err := systemd.Status(rc, args[0])
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	}),
}
