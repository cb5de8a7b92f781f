// cmd/start.go

package cmd

import (
	"fmt"
	"time"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_cli"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_io"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/systemd"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a service",
	Args:  cobra.ExactArgs(1),
	RunE: sysd_cli.Wrap(func(rc *sysd_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := systemd.Start(rc, name); err != nil {
			return err
		}

		time.Sleep(1 * time.Second) // give the service time to start
		status, err := systemd.Status(rc, name)
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	}),
}
