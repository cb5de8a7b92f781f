// cmd/stop.go

package cmd

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_cli"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_io"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/systemd"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop a service",
	Args:  cobra.ExactArgs(1),
	RunE: sysd_cli.Wrap(func(rc *sysd_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := systemd.Stop(rc, name); err != nil {
			return err
		}
		fmt.Printf("Service %s stopped\n", name)
		return nil
	}),
}
