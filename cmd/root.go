/* cmd/root.go */

package cmd

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_err"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the base command for sysdeploy.
var RootCmd = &cobra.Command{
	Use:   "sysdeploy",
	Short: "Deploy Python scripts as systemd services",
	Long: `sysdeploy renders systemd unit files from built-in templates and can
install, enable, and start the resulting service. Configurations are
gathered interactively or from flags and saved as JSON for reuse.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	for _, subCmd := range []*cobra.Command{
		createCmd,
		listCmd,
		statusCmd,
		startCmd,
		stopCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute initializes and runs the root command.
func Execute() {
	defer logger.SafeSync()

	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		if sysd_err.IsExpectedUserError(err) {
			logger.GetLogger().Warn("CLI completed with user error", zap.Error(err))
			os.Exit(0) // gracefully allow 0 exit code for user errors
		}
		logger.GetLogger().Error("CLI execution error", zap.Error(err))
		os.Exit(1)
	}
}
