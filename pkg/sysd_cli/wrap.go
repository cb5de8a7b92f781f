// pkg/sysd_cli/wrap.go

package sysd_cli

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_err"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Wrap ensures panic recovery, telemetry, and logging around a command handler.
func Wrap(fn func(rc *sysd_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if logger.L() == nil {
			logger.InitFallback()
		}

		rc := sysd_io.NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)

		defer func() {
			if r := recover(); r != nil {
				err = cerr.AssertionFailedf("panic: %v", r)
				rc.Log.Error("Panic recovered", zap.Any("panic", r))
			}
		}()

		err = fn(rc, cmd, args)
		if err != nil && !sysd_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
