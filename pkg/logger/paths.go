/* pkg/logger/paths.go */

package logger

import (
	"runtime"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/xdg"
)

const appID = "sysdeploy"

// PlatformLogPaths returns fallback log paths in order of priority for the platform.
func PlatformLogPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			xdg.XDGStatePath(appID, "sysdeploy.log"),
			"/tmp/sysdeploy/sysdeploy.log",
		}
	case "linux":
		return []string{
			"/var/log/sysdeploy/sysdeploy.log", // best if writable (root)
			xdg.XDGStatePath(appID, "sysdeploy.log"), // user-local fallback
			"/tmp/sysdeploy/sysdeploy.log",           // ephemeral
		}
	default:
		return []string{"./sysdeploy.log"}
	}
}
