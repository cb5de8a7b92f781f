// main.go

package main

import (
	"github.com/CodeMonkeyCybersecurity/sysdeploy/cmd"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/telemetry"
	"go.uber.org/zap"
)

func main() {
	logger.InitializeWithFallback()

	if err := telemetry.Init("sysdeploy"); err != nil {
		logger.GetLogger().Warn("Telemetry initialization failed", zap.Error(err))
	}

	cmd.Execute()
}
