// pkg/execute/execute.go

// Package execute provides synchronous command execution with structured
// logging. Output is captured to a buffer rather than streamed to stdout so
// command output stays separate from log output.
package execute

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/sysd_err"
	"github.com/CodeMonkeyCybersecurity/sysdeploy/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultLogger is used when Options.Logger is nil.
var DefaultLogger *zap.Logger

// Options describes a single child-process invocation.
type Options struct {
	Command string
	Args    []string
	Dir     string
	Timeout time.Duration
	Capture bool
	Logger  *zap.Logger
}

// Run executes a command and waits for it to exit. When Capture is set the
// combined stdout/stderr is returned; it is always returned alongside a
// non-nil error so callers can surface the failing command's own words.
func Run(ctx context.Context, opts Options) (string, error) {
	cmdStr := buildCommandString(opts.Command, opts.Args...)

	log := opts.Logger
	if log == nil {
		log = DefaultLogger
	}
	if log == nil {
		log = zap.NewNop()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithTimeout(ctx, defaultTimeout(opts.Timeout))
	defer cancel()

	runCtx, span := telemetry.Start(runCtx, "execute.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("command", opts.Command),
		attribute.String("args", strings.Join(opts.Args, " ")),
	)

	log.Debug("Starting execution", zap.String("command", cmdStr))

	cmd := exec.CommandContext(runCtx, opts.Command, opts.Args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	output := buf.String()

	if err != nil {
		summary := sysd_err.ExtractSummary(ctx, output, 2)
		span.RecordError(err)
		log.Debug("Execution failed",
			zap.Error(err),
			zap.String("command", cmdStr),
			zap.String("summary", summary),
		)
		return output, cerr.Wrapf(err, "%s failed", cmdStr)
	}

	log.Debug("Execution succeeded", zap.String("command", cmdStr))

	if opts.Capture {
		return output, nil
	}
	return "", nil
}

// RunSimple executes a command with minimal options and structured logging.
func RunSimple(ctx context.Context, cmd string, args ...string) error {
	_, err := Run(ctx, Options{
		Command: cmd,
		Args:    args,
	})
	return err
}
