// pkg/sysd_err/errors.go

package sysd_err

import (
	"context"
	"errors"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// UserError marks an outcome the operator caused on purpose or can fix
// themselves (declined confirmation, cancelled wizard, bad input). These
// terminate the command but exit 0.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	if e.cause == nil {
		return "user error"
	}
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}

// NewExpectedError wraps err as a UserError. Returns nil for nil input.
func NewExpectedError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	otelzap.Ctx(ctx).Debug("Expected user error", zap.Error(err))
	return &UserError{cause: err}
}

// NewUserError builds an expected user error from a message, no wrapping context needed.
func NewUserError(msg string) error {
	return &UserError{cause: errors.New(msg)}
}

// IsExpectedUserError reports whether err is (or wraps) a UserError.
func IsExpectedUserError(err error) bool {
	if err == nil {
		return false
	}
	var userErr *UserError
	return errors.As(err, &userErr)
}

// ExtractSummary condenses captured subprocess output into a short summary
// suitable for a log field: the last maxCandidates lines that look like
// errors, or the last non-empty line when nothing matches.
func ExtractSummary(ctx context.Context, output string, maxCandidates int) string {
	if maxCandidates <= 0 {
		maxCandidates = 1
	}

	lines := strings.Split(output, "\n")
	var candidates []string
	var lastNonEmpty string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lastNonEmpty = trimmed
		lower := strings.ToLower(trimmed)
		if strings.Contains(lower, "error") ||
			strings.Contains(lower, "failed") ||
			strings.Contains(lower, "fatal") ||
			strings.Contains(lower, "denied") {
			candidates = append(candidates, trimmed)
		}
	}

	if len(candidates) > maxCandidates {
		candidates = candidates[len(candidates)-maxCandidates:]
	}
	if len(candidates) > 0 {
		return strings.Join(candidates, "; ")
	}
	if lastNonEmpty != "" {
		return lastNonEmpty
	}
	return "no output"
}
