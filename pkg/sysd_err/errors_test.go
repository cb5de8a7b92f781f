// pkg/sysd_err/errors_test.go

package sysd_err

import (
	"context"
	"errors"
	"testing"
)

func TestNewExpectedError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Test with nil error
	if err := NewExpectedError(ctx, nil); err != nil {
		t.Error("NewExpectedError(nil) should return nil")
	}

	originalErr := errors.New("user configuration error")
	wrappedErr := NewExpectedError(ctx, originalErr)

	if wrappedErr == nil {
		t.Fatal("NewExpectedError should not return nil for non-nil error")
	}

	var userErr *UserError
	if !errors.As(wrappedErr, &userErr) {
		t.Error("NewExpectedError should return a UserError")
	}

	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Wrapped error should preserve the original error")
	}
}

func TestIsExpectedUserError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "regular error",
			err:  errors.New("system error"),
			want: false,
		},
		{
			name: "user error",
			err:  &UserError{cause: errors.New("user mistake")},
			want: true,
		},
		{
			name: "wrapped user error",
			err:  NewExpectedError(context.Background(), errors.New("config error")),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsExpectedUserError(tt.err); got != tt.want {
				t.Errorf("IsExpectedUserError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractSummary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name          string
		output        string
		maxCandidates int
		want          string
	}{
		{
			name:          "empty output",
			output:        "",
			maxCandidates: 2,
			want:          "no output",
		},
		{
			name:          "single error line",
			output:        "doing things\nError: permission denied\n",
			maxCandidates: 2,
			want:          "Error: permission denied",
		},
		{
			name:          "no error keywords falls back to last line",
			output:        "step one\nstep two\n",
			maxCandidates: 2,
			want:          "step two",
		},
		{
			name:          "candidates capped at max",
			output:        "error: one\nerror: two\nerror: three\n",
			maxCandidates: 2,
			want:          "error: two; error: three",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractSummary(ctx, tt.output, tt.maxCandidates)
			if got != tt.want {
				t.Errorf("ExtractSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}
