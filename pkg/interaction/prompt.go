// pkg/interaction/prompt.go

package interaction

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// PromptInput asks for user input with an optional default fallback.
func PromptInput(ctx context.Context, reader *bufio.Reader, prompt, defaultVal string) (string, error) {
	label := prompt
	if defaultVal != "" {
		label = fmt.Sprintf("%s [default: %s]", prompt, defaultVal)
	}
	input, err := ReadLine(ctx, reader, label)
	if err != nil {
		return "", err
	}
	if input == "" {
		otelzap.Ctx(ctx).Debug("ℹ️ Using default value", zap.String("default", defaultVal))
		return defaultVal, nil
	}
	return input, nil
}

// PromptSelect displays numbered options and returns the selected index and
// value. Blank input selects defaultIdx; anything else re-prompts until a
// number in range is entered.
func PromptSelect(ctx context.Context, reader *bufio.Reader, prompt string, options []string, defaultIdx int) (int, string, error) {
	logger := otelzap.Ctx(ctx)
	logger.Debug("📋 Prompting selection", zap.String("prompt", prompt), zap.Int("num_options", len(options)))

	fmt.Fprintln(os.Stderr, prompt)
	for i, option := range options {
		fmt.Fprintf(os.Stderr, "  %d) %s\n", i+1, option)
	}

	for {
		choice, err := ReadLine(ctx, reader, fmt.Sprintf("%s [default: %d]", EnterChoicePrompt, defaultIdx+1))
		if err != nil {
			return 0, "", err
		}
		if choice == "" {
			logger.Debug("ℹ️ Default selection applied", zap.Int("index", defaultIdx))
			return defaultIdx, options[defaultIdx], nil
		}

		idx, err := strconv.Atoi(choice)
		if err == nil && idx >= 1 && idx <= len(options) {
			logger.Debug("✅ User selected option", zap.Int("index", idx), zap.String("value", options[idx-1]))
			return idx - 1, options[idx-1], nil
		}

		logger.Warn("❌ Invalid selection", zap.String("input", choice))
		fmt.Fprintln(os.Stderr, "Invalid selection. Please try again.")
	}
}

// PromptYesNo asks a yes/no question and returns true/false. Falls back to the default if unknown.
func PromptYesNo(ctx context.Context, reader *bufio.Reader, prompt string, defaultYes bool) (bool, error) {
	defPrompt := DefaultYesPrompt
	if !defaultYes {
		defPrompt = DefaultNoPrompt
	}
	label := fmt.Sprintf("%s [%s]", prompt, defPrompt)

	input, err := ReadLine(ctx, reader, label)
	if err != nil {
		return defaultYes, err
	}

	if answer, ok := NormalizeYesNoInput(input); ok {
		return answer, nil
	}
	return defaultYes, nil
}

// NormalizeYesNoInput returns true if the provided input string is an affirmative
// response like "y" or "yes". It trims whitespace and lowercases input before comparison.
func NormalizeYesNoInput(input string) (bool, bool) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == YesShort || input == YesLong {
		return true, true
	}
	if input == NoShort || input == NoLong {
		return false, true
	}
	return false, false // unknown
}
