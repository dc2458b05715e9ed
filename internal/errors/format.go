package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders a CLIError with colors for terminal output.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s\n", red(err.Category.String()), err.Message))
	if err.Usage != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n  %s\n", yellow("Usage:"), err.Usage))
	}
	if len(err.Remediation) > 0 {
		sb.WriteString(fmt.Sprintf("\n%s\n", cyan("To fix this:")))
		for i, step := range err.Remediation {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}
	return sb.String()
}

// FormatErrorPlain renders a CLIError without ANSI colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s\n", err.Category.String(), err.Message))
	if err.Usage != "" {
		sb.WriteString(fmt.Sprintf("\nUsage:\n  %s\n", err.Usage))
	}
	if len(err.Remediation) > 0 {
		sb.WriteString("\nTo fix this:\n")
		for i, step := range err.Remediation {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}
	return sb.String()
}

// PrintError writes the formatted error to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError writes the formatted error to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FormatSimpleError formats an arbitrary error under the given category.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return FormatError(cliErr)
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}
