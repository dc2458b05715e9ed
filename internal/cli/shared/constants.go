// Package shared provides constants and types used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/spec-compile/internal/errors"
)

// Command group IDs for organizing help output
const (
	GroupGettingStarted = "getting-started"
	GroupCoreStages     = "core-stages"
	GroupConfiguration  = "configuration"
)

// Exit codes for CLI commands
const (
	ExitSuccess             = 0
	ExitGovernanceFailed    = 1
	ExitRuntimeError        = 2
	ExitInvalidArguments    = 3
	ExitMissingPrerequisite = 4
)

// exitError is a custom error type that carries an exit code.
// The cause has already been reported when it reaches the top level.
type exitError struct {
	code  int
	cause error
}

func (e *exitError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.cause
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// WrapExitError attaches an exit code to an error that was already printed.
func WrapExitError(code int, cause error) error {
	return &exitError{code: code, cause: cause}
}

// IsReported reports whether err already carries an exit code, meaning it
// was printed by the command that produced it.
func IsReported(err error) bool {
	var e *exitError
	return errors.As(err, &e)
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return CategoryExitCode(cliErr.Category)
	}
	return ExitRuntimeError
}

// CategoryExitCode maps an error category to its exit code.
func CategoryExitCode(category clierrors.ErrorCategory) int {
	switch category {
	case clierrors.Argument:
		return ExitInvalidArguments
	case clierrors.Prerequisite:
		return ExitMissingPrerequisite
	case clierrors.Governance:
		return ExitGovernanceFailed
	default:
		return ExitRuntimeError
	}
}
