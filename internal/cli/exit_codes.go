package cli

import "github.com/ariel-frischer/spec-compile/internal/cli/shared"

// Exit codes for CLI commands (re-exported from shared)
const (
	ExitSuccess             = shared.ExitSuccess
	ExitGovernanceFailed    = shared.ExitGovernanceFailed
	ExitRuntimeError        = shared.ExitRuntimeError
	ExitInvalidArguments    = shared.ExitInvalidArguments
	ExitMissingPrerequisite = shared.ExitMissingPrerequisite
)

// ExitCode returns the process exit status for an error returned by Execute.
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
