// Package stages provides CLI commands for the spec compiler stages.
// Includes: intent, clarify, normalize, validate, synthesize
package stages

import (
	"github.com/ariel-frischer/spec-compile/internal/cli/shared"
	"github.com/ariel-frischer/spec-compile/internal/pipeline"
	"github.com/spf13/cobra"
)

// Register adds all stage commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newIntentCmd())
	rootCmd.AddCommand(newClarifyCmd())
	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newSynthesizeCmd())
}

// addSpecIDFlag adds the --spec-id override shared by the later stages.
func addSpecIDFlag(cmd *cobra.Command) {
	cmd.Flags().String("spec-id", "", "Spec id to use (must match the id recorded in the responses)")
}

// printResult prints a stage result and returns the exit error for a soft
// failure when fail is set.
func printResult(out *shared.Reporter, result *pipeline.Result, fail bool) error {
	if result.Outcome == pipeline.OutcomeSoftFailure {
		out.Warn("%s", result.Message)
	} else {
		out.Success("%s", result.Message)
	}
	out.Written(result.Written)
	if fail && result.Outcome == pipeline.OutcomeSoftFailure {
		return shared.NewExitError(shared.ExitGovernanceFailed)
	}
	return nil
}
