package stages

import (
	"github.com/ariel-frischer/spec-compile/internal/cli/shared"
	"github.com/spf13/cobra"
)

func newSynthesizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synthesize",
		Short: "Write the execution prompt for a validated spec",
		Long: `Write synthesis/codex.prompt.md for a spec whose validation report passed.

Refuses when the report failed, belongs to another spec id, or no longer
matches the spec document on disk.`,
		Example: `  # Synthesize the prompt for the current spec
  spec-compile synthesize`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specID, _ := cmd.Flags().GetString("spec-id")
			out := shared.NewReporter(cmd)

			result, err := shared.NewPipeline(cmd).Synthesize(specID)
			if err != nil {
				return out.Error(err)
			}
			return printResult(out, result, false)
		},
	}
	cmd.GroupID = shared.GroupCoreStages
	addSpecIDFlag(cmd)
	return cmd
}
