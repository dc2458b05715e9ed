package stages

import (
	"github.com/ariel-frischer/spec-compile/internal/cli/shared"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Render the spec document from resolved clarification responses",
		Long: `Render specs/<spec-id>.md from the intent and clarification responses.

Requires clarify to report status 'ready'. Missing decisions are re-derived
before rendering, so a hand-edited questions.yaml cannot bypass the gate.`,
		Example: `  # Render using the spec id recorded in responses.yaml
  spec-compile normalize

  # Assert the spec id explicitly
  spec-compile normalize --spec-id billing-export`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specID, _ := cmd.Flags().GetString("spec-id")
			out := shared.NewReporter(cmd)

			result, err := shared.NewPipeline(cmd).Normalize(specID)
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
