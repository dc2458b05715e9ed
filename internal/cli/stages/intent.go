package stages

import (
	"github.com/ariel-frischer/spec-compile/internal/cli/shared"
	"github.com/spf13/cobra"
)

func newIntentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intent",
		Short: "Capture the intent document into intent/intent.raw.yaml",
		Long: `Read a YAML intent document, validate it and record it as the first pipeline artifact.

The document must hold a top-level 'intent' object with non-empty user_goal
and context strings.
Omitted lists default to empty. Re-running with the same input is a no-op apart
from rewriting the same bytes.`,
		Example: `  # Capture intent from a file
  spec-compile intent --input docs/intent.yaml

  # Capture into another working root
  spec-compile --root ./project intent -i intent.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			out := shared.NewReporter(cmd)

			result, err := shared.NewPipeline(cmd).Intent(input)
			if err != nil {
				return out.Error(err)
			}
			return printResult(out, result, false)
		},
	}
	cmd.GroupID = shared.GroupCoreStages
	cmd.Flags().StringP("input", "i", "", "Path to the YAML intent document (required)")
	return cmd
}
