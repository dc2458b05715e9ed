package stages

import (
	"github.com/ariel-frischer/spec-compile/internal/cli/shared"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the governance rules against the rendered spec",
		Long: `Evaluate every governance rule against specs/<spec-id>.md and write
validation/report.json. The report is written even when rules fail; in that
case the command exits 1.`,
		Example: `  # Validate the current spec
  spec-compile validate

  # Validate with an explicit spec id
  spec-compile validate --spec-id billing-export`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specID, _ := cmd.Flags().GetString("spec-id")
			out := shared.NewReporter(cmd)

			result, err := shared.NewPipeline(cmd).Validate(specID)
			if err != nil {
				return out.Error(err)
			}
			for _, rule := range result.Report.Rules {
				if rule.Passed {
					out.Success("%s", rule.ID)
					continue
				}
				out.Fail("%s: %s", rule.ID, rule.Message)
				if rule.Counterexample != "" {
					out.Info("%s", out.Colors.Dim(rule.Counterexample))
				}
			}
			return printResult(out, result, true)
		},
	}
	cmd.GroupID = shared.GroupCoreStages
	addSpecIDFlag(cmd)
	return cmd
}
