package stages

import (
	"github.com/ariel-frischer/spec-compile/internal/cli/shared"
	"github.com/ariel-frischer/spec-compile/internal/pipeline"
	"github.com/spf13/cobra"
)

func newClarifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clarify",
		Short: "Derive blocking clarification questions from intent and responses",
		Long: `Sync the captured intent into clarification/responses.yaml and list every
decision that still blocks normalization in clarification/questions.yaml.

Existing answers in responses.yaml are kept. Pending questions are a normal
outcome: the command exits 0 unless --fail-on-pending is set.

--force is accepted for compatibility. Clarify always regenerates the question
set, so the flag changes nothing.`,
		Example: `  # Generate or refresh clarification questions
  spec-compile clarify

  # Fail in CI while decisions are outstanding
  spec-compile clarify --fail-on-pending`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			failOnPending, _ := cmd.Flags().GetBool("fail-on-pending")
			out := shared.NewReporter(cmd)

			result, err := shared.NewPipeline(cmd).Clarify(pipeline.ClarifyOptions{Force: force})
			if err != nil {
				return out.Error(err)
			}
			exitErr := printResult(out, result, failOnPending)
			for _, q := range result.Questions {
				out.Info("%s %s", out.Colors.Cyan(q.ID), q.Prompt)
			}
			return exitErr
		},
	}
	cmd.GroupID = shared.GroupCoreStages
	cmd.Flags().Bool("force", false, "Regenerate questions (same as the default behavior)")
	cmd.Flags().Bool("fail-on-pending", false, "Exit 1 when blocking questions remain")
	return cmd
}
