package util

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/spec-compile/internal/cli/shared"
	"github.com/ariel-frischer/spec-compile/internal/pipeline"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"st"},
		Short:   "Show pipeline artifacts and the next stage to run (st)",
		Long: `Summarize the artifacts under the working root: which exist, the
clarification status with open question ids, the validation status with
failing rule ids, and the next stage to run. Never writes anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := shared.NewReporter(cmd)

			report, err := shared.NewPipeline(cmd).Status()
			if err != nil {
				return out.Error(err)
			}
			printStatus(out, report)
			return nil
		},
	}
	cmd.GroupID = shared.GroupGettingStarted
	return cmd
}

func printStatus(out *shared.Reporter, report *pipeline.StatusReport) {
	c := out.Colors
	if report.SpecID != "" {
		fmt.Fprintf(out.Out, "%s %s\n\n", c.Cyan("spec:"), report.SpecID)
	}

	fmt.Fprintln(out.Out, "Artifacts:")
	for _, a := range report.Artifacts {
		mark := c.Dim("[ ]")
		if a.Exists {
			mark = c.Green("[✓]")
		}
		fmt.Fprintf(out.Out, "  %s %s\n", mark, a.Path)
	}

	if report.Clarification != "" {
		fmt.Fprintf(out.Out, "\nClarification: %s\n", report.Clarification)
		if len(report.OpenQuestions) > 0 {
			fmt.Fprintf(out.Out, "  open: %s\n", strings.Join(report.OpenQuestions, ", "))
		}
	}
	if report.Validation != "" {
		fmt.Fprintf(out.Out, "\nValidation: %s\n", report.Validation)
		if len(report.FailingRules) > 0 {
			fmt.Fprintf(out.Out, "  failing: %s\n", c.Red(strings.Join(report.FailingRules, ", ")))
		}
	}

	if report.Next == "" {
		fmt.Fprintf(out.Out, "\n%s\n", c.Green("All stages complete."))
		return
	}
	fmt.Fprintf(out.Out, "\nNext: spec-compile %s\n", report.Next)
}
