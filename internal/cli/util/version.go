package util

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/spec-compile/internal/build"
	"github.com/ariel-frischer/spec-compile/internal/cli/shared"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for spec-compile",
		Example: `  # Show version info
  spec-compile version

  # Plain output (for scripts)
  spec-compile version --plain`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			plain, _ := cmd.Flags().GetBool("plain")
			if plain {
				printPlainVersion(cmd)
				return
			}
			printPrettyVersion(shared.NewReporter(cmd))
		},
	}
	cmd.GroupID = shared.GroupGettingStarted
	cmd.Flags().Bool("plain", false, "Plain output without formatting")
	return cmd
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "spec-compile %s\n", build.Version)
	fmt.Fprintf(out, "commit: %s\n", build.Commit)
	fmt.Fprintf(out, "built: %s\n", build.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func printPrettyVersion(out *shared.Reporter) {
	c := out.Colors
	fmt.Fprintln(out.Out, c.Cyan(build.Info()))
	fmt.Fprintf(out.Out, "%s %s %s/%s\n", c.Dim("go"), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if build.IsDevBuild() {
		fmt.Fprintln(out.Out, c.Yellow("development build"))
	}
}
