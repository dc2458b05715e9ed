// spec-compile - Deterministic Spec Compiler
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/spec-compile

// Package cli provides the Cobra-based command tree for spec-compile.
// It defines the five pipeline stages (intent, clarify, normalize, validate,
// synthesize) and the utility commands (status, init, version).
package cli

import (
	"os"

	"github.com/ariel-frischer/spec-compile/internal/cli/shared"
	"github.com/ariel-frischer/spec-compile/internal/cli/stages"
	"github.com/ariel-frischer/spec-compile/internal/cli/util"
	clierrors "github.com/ariel-frischer/spec-compile/internal/errors"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupGettingStarted = shared.GroupGettingStarted
	GroupCoreStages     = shared.GroupCoreStages
	GroupConfiguration  = shared.GroupConfiguration
)

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spec-compile",
		Short: "Deterministic compiler from intent to governed specifications",
		Long: `spec-compile turns a human intent document into a governed specification
and an execution prompt through five local, deterministic stages:

  intent -> clarify -> normalize -> validate -> synthesize

Every stage reads and writes plain files under the working root.`,
		Example: `  # Start a workspace
  spec-compile init
  spec-compile intent --input intent.yaml
  spec-compile clarify

  # After answering clarification/responses.yaml
  spec-compile normalize
  spec-compile validate
  spec-compile synthesize

  # See where you are
  spec-compile status`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Define command groups in display order
	rootCmd.AddGroup(&cobra.Group{ID: GroupGettingStarted, Title: "Getting Started:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupCoreStages, Title: "Core Stages:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	// Assign built-in help and completion to configuration group
	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	rootCmd.PersistentFlags().String("root", ".", "Working root that all artifact paths are relative to")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Register commands from subpackages
	stages.Register(rootCmd)
	util.Register(rootCmd)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return Run(NewRootCmd(), os.Args[1:])
}

// Run executes cmd with args. Errors that a command did not report itself,
// such as unknown flags, are printed here as argument errors.
func Run(cmd *cobra.Command, args []string) error {
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil || shared.IsReported(err) {
		return err
	}
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		cliErr = clierrors.NewArgumentError(err.Error(), "Run 'spec-compile --help' for usage")
	}
	return shared.NewReporter(cmd).Error(cliErr)
}
