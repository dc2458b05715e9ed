package shared

import (
	"io"
	"log/slog"

	"github.com/ariel-frischer/spec-compile/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewLogger returns the diagnostic logger for cmd: a debug-level text handler
// on stderr when --debug is set, otherwise a logger that drops everything.
func NewLogger(cmd *cobra.Command) *slog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// NewPipeline builds a pipeline rooted at the --root flag.
func NewPipeline(cmd *cobra.Command) *pipeline.Pipeline {
	root, _ := cmd.Flags().GetString("root")
	return pipeline.New(root, pipeline.WithLogger(NewLogger(cmd)))
}

// RootDir returns the --root flag value.
func RootDir(cmd *cobra.Command) string {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		return "."
	}
	return root
}
