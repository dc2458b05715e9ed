package shared

import (
	"fmt"
	"io"
	"os"

	clierrors "github.com/ariel-frischer/spec-compile/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Colors provides reusable color functions for CLI output.
type Colors struct {
	Cyan   func(a ...interface{}) string
	Green  func(a ...interface{}) string
	Yellow func(a ...interface{}) string
	Red    func(a ...interface{}) string
	Dim    func(a ...interface{}) string
}

// NewColors creates a Colors instance. With enabled=false every function
// returns its arguments unstyled.
func NewColors(enabled bool) *Colors {
	style := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &Colors{
		Cyan:   style(color.FgCyan, color.Bold),
		Green:  style(color.FgGreen),
		Yellow: style(color.FgYellow),
		Red:    style(color.FgRed),
		Dim:    style(color.Faint),
	}
}

// Reporter writes human-facing command output.
type Reporter struct {
	Out    io.Writer
	Err    io.Writer
	Colors *Colors
	color  bool
}

// NewReporter builds a Reporter for cmd. Colors are used only when stdout is
// a terminal and neither --no-color nor NO_COLOR is set.
func NewReporter(cmd *cobra.Command) *Reporter {
	noColor, _ := cmd.Flags().GetBool("no-color")
	enabled := !noColor && os.Getenv("NO_COLOR") == "" && isTerminal(cmd.OutOrStdout())
	return &Reporter{
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
		Colors: NewColors(enabled),
		color:  enabled,
	}
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Success prints a completed step.
func (r *Reporter) Success(format string, args ...interface{}) {
	fmt.Fprintf(r.Out, "%s %s\n", r.Colors.Green("✓"), fmt.Sprintf(format, args...))
}

// Warn prints an outcome that needs attention but is not an error.
func (r *Reporter) Warn(format string, args ...interface{}) {
	fmt.Fprintf(r.Out, "%s %s\n", r.Colors.Yellow("!"), fmt.Sprintf(format, args...))
}

// Fail prints a failed check.
func (r *Reporter) Fail(format string, args ...interface{}) {
	fmt.Fprintf(r.Out, "%s %s\n", r.Colors.Red("✗"), fmt.Sprintf(format, args...))
}

// Info prints an indented detail line.
func (r *Reporter) Info(format string, args ...interface{}) {
	fmt.Fprintf(r.Out, "  %s\n", fmt.Sprintf(format, args...))
}

// Written lists artifact paths produced by a stage.
func (r *Reporter) Written(paths []string) {
	for _, path := range paths {
		fmt.Fprintf(r.Out, "  %s %s\n", r.Colors.Dim("wrote"), path)
	}
}

// Error prints err to the error stream and returns it with its exit code
// attached, so the root command does not print it a second time.
func (r *Reporter) Error(err error) error {
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		cliErr = clierrors.Wrap(err, clierrors.Runtime)
	}
	if r.color {
		fmt.Fprint(r.Err, clierrors.FormatError(cliErr))
	} else {
		fmt.Fprint(r.Err, clierrors.FormatErrorPlain(cliErr))
	}
	return WrapExitError(CategoryExitCode(cliErr.Category), cliErr)
}
