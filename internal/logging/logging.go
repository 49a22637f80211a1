// Package logging builds the structured logger shared by tint commands.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// VerboseFlag is the root persistent flag that enables debug output.
const VerboseFlag = "verbose"

// New returns a logger writing to w. Only warnings and errors are shown
// unless verbose is set.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "tint",
		ReportTimestamp: verbose,
		TimeFormat:      time.TimeOnly,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// FromCommand builds a logger on the command's stderr, honouring --verbose
// when the flag is reachable from cmd.
func FromCommand(cmd *cobra.Command) *log.Logger {
	verbose, err := cmd.Flags().GetBool(VerboseFlag)
	if err != nil {
		verbose = false
	}
	return New(cmd.ErrOrStderr(), verbose)
}
