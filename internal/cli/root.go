// Package cli provides the command-line interface for resultfmt.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitInvalid = 1
	ExitError   = 2
)

// errInvalidOutput is returned by validate when the input is not valid
// structured output.
var errInvalidOutput = errors.New("input is not valid structured output")

// app carries the streams and logger shared by every command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: log.NewWithOptions(stderr, log.Options{Level: log.WarnLevel}),
	}
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if errors.Is(err, errInvalidOutput) {
			a.logger.Warn("validation failed", "err", err)
			return ExitInvalid
		}
		a.logger.Error("command failed", "err", err)
		return ExitError
	}
	return ExitOK
}

func (a *app) newRootCommand() *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "resultfmt",
		Short: "Render analysis results as JSON, terminal or Markdown output",
		Long: `resultfmt renders an analysis result payload in one of three formats:

  json      machine-readable document with timestamp, mode, results and metadata
  terminal  colored status line and one bullet per entry of the "data" mapping
  markdown  heading, mode and the payload as a JSON code block

Payloads are read from JSON or YAML files, or from stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				a.logger.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(a.newRenderCommand())
	rootCmd.AddCommand(a.newValidateCommand())
	rootCmd.AddCommand(a.newFormatsCommand())
	return rootCmd
}
