package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/resultfmt"
)

func (a *app) newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that output is valid structured (JSON) data",
		Long: `Check that a file, or stdin when the file is omitted or "-", parses as
valid JSON. Exits 1 when it does not.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			data, err := readInput(path, a.stdin)
			if err != nil {
				return err
			}
			if !resultfmt.IsValidStructuredOutput(string(data)) {
				return fmt.Errorf("%s: %w", sourceName(path), errInvalidOutput)
			}
			a.logger.Debug("valid structured output", "source", sourceName(path), "bytes", len(data))
			_, err = fmt.Fprintf(a.stdout, "%s: valid\n", sourceName(path))
			return err
		},
	}
}
