package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/resultfmt"
)

type renderOptions struct {
	format string
	mode   string
	meta   []string
	output string
}

func (a *app) newRenderCommand() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render [payload-file]",
		Short: "Render a result payload",
		Long: `Render a JSON or YAML result payload.

The payload is read from the given file, or from stdin when the file is
omitted or "-". Key order in the payload is preserved.

Metadata pairs given with --meta are attached to json output only.`,
		Example: `  resultfmt render results.json
  resultfmt render -f json -m debug --meta version=1.0.0 results.yaml
  analyze | resultfmt render -f markdown -o report.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return a.runRender(path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(resultfmt.Terminal), "Output format: "+formatNames())
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", resultfmt.DefaultMode, "Mode label recorded in the output")
	cmd.Flags().StringArrayVar(&opts.meta, "meta", nil, "Metadata as key=value (repeatable, json only)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write output to file instead of stdout")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return strings.Split(formatNames(), ", "), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (a *app) runRender(path string, opts renderOptions) error {
	format, err := resultfmt.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	metadata, err := parseMeta(opts.meta)
	if err != nil {
		return err
	}
	if metadata.Len() > 0 && format != resultfmt.JSON {
		a.logger.Warn("metadata is only included in json output", "format", format)
	}

	payload, err := readPayload(path, a.stdin)
	if err != nil {
		return err
	}
	a.logger.Debug("rendering payload", "source", sourceName(path), "format", format, "mode", opts.mode, "keys", payload.Len())

	if opts.output == "" {
		return resultfmt.Write(a.stdout, payload, format, opts.mode, metadata)
	}

	out, err := resultfmt.Render(payload, format, opts.mode, metadata)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, []byte(strings.TrimRight(out, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Debug("output written", "path", opts.output, "bytes", len(out))
	return nil
}

// parseMeta converts key=value pairs into a metadata map, keeping flag order.
func parseMeta(pairs []string) (*resultfmt.Map, error) {
	meta := resultfmt.NewMap()
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta %q: expected key=value", p)
		}
		meta.Set(key, value)
	}
	return meta, nil
}

func formatNames() string {
	fs := resultfmt.Formats()
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

func (a *app) newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported output formats",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, f := range resultfmt.Formats() {
				if _, err := fmt.Fprintln(a.stdout, f); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
