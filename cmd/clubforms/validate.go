package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/clubforms"
	"github.com/aretw0/clubforms/internal/input"
	"github.com/aretw0/clubforms/internal/presentation/tui"
	"github.com/aretw0/clubforms/pkg/registry"
	"github.com/aretw0/clubforms/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema> [file|-]",
	Short: "Validate a record against a schema",
	Long: `Reads a JSON or YAML document from a file or stdin and checks it against the named schema.
Prints the normalized record when valid; otherwise prints every issue and exits with status 1.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		outFlag, _ := cmd.Flags().GetString("output")
		format, err := tui.ParseOutput(outFlag)
		if err != nil {
			return err
		}

		path := "-"
		if len(args) > 1 {
			path = args[1]
		}

		reg := clubforms.New(
			clubforms.WithLogger(logger),
			clubforms.WithFeedbackDispatch(cfg.Dispatch()),
		)
		printer := tui.Printer{W: cmd.OutOrStdout(), Format: format, Terminal: isTerminal(cmd.OutOrStdout())}
		return runValidate(reg, printer, args[0], path, cmd.InOrStdin())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("output", "o", "text", "Output format: text, json or markdown")
}

func runValidate(reg *registry.Registry, printer tui.Printer, id, path string, stdin io.Reader) error {
	if _, ok := reg.Lookup(id); !ok {
		return fmt.Errorf("%w %q (see 'clubforms schemas')", registry.ErrUnknownSchema, id)
	}

	raw, err := input.Read(path, stdin)
	if errors.Is(err, input.ErrEmpty) {
		raw, err = nil, nil
	}
	if err != nil {
		return err
	}

	res, err := reg.Validate(id, raw)
	var report *schema.Report
	if err != nil && !errors.As(err, &report) {
		return err
	}

	if perr := printer.Print(tui.Result{Schema: id, Value: res.Value, Report: report}); perr != nil {
		return perr
	}
	if report != nil {
		return errInvalid
	}
	return nil
}
