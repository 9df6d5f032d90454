package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wippyai/overload/dispatch"
	"github.com/wippyai/overload/signature"
)

var (
	resultColor = color.New(color.FgGreen)
	failColor   = color.New(color.FgRed, color.Bold)
)

func newCallCmd(a *app) *cobra.Command {
	var named []string
	cmd := &cobra.Command{
		Use:   "call <name> [arg...]",
		Short: "Dispatch a call against the demo catalog",
		Example: `  overload call geo.area 2 3
  overload call geo.area 2.5 4.0
  overload call text.format "{greeting}, {name}" --named greeting=hello --named name=world`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			args, err := parseArgs(argv[1:], named)
			if err != nil {
				return err
			}
			d, err := a.catalog()
			if err != nil {
				return err
			}
			return invoke(cmd, d, argv[0], args)
		},
	}
	cmd.Flags().StringArrayVarP(&named, "named", "n", nil, "named argument key=value (repeatable)")
	return cmd
}

// invoke dispatches and prints the result. Resolution failures are printed
// as diagnostics and returned so the exit status is non-zero.
func invoke(cmd *cobra.Command, d *dispatch.Dispatcher, name string, args signature.Args) error {
	out, err := d.Invoke(cmd.Context(), name, args)
	if err != nil {
		printDiagnostic(cmd.ErrOrStderr(), err)
		return fmt.Errorf("call %s%s failed", name, args)
	}
	resultColor.Fprintf(cmd.OutOrStdout(), "%v\n", out)
	return nil
}

// printDiagnostic highlights the first line of a multi-line diagnostic.
func printDiagnostic(w io.Writer, err error) {
	head, rest, _ := strings.Cut(err.Error(), "\n")
	failColor.Fprintln(w, head)
	if rest != "" {
		fmt.Fprintln(w, rest)
	}
}
