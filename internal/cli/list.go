package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pthm/hxbox/internal/definition"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the boxes in the definitions file",
		Args:          commandArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := definition.LoadFile(rootOpts.File)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load definitions", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tBASE\tOPTIONS\tMERGE")
			for _, d := range file.Boxes {
				merge := d.Merge
				if merge == "" {
					merge = "class"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Name, d.Base, optionsKind(d), merge)
			}
			return tw.Flush()
		},
	}
}

func optionsKind(d definition.Definition) string {
	switch {
	case d.Expr != "":
		return "expr"
	case d.Script != "":
		return "script"
	case d.CEL != "":
		return "cel"
	default:
		return "static"
	}
}
