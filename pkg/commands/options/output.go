package options

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	// Out defaults to color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

func (o *OutputOptions) Writer() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return color.Output
}

// Print writes v as a single JSON line.
func (o *OutputOptions) Print(v any) error {
	return printers.JSON(o.Writer(), v)
}

// HandleError reports err as JSON when --json is set. Warnings, such as a
// store write that did not stick, are printed and do not fail the command.
func (o *OutputOptions) HandleError(err error) error {
	if err == nil {
		return nil
	}
	if o.JSON {
		out := map[string]string{
			"error": err.Error(),
		}
		if app.IsWarning(err) {
			out = map[string]string{
				"warning": app.Notice(err),
			}
		}
		if perr := o.Print(out); perr != nil {
			return perr
		}
		return nil
	}
	if app.IsWarning(err) {
		_, _ = color.New(color.FgYellow).Fprintln(color.Error, "warning:", app.Notice(err))
		return nil
	}
	return err
}
