package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/plustag/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
)

// Set with -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func New() *cobra.Command {
	oo = &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "plustag",
		Short: options.Wrap80("Derive plus-tagged variants of your email address, keep named aliases, and remember what you copied."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddOutputArg(cmd, oo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addEmail(topLevel)
	addAlias(topLevel)
	addDerive(topLevel)
	addCopy(topLevel)
	addHistory(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
