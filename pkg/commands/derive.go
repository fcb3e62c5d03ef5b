package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/commands/options"
	"tableflip.dev/plustag/pkg/runner/address"
)

func addDerive(topLevel *cobra.Command) {
	to := &options.TagOptions{}

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print a plus-tagged address without copying it.",
		Example: `
plustag derive
plustag derive --tag newsletter
plustag derive --new "Black Friday"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) error {
				d := address.Derive{
					Service: svc,
					Tag:     address.Tag{Value: to.Tag, New: to.New},
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return d.Do(context.Background())
			})
		},
	}

	options.AddTagArgs(cmd, to)
	registerTagCompletion(cmd)
	topLevel.AddCommand(cmd)
}

func addCopy(topLevel *cobra.Command) {
	to := &options.TagOptions{}

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy a plus-tagged address to the clipboard and record it.",
		Example: `
plustag copy
plustag copy --tag newsletter
plustag copy --new "Black Friday"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) error {
				c := address.Copy{
					Service: svc,
					Tag:     address.Tag{Value: to.Tag, New: to.New},
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				return c.Do(context.Background())
			})
		},
	}

	options.AddTagArgs(cmd, to)
	registerTagCompletion(cmd)
	topLevel.AddCommand(cmd)
}

func registerTagCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("tag", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return aliasCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}
