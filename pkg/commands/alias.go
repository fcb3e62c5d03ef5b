package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/commands/options"
	"tableflip.dev/plustag/pkg/prompt"
	"tableflip.dev/plustag/pkg/runner/aliases"
)

func addAlias(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "alias",
		Aliases: []string{"aliases"},
		Short:   "Manage saved aliases.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAliasList(cmd)
	addAliasAdd(cmd)
	addAliasRemove(cmd)
	topLevel.AddCommand(cmd)
}

func addAliasList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List saved aliases.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) error {
				l := aliases.List{Service: svc, JSON: oo.JSON, Out: cmd.OutOrStdout()}
				return l.Do(context.Background())
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addAliasAdd(topLevel *cobra.Command) {
	var label string
	cmd := &cobra.Command{
		Use:   "add <label...>",
		Short: "Save a new alias.",
		Long: options.Wrap80(`Save a new alias. The label is kept for display; the value used in
addresses is the label with every non-word character removed.`),
		Example: `
plustag alias add newsletter
plustag alias add Black Friday!
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a label")
			}
			label = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) error {
				a := aliases.Add{Service: svc, Label: label, JSON: oo.JSON, Out: cmd.OutOrStdout()}
				return a.Do(context.Background())
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addAliasRemove(topLevel *cobra.Command) {
	io := &options.InteractiveOptions{}
	var value string

	cmd := &cobra.Command{
		Use:     "rm <value>",
		Aliases: []string{"delete"},
		Short:   "Delete every alias with a value.",
		Example: `
plustag alias rm BlackFriday
plustag alias rm -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if io.Interactive {
				return nil
			}
			if len(args) != 1 {
				return errors.New("requires an alias value")
			}
			value = args[0]
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return aliasCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) error {
				r := aliases.Remove{
					Service:     svc,
					Value:       value,
					Interactive: io.Interactive,
					Prompt:      prompt.IO{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()},
					JSON:        oo.JSON,
					Out:         cmd.OutOrStdout(),
				}
				return r.Do(context.Background())
			})
		},
	}

	options.InteractiveArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
