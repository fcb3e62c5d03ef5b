package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/commands/options"
	"tableflip.dev/plustag/pkg/prompt"
	"tableflip.dev/plustag/pkg/runner/email"
)

func addEmail(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Show the primary email.",
		Example: `
plustag email
plustag email set user@example.com
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) error {
				e := email.Email{Service: svc, JSON: oo.JSON, Out: cmd.OutOrStdout()}
				return e.Do(context.Background())
			})
		},
	}

	addEmailSet(cmd)
	topLevel.AddCommand(cmd)
}

func addEmailSet(topLevel *cobra.Command) {
	io := &options.InteractiveOptions{}
	var address string

	cmd := &cobra.Command{
		Use:   "set <address>",
		Short: "Replace the primary email.",
		Long: options.Wrap80(`Replace the primary email plus-tags are derived from. Any text is saved;
addresses that do not look like name@domain.tld can not be copied.`),
		Example: `
plustag email set user@example.com
plustag email set -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if io.Interactive {
				return nil
			}
			if len(args) != 1 {
				return errors.New("requires an email address")
			}
			address = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) error {
				e := email.Email{
					Service:     svc,
					Set:         address,
					Interactive: io.Interactive,
					Prompt:      prompt.IO{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()},
					JSON:        oo.JSON,
					Out:         cmd.OutOrStdout(),
				}
				return e.Do(context.Background())
			})
		},
	}

	options.InteractiveArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
