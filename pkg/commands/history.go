package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/runner/history"
	"tableflip.dev/plustag/pkg/timeutil"
)

func addHistory(topLevel *cobra.Command) {
	l := &history.List{}
	var since string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List copied addresses, oldest first.",
		Example: `
plustag history
plustag history --show 1700000000000
plustag history --since 1d
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			window, err := timeutil.ParseWindow(since)
			if err != nil {
				return err
			}
			l.Since = window
			return run(cmd, func(svc *app.Service) error {
				l.Service = svc
				l.JSON = oo.JSON
				l.Out = cmd.OutOrStdout()
				return l.Do(context.Background())
			})
		},
	}

	cmd.Flags().StringVar(&l.Show, "show", "", "Expand the entry with this id.")
	cmd.Flags().IntVar(&l.Width, "width", 80, "Clamp collapsed entries to this many columns, 0 to disable.")
	cmd.Flags().BoolVar(&l.ShowID, "id", false, "Print entry ids.")
	cmd.Flags().StringVar(&since, "since", "", `Only entries copied within this window, example: --since="2h" or --since="1w2d".`)

	addHistoryCopy(cmd)
	topLevel.AddCommand(cmd)
}

func addHistoryCopy(topLevel *cobra.Command) {
	var id string
	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a history entry again. No new entry is recorded.",
		Example: `
plustag history copy 1700000000000
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a history entry id")
			}
			id = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) error {
				c := history.Copy{Service: svc, ID: id, JSON: oo.JSON, Out: cmd.OutOrStdout()}
				return c.Do(context.Background())
			})
		},
	}
	topLevel.AddCommand(cmd)
}
