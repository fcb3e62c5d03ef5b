package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/plustag/pkg/runner/info"
	"tableflip.dev/plustag/pkg/store"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the config and where values are stored.",
		Example: `
plustag info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := store.Load(cfg)
			if err != nil {
				return oo.HandleError(err)
			}
			s := info.Info{
				Config:      cfg,
				Persistence: p,
				Out:         cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
