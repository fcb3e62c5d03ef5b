package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/plustag/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
plustag ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := load(true)
			if err != nil {
				return err
			}
			defer s.Close()
			i := ui.UI{Service: s.svc, Logger: s.log}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
