package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/plustag/pkg/alias"
	"tableflip.dev/plustag/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generates shell completion scripts",
		Long: `To load completion run

. <(plustag completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(plustag completion)
`,
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			out := cmd.OutOrStdout()
			switch shell {
			case "bash":
				return topLevel.GenBashCompletionV2(out, true)
			case "zsh":
				return topLevel.GenZshCompletion(out)
			case "fish":
				return topLevel.GenFishCompletion(out, true)
			}
			return errors.New("unsupported shell: " + shell)
		},
	}

	topLevel.AddCommand(cmd)
}

// aliasCompletions lists stored alias values starting with toComplete. It
// reads the store directly so completion never writes or logs.
func aliasCompletions(toComplete string) []string {
	p, err := store.Load(nil)
	if err != nil {
		return nil
	}
	var list []alias.Alias
	if err := store.ReadJSON(p, store.KeyAliases, &list); err != nil {
		return nil
	}
	values := make([]string, 0, len(list))
	for _, a := range list {
		if strings.HasPrefix(a.Value, toComplete) {
			values = append(values, a.Value)
		}
	}
	return values
}
