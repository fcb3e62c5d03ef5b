package options

import (
	"github.com/spf13/cobra"
)

// TagOptions selects the tag used to derive an address.
type TagOptions struct {
	// Tag is an existing alias value. Empty means the auto tag.
	Tag string
	// New creates an alias from a free-form label and uses it.
	New string
}

func AddTagArgs(cmd *cobra.Command, o *TagOptions) {
	cmd.Flags().StringVarP(&o.Tag, "tag", "t", "",
		`Alias value to use as the tag. Defaults to a timestamp.`)
	cmd.Flags().StringVar(&o.New, "new", "",
		`Create an alias from this label and use it, example: --new="Black Friday".`)
}

// InteractiveOptions
type InteractiveOptions struct {
	Interactive bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		`Interactive input of arguments.`)
}
