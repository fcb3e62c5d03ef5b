// Package aliases runs the alias catalog commands.
package aliases

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/plustag/pkg/alias"
	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/printers"
	"tableflip.dev/plustag/pkg/prompt"
)

// ErrNoMatch is returned when removing a value no alias has.
var ErrNoMatch = errors.New("no alias with that value")

// List prints the catalog.
type List struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list aliases, no service")
	}
	all := n.Service.Aliases.Aliases()
	if n.JSON {
		return printers.JSON(n.Out, all)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Aliases(n.Service.Composer.Tag(), all...)
	return nil
}

// Add creates an alias from a free-form label.
type Add struct {
	Service *app.Service
	Label   string
	JSON    bool
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add alias, no service")
	}
	a, err := n.Service.Aliases.Create(n.Label)
	if errors.Is(err, alias.ErrEmptyAlias) {
		return fmt.Errorf("can not add %q: %w", n.Label, err)
	}
	if n.JSON {
		if perr := printers.JSON(n.Out, a); perr != nil {
			return perr
		}
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Aliases(a.Value, n.Service.Aliases.Aliases()...)
	return err
}

// Remove deletes every alias with a value.
type Remove struct {
	Service *app.Service
	Value   string

	Interactive bool
	Prompt      prompt.IO

	JSON bool
	Out  io.Writer
}

type removed struct {
	Value   string `json:"value"`
	Removed int    `json:"removed"`
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove alias, no service")
	}
	if n.Interactive {
		a, err := n.Prompt.PickAlias("Remove which alias", n.Service.Aliases.Aliases())
		if err != nil {
			return err
		}
		if !n.Prompt.Confirm(fmt.Sprintf("Remove %s", a.Value)) {
			return nil
		}
		n.Value = a.Value
	}

	count, err := n.Service.DeleteAlias(n.Value)
	if count == 0 && err == nil {
		return fmt.Errorf("%w: %q", ErrNoMatch, n.Value)
	}
	if n.JSON {
		if perr := printers.JSON(n.Out, removed{Value: n.Value, Removed: count}); perr != nil {
			return perr
		}
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Aliases(n.Service.Composer.Tag(), n.Service.Aliases.Aliases()...)
	return err
}
