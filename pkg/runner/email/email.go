package email

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/compose"
	"tableflip.dev/plustag/pkg/printers"
	"tableflip.dev/plustag/pkg/prompt"
)

// Email shows the primary email, optionally replacing it first.
type Email struct {
	Service *app.Service

	// Set replaces the stored email when non-empty.
	Set         string
	Interactive bool
	Prompt      prompt.IO

	JSON bool
	Out  io.Writer
}

type result struct {
	Email string `json:"email"`
	Valid bool   `json:"valid"`
}

func (n *Email) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show email, no service")
	}
	c := n.Service.Composer

	if n.Interactive {
		typed, err := n.Prompt.Email(c.Email(), compose.IsValid)
		if err != nil {
			return err
		}
		n.Set = typed
	}

	var werr error
	if n.Set != "" {
		werr = c.SetEmail(n.Set)
	}

	email := c.Email()
	if n.JSON {
		if err := printers.JSON(n.Out, result{Email: email, Valid: compose.IsValid(email)}); err != nil {
			return err
		}
		return werr
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.Title("Primary email")
	if email == "" {
		pp.Address("(not set)", false)
		return werr
	}
	pp.Address(email, compose.IsValid(email))
	return werr
}
