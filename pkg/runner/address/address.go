// Package address derives and copies aliased addresses from the CLI.
package address

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/clipboard"
	"tableflip.dev/plustag/pkg/compose"
	"tableflip.dev/plustag/pkg/printers"
)

// Tag picks the tag the address is derived with.
type Tag struct {
	// Value is an existing alias value; empty uses the auto tag.
	Value string
	// New creates an alias from this label and uses it.
	New string
}

func (t Tag) apply(svc *app.Service) error {
	if t.New != "" {
		_, err := svc.UseTag(t.New)
		return err
	}
	return svc.SelectAlias(t.Value)
}

type derived struct {
	Email   string `json:"email"`
	Tag     string `json:"tag,omitempty"`
	Address string `json:"address"`
	Valid   bool   `json:"valid"`
}

// Derive prints the aliased address without copying it.
type Derive struct {
	Service *app.Service
	Tag     Tag
	JSON    bool
	Out     io.Writer
}

func (n *Derive) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not derive, no service")
	}
	werr := n.Tag.apply(n.Service)
	if werr != nil && !app.IsWarning(werr) {
		return werr
	}
	c := n.Service.Composer
	address := c.Address()
	if n.JSON {
		if err := printers.JSON(n.Out, derived{
			Email:   c.Email(),
			Tag:     c.Tag(),
			Address: address,
			Valid:   c.CanCopy(),
		}); err != nil {
			return err
		}
		return werr
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Address(address, c.CanCopy())
	return werr
}

// Copy writes the aliased address to the clipboard and records it.
type Copy struct {
	Service *app.Service
	Tag     Tag
	JSON    bool
	Out     io.Writer
}

type copied struct {
	Copied string `json:"copied"`
}

func (n *Copy) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not copy, no service")
	}
	werr := n.Tag.apply(n.Service)
	if werr != nil && !app.IsWarning(werr) {
		return werr
	}
	address, err := n.Service.Copy()
	var ve *compose.ValidationError
	var ce *clipboard.WriteError
	if errors.As(err, &ve) || errors.As(err, &ce) {
		return err
	}
	if werr == nil {
		werr = err
	}
	if n.JSON {
		if perr := printers.JSON(n.Out, copied{Copied: address}); perr != nil {
			return perr
		}
		return werr
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Address(n.Service.Composer.CopyLabel(), true)
	return werr
}
