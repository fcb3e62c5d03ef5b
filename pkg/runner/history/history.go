package history

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/plustag/pkg/app"
	hist "tableflip.dev/plustag/pkg/history"
	"tableflip.dev/plustag/pkg/printers"
)

// List prints the copy history, oldest first.
type List struct {
	Service *app.Service
	// Show expands one entry by id, the newest when ids collide.
	Show   string
	Width  int
	ShowID bool
	// Since limits the list to entries copied within this window.
	Since time.Duration
	Now   func() time.Time

	JSON bool
	Out  io.Writer
}

type entry struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	Copied   string `json:"copied,omitempty"`
	Expanded bool   `json:"expanded,omitempty"`
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list history, no service")
	}
	view := n.Service.View
	if n.Show != "" {
		i, err := view.Index(n.Show)
		if err != nil {
			return err
		}
		if err := view.Select(i); err != nil {
			return err
		}
	}

	var cutoff time.Time
	if n.Since > 0 {
		now := time.Now
		if n.Now != nil {
			now = n.Now
		}
		cutoff = now().Add(-n.Since)
	}

	all := view.Entries()
	open := view.Expanded()
	entries := make([]hist.Entry, 0, len(all))
	expanded := -1
	for i, e := range all {
		if n.Since > 0 && e.CopiedBefore(cutoff) {
			continue
		}
		if i == open {
			expanded = len(entries)
		}
		entries = append(entries, e)
	}

	if n.JSON {
		out := make([]entry, 0, len(entries))
		for i, e := range entries {
			j := entry{ID: e.ID, Value: e.Value, Expanded: i == expanded}
			if at, ok := e.Time(); ok {
				j.Copied = at.Format(time.RFC3339)
			}
			out = append(out, j)
		}
		return printers.JSON(n.Out, out)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.History(expanded, n.Width, entries...)
	return nil
}

// Copy re-copies a history entry without recording a new one. When several
// entries share ID the newest is copied.
type Copy struct {
	Service *app.Service
	ID      string

	JSON bool
	Out  io.Writer
}

func (n *Copy) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not copy, no service")
	}
	view := n.Service.View
	i, err := view.Index(n.ID)
	if err != nil {
		return err
	}
	e, err := view.Copy(i)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, map[string]string{"copied": e.Value})
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Address(view.Label(i), true)
	return nil
}
