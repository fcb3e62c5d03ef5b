package ui

import (
	"context"
	"errors"

	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/logging"
	"tableflip.dev/plustag/pkg/tui"
)

// UI opens the full-screen interface.
type UI struct {
	Service *app.Service
	Logger  *logging.Logger
}

func (d *UI) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not open ui, no service")
	}
	return tui.Run(ctx, d.Service, d.Logger)
}
