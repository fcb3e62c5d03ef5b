package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/plustag/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("PLUSTAG_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "PLUSTAG_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "PLUSTAG_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.log.mode: ", n.Config.LogMode())
	if f := n.Config.LogFile(); f != "" {
		_, _ = fmt.Fprintln(out, "Config.log.file: ", f)
	}
	_, _ = fmt.Fprintln(out, "Config.copied: ", n.Config.CopiedTimeout())

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	_, _ = fmt.Fprintf(out, "Keys:\n")
	found := 0
	for _, k := range n.Persistence.Keys(ctx) {
		_, _ = fmt.Fprintf(out, "  %s\n", k)
		found++
	}
	if found == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "nothing stored yet")
	}
	return nil
}
