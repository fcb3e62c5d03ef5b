package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/clipboard"
	"tableflip.dev/plustag/pkg/logging"
	"tableflip.dev/plustag/pkg/store"
)

// newClipboard is replaced in tests.
var newClipboard = func() clipboard.Writer { return clipboard.System{} }

type session struct {
	cfg store.Config
	log *logging.Logger
	svc *app.Service
}

func (s *session) Close() {
	s.log.Sync()
}

// load reads the config, opens the store and builds the service. quiet
// discards log output unless a log file is configured; full-screen surfaces
// can not share the terminal with log lines.
func load(quiet bool) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}

	log := logging.Nop()
	if !quiet || cfg.LogFile() != "" {
		if log, err = logging.New(cfg.LogMode(), cfg.LogFile()); err != nil {
			return nil, err
		}
	}

	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	svc, err := app.New(p, app.Options{
		Logger:    log,
		Clipboard: newClipboard(),
		CopiedFor: cfg.CopiedTimeout(),
	})
	if err != nil {
		return nil, err
	}
	log.Debug("store opened", "path", cfg.BasePath())
	return &session{cfg: cfg, log: log, svc: svc}, nil
}

// run loads a session, hands its service to fn and reports the outcome the
// way --json asks for.
func run(cmd *cobra.Command, fn func(*app.Service) error) error {
	cmd.SilenceUsage = true
	s, err := load(false)
	if err != nil {
		return oo.HandleError(err)
	}
	defer s.Close()
	oo.Out = cmd.OutOrStdout()
	return oo.HandleError(fn(s.svc))
}
