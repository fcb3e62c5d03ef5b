package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/plustag/pkg/alias"
	"tableflip.dev/plustag/pkg/clipboard"
	"tableflip.dev/plustag/pkg/compose"
	"tableflip.dev/plustag/pkg/history"
	"tableflip.dev/plustag/pkg/logging"
	"tableflip.dev/plustag/pkg/store"
	"tableflip.dev/plustag/pkg/transient"
)

// Service provides high-level operations over the catalog, the composer and
// the copy history so UIs and CLIs can share logic.
type Service struct {
	Persistence store.Persistence

	Aliases  *alias.Catalog
	Composer *compose.Composer
	History  *history.Log
	View     *history.View

	log *logging.Logger
}

// Options configures New.
type Options struct {
	Logger    *logging.Logger
	Clipboard clipboard.Writer
	CopiedFor time.Duration
	Now       func() time.Time
	Flag      []transient.Option
}

// New loads every component from p.
func New(p store.Persistence, opts Options) (*Service, error) {
	if p == nil {
		return nil, errors.New("app: no persistence configured")
	}
	log := logging.OrNop(opts.Logger)
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.System{}
	}
	copiedFor := opts.CopiedFor
	if copiedFor <= 0 {
		copiedFor = store.DefaultCopiedTimeout
	}

	var histOpts []history.Option
	if opts.Now != nil {
		histOpts = append(histOpts, history.WithClock(opts.Now))
	}
	hist := history.NewLog(p, log, histOpts...)

	return &Service{
		Persistence: p,
		Aliases:     alias.Load(p, log),
		History:     hist,
		View:        history.NewView(hist, clip, copiedFor, opts.Flag...),
		Composer: compose.New(p, compose.Options{
			Logger:    log,
			Clipboard: clip,
			History:   hist,
			CopiedFor: copiedFor,
			Now:       opts.Now,
			Flag:      opts.Flag,
		}),
		log: log,
	}, nil
}

// SelectAlias selects an existing alias value, or the auto tag for "".
func (s *Service) SelectAlias(value string) error {
	if value == "" {
		s.Composer.SelectTag("")
		return nil
	}
	if _, ok := s.Aliases.Find(value); !ok {
		return errors.New("app: alias not found: " + value)
	}
	s.Composer.SelectTag(value)
	return nil
}

// UseTag selects typed, creating an alias for it first when no alias has
// that value. A store write failure is returned after the selection is made.
func (s *Service) UseTag(typed string) (alias.Alias, error) {
	value := alias.Normalize(typed)
	if value == "" {
		return alias.Alias{}, alias.ErrEmptyAlias
	}
	if a, ok := s.Aliases.Find(value); ok {
		s.Composer.SelectTag(a.Value)
		return a, nil
	}
	a, err := s.Aliases.Create(typed)
	if a.Value != "" {
		s.Composer.SelectTag(a.Value)
	}
	return a, err
}

// DeleteAlias removes every alias with value. When the selected tag was
// deleted the composer falls back to the auto tag.
func (s *Service) DeleteAlias(value string) (int, error) {
	n, err := s.Aliases.Delete(value)
	if s.Composer.Tag() == value {
		s.Composer.SelectTag("")
	}
	return n, err
}

// Copy copies the current aliased address and refreshes the history view.
func (s *Service) Copy() (string, error) {
	address, err := s.Composer.CopyCurrent()
	if err == nil {
		s.View.Refresh()
	}
	return address, err
}

// Reload rereads the value stored under key, or everything for "".
func (s *Service) Reload(key string) {
	switch key {
	case store.KeyEmail:
		s.Composer.Load()
	case store.KeyAliases:
		s.Aliases.Reload()
		if tag := s.Composer.Tag(); tag != "" {
			if _, ok := s.Aliases.Find(tag); !ok {
				s.Composer.SelectTag("")
			}
		}
	case store.KeyCopyHistory:
		s.View.Refresh()
	default:
		s.Composer.Load()
		s.Aliases.Reload()
		s.View.Refresh()
	}
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}

// IsWarning reports whether err leaves the interaction usable: store writes
// and clipboard failures are shown as notices rather than aborting.
func IsWarning(err error) bool {
	var we *store.WriteError
	var ce *clipboard.WriteError
	return errors.As(err, &we) || errors.As(err, &ce)
}

// Notice renders err for a status line.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	var ve *compose.ValidationError
	switch {
	case errors.As(err, &ve):
		return "Enter a valid email to copy"
	case errors.Is(err, alias.ErrEmptyAlias):
		return "Alias needs at least one letter or digit"
	}
	var ce *clipboard.WriteError
	if errors.As(err, &ce) {
		return "Clipboard unavailable: " + strings.TrimPrefix(ce.Err.Error(), "clipboard: ")
	}
	var we *store.WriteError
	if errors.As(err, &we) {
		return "Not saved: " + we.Err.Error()
	}
	return err.Error()
}
