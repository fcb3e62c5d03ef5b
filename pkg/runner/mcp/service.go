// Package mcp provides the Model Context Protocol server integration for plustag.
package mcp

import (
	"context"
	"errors"
	"sync"
	"time"

	"tableflip.dev/plustag/pkg/alias"
	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/compose"
	"tableflip.dev/plustag/pkg/history"
)

// Service coordinates the operations shared by the MCP tools and resources.
// Calls are serialized: a tool that selects a tag and then copies must not
// interleave with another.
type Service struct {
	mu  sync.Mutex
	app *app.Service
}

// EmailDTO is the primary email and whether it can be copied.
type EmailDTO struct {
	Email string `json:"email"`
	Valid bool   `json:"valid"`
}

// AddressDTO is a derived address.
type AddressDTO struct {
	Email   string `json:"email"`
	Tag     string `json:"tag"`
	Address string `json:"address"`
	Valid   bool   `json:"valid"`
}

// EntryDTO is a transport-friendly projection of a history entry.
type EntryDTO struct {
	ID     string `json:"id"`
	Value  string `json:"value"`
	Copied string `json:"copied,omitempty"`
}

// NewService builds a service wrapper around svc.
func NewService(svc *app.Service) *Service {
	return &Service{app: svc}
}

func (s *Service) ready() error {
	if s.app == nil {
		return errors.New("service is not configured")
	}
	// Another process may have written since the last call.
	s.app.Reload("")
	return nil
}

// Email returns the stored primary email.
func (s *Service) Email(ctx context.Context) (EmailDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return EmailDTO{}, err
	}
	email := s.app.Composer.Email()
	return EmailDTO{Email: email, Valid: compose.IsValid(email)}, nil
}

// SetEmail replaces the primary email. Any string is accepted; validity only
// gates copying.
func (s *Service) SetEmail(ctx context.Context, email string) (EmailDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return EmailDTO{}, err
	}
	err := s.app.Composer.SetEmail(email)
	email = s.app.Composer.Email()
	return EmailDTO{Email: email, Valid: compose.IsValid(email)}, err
}

// Derive computes the aliased address for tag without changing any state.
// An empty tag uses the auto tag.
func (s *Service) Derive(ctx context.Context, tag string) (AddressDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return AddressDTO{}, err
	}
	email := s.app.Composer.Email()
	tag = alias.Normalize(tag)
	if tag == "" {
		tag = compose.AutoTag(time.Now())
	}
	return AddressDTO{
		Email:   email,
		Tag:     tag,
		Address: compose.Derive(email, tag),
		Valid:   compose.IsValid(email),
	}, nil
}

// ListAliases returns the catalog in display order.
func (s *Service) ListAliases(ctx context.Context) ([]alias.Alias, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.app.Aliases.Aliases(), nil
}

// CreateAlias adds an alias built from a free-form label.
func (s *Service) CreateAlias(ctx context.Context, label string) (alias.Alias, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return alias.Alias{}, err
	}
	return s.app.Aliases.Create(label)
}

// DeleteAlias removes every alias with value and reports how many went.
func (s *Service) DeleteAlias(ctx context.Context, value string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return 0, err
	}
	return s.app.DeleteAlias(value)
}

// ListHistory returns up to limit of the most recent entries, oldest first.
// A limit of zero or less returns everything.
func (s *Service) ListHistory(ctx context.Context, limit int) ([]EntryDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	entries := s.app.View.Entries()
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return toDTOs(entries), nil
}

// CopyAddress copies the address for tag to the clipboard and records it.
// A non-empty label creates (or reuses) an alias first.
func (s *Service) CopyAddress(ctx context.Context, tag, label string) (EntryDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}

	var err error
	if label != "" {
		_, err = s.app.UseTag(label)
	} else {
		err = s.app.SelectAlias(alias.Normalize(tag))
	}
	if err != nil && !app.IsWarning(err) {
		return EntryDTO{}, err
	}

	address, cerr := s.app.Copy()
	if cerr != nil {
		return EntryDTO{Value: address}, cerr
	}
	entries := s.app.View.Entries()
	if n := len(entries); n > 0 && entries[n-1].Value == address {
		return toDTO(entries[n-1]), err
	}
	return EntryDTO{Value: address}, err
}

func toDTOs(entries []history.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out
}

func toDTO(e history.Entry) EntryDTO {
	dto := EntryDTO{ID: e.ID, Value: e.Value}
	if at, ok := e.Time(); ok {
		dto.Copied = at.UTC().Format(time.RFC3339)
	}
	return dto
}
