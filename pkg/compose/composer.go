package compose

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"tableflip.dev/plustag/pkg/clipboard"
	"tableflip.dev/plustag/pkg/history"
	"tableflip.dev/plustag/pkg/logging"
	"tableflip.dev/plustag/pkg/store"
	"tableflip.dev/plustag/pkg/transient"
)

// ValidationError is returned when copying with a primary email that does
// not look like an address.
type ValidationError struct {
	Email string
}

func (e *ValidationError) Error() string {
	if e.Email == "" {
		return "compose: primary email is empty"
	}
	return fmt.Sprintf("compose: %q is not a valid email address", e.Email)
}

// Composer holds the primary email and the selected tag. The aliased address
// is never stored; Address computes it from the current inputs.
type Composer struct {
	mu      sync.Mutex
	kv      store.KeyValueStore
	log     *logging.Logger
	clip    clipboard.Writer
	history *history.Log
	copied  *transient.Flag
	now     func() time.Time

	email string
	tag   string
	// stamp is captured whenever email or tag changes and feeds the auto
	// tag, so the preview and the copied value agree.
	stamp time.Time
}

// Options configures a Composer.
type Options struct {
	Logger    *logging.Logger
	Clipboard clipboard.Writer
	History   *history.Log
	// CopiedFor is how long the "copied" indicator stays raised.
	CopiedFor time.Duration
	Now       func() time.Time
	Flag      []transient.Option
}

// New returns a Composer over kv with the persisted primary email loaded.
func New(kv store.KeyValueStore, opts Options) *Composer {
	c := &Composer{
		kv:      kv,
		log:     logging.OrNop(opts.Logger).With("component", "compose"),
		clip:    opts.Clipboard,
		history: opts.History,
		now:     opts.Now,
	}
	if c.clip == nil {
		c.clip = clipboard.System{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	copiedFor := opts.CopiedFor
	if copiedFor <= 0 {
		copiedFor = store.DefaultCopiedTimeout
	}
	c.copied = transient.New(copiedFor, opts.Flag...)
	c.Load()
	return c
}

// Load rereads the primary email. Missing or unreadable values leave it
// empty.
func (c *Composer) Load() string {
	var email string
	if err := store.ReadJSON(c.kv, store.KeyEmail, &email); err != nil && !errors.Is(err, store.ErrNotFound) {
		c.log.Warn("discarding unreadable email", "error", err)
		email = ""
	}
	c.mu.Lock()
	if email != c.email {
		c.email = email
		c.stamp = c.now()
	}
	if c.stamp.IsZero() {
		c.stamp = c.now()
	}
	c.mu.Unlock()
	c.retire()
	return email
}

// Email returns the primary email.
func (c *Composer) Email() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.email
}

// SetEmail updates and immediately persists the primary email. The new value
// is kept even when the write fails; the *store.WriteError is returned as a
// warning.
func (c *Composer) SetEmail(email string) error {
	c.mu.Lock()
	c.email = email
	c.stamp = c.now()
	c.mu.Unlock()
	c.retire()

	if err := store.WriteJSON(c.kv, store.KeyEmail, email); err != nil {
		c.log.Warn("email not saved", "error", err)
		return err
	}
	return nil
}

// Tag returns the selected tag; "" means an auto tag is used.
func (c *Composer) Tag() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tag
}

// SelectTag changes the selected tag. "" selects the auto tag.
func (c *Composer) SelectTag(tag string) {
	c.mu.Lock()
	c.tag = tag
	c.stamp = c.now()
	c.mu.Unlock()
	c.retire()
}

// retire lowers the "copied" indicator once the address it was raised for
// is no longer the current one.
func (c *Composer) retire() {
	if copied, ok := c.copied.Active(); ok && copied != c.Address() {
		c.copied.Lower()
	}
}

// Address returns the aliased address for the current email and tag.
func (c *Composer) Address() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DeriveAt(c.email, c.tag, c.stamp)
}

// CanCopy reports whether the copy action is enabled.
func (c *Composer) CanCopy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.email != "" && IsValid(c.email)
}

// Copy writes address to the clipboard, records it in the history and raises
// the "copied" indicator. Nothing is recorded when the clipboard write fails.
// A history write failure is returned after the copy itself succeeded.
func (c *Composer) Copy(address string) error {
	if !c.CanCopy() {
		return &ValidationError{Email: c.Email()}
	}
	if err := c.clip.WriteText(address); err != nil {
		c.log.Warn("clipboard write failed", "error", err)
		return err
	}
	c.copied.Raise(address)

	if c.history == nil {
		return nil
	}
	if _, err := c.history.Append(address); err != nil {
		return err
	}
	return nil
}

// CopyCurrent copies Address and returns what was copied.
func (c *Composer) CopyCurrent() (string, error) {
	address := c.Address()
	return address, c.Copy(address)
}

// Copied reports whether the "copied" indicator is raised.
func (c *Composer) Copied() bool {
	_, ok := c.copied.Active()
	return ok
}

// CopyLabel is the text for the copy action: the address, prefixed with
// "Copied" while the indicator is raised.
func (c *Composer) CopyLabel() string {
	address := c.Address()
	if _, ok := c.copied.Active(); ok {
		return "Copied " + address
	}
	return address
}

// CopiedFor is how long the "copied" indicator stays raised.
func (c *Composer) CopiedFor() time.Duration {
	return c.copied.Delay()
}
