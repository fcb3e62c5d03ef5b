package alias

import (
	"errors"
	"sync"

	"tableflip.dev/plustag/pkg/logging"
	"tableflip.dev/plustag/pkg/store"
)

// Catalog owns the ordered list of aliases stored under store.KeyAliases and
// the "editing aliases" display mode. Every mutation writes the whole list
// back; callers read the result from the catalog, never from storage.
type Catalog struct {
	mu      sync.Mutex
	kv      store.KeyValueStore
	log     *logging.Logger
	aliases []Alias
	editing bool
}

// Load reads the persisted catalog. A missing key yields an empty catalog; an
// unreadable one is logged and treated as empty.
func Load(kv store.KeyValueStore, log *logging.Logger) *Catalog {
	c := &Catalog{kv: kv, log: logging.OrNop(log).With("component", "alias")}
	c.aliases = c.read()
	return c
}

func (c *Catalog) read() []Alias {
	var list []Alias
	if err := store.ReadJSON(c.kv, store.KeyAliases, &list); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.log.Warn("discarding unreadable aliases", "error", err)
		}
		return []Alias{}
	}
	if list == nil {
		list = []Alias{}
	}
	return list
}

// Reload replaces the in-memory catalog with what is stored now. It is meant
// for changes made by another process.
func (c *Catalog) Reload() {
	list := c.read()
	c.mu.Lock()
	c.aliases = list
	if len(c.aliases) == 0 {
		c.editing = false
	}
	c.mu.Unlock()
}

// Aliases returns a copy of the catalog in display order.
func (c *Catalog) Aliases() []Alias {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Alias, len(c.aliases))
	copy(out, c.aliases)
	return out
}

// Len returns the number of aliases.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.aliases)
}

// Find returns the first alias with the given value.
func (c *Catalog) Find(value string) (Alias, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.aliases {
		if a.Value == value {
			return a, true
		}
	}
	return Alias{}, false
}

// Create appends an alias for rawLabel and persists the catalog. An existing
// alias with the same value is not replaced; both are kept. A failed write is
// returned as a *store.WriteError while the in-memory catalog keeps the new
// alias.
func (c *Catalog) Create(rawLabel string) (Alias, error) {
	a, err := New(rawLabel)
	if err != nil {
		return Alias{}, err
	}

	c.mu.Lock()
	c.aliases = append(c.aliases, a)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.log.Debug("alias created", "value", a.Value)
	return a, c.persist(snapshot)
}

// Delete removes every alias whose value matches and persists the result. It
// returns how many were removed. Emptying the catalog leaves editing mode.
func (c *Catalog) Delete(value string) (int, error) {
	c.mu.Lock()
	kept := make([]Alias, 0, len(c.aliases))
	for _, a := range c.aliases {
		if a.Value != value {
			kept = append(kept, a)
		}
	}
	removed := len(c.aliases) - len(kept)
	c.aliases = kept
	if len(c.aliases) == 0 {
		c.editing = false
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.log.Debug("alias deleted", "value", value, "removed", removed)
	return removed, c.persist(snapshot)
}

// Editing reports whether the catalog is shown in editing (delete) mode.
func (c *Catalog) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

// SetEditing enters or leaves editing mode. Entering is refused while the
// catalog is empty; the returned value is the resulting mode.
func (c *Catalog) SetEditing(on bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = on && len(c.aliases) > 0
	return c.editing
}

// ToggleEditing flips editing mode and returns the resulting mode.
func (c *Catalog) ToggleEditing() bool {
	return c.SetEditing(!c.Editing())
}

func (c *Catalog) snapshotLocked() []Alias {
	out := make([]Alias, len(c.aliases))
	copy(out, c.aliases)
	return out
}

func (c *Catalog) persist(list []Alias) error {
	if err := store.WriteJSON(c.kv, store.KeyAliases, list); err != nil {
		c.log.Warn("aliases not saved", "error", err)
		return err
	}
	return nil
}
