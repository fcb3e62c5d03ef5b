// Package history keeps the append-only log of copied values.
package history

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"tableflip.dev/plustag/pkg/logging"
	"tableflip.dev/plustag/pkg/store"
)

// ErrEntryNotFound is returned when no entry has the requested id or
// position.
var ErrEntryNotFound = errors.New("history: entry not found")

// Entry is one copied value. ID is the creation time in epoch milliseconds
// and doubles as the chronological order; two copies within the same
// millisecond share an id.
type Entry struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Time returns the creation time encoded in the id.
func (e Entry) Time() (time.Time, bool) {
	ms, err := strconv.ParseInt(e.ID, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// CopiedBefore reports whether the entry was copied before cutoff. Entries
// whose id is not a timestamp are never before anything.
func (e Entry) CopiedBefore(cutoff time.Time) bool {
	at, ok := e.Time()
	return ok && at.Before(cutoff)
}

// Log reads and appends to the sequence stored under store.KeyCopyHistory.
type Log struct {
	mu      sync.Mutex
	kv      store.KeyValueStore
	log     *logging.Logger
	now     func() time.Time
	entries []Entry
}

// Option configures a Log.
type Option func(*Log)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// NewLog returns a Log over kv and loads the persisted entries.
func NewLog(kv store.KeyValueStore, log *logging.Logger, opts ...Option) *Log {
	l := &Log{
		kv:  kv,
		log: logging.OrNop(log).With("component", "history"),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.Load()
	return l
}

// Load rereads the stored sequence and returns it. A missing key is an empty
// history; an unreadable one is logged and treated as empty.
func (l *Log) Load() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.readLocked()
	return l.copyLocked()
}

func (l *Log) readLocked() []Entry {
	var list []Entry
	if err := store.ReadJSON(l.kv, store.KeyCopyHistory, &list); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			l.log.Warn("discarding unreadable copy history", "error", err)
		}
		return []Entry{}
	}
	if list == nil {
		list = []Entry{}
	}
	return list
}

// Append records value. It reads the stored sequence first so entries
// appended by other writers since the last Load are kept, then writes the
// whole sequence back.
func (l *Log) Append(value string) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := Entry{
		ID:    strconv.FormatInt(l.now().UnixMilli(), 10),
		Value: value,
	}
	list := append(l.readLocked(), e)
	l.entries = list
	if err := store.WriteJSON(l.kv, store.KeyCopyHistory, list); err != nil {
		l.log.Warn("copy history not saved", "error", err)
		return e, err
	}
	l.log.Debug("copy recorded", "id", e.ID)
	return e, nil
}

// Entries returns the entries as of the last Load or Append, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.copyLocked()
}

// At returns the entry at index, oldest first. Colliding ids make the
// position the only reliable handle on an entry.
func (l *Log) At(index int) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.entries) {
		return Entry{}, ErrEntryNotFound
	}
	return l.entries[index], nil
}

// Index returns the position of the most recent entry with the given id.
func (l *Log) Index(id string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].ID == id {
			return i, nil
		}
	}
	return -1, ErrEntryNotFound
}

func (l *Log) copyLocked() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
