package history

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"tableflip.dev/plustag/pkg/clipboard"
	"tableflip.dev/plustag/pkg/transient"
)

// DisplayState is how much of an entry is shown.
type DisplayState int

const (
	// Collapsed clamps the entry to a single line.
	Collapsed DisplayState = iota
	// Expanded shows the full value.
	Expanded
)

func (s DisplayState) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// View is the display state over a Log: which entry is expanded and which
// entries were just re-copied. Entries are addressed by position in
// Entries(), since ids may collide. At most one entry is expanded at a time.
type View struct {
	mu       sync.Mutex
	log      *Log
	clip     clipboard.Writer
	copied   *transient.Set
	expanded int
}

// NewView wraps log. Re-copied entries show their "copied" label for
// copiedFor.
func NewView(log *Log, clip clipboard.Writer, copiedFor time.Duration, opts ...transient.Option) *View {
	return &View{
		log:      log,
		clip:     clip,
		copied:   transient.NewSet(copiedFor, opts...),
		expanded: -1,
	}
}

// Entries returns the entries to display, oldest first.
func (v *View) Entries() []Entry {
	return v.log.Entries()
}

// Index resolves id to a position, preferring the newest entry on a
// collision.
func (v *View) Index(id string) (int, error) {
	return v.log.Index(id)
}

// Refresh reloads the log from storage. The expanded entry stays expanded
// if its position still exists; the log only grows.
func (v *View) Refresh() []Entry {
	entries := v.log.Load()
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.expanded >= len(entries) {
		v.expanded = -1
	}
	return entries
}

// Select expands the entry at index and collapses whichever was expanded.
func (v *View) Select(index int) error {
	if _, err := v.log.At(index); err != nil {
		return err
	}
	v.mu.Lock()
	v.expanded = index
	v.mu.Unlock()
	return nil
}

// Collapse collapses every entry.
func (v *View) Collapse() {
	v.mu.Lock()
	v.expanded = -1
	v.mu.Unlock()
}

// Expanded returns the position of the expanded entry, or -1.
func (v *View) Expanded() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.expanded
}

// State reports how the entry at index is displayed.
func (v *View) State(index int) DisplayState {
	v.mu.Lock()
	defer v.mu.Unlock()
	if index >= 0 && index == v.expanded {
		return Expanded
	}
	return Collapsed
}

// Copy writes the exact value of the entry at index to the clipboard and
// raises its "copied" label. Re-copying does not add a history entry.
func (v *View) Copy(index int) (Entry, error) {
	e, err := v.log.At(index)
	if err != nil {
		return Entry{}, err
	}
	if err := v.clip.WriteText(e.Value); err != nil {
		return e, err
	}
	v.copied.Get(slot(index)).Raise(e.Value)
	return e, nil
}

// Copied reports whether the "copied" label of the entry at index is raised.
func (v *View) Copied(index int) bool {
	_, ok := v.copied.Active(slot(index))
	return ok
}

// Label is the text shown for the entry at index: its value, or a
// confirmation naming the value while the "copied" label is raised.
func (v *View) Label(index int) string {
	if value, ok := v.copied.Active(slot(index)); ok {
		return fmt.Sprintf("Copied %s", value)
	}
	e, err := v.log.At(index)
	if err != nil {
		return ""
	}
	return e.Value
}

// CopiedFor is how long a "copied" label stays raised.
func (v *View) CopiedFor() time.Duration {
	return v.copied.Delay()
}

func slot(index int) string {
	return strconv.Itoa(index)
}
