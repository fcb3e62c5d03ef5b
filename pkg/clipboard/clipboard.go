// Package clipboard is the write-only sink for copied text.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard: no clipboard utility available")

// Writer copies text to a clipboard. Success is the only confirmation.
type Writer interface {
	WriteText(text string) error
}

// WriteError reports a denied or failed clipboard write.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("clipboard: write: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// System writes to the operating system clipboard.
type System struct{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return &WriteError{Err: ErrUnsupported}
	}
	if err := clipboard.WriteAll(text); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// Recorder keeps every write in memory instead of touching the system
// clipboard.
type Recorder struct {
	Writes []string
	Err    error
}

func (r *Recorder) WriteText(text string) error {
	if r.Err != nil {
		return &WriteError{Err: r.Err}
	}
	r.Writes = append(r.Writes, text)
	return nil
}

// Last returns the most recent write, or "" when nothing was written.
func (r *Recorder) Last() string {
	if len(r.Writes) == 0 {
		return ""
	}
	return r.Writes[len(r.Writes)-1]
}
