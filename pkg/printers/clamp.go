package printers

import (
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

func clampWidth(s string, width int) string {
	if ansi.PrintableRuneWidth(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// Wrap breaks s into lines of at most width cells for expanded entries.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}
