package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/plustag/pkg/alias"
	"tableflip.dev/plustag/pkg/history"
)

type PrettyPrint struct {
	ShowID bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, one, many string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintf(pp.out(), " %s\n", one)
	default:
		_, _ = c.Fprintf(pp.out(), " %s\n", many)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Address prints a derived address, dimmed when it cannot be copied.
func (pp *PrettyPrint) Address(address string, valid bool) {
	if valid {
		_, _ = color.New(color.FgHiGreen, color.Bold).Fprintln(pp.out(), address)
		return
	}
	_, _ = color.New(color.Faint).Fprintln(pp.out(), address)
	_, _ = color.New(color.FgYellow, color.Italic).Fprintln(pp.out(), "primary email is not valid, copy is disabled")
}

// Aliases prints the catalog in display order.
func (pp *PrettyPrint) Aliases(selected string, aliases ...alias.Alias) {
	pp.TitleWithCount("Aliases", len(aliases), "alias", "aliases")
	if len(aliases) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	table := uitable.New()
	table.MaxColWidth = 60
	for _, a := range aliases {
		marker := " "
		if a.Value == selected {
			marker = "*"
		}
		label := ""
		if a.Label != a.Value {
			label = y.Sprint(a.Label)
		}
		table.AddRow(marker, a.Value, label)
	}
	_, _ = fmt.Fprintln(pp.out(), table)
	pp.NewLine()
}

// History prints copy history entries, newest last. The entry at position
// expanded is shown in full; the others are clamped to width.
func (pp *PrettyPrint) History(expanded, width int, entries ...history.Entry) {
	pp.TitleWithCount("Copy History", len(entries), "entry", "entries")
	if len(entries) == 0 {
		pp.none()
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	t := color.New()
	for i, e := range entries {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), e.ID, "  ")
		}
		value := e.Value
		if i == expanded {
			_, _ = t.Fprintf(pp.out(), "%s %s\n", Bullet(history.Expanded), value)
			continue
		}
		_, _ = t.Fprintf(pp.out(), "%s %s\n", Bullet(history.Collapsed), Clamp(value, width))
	}
	pp.NewLine()
}

// Bullet is the marker drawn next to a history entry.
func Bullet(s history.DisplayState) string {
	if s == history.Expanded {
		return "▾"
	}
	return "▸"
}

// Clamp keeps the first line of s, cut to width cells with an ellipsis.
func Clamp(s string, width int) string {
	line, _, more := strings.Cut(s, "\n")
	if width <= 0 {
		if more {
			return line + "…"
		}
		return line
	}
	clamped := clampWidth(line, width)
	if more && clamped == line {
		return clampWidth(line+"…", width)
	}
	return clamped
}
