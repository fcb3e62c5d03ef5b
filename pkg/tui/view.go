package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/plustag/pkg/history"
	"tableflip.dev/plustag/pkg/printers"
)

// maxSuggestions caps the picker so the history stays on screen.
const maxSuggestions = 6

// View renders the whole screen.
func (m Model) View() string {
	title := m.theme.Title.Render("plustag")
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, title, m.help.View())
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.section("Email", m.email.View(), m.focus == focusEmail),
		m.section(m.aliasTitle(), m.aliasBody(), m.focus == focusAlias),
		m.addressLine(),
		m.section(m.historyTitle(), m.historyBody(), m.focus == focusHistory),
		m.footer(),
	)
	return body
}

func (m Model) section(label, body string, focused bool) string {
	frame := m.theme.Section.Frame
	if focused {
		frame = m.theme.Section.Focused
	}
	width := m.contentWidth() - frame.GetHorizontalBorderSize()
	return frame.Width(width).Render(m.theme.Section.Label.Render(label) + "\n" + body)
}

func (m Model) aliasTitle() string {
	title := "Alias"
	if tag := m.svc.Composer.Tag(); tag != "" {
		title += " · " + tag
	} else {
		title += " · timestamp"
	}
	if m.svc.Aliases.Editing() {
		title += " (editing)"
	}
	return title
}

func (m Model) aliasBody() string {
	lines := []string{m.tag.View()}
	if m.focus != focusAlias && !m.svc.Aliases.Editing() {
		return lines[0]
	}

	start := 0
	if m.suggestIdx >= maxSuggestions {
		start = m.suggestIdx - maxSuggestions + 1
	}
	end := min(start+maxSuggestions, len(m.suggestions))
	selected := m.svc.Composer.Tag()
	pt := m.theme.Picker

	for i := start; i < end; i++ {
		s := m.suggestions[i]
		var row string
		switch {
		case s.create:
			row = pt.Create.Render("+ " + s.text)
		default:
			marker := "  "
			if s.alias.Value == selected {
				marker = pt.Active.Render("* ")
			}
			if m.svc.Aliases.Editing() {
				marker = pt.Delete.Render("✕ ")
			}
			row = marker + pt.Item.Render(s.alias.Value)
			if s.alias.Label != s.alias.Value {
				row += " " + pt.Label.Render(s.alias.Label)
			}
		}
		if i == m.suggestIdx && m.focus == focusAlias {
			row = pt.Selected.Render(row)
		}
		lines = append(lines, row)
	}
	if len(m.suggestions) > end {
		lines = append(lines, pt.Label.Render(fmt.Sprintf("  … %d more", len(m.suggestions)-end)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) addressLine() string {
	c := m.svc.Composer
	at := m.theme.Address
	address := c.Address()

	if !c.CanCopy() {
		return " " + at.Disabled.Render(address) + "  " + m.theme.Footer.Help.Render("enter a valid email to copy")
	}
	if c.Copied() {
		return " " + at.Copied.Render("✓ "+c.CopyLabel())
	}
	return " " + at.Value.Render(address) + "  " + at.Button.Render("Copy ctrl+y")
}

func (m Model) historyTitle() string {
	n := len(m.svc.View.Entries())
	if n == 1 {
		return "History · 1 entry"
	}
	return fmt.Sprintf("History · %d entries", n)
}

// historyRows is how many history rows fit under the other sections.
func (m Model) historyRows() int {
	if m.height <= 0 {
		return 8
	}
	used := 14 + min(len(m.suggestions), maxSuggestions)
	return max(m.height-used, 3)
}

func (m Model) historyBody() string {
	entries := m.svc.View.Entries()
	ht := m.theme.History
	if len(entries) == 0 {
		return ht.Empty.Render("nothing copied yet")
	}

	rows := m.historyRows()
	start := 0
	if m.histIdx >= rows {
		start = m.histIdx - rows + 1
	}
	end := min(start+rows, len(entries))
	width := m.innerWidth() - 2

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		e := entries[i]
		state := m.svc.View.State(i)
		bullet := ht.Bullet.Render(printers.Bullet(state))

		var text string
		switch {
		case m.svc.View.Copied(i):
			text = ht.Copied.Render(printers.Clamp(m.svc.View.Label(i), width))
		case state == history.Expanded:
			text = printers.Wrap(e.Value, width)
		default:
			text = printers.Clamp(e.Value, width)
		}
		row := bullet + " " + text
		if i == m.histIdx && m.focus == focusHistory {
			row = ht.Cursor.Render(row)
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

func (m Model) footer() string {
	hint := m.theme.Footer.Help.Render("tab section · ctrl+y copy · ctrl+e edit aliases · f1 help · ctrl+c quit")
	if m.status == "" {
		return hint
	}
	style := m.theme.Footer.Status
	if m.warn {
		style = m.theme.Footer.Warn
	}
	return style.Render(m.status) + "\n" + hint
}
