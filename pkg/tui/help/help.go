// Package help renders the key reference overlay.
package help

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/plustag/pkg/tui/theme"
)

//go:embed help.md
var keysMarkdown string

const title = "plustag keys"

// Model is the scrollable key reference shown over the main screen.
type Model struct {
	style theme.HelpTheme
	body  viewport.Model

	width, height int
}

// New returns an overlay styled by th and fitted to width x height.
func New(th theme.HelpTheme, width, height int) *Model {
	m := &Model{
		style: th,
		body:  viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
	}
	m.body.MouseWheelEnabled = true
	m.SetSize(width, height)
	return m
}

// Update scrolls the reference.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return cmd
}

func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.style.Title.Render(title),
		m.body.View(),
	)
	return m.style.Frame.Width(m.width).Height(m.height).Render(content)
}

// SetSize refits the overlay; the markdown is re-rendered only when the
// size changes.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 32), max(height, 8)
	if width == m.width && height == m.height {
		return
	}
	m.width, m.height = width, height

	inner := max(width-m.style.Frame.GetHorizontalFrameSize(), 1)
	// One line goes to the title.
	rows := max(height-m.style.Frame.GetVerticalFrameSize()-1, 1)
	m.body.SetWidth(inner)
	m.body.SetHeight(rows)
	m.body.SetContent(renderKeys(m.style.Glamour, inner))
	m.body.SetYOffset(0)
}

func renderKeys(style string, wrap int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(wrap, 10)),
	)
	if err != nil {
		return "help unavailable: " + err.Error()
	}
	out, err := r.Render(strings.TrimSpace(keysMarkdown))
	if err != nil {
		return "help unavailable: " + err.Error()
	}
	return out
}
