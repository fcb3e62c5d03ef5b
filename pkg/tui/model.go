// Package tui is the full-screen terminal interface: an email field, an
// alias picker, the derived address with its copy action and the copy
// history.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/plustag/pkg/alias"
	"tableflip.dev/plustag/pkg/app"
	"tableflip.dev/plustag/pkg/history"
	"tableflip.dev/plustag/pkg/logging"
	"tableflip.dev/plustag/pkg/store"
	"tableflip.dev/plustag/pkg/tui/help"
	"tableflip.dev/plustag/pkg/tui/theme"
)

type focus int

const (
	focusEmail focus = iota
	focusAlias
	focusHistory
	focusCount
)

// suggestion is one row of the alias picker: a saved alias, or the row that
// creates one from the typed text.
type suggestion struct {
	alias  alias.Alias
	create bool
	text   string
}

// Model contains UI state. Domain state lives in the service; the model only
// keeps what is being typed and where the cursor is.
type Model struct {
	svc   *app.Service
	log   *logging.Logger
	ctx   context.Context
	theme theme.Theme

	focus focus
	email textinput.Model
	tag   textinput.Model

	suggestions []suggestion
	suggestIdx  int
	histIdx     int

	status string
	warn   bool

	help     *help.Model
	showHelp bool

	events <-chan store.Event

	width  int
	height int
}

// messages
type errMsg struct{ err error }
type watchingMsg struct{ ch <-chan store.Event }
type storeEventMsg struct{ ev store.Event }

// copiedResetMsg redraws once a "copied" label has lowered.
type copiedResetMsg struct{}

const defaultWidth = 80

// New creates a new UI model backed by svc.
func New(ctx context.Context, svc *app.Service, log *logging.Logger) Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = ""
	email.CharLimit = 254
	email.SetValue(svc.Composer.Email())
	email.CursorEnd()
	email.Focus()

	tag := textinput.New()
	tag.Placeholder = "type to pick or create an alias"
	tag.Prompt = ""
	tag.CharLimit = 128

	th := theme.Default()
	m := Model{
		svc:   svc,
		log:   logging.OrNop(log),
		ctx:   ctx,
		theme: th,
		focus: focusEmail,
		email: email,
		tag:   tag,
		help:  help.New(th.Help, defaultWidth, 20),
	}
	m.refreshSuggestions()
	if n := len(svc.View.Entries()); n > 0 {
		m.histIdx = n - 1
	}
	return m
}

// Init starts the cursor blink and subscribes to store changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.watch())
}

func (m Model) watch() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		ch, err := svc.Watch(ctx)
		if err != nil {
			return errMsg{fmt.Errorf("live refresh off: %w", err)}
		}
		return watchingMsg{ch: ch}
	}
}

func waitForEvent(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeEventMsg{ev: ev}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySizes()
		return m, nil
	case watchingMsg:
		m.events = msg.ch
		return m, waitForEvent(m.events)
	case storeEventMsg:
		key := msg.ev.Key
		if msg.ev.Type == store.EventInvalidated {
			key = ""
		}
		m.log.Debug("store changed", "key", key)
		m.svc.Reload(key)
		m.sync()
		return m, waitForEvent(m.events)
	case copiedResetMsg:
		return m, nil
	case errMsg:
		m.setNotice(msg.err)
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
	case focusAlias:
		m.tag, cmd = m.tag.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.showHelp {
		switch key {
		case "f1", "esc", "q", "?":
			m.showHelp = false
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, m.help.Update(msg)
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "f1":
		m.showHelp = true
		return m, nil
	case "tab":
		return m, m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "ctrl+y":
		return m, m.copyAddress()
	case "ctrl+e":
		m.toggleEditing()
		return m, nil
	}

	switch m.focus {
	case focusEmail:
		return m.handleEmailKey(msg)
	case focusAlias:
		return m.handleAliasKey(msg)
	case focusHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m Model) handleEmailKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		return m, m.setFocus(focusAlias)
	}
	before := m.email.Value()
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	if value := m.email.Value(); value != before {
		if err := m.svc.Composer.SetEmail(value); err != nil {
			m.setNotice(err)
		} else if m.warn {
			m.status, m.warn = "", false
		}
	}
	return m, cmd
}

func (m Model) handleAliasKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.suggestIdx > 0 {
			m.suggestIdx--
		}
		return m, nil
	case "down":
		if m.suggestIdx < len(m.suggestions)-1 {
			m.suggestIdx++
		}
		return m, nil
	case "enter":
		m.choose()
		return m, nil
	case "esc":
		m.tag.SetValue("")
		m.refreshSuggestions()
		return m, nil
	case "ctrl+d":
		m.deleteHighlighted()
		return m, nil
	}

	before := m.tag.Value()
	var cmd tea.Cmd
	m.tag, cmd = m.tag.Update(msg)
	if m.tag.Value() != before {
		m.suggestIdx = 0
		m.refreshSuggestions()
	}
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	entries := m.svc.View.Entries()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "up", "k":
		if m.histIdx > 0 {
			m.histIdx--
		}
	case "down", "j":
		if m.histIdx < len(entries)-1 {
			m.histIdx++
		}
	case "enter", "space", " ":
		if i, ok := m.currentEntry(entries); ok {
			if m.svc.View.State(i) == history.Expanded {
				m.svc.View.Collapse()
			} else if err := m.svc.View.Select(i); err != nil {
				m.setNotice(err)
			}
		}
	case "c", "y":
		if i, ok := m.currentEntry(entries); ok {
			return m, m.copyEntry(i)
		}
	}
	return m, nil
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.email.Blur()
	m.tag.Blur()
	switch f {
	case focusEmail:
		return m.email.Focus()
	case focusAlias:
		m.refreshSuggestions()
		return m.tag.Focus()
	}
	return nil
}

// choose applies the highlighted suggestion. An empty field goes back to the
// timestamp tag.
func (m *Model) choose() {
	typed := m.tag.Value()
	if strings.TrimSpace(typed) == "" {
		_ = m.svc.SelectAlias("")
		m.status, m.warn = "Using a timestamp tag", false
		m.refreshSuggestions()
		return
	}
	if len(m.suggestions) == 0 {
		return
	}

	s := m.suggestions[m.suggestIdx]
	var (
		a   alias.Alias
		err error
	)
	if s.create {
		a, err = m.svc.UseTag(typed)
	} else {
		a = s.alias
		err = m.svc.SelectAlias(a.Value)
	}
	m.setNotice(err)
	if err == nil {
		m.status, m.warn = "Using "+a.Value, false
	}
	if a.Value != "" {
		m.tag.SetValue(a.Label)
		m.tag.CursorEnd()
	}
	m.refreshSuggestions()
}

func (m *Model) toggleEditing() {
	if m.svc.Aliases.ToggleEditing() {
		m.status, m.warn = "Editing aliases: ctrl+d deletes the highlighted one", false
		return
	}
	if m.svc.Aliases.Len() == 0 {
		m.status, m.warn = "No aliases to edit", false
		return
	}
	m.status = ""
}

func (m *Model) deleteHighlighted() {
	if !m.svc.Aliases.Editing() || len(m.suggestions) == 0 {
		return
	}
	s := m.suggestions[m.suggestIdx]
	if s.create {
		return
	}
	n, err := m.svc.DeleteAlias(s.alias.Value)
	m.setNotice(err)
	if err == nil {
		m.status, m.warn = fmt.Sprintf("Deleted %s (%d)", s.alias.Value, n), false
	}
	m.refreshSuggestions()
}

func (m *Model) copyAddress() tea.Cmd {
	address, err := m.svc.Copy()
	if err != nil {
		m.setNotice(err)
		if !app.IsWarning(err) {
			return nil
		}
	} else {
		m.status, m.warn = "", false
	}
	m.log.Debug("copied", "address", address)
	if n := len(m.svc.View.Entries()); n > 0 {
		m.histIdx = n - 1
	}
	return resetAfter(m.svc.Composer.CopiedFor())
}

func (m *Model) copyEntry(index int) tea.Cmd {
	if _, err := m.svc.View.Copy(index); err != nil {
		m.setNotice(err)
		return nil
	}
	m.status, m.warn = "", false
	return resetAfter(m.svc.View.CopiedFor())
}

// resetAfter redraws just after a "copied" label lowers.
func resetAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d+50*time.Millisecond, func(time.Time) tea.Msg {
		return copiedResetMsg{}
	})
}

// sync pulls state written by another process into the inputs. The field
// being typed in is left alone.
func (m *Model) sync() {
	if email := m.svc.Composer.Email(); m.focus != focusEmail && m.email.Value() != email {
		m.email.SetValue(email)
		m.email.CursorEnd()
	}
	m.refreshSuggestions()
	if n := len(m.svc.View.Entries()); m.histIdx >= n {
		m.histIdx = max(n-1, 0)
	}
}

func (m *Model) refreshSuggestions() {
	typed := m.tag.Value()
	q := strings.ToLower(strings.TrimSpace(typed))

	var out []suggestion
	for _, a := range m.svc.Aliases.Aliases() {
		if q == "" || strings.Contains(strings.ToLower(a.Label), q) || strings.Contains(strings.ToLower(a.Value), q) {
			out = append(out, suggestion{alias: a, text: a.Value})
		}
	}
	if v := alias.Normalize(typed); v != "" {
		if _, ok := m.svc.Aliases.Find(v); !ok {
			out = append(out, suggestion{create: true, text: alias.CreateLabel(typed)})
		}
	}
	m.suggestions = out
	if m.suggestIdx >= len(out) {
		m.suggestIdx = max(len(out)-1, 0)
	}
}

// currentEntry returns the highlighted position in entries.
func (m *Model) currentEntry(entries []history.Entry) (int, bool) {
	if m.histIdx < 0 || m.histIdx >= len(entries) {
		return -1, false
	}
	return m.histIdx, true
}

func (m *Model) setNotice(err error) {
	if err == nil {
		return
	}
	m.status = app.Notice(err)
	m.warn = true
	if !app.IsWarning(err) {
		m.log.Debug("action failed", "error", err)
	}
}

// applySizes recalculates input widths based on the terminal size.
func (m *Model) applySizes() {
	inner := m.innerWidth()
	m.email.SetWidth(inner)
	m.tag.SetWidth(inner)
	m.help.SetSize(m.contentWidth(), max(m.height-2, 8))
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

// innerWidth is the usable width inside a section frame.
func (m Model) innerWidth() int {
	return max(m.contentWidth()-m.theme.Section.Frame.GetHorizontalFrameSize(), 10)
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service, log *logging.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := tea.NewProgram(New(ctx, svc, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
