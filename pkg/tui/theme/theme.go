package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Title   lipgloss.Style
	Section SectionTheme
	Address AddressTheme
	Picker  PickerTheme
	History HistoryTheme
	Footer  FooterTheme
	Help    HelpTheme
}

// SectionTheme styles the framed sections and their labels.
type SectionTheme struct {
	Frame   lipgloss.Style
	Focused lipgloss.Style
	Label   lipgloss.Style
}

// AddressTheme styles the derived address and the copy action.
type AddressTheme struct {
	Value    lipgloss.Style
	Disabled lipgloss.Style
	Button   lipgloss.Style
	Copied   lipgloss.Style
}

// PickerTheme styles alias suggestions.
type PickerTheme struct {
	Item     lipgloss.Style
	Selected lipgloss.Style
	Label    lipgloss.Style
	Create   lipgloss.Style
	Delete   lipgloss.Style
	Active   lipgloss.Style
}

// HistoryTheme styles copy history rows.
type HistoryTheme struct {
	Row    lipgloss.Style
	Cursor lipgloss.Style
	Bullet lipgloss.Style
	Copied lipgloss.Style
	Empty  lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Warn   lipgloss.Style
}

// HelpTheme styles the key reference overlay.
type HelpTheme struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Glamour string
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	copied := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

	return Theme{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true),
		Section: SectionTheme{
			Frame:   frame,
			Focused: frame.BorderForeground(lipgloss.Color("212")),
			Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},
		Address: AddressTheme{
			Value:    lipgloss.NewStyle().Bold(true),
			Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
			Button: lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1),
			Copied: copied,
		},
		Picker: PickerTheme{
			Item:     lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Reverse(true),
			Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
			Create:   lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
			Delete:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Active:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		},
		History: HistoryTheme{
			Row:    lipgloss.NewStyle(),
			Cursor: lipgloss.NewStyle().Reverse(true),
			Bullet: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Copied: copied,
			Empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		},
		Help: HelpTheme{
			Frame:   frame.BorderForeground(lipgloss.Color("212")),
			Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Glamour: "dark",
		},
	}
}
