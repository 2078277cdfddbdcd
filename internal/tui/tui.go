package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"hackevents/internal/api"
	"hackevents/internal/store"
)

type Options struct {
	// Store is where the TUI state file lives.
	Store store.Store
	// KV persists the custom order and sign-in flag.
	KV     store.KV
	Source api.Source
	Config *store.GlobalConfig
}

func Run(opts Options) error {
	theme := ""
	if opts.Config != nil && opts.Config.TUI != nil {
		theme = opts.Config.TUI.Theme
	}
	applyThemePreference(theme)
	applyColorProfilePreference()
	applyGlyphPreference()

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
