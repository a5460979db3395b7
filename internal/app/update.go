package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/mosaic/internal/config"
	"github.com/Gaurav-Gosain/mosaic/internal/layout"
)

// ConfigReloadedMsg carries a freshly loaded configuration after the config
// file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.UserConfig
}

// Init returns no commands; the program delivers the initial window size and
// everything else is event driven.
func (m *Compositor) Init() tea.Cmd {
	return nil
}

// Update handles terminal events and translates key presses into engine
// operations.
func (m *Compositor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil

	case ConfigReloadedMsg:
		m.ApplyConfig(msg.Config)
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n", "enter":
			m.OpenWindow()
		case "x":
			m.CloseFocused()
		case "left", "h":
			m.MoveFocus(layout.FocusLeft)
		case "right", "l":
			m.MoveFocus(layout.FocusRight)
		case "up", "k":
			m.MoveFocus(layout.FocusUp)
		case "down", "j":
			m.MoveFocus(layout.FocusDown)
		case "g":
			m.MoveFocus(layout.FocusOut)
		case "o":
			m.ToggleOrientation()
		case "f":
			m.ToggleFullscreen()
		}
		return m, nil
	}

	return m, nil
}
