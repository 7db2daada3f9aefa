package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewLogin ViewID = iota
	ViewRegister
	ViewDashboard
	ViewProjectList
	ViewProjectDetail
	ViewTaskList
	ViewTaskDetail
	ViewTeam
	ViewProfile
	ViewForm
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// inputCapturer is implemented by views that sometimes need every key,
// e.g. while a search prompt or confirmation is open.
type inputCapturer interface {
	CapturesInput() bool
}

// closer is implemented by views with in-flight work to cancel on unmount.
type closer interface {
	Close()
}

// viewCapturesInput returns true if the view should receive all key events,
// bypassing global keybindings like q, g and esc.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewLogin, ViewRegister, ViewForm:
		return true
	}
	if c, ok := v.(inputCapturer); ok {
		return c.CapturesInput()
	}
	return false
}

func binding(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}
