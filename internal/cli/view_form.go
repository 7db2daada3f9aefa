package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// formView wraps a huh.Form as a modal over the routed view. When the form
// completes it closes itself and delivers submit's message to the view
// underneath.
type formView struct {
	state    *SharedState
	form     *huh.Form
	titleStr string
	submit   func() tea.Msg
}

func newFormView(state *SharedState, title string, form *huh.Form, submit func() tea.Msg) *formView {
	return &formView{
		state:    state,
		form:     form,
		titleStr: title,
		submit:   submit,
	}
}

func (v *formView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape cancels the form.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, popView
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		next := v.submit
		v.submit = nil
		if next == nil {
			return v, cmd
		}
		return v, tea.Batch(cmd, func() tea.Msg { return formDoneMsg{next: next} })
	case huh.StateAborted:
		return v, popView
	}
	return v, cmd
}

func (v *formView) View() string {
	return "\n" + v.form.View()
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.titleStr }
func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "next"),
		binding("shift+tab", "previous"),
		binding("esc", "cancel"),
	}
}
