package cli

import (
	tea "github.com/charmbracelet/bubbletea"
)

// pushViewMsg stacks a modal view (a form) over the routed view.
type pushViewMsg struct{ view View }

// popViewMsg closes the top modal view.
type popViewMsg struct{}

// formDoneMsg closes the top modal view and runs next against the view
// underneath.
type formDoneMsg struct{ next tea.Cmd }

// noticeMsg sets the transient line in the status bar.
type noticeMsg struct {
	text string
	err  bool
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Msg { return popViewMsg{} }

func notice(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

func noticeErr(err error) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: userMessage(err), err: true} }
}
