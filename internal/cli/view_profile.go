package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
)

type profileLoadedMsg struct {
	seq  uint64
	user *domain.User
	err  error
}

type logoutDoneMsg struct{ err error }

// profileView shows the signed-in user. The cached user renders at once and
// is replaced by a fresh copy from the backend.
type profileView struct {
	state *SharedState
	fetch fetcher
	spin  spinner.Model

	user    *domain.User
	loading bool
	err     string
}

func newProfileView(state *SharedState) *profileView {
	return &profileView{state: state, spin: newSpinner(), user: state.App.Session.User()}
}

func (v *profileView) ID() ViewID    { return ViewProfile }
func (v *profileView) Title() string { return "Profile" }
func (v *profileView) Close()        { v.fetch.stop() }
func (v *profileView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("L", "sign out"),
		binding("r", "refresh"),
	}
}

func (v *profileView) Init() tea.Cmd {
	return v.load()
}

func (v *profileView) load() tea.Cmd {
	ctx, seq := v.fetch.next()
	v.loading = true
	sess := v.state.App.Session
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		u, err := sess.RefreshProfile(ctx)
		return profileLoadedMsg{seq: seq, user: u, err: err}
	})
}

func (v *profileView) logout() tea.Cmd {
	sess := v.state.App.Session
	return func() tea.Msg {
		return logoutDoneMsg{err: sess.Logout(context.Background())}
	}
}

func (v *profileView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if !v.fetch.current(msg.seq) {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = userMessage(msg.err)
			return v, nil
		}
		v.user, v.err = msg.user, ""
		return v, nil

	case logoutDoneMsg:
		if msg.err != nil {
			return v, noticeErr(msg.err)
		}
		return v, notice("Signed out")

	case spinner.TickMsg:
		return v, updateSpinner(&v.spin, v.loading, msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "L":
			v.fetch.stop()
			return v, v.logout()
		case "r":
			return v, v.load()
		}
	}
	return v, nil
}

func (v *profileView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if v.user == nil {
		if v.loading {
			b.WriteString(loadingLine(v.spin, "Loading profile..."))
		}
		b.WriteString(errorBlock(v.err))
		return b.String()
	}

	var expires *time.Time
	if exp, ok := v.state.App.Session.ExpiresAt(); ok {
		expires = &exp
	}
	b.WriteString(formatter.FormatProfile(v.user, expires, v.state.App.now()))
	if v.loading {
		b.WriteString(formatter.Dim("refreshing ") + v.spin.View() + "\n")
	}
	b.WriteString(errorBlock(v.err))
	b.WriteString("\n" + formatter.Dim("Press L to sign out.") + "\n")
	return b.String()
}
