package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/route"
)

// loginSubmitMsg carries completed credentials from the login form.
type loginSubmitMsg struct{ req domain.LoginRequest }

type loginResultMsg struct{ err error }

// loginView is the public sign-in page.
type loginView struct {
	state *SharedState
	req   domain.LoginRequest
	form  *huh.Form
	spin  spinner.Model
	busy  bool
	sent  bool // form completion already turned into a submit
	err   string
}

func newLoginView(state *SharedState) *loginView {
	v := &loginView{state: state, spin: newSpinner()}
	v.form = loginForm(&v.req)
	return v
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Sign in" }
func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "next"),
		binding("ctrl+r", "create account"),
		binding("ctrl+c", "quit"),
	}
}

func (v *loginView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *loginView) submit(req domain.LoginRequest) tea.Cmd {
	sess := v.state.App.Session
	return func() tea.Msg {
		_, err := sess.Login(context.Background(), req)
		return loginResultMsg{err: err}
	}
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginSubmitMsg:
		if v.busy {
			return v, nil
		}
		v.busy = true
		v.err = ""
		return v, tea.Batch(v.spin.Tick, v.submit(msg.req))

	case loginResultMsg:
		v.busy = false
		if msg.err == nil {
			return v, nil
		}
		v.err = userMessage(msg.err)
		v.req.Password = ""
		v.sent = false
		v.form = loginForm(&v.req)
		return v, v.form.Init()

	case spinner.TickMsg:
		return v, updateSpinner(&v.spin, v.busy, msg)

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		if msg.Type == tea.KeyCtrlR {
			v.state.navigate(route.Register)
			return v, nil
		}
	}

	if v.busy {
		return v, nil
	}
	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted && !v.sent {
		v.sent = true
		req := v.req
		return v, tea.Batch(cmd, func() tea.Msg { return loginSubmitMsg{req: req} })
	}
	return v, cmd
}

func (v *loginView) View() string {
	var b strings.Builder
	b.WriteString("\n" + formatter.Header("Sign in") + "\n")
	if v.busy {
		b.WriteString(loadingLine(v.spin, "Signing in..."))
		return b.String()
	}
	b.WriteString(errorBlock(v.err))
	b.WriteString("\n" + v.form.View())
	b.WriteString("\n" + formatter.Dim("No account? Press ctrl+r to register.") + "\n")
	return b.String()
}

// registerSubmitMsg carries a completed registration form.
type registerSubmitMsg struct{ req domain.RegisterRequest }

type registerResultMsg struct {
	email string
	err   error
}

// registerView is the public account creation page. Success sends the user
// to the login page; it never signs in.
type registerView struct {
	state *SharedState
	req   domain.RegisterRequest
	form  *huh.Form
	spin  spinner.Model
	busy  bool
	sent  bool // form completion already turned into a submit
	err   string
}

func newRegisterView(state *SharedState) *registerView {
	v := &registerView{state: state, spin: newSpinner()}
	v.form = registerForm(&v.req)
	return v
}

func (v *registerView) ID() ViewID    { return ViewRegister }
func (v *registerView) Title() string { return "Create account" }
func (v *registerView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "next"),
		binding("esc", "back to sign in"),
	}
}

func (v *registerView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *registerView) submit(req domain.RegisterRequest) tea.Cmd {
	sess := v.state.App.Session
	return func() tea.Msg {
		err := sess.Register(context.Background(), req)
		return registerResultMsg{email: req.Email, err: err}
	}
}

func (v *registerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerSubmitMsg:
		if v.busy {
			return v, nil
		}
		v.busy = true
		v.err = ""
		return v, tea.Batch(v.spin.Tick, v.submit(msg.req))

	case registerResultMsg:
		v.busy = false
		if msg.err == nil {
			return v, notice("Account created for " + strings.TrimSpace(msg.email) + ". Sign in to continue.")
		}
		v.err = userMessage(msg.err)
		v.req.Password = ""
		v.sent = false
		v.form = registerForm(&v.req)
		return v, v.form.Init()

	case spinner.TickMsg:
		return v, updateSpinner(&v.spin, v.busy, msg)

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		if msg.Type == tea.KeyEsc {
			v.state.navigate(route.Login)
			return v, nil
		}
	}

	if v.busy {
		return v, nil
	}
	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted && !v.sent {
		v.sent = true
		req := v.req
		return v, tea.Batch(cmd, func() tea.Msg { return registerSubmitMsg{req: req} })
	}
	return v, cmd
}

func (v *registerView) View() string {
	var b strings.Builder
	b.WriteString("\n" + formatter.Header("Create account") + "\n")
	if v.busy {
		b.WriteString(loadingLine(v.spin, "Creating account..."))
		return b.String()
	}
	b.WriteString(errorBlock(v.err))
	b.WriteString("\n" + v.form.View())
	return b.String()
}
