package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/route"
)

// maxHistory bounds the esc-back history.
const maxHistory = 50

// gotoKeys are the second key of the "g" navigation chords.
var gotoKeys = map[string]string{
	"d": route.Dashboard,
	"p": route.Projects,
	"t": route.Tasks,
	"m": route.Team,
	"u": route.Profile,
}

// appModel is the root bubbletea Model for the TUI. The mounted view always
// follows the navigator: after every update the current route and session
// are re-read and, when either changed, the route is guarded and mounted.
type appModel struct {
	state *SharedState

	mounted string // route path of the mounted view
	authed  bool
	view    View
	modals  []View // forms stacked over the routed view

	history   []string
	goingBack bool
	pendingG  bool

	notice    string
	noticeErr bool
	quitting  bool
}

func newAppModel(app *App) *appModel {
	return &appModel{state: &SharedState{App: app}}
}

// activeView returns the top modal, or the routed view.
func (m *appModel) activeView() View {
	if n := len(m.modals); n > 0 {
		return m.modals[n-1]
	}
	return m.view
}

func (m *appModel) setActiveView(v View) {
	if n := len(m.modals); n > 0 {
		m.modals[n-1] = v
		return
	}
	m.view = v
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m *appModel) Init() tea.Cmd {
	return m.syncRoute()
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.quitting {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.syncRoute())
}

func (m *appModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		var cmds []tea.Cmd
		if m.view != nil {
			updated, cmd := m.view.Update(msg)
			m.view = updated.(View)
			cmds = append(cmds, cmd)
		}
		for i, v := range m.modals {
			updated, cmd := v.Update(msg)
			m.modals[i] = updated.(View)
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.modals = append(m.modals, msg.view)
		return msg.view.Init()

	case popViewMsg:
		m.popModal()
		return nil

	case formDoneMsg:
		m.popModal()
		return msg.next

	case noticeMsg:
		m.notice = msg.text
		m.noticeErr = msg.err
		return nil

	case tea.QuitMsg:
		m.quitting = true
		return nil
	}

	return m.forward(msg)
}

func (m *appModel) forward(msg tea.Msg) tea.Cmd {
	v := m.activeView()
	if v == nil {
		return nil
	}
	updated, cmd := v.Update(msg)
	m.setActiveView(updated.(View))
	return cmd
}

func (m *appModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return tea.Quit
	}

	// Any key dismisses the previous notice.
	m.notice = ""

	if viewCapturesInput(m.activeView()) {
		m.pendingG = false
		return m.forward(msg)
	}

	if m.pendingG {
		m.pendingG = false
		if path, ok := gotoKeys[msg.String()]; ok {
			m.state.navigate(path)
			return nil
		}
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return tea.Quit
	case "g":
		m.pendingG = true
		return nil
	case "esc":
		if len(m.modals) > 0 {
			m.popModal()
			return nil
		}
		m.back()
		return nil
	}

	return m.forward(msg)
}

func (m *appModel) popModal() {
	if n := len(m.modals); n > 0 {
		if c, ok := m.modals[n-1].(closer); ok {
			c.Close()
		}
		m.modals = m.modals[:n-1]
	}
}

func (m *appModel) back() {
	n := len(m.history)
	if n == 0 {
		return
	}
	prev := m.history[n-1]
	m.history = m.history[:n-1]
	m.goingBack = true
	m.state.navigate(prev)
}

// syncRoute mounts the view for the navigator's current route when the route
// or the session changed. Guard redirects are applied before anything is
// constructed, so a guarded view never starts its fetches.
func (m *appModel) syncRoute() tea.Cmd {
	nav := m.state.App.Nav
	authed := m.state.App.Session.IsAuthenticated()
	path := nav.Current()
	if m.view != nil && path == m.mounted && authed == m.authed {
		return nil
	}
	m.authed = authed

	// A redirect target always renders, so this settles within two hops.
	for range 3 {
		d := route.Guard(authed, path)
		if d.Render {
			break
		}
		nav.Navigate(d.RedirectTo)
		path = nav.Current()
	}
	if m.view != nil && path == m.mounted {
		return nil
	}
	return m.mount(path)
}

func (m *appModel) mount(path string) tea.Cmd {
	if m.view != nil {
		if c, ok := m.view.(closer); ok {
			c.Close()
		}
		if !m.goingBack && m.mounted != "" && !route.IsPublic(m.mounted) {
			m.history = append(m.history, m.mounted)
			if len(m.history) > maxHistory {
				m.history = m.history[len(m.history)-maxHistory:]
			}
		}
	}
	m.goingBack = false
	for len(m.modals) > 0 {
		m.popModal()
	}
	if route.IsPublic(path) {
		m.history = nil
	}

	m.view = m.newView(route.Resolve(path))
	m.mounted = path

	cmds := []tea.Cmd{m.view.Init()}
	if m.state.Width > 0 {
		size := tea.WindowSizeMsg{Width: m.state.Width, Height: m.state.Height}
		updated, cmd := m.view.Update(size)
		m.view = updated.(View)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *appModel) newView(match route.Match) View {
	s := m.state
	switch match.Pattern {
	case route.Login:
		return newLoginView(s)
	case route.Register:
		return newRegisterView(s)
	case route.Projects:
		return newProjectListView(s)
	case route.ProjectDetail:
		return newProjectDetailView(s, match.ID)
	case route.Tasks:
		return newTaskListView(s)
	case route.TaskDetail:
		return newTaskDetailView(s, match.ID)
	case route.Team:
		return newTeamView(s)
	case route.Profile:
		return newProfileView(s)
	default:
		return newDashboardView(s)
	}
}

func (m *appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("taskboard")

	var crumbs []string
	if m.view != nil && m.view.Title() != "" {
		crumbs = append(crumbs, m.view.Title())
	}
	for _, v := range m.modals {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	if u := m.state.App.Session.User(); u != nil && m.authed {
		who := formatter.StyleGreen.Render(u.DisplayName())
		gap := m.state.Width - lipgloss.Width(header) - lipgloss.Width(who)
		if gap < 2 {
			gap = 2
		}
		header += strings.Repeat(" ", gap) + who
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if !viewCapturesInput(m.activeView()) {
		if len(m.modals) > 0 || len(m.history) > 0 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		if m.authed {
			hints = append(hints, formatter.Dim("g d/p/t/m/u: go"))
		}
		hints = append(hints, formatter.Dim("q: quit"))
	}

	line := ""
	switch {
	case m.notice != "" && m.noticeErr:
		line = formatter.ErrorLine(m.notice)
	case m.notice != "":
		line = formatter.SuccessLine(m.notice)
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + line + "\n" + strings.Join(hints, "  ")
}
