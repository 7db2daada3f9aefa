package cli

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/route"
)

const (
	dashboardTaskLimit    = 100
	dashboardProjectLimit = 5
	dashboardDueSoon      = 5
)

type dashboardTasksMsg struct {
	seq   uint64
	tasks []domain.Task
	err   error
}

type dashboardProjectsMsg struct {
	seq      uint64
	projects []domain.Project
	err      error
}

// dashboardView shows task stats and recent projects. Tasks and projects are
// fetched concurrently and each result is merged on its own.
type dashboardView struct {
	state *SharedState
	fetch fetcher
	spin  spinner.Model

	tasks       []domain.Task
	tasksReady  bool
	tasksErr    string
	projects    []domain.Project
	projReady   bool
	projectsErr string
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state, spin: newSpinner()}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }
func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("r", "refresh"),
		binding("p", "projects"),
		binding("t", "tasks"),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.load()
}

func (v *dashboardView) Close() { v.fetch.stop() }

func (v *dashboardView) loading() bool {
	return !v.tasksReady || !v.projReady
}

func (v *dashboardView) load() tea.Cmd {
	ctx, seq := v.fetch.next()
	app := v.state.App
	loadTasks := func() tea.Msg {
		page, err := app.Tasks.List(ctx, domain.TaskFilter{Limit: dashboardTaskLimit})
		if err != nil {
			return dashboardTasksMsg{seq: seq, err: err}
		}
		return dashboardTasksMsg{seq: seq, tasks: page.Items}
	}
	loadProjects := func() tea.Msg {
		page, err := app.Projects.List(ctx, domain.ProjectFilter{Page: 1, Limit: dashboardProjectLimit})
		if err != nil {
			return dashboardProjectsMsg{seq: seq, err: err}
		}
		return dashboardProjectsMsg{seq: seq, projects: page.Items}
	}
	return tea.Batch(v.spin.Tick, loadTasks, loadProjects)
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardTasksMsg:
		if !v.fetch.current(msg.seq) {
			return v, nil
		}
		v.tasksReady = true
		if msg.err != nil {
			v.tasksErr = userMessage(msg.err)
			return v, nil
		}
		v.tasks, v.tasksErr = msg.tasks, ""
		return v, nil

	case dashboardProjectsMsg:
		if !v.fetch.current(msg.seq) {
			return v, nil
		}
		v.projReady = true
		if msg.err != nil {
			v.projectsErr = userMessage(msg.err)
			return v, nil
		}
		v.projects, v.projectsErr = msg.projects, ""
		return v, nil

	case spinner.TickMsg:
		return v, updateSpinner(&v.spin, v.loading(), msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			v.tasksReady, v.projReady = false, false
			return v, v.load()
		case "p":
			v.state.navigate(route.Projects)
		case "t":
			v.state.navigate(route.Tasks)
		}
	}
	return v, nil
}

// dueSoon returns open tasks with a due date, earliest first.
func (v *dashboardView) dueSoon() []domain.Task {
	var open []domain.Task
	for i := range v.tasks {
		t := v.tasks[i]
		if _, ok := t.Due(); ok && t.Status != domain.TaskCompleted {
			open = append(open, t)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		a, _ := open[i].Due()
		b, _ := open[j].Due()
		return a.Before(b)
	})
	if len(open) > dashboardDueSoon {
		open = open[:dashboardDueSoon]
	}
	return open
}

func (v *dashboardView) View() string {
	now := v.state.App.now()
	var b strings.Builder

	greeting := "Welcome back"
	if u := v.state.App.Session.User(); u != nil {
		greeting += ", " + u.DisplayName()
	}
	b.WriteString("\n" + formatter.Bold(greeting) + "\n\n")

	switch {
	case !v.tasksReady && len(v.tasks) == 0:
		b.WriteString(loadingLine(v.spin, "Loading tasks..."))
	default:
		b.WriteString(formatter.FormatStats(domain.ComputeTaskStats(v.tasks, now)) + "\n")
		b.WriteString(errorBlock(v.tasksErr))
		if due := v.dueSoon(); len(due) > 0 {
			b.WriteString("\n" + formatter.Header("Due soon") + "\n")
			b.WriteString(formatter.FormatTasks(due, now))
		}
	}

	b.WriteString("\n" + formatter.Header("Recent projects") + "\n")
	switch {
	case !v.projReady && len(v.projects) == 0:
		b.WriteString(loadingLine(v.spin, "Loading projects..."))
	case len(v.projects) == 0 && v.projectsErr == "":
		b.WriteString(formatter.Dim("No projects yet. Press g p to create one.") + "\n")
	default:
		if len(v.projects) > 0 {
			b.WriteString(formatter.RenderTable(
				[]string{"ID", "NAME", "STATUS", "DESCRIPTION", "UPDATED"},
				formatter.ProjectRows(v.projects, now),
			))
		}
		b.WriteString(errorBlock(v.projectsErr))
	}
	return b.String()
}
