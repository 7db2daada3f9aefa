package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/route"
)

const projectPageSize = 10

// projectsLoadedMsg carries one page of projects for the load numbered seq.
type projectsLoadedMsg struct {
	seq  uint64
	page *domain.Page[domain.Project]
	err  error
}

// projectSubmitMsg carries a completed new-project form.
type projectSubmitMsg struct{ in domain.ProjectInput }

type projectCreatedMsg struct {
	project *domain.Project
	err     error
}

// projectListView is a paged, searchable list of projects.
type projectListView struct {
	state *SharedState
	fetch fetcher
	spin  spinner.Model

	filter    domain.ProjectFilter
	searching bool

	page    *domain.Page[domain.Project]
	cursor  int
	loading bool
	err     string
}

func newProjectListView(state *SharedState) *projectListView {
	return &projectListView{
		state:  state,
		spin:   newSpinner(),
		filter: domain.ProjectFilter{Page: 1, Limit: projectPageSize},
	}
}

func (v *projectListView) ID() ViewID         { return ViewProjectList }
func (v *projectListView) Title() string      { return "Projects" }
func (v *projectListView) CapturesInput() bool { return v.searching }
func (v *projectListView) Close()             { v.fetch.stop() }
func (v *projectListView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{binding("enter", "done"), binding("esc", "clear")}
	}
	return []key.Binding{
		binding("enter", "open"),
		binding("n", "new"),
		binding("/", "search"),
		binding("[/]", "page"),
		binding("r", "refresh"),
	}
}

func (v *projectListView) Init() tea.Cmd {
	return v.load()
}

// load fetches the page described by the current filter. A newer load
// supersedes any older one still in flight.
func (v *projectListView) load() tea.Cmd {
	ctx, seq := v.fetch.next()
	v.loading = true
	svc := v.state.App.Projects
	filter := v.filter
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		page, err := svc.List(ctx, filter)
		return projectsLoadedMsg{seq: seq, page: page, err: err}
	})
}

func (v *projectListView) create(in domain.ProjectInput) tea.Cmd {
	svc := v.state.App.Projects
	return func() tea.Msg {
		p, err := svc.Create(context.Background(), in)
		return projectCreatedMsg{project: p, err: err}
	}
}

func (v *projectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		if !v.fetch.current(msg.seq) {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = userMessage(msg.err)
			return v, nil
		}
		v.page, v.err = msg.page, ""
		v.cursor = clampCursor(v.cursor, len(v.page.Items))
		return v, nil

	case projectSubmitMsg:
		return v, v.create(msg.in)

	case projectCreatedMsg:
		if msg.err != nil {
			return v, noticeErr(msg.err)
		}
		return v, tea.Batch(notice("Created project "+msg.project.Name), v.load())

	case spinner.TickMsg:
		return v, updateSpinner(&v.spin, v.loading, msg)

	case tea.KeyMsg:
		if v.searching {
			return v, v.updateSearch(msg)
		}
		return v, v.updateNormal(msg)
	}
	return v, nil
}

func (v *projectListView) items() []domain.Project {
	if v.page == nil {
		return nil
	}
	return v.page.Items
}

func (v *projectListView) updateNormal(msg tea.KeyMsg) tea.Cmd {
	items := v.items()
	if moveCursor(&v.cursor, len(items), msg.String()) {
		return nil
	}

	switch msg.String() {
	case "enter":
		if v.cursor < len(items) {
			v.state.navigate(route.ProjectPath(items[v.cursor].ID))
		}
	case "n":
		f := &projectFields{}
		return pushView(newFormView(v.state, "New project", projectForm(f), func() tea.Msg {
			return projectSubmitMsg{in: f.input()}
		}))
	case "/":
		v.searching = true
	case "]", "right", "l":
		if v.page != nil && v.page.HasNext() {
			v.filter.Page++
			v.cursor = 0
			return v.load()
		}
	case "[", "left", "h":
		if v.filter.Page > 1 {
			v.filter.Page--
			v.cursor = 0
			return v.load()
		}
	case "r":
		return v.load()
	}
	return nil
}

// updateSearch edits the search text. Every change refetches page one.
func (v *projectListView) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		return nil
	case tea.KeyEsc:
		v.searching = false
		if v.filter.Search == "" {
			return nil
		}
		v.filter.Search = ""
	case tea.KeyBackspace:
		r := []rune(v.filter.Search)
		if len(r) == 0 {
			return nil
		}
		v.filter.Search = string(r[:len(r)-1])
	case tea.KeySpace:
		v.filter.Search += " "
	case tea.KeyRunes:
		v.filter.Search += string(msg.Runes)
	default:
		return nil
	}
	v.filter.Page = 1
	v.cursor = 0
	return v.load()
}

func (v *projectListView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if v.searching || v.filter.Search != "" {
		cursor := ""
		if v.searching {
			cursor = "█"
		}
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter.Search + cursor + "\n\n")
	}

	if v.page == nil {
		if v.loading {
			b.WriteString(loadingLine(v.spin, "Loading projects..."))
		}
		b.WriteString(errorBlock(v.err))
		return b.String()
	}

	if len(v.page.Items) == 0 {
		b.WriteString("  " + formatter.Dim("No projects found.") + "\n")
	} else {
		b.WriteString(formatter.FormatProjectTable(v.page.Items, v.cursor, v.state.App.now()))
	}

	footer := formatter.Pager(v.page.CurrentPage, v.page.TotalPages)
	if v.loading {
		footer += "  " + v.spin.View()
	}
	b.WriteString("\n" + footer + "\n")
	b.WriteString(errorBlock(v.err))
	return b.String()
}

// projectLoadedMsg carries a single project for the detail view.
type projectLoadedMsg struct {
	seq     uint64
	project *domain.Project
	err     error
}

type projectEditSubmitMsg struct{ fields projectFields }

type projectSavedMsg struct {
	project *domain.Project
	err     error
}

type projectDeletedMsg struct {
	name string
	err  error
}

// projectDetailView shows one project with its tasks.
type projectDetailView struct {
	state *SharedState
	id    string
	fetch fetcher
	spin  spinner.Model

	project       *domain.Project
	cursor        int
	loading       bool
	busy          bool
	confirmDelete bool
	err           string
}

func newProjectDetailView(state *SharedState, id string) *projectDetailView {
	return &projectDetailView{state: state, id: id, spin: newSpinner()}
}

func (v *projectDetailView) ID() ViewID          { return ViewProjectDetail }
func (v *projectDetailView) CapturesInput() bool { return v.confirmDelete }
func (v *projectDetailView) Close()              { v.fetch.stop() }

func (v *projectDetailView) Title() string {
	if v.project != nil {
		return v.project.Name
	}
	return "Project"
}

func (v *projectDetailView) ShortHelp() []key.Binding {
	if v.confirmDelete {
		return []key.Binding{binding("y", "delete"), binding("n", "cancel")}
	}
	return []key.Binding{
		binding("enter", "open task"),
		binding("s", "next status"),
		binding("e", "edit"),
		binding("n", "new task"),
		binding("d", "delete"),
	}
}

func (v *projectDetailView) Init() tea.Cmd {
	return v.load()
}

func (v *projectDetailView) load() tea.Cmd {
	ctx, seq := v.fetch.next()
	v.loading = true
	svc, id := v.state.App.Projects, v.id
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		p, err := svc.Get(ctx, id)
		return projectLoadedMsg{seq: seq, project: p, err: err}
	})
}

func (v *projectDetailView) save(patch domain.ProjectPatch) tea.Cmd {
	v.busy = true
	svc, id := v.state.App.Projects, v.id
	return func() tea.Msg {
		p, err := svc.Update(context.Background(), id, patch)
		return projectSavedMsg{project: p, err: err}
	}
}

func (v *projectDetailView) remove() tea.Cmd {
	v.busy = true
	svc, id, name := v.state.App.Projects, v.id, v.Title()
	return func() tea.Msg {
		err := svc.Delete(context.Background(), id)
		return projectDeletedMsg{name: name, err: err}
	}
}

func (v *projectDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectLoadedMsg:
		if !v.fetch.current(msg.seq) {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = userMessage(msg.err)
			return v, nil
		}
		v.project, v.err = msg.project, ""
		v.cursor = clampCursor(v.cursor, len(v.project.Tasks))
		return v, nil

	case projectSavedMsg:
		v.busy = false
		if msg.err != nil {
			return v, noticeErr(msg.err)
		}
		if msg.project.Tasks == nil && v.project != nil {
			msg.project.Tasks = v.project.Tasks
		}
		v.project = msg.project
		return v, notice("Saved " + v.project.Name)

	case projectEditSubmitMsg:
		f := msg.fields
		return v, v.save(domain.ProjectPatch{Name: &f.Name, Description: &f.Description, Status: &f.Status})

	case projectDeletedMsg:
		v.busy = false
		if msg.err != nil {
			return v, noticeErr(msg.err)
		}
		v.state.navigate(route.Projects)
		return v, notice("Deleted project " + msg.name)

	case taskSubmitMsg:
		return v, createTask(v.state, msg.in)

	case taskCreatedMsg:
		if msg.err != nil {
			return v, noticeErr(msg.err)
		}
		return v, tea.Batch(notice("Created task "+msg.task.Title), v.load())

	case taskFormDataMsg:
		return v, openTaskForm(v.state, msg, v.id)

	case spinner.TickMsg:
		return v, updateSpinner(&v.spin, v.loading, msg)

	case tea.KeyMsg:
		return v, v.updateKey(msg)
	}
	return v, nil
}

func (v *projectDetailView) updateKey(msg tea.KeyMsg) tea.Cmd {
	if v.confirmDelete {
		v.confirmDelete = false
		if msg.String() == "y" {
			return v.remove()
		}
		return nil
	}
	if v.project == nil || v.busy {
		if msg.String() == "r" {
			return v.load()
		}
		return nil
	}

	tasks := v.project.Tasks
	if moveCursor(&v.cursor, len(tasks), msg.String()) {
		return nil
	}
	switch msg.String() {
	case "enter":
		if v.cursor < len(tasks) {
			v.state.navigate(route.TaskPath(tasks[v.cursor].ID))
		}
	case "s":
		next := v.project.Status.Next()
		return v.save(domain.ProjectPatch{Status: &next})
	case "e":
		f := &projectFields{Name: v.project.Name, Description: v.project.Description, Status: v.project.Status}
		return pushView(newFormView(v.state, "Edit project", projectForm(f), func() tea.Msg {
			return projectEditSubmitMsg{fields: *f}
		}))
	case "n":
		return loadTaskFormData(v.state, false)
	case "d":
		v.confirmDelete = true
	case "r":
		return v.load()
	}
	return nil
}

func (v *projectDetailView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if v.project == nil {
		if v.loading {
			b.WriteString(loadingLine(v.spin, "Loading project..."))
		}
		b.WriteString(errorBlock(v.err))
		return b.String()
	}

	now := v.state.App.now()
	p := v.project
	b.WriteString(formatter.Title(p.Name) + "\n")
	b.WriteString(formatter.ProjectStatusPill(p.Status) + "  " + formatter.TruncID(p.ID) + "\n")
	if p.Description != "" {
		b.WriteString("\n" + p.Description + "\n")
	}

	b.WriteString("\n" + formatter.Header(fmt.Sprintf("Tasks (%d)", len(p.Tasks))) + "\n")
	if len(p.Tasks) == 0 {
		b.WriteString(formatter.Dim("No tasks in this project. Press n to add one.") + "\n")
	} else {
		b.WriteString(formatter.FormatTaskTable(p.Tasks, v.cursor, now))
	}

	if v.confirmDelete {
		b.WriteString("\n" + formatter.StyleRed.Render("Delete "+p.Name+" and its tasks? (y/n)") + "\n")
	}
	b.WriteString(errorBlock(v.err))
	return b.String()
}
