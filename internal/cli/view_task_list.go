package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/route"
)

const taskPageSize = 20

// tasksLoadedMsg carries one page of tasks for the load numbered seq.
type tasksLoadedMsg struct {
	seq  uint64
	page *domain.Page[domain.Task]
	err  error
}

// taskListView is a filterable, paged list of tasks. Changing a filter
// refetches immediately; only the newest response is shown.
type taskListView struct {
	state *SharedState
	fetch fetcher
	spin  spinner.Model

	filter    domain.TaskFilter
	searching bool

	page    *domain.Page[domain.Task]
	cursor  int
	loading bool
	err     string
}

func newTaskListView(state *SharedState) *taskListView {
	return &taskListView{
		state:  state,
		spin:   newSpinner(),
		filter: domain.TaskFilter{Page: 1, Limit: taskPageSize},
	}
}

func (v *taskListView) ID() ViewID          { return ViewTaskList }
func (v *taskListView) Title() string       { return "Tasks" }
func (v *taskListView) CapturesInput() bool { return v.searching }
func (v *taskListView) Close()              { v.fetch.stop() }

func (v *taskListView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{binding("enter", "done"), binding("esc", "clear")}
	}
	return []key.Binding{
		binding("enter", "open"),
		binding("s", "status filter"),
		binding("p", "priority filter"),
		binding("/", "search"),
		binding("[/]", "page"),
		binding("n", "new"),
	}
}

func (v *taskListView) Init() tea.Cmd {
	return v.load()
}

func (v *taskListView) load() tea.Cmd {
	ctx, seq := v.fetch.next()
	v.loading = true
	svc := v.state.App.Tasks
	filter := v.filter
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		page, err := svc.List(ctx, filter)
		return tasksLoadedMsg{seq: seq, page: page, err: err}
	})
}

// refilter resets paging and reloads after a filter change.
func (v *taskListView) refilter() tea.Cmd {
	v.filter.Page = 1
	v.cursor = 0
	return v.load()
}

func (v *taskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
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

	case taskFormDataMsg:
		return v, openTaskForm(v.state, msg, "")

	case taskSubmitMsg:
		return v, createTask(v.state, msg.in)

	case taskCreatedMsg:
		if msg.err != nil {
			return v, noticeErr(msg.err)
		}
		return v, tea.Batch(notice("Created task "+msg.task.Title), v.load())

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

func (v *taskListView) items() []domain.Task {
	if v.page == nil {
		return nil
	}
	return v.page.Items
}

func (v *taskListView) updateNormal(msg tea.KeyMsg) tea.Cmd {
	items := v.items()
	if moveCursor(&v.cursor, len(items), msg.String()) {
		return nil
	}

	switch msg.String() {
	case "enter":
		if v.cursor < len(items) {
			v.state.navigate(route.TaskPath(items[v.cursor].ID))
		}
	case "s":
		v.filter.Status = cycleEnum(v.filter.Status, domain.TaskStatuses)
		return v.refilter()
	case "p":
		v.filter.Priority = cycleEnum(v.filter.Priority, domain.TaskPriorities)
		return v.refilter()
	case "m":
		if v.filter.AssignedTo == "" {
			if u := v.state.App.Session.User(); u != nil {
				v.filter.AssignedTo = u.ID
			}
		} else {
			v.filter.AssignedTo = ""
		}
		return v.refilter()
	case "c":
		v.filter = domain.TaskFilter{Page: 1, Limit: taskPageSize}
		return v.refilter()
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
	case "n":
		return loadTaskFormData(v.state, true)
	case "r":
		return v.load()
	}
	return nil
}

func (v *taskListView) updateSearch(msg tea.KeyMsg) tea.Cmd {
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
	return v.refilter()
}

func (v *taskListView) filterLine() string {
	label := func(name, value string) string {
		if value == "" {
			return formatter.Dim(name + ": all")
		}
		return formatter.Dim(name+": ") + formatter.StyleYellow.Render(strings.ToLower(value))
	}
	parts := []string{
		label("status", string(v.filter.Status)),
		label("priority", string(v.filter.Priority)),
	}
	if v.filter.AssignedTo != "" {
		parts = append(parts, formatter.StyleYellow.Render("mine"))
	}
	if v.searching || v.filter.Search != "" {
		cursor := ""
		if v.searching {
			cursor = "█"
		}
		parts = append(parts, formatter.StyleYellow.Render("/")+" "+v.filter.Search+cursor)
	}
	return "  " + strings.Join(parts, "  ")
}

func (v *taskListView) View() string {
	var b strings.Builder
	b.WriteString("\n" + v.filterLine() + "\n\n")

	if v.page == nil {
		if v.loading {
			b.WriteString(loadingLine(v.spin, "Loading tasks..."))
		}
		b.WriteString(errorBlock(v.err))
		return b.String()
	}

	if len(v.page.Items) == 0 {
		b.WriteString("  " + formatter.Dim("No tasks match these filters.") + "\n")
	} else {
		b.WriteString(formatter.FormatTaskTable(v.page.Items, v.cursor, v.state.App.now()))
	}

	footer := formatter.Pager(v.page.CurrentPage, v.page.TotalPages)
	if v.loading {
		footer += "  " + v.spin.View()
	}
	b.WriteString("\n" + footer + "\n")
	b.WriteString(errorBlock(v.err))
	return b.String()
}
