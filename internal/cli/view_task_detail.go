package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/route"
)

type taskLoadedMsg struct {
	seq  uint64
	task *domain.Task
	err  error
}

type teamLoadedMsg struct {
	seq     uint64
	members []domain.TeamMember
	err     error
}

type taskSavedMsg struct {
	task *domain.Task
	err  error
}

type taskDeletedMsg struct {
	title string
	err   error
}

type taskAssignSubmitMsg struct{ assignee string }

type taskEditSubmitMsg struct{ fields taskFields }

// taskDetailView shows one task. The task and the team roster are fetched
// concurrently; the roster feeds the assignee name and the reassign picker.
type taskDetailView struct {
	state *SharedState
	id    string
	fetch fetcher
	spin  spinner.Model
	vp    viewport.Model

	task          *domain.Task
	members       []domain.TeamMember
	loading       bool
	busy          bool
	confirmDelete bool
	err           string
	membersErr    string
}

func newTaskDetailView(state *SharedState, id string) *taskDetailView {
	vp := viewport.New(0, 0)
	vp.KeyMap = detailViewportKeyMap()
	return &taskDetailView{state: state, id: id, spin: newSpinner(), vp: vp}
}

// detailViewportKeyMap leaves letter keys free for view actions.
func detailViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

func (v *taskDetailView) ID() ViewID          { return ViewTaskDetail }
func (v *taskDetailView) CapturesInput() bool { return v.confirmDelete }
func (v *taskDetailView) Close()              { v.fetch.stop() }

func (v *taskDetailView) Title() string {
	if v.task != nil {
		return formatter.Truncate(v.task.Title, 30)
	}
	return "Task"
}

func (v *taskDetailView) ShortHelp() []key.Binding {
	if v.confirmDelete {
		return []key.Binding{binding("y", "delete"), binding("n", "cancel")}
	}
	return []key.Binding{
		binding("s", "next status"),
		binding("a", "assign"),
		binding("e", "edit"),
		binding("o", "open project"),
		binding("d", "delete"),
	}
}

func (v *taskDetailView) Init() tea.Cmd {
	return v.load()
}

func (v *taskDetailView) load() tea.Cmd {
	ctx, seq := v.fetch.next()
	v.loading = true
	app, id := v.state.App, v.id
	loadTask := func() tea.Msg {
		t, err := app.Tasks.Get(ctx, id)
		return taskLoadedMsg{seq: seq, task: t, err: err}
	}
	loadTeam := func() tea.Msg {
		ms, err := app.Team.Members(ctx)
		return teamLoadedMsg{seq: seq, members: ms, err: err}
	}
	return tea.Batch(v.spin.Tick, loadTask, loadTeam)
}

func (v *taskDetailView) save(patch domain.TaskPatch) tea.Cmd {
	v.busy = true
	svc, id := v.state.App.Tasks, v.id
	return func() tea.Msg {
		t, err := svc.Update(context.Background(), id, patch)
		return taskSavedMsg{task: t, err: err}
	}
}

func (v *taskDetailView) advanceStatus() tea.Cmd {
	v.busy = true
	svc, id, next := v.state.App.Tasks, v.id, v.task.Status.Next()
	return func() tea.Msg {
		t, err := svc.UpdateStatus(context.Background(), id, next)
		return taskSavedMsg{task: t, err: err}
	}
}

func (v *taskDetailView) remove() tea.Cmd {
	v.busy = true
	svc, id, title := v.state.App.Tasks, v.id, v.task.Title
	return func() tea.Msg {
		err := svc.Delete(context.Background(), id)
		return taskDeletedMsg{title: title, err: err}
	}
}

func (v *taskDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight() - 1
		return v, nil

	case taskLoadedMsg:
		if !v.fetch.current(msg.seq) {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = userMessage(msg.err)
			return v, nil
		}
		v.task, v.err = msg.task, ""
		return v, nil

	case teamLoadedMsg:
		if !v.fetch.current(msg.seq) {
			return v, nil
		}
		if msg.err != nil {
			v.membersErr = userMessage(msg.err)
			return v, nil
		}
		v.members, v.membersErr = msg.members, ""
		return v, nil

	case taskSavedMsg:
		v.busy = false
		if msg.err != nil {
			return v, noticeErr(msg.err)
		}
		v.task = msg.task
		return v, notice("Saved " + v.task.Title)

	case taskAssignSubmitMsg:
		assignee := msg.assignee
		return v, v.save(domain.TaskPatch{AssignedTo: &assignee})

	case taskEditSubmitMsg:
		f := msg.fields
		due := strings.TrimSpace(f.DueDate)
		return v, v.save(domain.TaskPatch{
			Title:       &f.Title,
			Description: &f.Description,
			Priority:    &f.Priority,
			DueDate:     &due,
			AssignedTo:  &f.AssignedTo,
		})

	case taskDeletedMsg:
		v.busy = false
		if msg.err != nil {
			return v, noticeErr(msg.err)
		}
		v.state.navigate(route.Tasks)
		return v, notice("Deleted task " + msg.title)

	case spinner.TickMsg:
		return v, updateSpinner(&v.spin, v.loading, msg)

	case tea.KeyMsg:
		return v, v.updateKey(msg)
	}
	return v, nil
}

func (v *taskDetailView) updateKey(msg tea.KeyMsg) tea.Cmd {
	if v.confirmDelete {
		v.confirmDelete = false
		if msg.String() == "y" {
			return v.remove()
		}
		return nil
	}
	if v.task == nil || v.busy {
		if msg.String() == "r" {
			return v.load()
		}
		return nil
	}

	switch msg.String() {
	case "s":
		return v.advanceStatus()
	case "a":
		assignee := v.task.AssignedTo
		form := assigneeForm(&assignee, v.members)
		return pushView(newFormView(v.state, "Assign", form, func() tea.Msg {
			return taskAssignSubmitMsg{assignee: assignee}
		}))
	case "e":
		t := v.task
		f := &taskFields{
			Title:       t.Title,
			Description: t.Description,
			ProjectID:   t.ProjectID,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
			AssignedTo:  t.AssignedTo,
		}
		return pushView(newFormView(v.state, "Edit task", taskForm(f, nil, v.members), func() tea.Msg {
			return taskEditSubmitMsg{fields: *f}
		}))
	case "o":
		if v.task.ProjectID != "" {
			v.state.navigate(route.ProjectPath(v.task.ProjectID))
		}
	case "d":
		v.confirmDelete = true
	case "r":
		return v.load()
	default:
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return cmd
	}
	return nil
}

func (v *taskDetailView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if v.task == nil {
		if v.loading {
			b.WriteString(loadingLine(v.spin, "Loading task..."))
		}
		b.WriteString(errorBlock(v.err))
		return b.String()
	}

	body := formatter.FormatTaskDetail(v.task, assigneeName(v.task, v.members), v.state.App.now())
	if v.membersErr != "" {
		body += "\n" + formatter.Dim("Team unavailable: "+v.membersErr) + "\n"
	}
	if v.confirmDelete {
		body += "\n" + formatter.StyleRed.Render("Delete this task? (y/n)") + "\n"
	}
	body += errorBlock(v.err)

	if v.vp.Height > 0 {
		v.vp.SetContent(body)
		b.WriteString(v.vp.View())
		return b.String()
	}
	b.WriteString(body)
	return b.String()
}
