package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
)

type membersLoadedMsg struct {
	seq     uint64
	members []domain.TeamMember
	err     error
}

type memberTasksMsg struct {
	seq      uint64
	memberID string
	tasks    []domain.Task
	err      error
}

// teamView lists team members; enter loads the selected member's tasks.
type teamView struct {
	state     *SharedState
	fetch     fetcher
	taskFetch fetcher
	spin      spinner.Model

	members   []domain.TeamMember
	cursor    int
	loading   bool
	err       string
	selected  string
	tasks     []domain.Task
	tasksBusy bool
	tasksErr  string
}

func newTeamView(state *SharedState) *teamView {
	return &teamView{state: state, spin: newSpinner()}
}

func (v *teamView) ID() ViewID    { return ViewTeam }
func (v *teamView) Title() string { return "Team" }

func (v *teamView) Close() {
	v.fetch.stop()
	v.taskFetch.stop()
}

func (v *teamView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "show tasks"),
		binding("r", "refresh"),
	}
}

func (v *teamView) Init() tea.Cmd {
	return v.load()
}

func (v *teamView) load() tea.Cmd {
	ctx, seq := v.fetch.next()
	v.loading = true
	svc := v.state.App.Team
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		ms, err := svc.Members(ctx)
		return membersLoadedMsg{seq: seq, members: ms, err: err}
	})
}

func (v *teamView) loadTasks(memberID string) tea.Cmd {
	ctx, seq := v.taskFetch.next()
	v.selected = memberID
	v.tasksBusy = true
	svc := v.state.App.Team
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		ts, err := svc.MemberTasks(ctx, memberID)
		return memberTasksMsg{seq: seq, memberID: memberID, tasks: ts, err: err}
	})
}

func (v *teamView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case membersLoadedMsg:
		if !v.fetch.current(msg.seq) {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = userMessage(msg.err)
			return v, nil
		}
		v.members, v.err = msg.members, ""
		v.cursor = clampCursor(v.cursor, len(v.members))
		return v, nil

	case memberTasksMsg:
		if !v.taskFetch.current(msg.seq) {
			return v, nil
		}
		v.tasksBusy = false
		if msg.err != nil {
			v.tasksErr = userMessage(msg.err)
			return v, nil
		}
		v.tasks, v.tasksErr = msg.tasks, ""
		return v, nil

	case spinner.TickMsg:
		return v, updateSpinner(&v.spin, v.loading || v.tasksBusy, msg)

	case tea.KeyMsg:
		if moveCursor(&v.cursor, len(v.members), msg.String()) {
			return v, nil
		}
		switch msg.String() {
		case "enter":
			if v.cursor < len(v.members) {
				return v, v.loadTasks(v.members[v.cursor].ID)
			}
		case "r":
			return v, v.load()
		}
	}
	return v, nil
}

func (v *teamView) memberName(id string) string {
	for _, m := range v.members {
		if m.ID == id {
			return domain.CoalesceStr(m.Name, m.Email)
		}
	}
	return id
}

func (v *teamView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	switch {
	case v.members == nil && v.loading:
		b.WriteString(loadingLine(v.spin, "Loading team..."))
	case len(v.members) == 0 && v.err == "":
		b.WriteString("  " + formatter.Dim("No team members.") + "\n")
	case len(v.members) > 0:
		b.WriteString(formatter.FormatMemberTable(v.members, v.cursor))
	}
	b.WriteString(errorBlock(v.err))

	if v.selected == "" {
		return b.String()
	}
	b.WriteString("\n" + formatter.Header("Tasks for "+v.memberName(v.selected)) + "\n")
	switch {
	case v.tasksBusy && v.tasks == nil:
		b.WriteString(loadingLine(v.spin, "Loading tasks..."))
	default:
		b.WriteString(formatter.FormatTasks(v.tasks, v.state.App.now()))
	}
	b.WriteString(errorBlock(v.tasksErr))
	return b.String()
}
