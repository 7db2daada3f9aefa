package cli

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// pickerProjectLimit caps the project picker in the new-task form.
const pickerProjectLimit = 100

// taskSubmitMsg carries a completed new-task form.
type taskSubmitMsg struct{ in domain.TaskInput }

type taskCreatedMsg struct {
	task *domain.Task
	err  error
}

// taskFormDataMsg carries the picker options for the new-task form.
type taskFormDataMsg struct {
	projects []domain.Project
	members  []domain.TeamMember
	err      error
}

// loadTaskFormData fetches the team roster, and the project list when
// withProjects is set, concurrently.
func loadTaskFormData(state *SharedState, withProjects bool) tea.Cmd {
	app := state.App
	return func() tea.Msg {
		ctx := context.Background()
		var (
			wg         sync.WaitGroup
			out        taskFormDataMsg
			projErr    error
			membersErr error
		)
		if withProjects {
			wg.Add(1)
			go func() {
				defer wg.Done()
				page, err := app.Projects.List(ctx, domain.ProjectFilter{Page: 1, Limit: pickerProjectLimit})
				if err != nil {
					projErr = err
					return
				}
				out.projects = page.Items
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.members, membersErr = app.Team.Members(ctx)
		}()
		wg.Wait()

		switch {
		case projErr != nil:
			out.err = projErr
		case membersErr != nil:
			out.err = membersErr
		}
		return out
	}
}

// openTaskForm pushes the new-task form once its picker data arrived. A
// non-empty projectID fixes the project and hides the picker.
func openTaskForm(state *SharedState, data taskFormDataMsg, projectID string) tea.Cmd {
	if data.err != nil {
		return noticeErr(data.err)
	}
	f := &taskFields{ProjectID: projectID}
	projects := data.projects
	if projectID == "" {
		if len(projects) == 0 {
			return notice("Create a project before adding tasks.")
		}
		f.ProjectID = projects[0].ID
	} else {
		projects = nil
	}
	return pushView(newFormView(state, "New task", taskForm(f, projects, data.members), func() tea.Msg {
		return taskSubmitMsg{in: f.input()}
	}))
}

func createTask(state *SharedState, in domain.TaskInput) tea.Cmd {
	svc := state.App.Tasks
	return func() tea.Msg {
		t, err := svc.Create(context.Background(), in)
		return taskCreatedMsg{task: t, err: err}
	}
}
