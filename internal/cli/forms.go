package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
)

// taskboardHuhTheme returns a huh theme using the formatter palette.
func taskboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func themed(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(taskboardHuhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(s, "@") {
		return errors.New("enter a valid email")
	}
	return nil
}

// loginForm collects credentials into req.
func loginForm(req *domain.LoginRequest) *huh.Form {
	return themed(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&req.Email).Validate(validateEmail),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).
				Value(&req.Password).Validate(validateRequired("password")),
		),
	)
}

// registerForm collects a new account into req.
func registerForm(req *domain.RegisterRequest) *huh.Form {
	return themed(
		huh.NewGroup(
			huh.NewInput().Title("Name").Placeholder("optional").Value(&req.Name),
			huh.NewInput().Title("Email").Value(&req.Email).Validate(validateEmail),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).
				Value(&req.Password).Validate(validateRequired("password")),
		),
	)
}

// projectFields backs the project create/edit form.
type projectFields struct {
	Name        string
	Description string
	Status      domain.ProjectStatus
}

func (f *projectFields) input() domain.ProjectInput {
	return domain.ProjectInput{Name: f.Name, Description: f.Description, Status: f.Status}
}

func projectStatusOptions() []huh.Option[domain.ProjectStatus] {
	opts := make([]huh.Option[domain.ProjectStatus], 0, len(domain.ProjectStatuses))
	for _, s := range domain.ProjectStatuses {
		opts = append(opts, huh.NewOption(strings.ToLower(strings.ReplaceAll(string(s), "_", " ")), s))
	}
	return opts
}

func projectForm(f *projectFields) *huh.Form {
	if f.Status == "" {
		f.Status = domain.ProjectActive
	}
	return themed(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&f.Name).Validate(validateRequired("name")),
			huh.NewText().Title("Description").Value(&f.Description),
			huh.NewSelect[domain.ProjectStatus]().Title("Status").
				Options(projectStatusOptions()...).Value(&f.Status),
		),
	)
}

// taskFields backs the task create/edit form.
type taskFields struct {
	Title       string
	Description string
	ProjectID   string
	Priority    domain.TaskPriority
	DueDate     string
	AssignedTo  string
}

func (f *taskFields) input() domain.TaskInput {
	return domain.TaskInput{
		Title:       f.Title,
		Description: f.Description,
		ProjectID:   f.ProjectID,
		Priority:    f.Priority,
		DueDate:     strings.TrimSpace(f.DueDate),
		AssignedTo:  f.AssignedTo,
	}
}

func priorityOptions() []huh.Option[domain.TaskPriority] {
	opts := make([]huh.Option[domain.TaskPriority], 0, len(domain.TaskPriorities))
	for _, p := range domain.TaskPriorities {
		opts = append(opts, huh.NewOption(strings.ToLower(string(p)), p))
	}
	return opts
}

func assigneeOptions(members []domain.TeamMember) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Unassigned", "")}
	for _, m := range members {
		opts = append(opts, huh.NewOption(domain.CoalesceStr(m.Name, m.Email), m.ID))
	}
	return opts
}

// taskForm builds the task form. The project picker is shown only when
// projects is non-empty; otherwise f.ProjectID must already be set.
func taskForm(f *taskFields, projects []domain.Project, members []domain.TeamMember) *huh.Form {
	if f.Priority == "" {
		f.Priority = domain.PriorityMedium
	}
	fields := []huh.Field{
		huh.NewInput().Title("Title").Value(&f.Title).Validate(validateRequired("title")),
		huh.NewText().Title("Description").Value(&f.Description),
	}
	if len(projects) > 0 {
		opts := make([]huh.Option[string], 0, len(projects))
		for _, p := range projects {
			opts = append(opts, huh.NewOption(p.Name, p.ID))
		}
		fields = append(fields, huh.NewSelect[string]().Title("Project").Options(opts...).Value(&f.ProjectID))
	}
	fields = append(fields,
		huh.NewSelect[domain.TaskPriority]().Title("Priority").Options(priorityOptions()...).Value(&f.Priority),
		huh.NewInput().Title("Due date").Placeholder("YYYY-MM-DD, blank for none").
			Value(&f.DueDate).Validate(func(s string) error { return domain.ValidateDueDate(strings.TrimSpace(s)) }),
		huh.NewSelect[string]().Title("Assignee").Options(assigneeOptions(members)...).Value(&f.AssignedTo),
	)
	return themed(huh.NewGroup(fields...))
}

// assigneeForm is a single picker for reassigning a task.
func assigneeForm(value *string, members []domain.TeamMember) *huh.Form {
	return themed(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Assign to").Options(assigneeOptions(members)...).Value(value),
		),
	)
}

func confirmForm(title string, value *bool) *huh.Form {
	return themed(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative("Delete").Negative("Cancel").Value(value),
		),
	)
}
