package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// ProjectRows builds table rows for a project list.
func ProjectRows(projects []domain.Project, now time.Time) [][]string {
	rows := make([][]string, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(Truncate(p.Name, 40)),
			ProjectStatusPill(p.Status),
			Dim(Truncate(p.Description, 50)),
			Dim(HumanTimestamp(p.UpdatedAt, now)),
		})
	}
	return rows
}

var projectHeaders = []string{"ID", "NAME", "STATUS", "DESCRIPTION", "UPDATED"}

// FormatProjectList renders one page of projects.
func FormatProjectList(page *domain.Page[domain.Project], now time.Time) string {
	if len(page.Items) == 0 {
		return Dim("No projects found.") + "\n"
	}
	return RenderTable(projectHeaders, ProjectRows(page.Items, now)) +
		Pager(page.CurrentPage, page.TotalPages) + "\n"
}

// FormatProjectTable renders projects with a cursor for the TUI.
func FormatProjectTable(projects []domain.Project, cursor int, now time.Time) string {
	return RenderTableCursor(projectHeaders, ProjectRows(projects, now), cursor)
}

// FormatProjectDetail renders a project with its tasks.
func FormatProjectDetail(p *domain.Project, now time.Time) string {
	var b strings.Builder
	b.WriteString(Title(p.Name) + "\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:     "), p.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("Status: "), ProjectStatusPill(p.Status))
	fmt.Fprintf(&b, "%s %s\n", Dim("Created:"), HumanTimestamp(p.CreatedAt, now))
	if p.Description != "" {
		b.WriteString("\n" + p.Description + "\n")
	}

	b.WriteString("\n" + Header(fmt.Sprintf("Tasks (%d)", len(p.Tasks))) + "\n")
	if len(p.Tasks) == 0 {
		b.WriteString(Dim("No tasks in this project.") + "\n")
		return b.String()
	}
	b.WriteString(RenderTable(taskHeadersNoProject, taskRows(p.Tasks, now, false)))
	return b.String()
}
