package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/taskboard/internal/domain"
)

var memberHeaders = []string{"ID", "NAME", "EMAIL"}

func memberRows(members []domain.TeamMember) [][]string {
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		name := m.Name
		if name == "" {
			name = Dim("--")
		}
		rows = append(rows, []string{TruncID(m.ID), name, m.Email})
	}
	return rows
}

// FormatMembers renders the team list.
func FormatMembers(members []domain.TeamMember) string {
	if len(members) == 0 {
		return Dim("No team members.") + "\n"
	}
	return RenderTable(memberHeaders, memberRows(members))
}

// FormatMemberTable renders members with a cursor for the TUI.
func FormatMemberTable(members []domain.TeamMember, cursor int) string {
	return RenderTableCursor(memberHeaders, memberRows(members), cursor)
}

// FormatProfile renders the signed-in user. expires is the token expiry
// when known.
func FormatProfile(u *domain.User, expires *time.Time, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Profile") + "\n")
	b.WriteString(Dim("Name:    ") + " " + domain.CoalesceStr(u.Name, "--") + "\n")
	b.WriteString(Dim("Email:   ") + " " + u.Email + "\n")
	b.WriteString(Dim("ID:      ") + " " + u.ID + "\n")
	b.WriteString(Dim("Joined:  ") + " " + HumanTimestamp(u.CreatedAt, now) + "\n")
	if expires != nil {
		label := "Session expires " + expires.Local().Format("Jan 2 15:04")
		if expires.Before(now) {
			b.WriteString(StyleRed.Render("Session expired") + "\n")
		} else {
			b.WriteString(Dim(label) + "\n")
		}
	}
	return b.String()
}

func joinHorizontal(blocks ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
