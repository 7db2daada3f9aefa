package wire

import (
	"net/url"
	"strconv"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// ProjectQuery encodes a project filter. Unset values are omitted.
func ProjectQuery(f domain.ProjectFilter) url.Values {
	q := url.Values{}
	setPaging(q, f.Page, f.Limit)
	setString(q, "search", f.Search)
	return q
}

// TaskQuery encodes a task filter. Unset values are omitted.
func TaskQuery(f domain.TaskFilter) url.Values {
	q := url.Values{}
	setPaging(q, f.Page, f.Limit)
	setString(q, "search", f.Search)
	setString(q, "project_id", f.ProjectID)
	setString(q, "status", string(f.Status))
	setString(q, "priority", string(f.Priority))
	setString(q, "assigned_to", f.AssignedTo)
	return q
}

func setPaging(q url.Values, page, limit int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}
