// Package route defines the logical navigation surface: the routes, which of
// them are public, the two guards, and the Navigator that tracks the current
// route.
package route

import (
	"strings"
)

// Logical routes. Routes with a ":id" segment take one path parameter.
const (
	Login         = "/login"
	Register      = "/register"
	Dashboard     = "/dashboard"
	Projects      = "/projects"
	ProjectDetail = "/projects/:id"
	Tasks         = "/tasks"
	TaskDetail    = "/tasks/:id"
	Team          = "/team"
	Profile       = "/profile"
)

// Default is the protected landing route and the catch-all target.
const Default = Dashboard

var patterns = []string{
	Login, Register, Dashboard, Projects, ProjectDetail,
	Tasks, TaskDetail, Team, Profile,
}

// Match is a path resolved against a route pattern.
type Match struct {
	Pattern string
	Path    string
	ID      string
}

// MatchPath matches path against the known patterns. Trailing slashes and
// query strings are ignored.
func MatchPath(path string) (Match, bool) {
	clean := cleanPath(path)
	segs := split(clean)
	for _, p := range patterns {
		psegs := split(p)
		if len(psegs) != len(segs) {
			continue
		}
		m := Match{Pattern: p, Path: clean}
		ok := true
		for i, ps := range psegs {
			switch {
			case strings.HasPrefix(ps, ":"):
				if segs[i] == "" {
					ok = false
				}
				m.ID = segs[i]
			case ps != segs[i]:
				ok = false
			}
			if !ok {
				break
			}
		}
		if ok {
			return m, true
		}
	}
	return Match{}, false
}

// Resolve is MatchPath with the catch-all: unknown paths resolve to Default.
func Resolve(path string) Match {
	if m, ok := MatchPath(path); ok {
		return m
	}
	return Match{Pattern: Default, Path: Default}
}

// IsPublic reports whether path is a public-only route (login or register).
func IsPublic(path string) bool {
	m, ok := MatchPath(path)
	if !ok {
		return false
	}
	return m.Pattern == Login || m.Pattern == Register
}

// ProjectPath builds /projects/<id>.
func ProjectPath(id string) string { return "/projects/" + id }

// TaskPath builds /tasks/<id>.
func TaskPath(id string) string { return "/tasks/" + id }

func cleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

func split(p string) []string {
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}
