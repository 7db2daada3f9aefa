package domain

// ProjectFilter selects a page of projects. Zero values mean "not set".
type ProjectFilter struct {
	Page   int
	Limit  int
	Search string
}

// TaskFilter selects a page of tasks. Zero values mean "not set".
type TaskFilter struct {
	Page       int
	Limit      int
	Search     string
	ProjectID  string
	Status     TaskStatus
	Priority   TaskPriority
	AssignedTo string
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Items       []T
	TotalPages  int
	CurrentPage int
}

// HasNext reports whether a page after CurrentPage exists.
func (p *Page[T]) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}
