package domain

import (
	"fmt"
	"strings"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectOnHold    ProjectStatus = "ON_HOLD"
)

// ProjectStatuses lists every project status in display order.
var ProjectStatuses = []ProjectStatus{ProjectActive, ProjectOnHold, ProjectCompleted}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// TaskStatuses lists every task status in workflow order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskCompleted}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

// TaskPriorities lists every priority from lowest to highest.
var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// ParseProjectStatus accepts any casing and "-" or " " as separators,
// e.g. "on-hold" -> ON_HOLD.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	norm := normalizeEnum(s)
	for _, st := range ProjectStatuses {
		if string(st) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid project status %q (want one of %s)", s, joinEnum(ProjectStatuses))
}

// ParseTaskStatus accepts any casing and "-" or " " as separators.
func ParseTaskStatus(s string) (TaskStatus, error) {
	norm := normalizeEnum(s)
	for _, st := range TaskStatuses {
		if string(st) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid task status %q (want one of %s)", s, joinEnum(TaskStatuses))
}

// ParseTaskPriority accepts any casing.
func ParseTaskPriority(s string) (TaskPriority, error) {
	norm := normalizeEnum(s)
	for _, p := range TaskPriorities {
		if string(p) == norm {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid task priority %q (want one of %s)", s, joinEnum(TaskPriorities))
}

// Next returns the status that follows s in workflow order, wrapping around.
func (s TaskStatus) Next() TaskStatus {
	for i, st := range TaskStatuses {
		if st == s {
			return TaskStatuses[(i+1)%len(TaskStatuses)]
		}
	}
	return TaskTodo
}

// Next returns the project status that follows s in display order, wrapping around.
func (s ProjectStatus) Next() ProjectStatus {
	for i, st := range ProjectStatuses {
		if st == s {
			return ProjectStatuses[(i+1)%len(ProjectStatuses)]
		}
	}
	return ProjectActive
}

func normalizeEnum(s string) string {
	s = strings.TrimSpace(strings.ToUpper(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

func joinEnum[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
