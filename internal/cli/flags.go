package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// pageFlags binds the shared --page, --limit and --search flags.
type pageFlags struct {
	page   int
	limit  int
	search string
}

func (p *pageFlags) register(fs *pflag.FlagSet, defaultLimit int) {
	fs.IntVar(&p.page, "page", 1, "Page number (1-based)")
	fs.IntVar(&p.limit, "limit", defaultLimit, "Items per page")
	fs.StringVar(&p.search, "search", "", "Search text")
}

func (p *pageFlags) validate() error {
	if p.page < 1 {
		return fmt.Errorf("--page must be at least 1")
	}
	if p.limit < 1 {
		return fmt.Errorf("--limit must be at least 1")
	}
	return nil
}

// enumValue is a pflag.Value that only accepts values parse understands.
type enumValue[T ~string] struct {
	target *T
	parse  func(string) (T, error)
	kind   string
}

func newEnumValue[T ~string](target *T, parse func(string) (T, error), kind string) *enumValue[T] {
	return &enumValue[T]{target: target, parse: parse, kind: kind}
}

func (e *enumValue[T]) String() string { return string(*e.target) }
func (e *enumValue[T]) Type() string   { return e.kind }

func (e *enumValue[T]) Set(s string) error {
	v, err := e.parse(s)
	if err != nil {
		return err
	}
	*e.target = v
	return nil
}

func projectStatusFlag(fs *pflag.FlagSet, target *domain.ProjectStatus, usage string) {
	fs.Var(newEnumValue(target, domain.ParseProjectStatus, "status"), "status", usage+" ("+enumList(domain.ProjectStatuses)+")")
}

func taskStatusFlag(fs *pflag.FlagSet, target *domain.TaskStatus, usage string) {
	fs.Var(newEnumValue(target, domain.ParseTaskStatus, "status"), "status", usage+" ("+enumList(domain.TaskStatuses)+")")
}

func taskPriorityFlag(fs *pflag.FlagSet, target *domain.TaskPriority, usage string) {
	fs.Var(newEnumValue(target, domain.ParseTaskPriority, "priority"), "priority", usage+" ("+enumList(domain.TaskPriorities)+")")
}

func enumList[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strings.ToLower(string(v))
	}
	return strings.Join(parts, "|")
}

// changedString returns a pointer to the flag's value when it was set on the
// command line, nil otherwise.
func changedString(fs *pflag.FlagSet, name string, value string) *string {
	if !fs.Changed(name) {
		return nil
	}
	return &value
}

func changedEnum[T ~string](fs *pflag.FlagSet, name string, value T) *T {
	if !fs.Changed(name) {
		return nil
	}
	return &value
}
