package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskStatus(t *testing.T) {
	got, err := ParseTaskStatus("in-progress")
	require.NoError(t, err)
	assert.Equal(t, TaskInProgress, got)

	_, err = ParseTaskStatus("blocked")
	assert.Error(t, err)
}

func TestParseTaskPriority(t *testing.T) {
	got, err := ParseTaskPriority("urgent")
	require.NoError(t, err)
	assert.Equal(t, PriorityUrgent, got)

	_, err = ParseTaskPriority("critical")
	assert.Error(t, err)
}

func TestTaskStatus_NextCyclesWorkflow(t *testing.T) {
	assert.Equal(t, TaskInProgress, TaskTodo.Next())
	assert.Equal(t, TaskCompleted, TaskInProgress.Next())
	assert.Equal(t, TaskTodo, TaskCompleted.Next())
	assert.Equal(t, TaskTodo, TaskStatus("").Next())
}

func TestTaskInput_Validate(t *testing.T) {
	in := TaskInput{Title: "Write docs", ProjectID: "p1", DueDate: "2025-01-01"}
	require.NoError(t, in.Validate())
	assert.Equal(t, PriorityMedium, in.Priority)

	missingProject := TaskInput{Title: "x"}
	assert.Error(t, missingProject.Validate())

	badDate := TaskInput{Title: "x", ProjectID: "p1", DueDate: "01/01/2025"}
	err := badDate.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestTask_DueAcceptsDateAndTimestamp(t *testing.T) {
	d, ok := (&Task{DueDate: "2025-03-04"}).Due()
	require.True(t, ok)
	assert.Equal(t, 4, d.Day())

	d, ok = (&Task{DueDate: "2025-03-04T10:00:00Z"}).Due()
	require.True(t, ok)
	assert.Equal(t, time.March, d.Month())

	_, ok = (&Task{DueDate: "soon"}).Due()
	assert.False(t, ok)
}

func TestComputeTaskStats(t *testing.T) {
	today := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	tasks := []Task{
		{Status: TaskCompleted, DueDate: "2025-01-01"},
		{Status: TaskTodo, DueDate: "2025-06-09"},
		{Status: TaskInProgress, DueDate: "2025-06-10"},
		{Status: TaskTodo},
	}

	s := ComputeTaskStats(tasks, today)

	assert.Equal(t, TaskStats{Total: 4, Completed: 1, Pending: 3, Overdue: 1}, s)
}

func TestPatches_Empty(t *testing.T) {
	assert.True(t, TaskPatch{}.Empty())
	assert.False(t, TaskPatch{Title: StrPtr("x")}.Empty())
	assert.True(t, ProjectPatch{}.Empty())
}
