package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskboard/internal/api"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/testutil"
)

func TestTaskService_CreateThenGetRoundTrip(t *testing.T) {
	for _, wrapped := range []bool{false, true} {
		env := newTestEnv(t)
		env.backend.WrapEntities(wrapped)
		pid := env.backend.AddProject(testutil.NewTestProject("Docs"))
		svc := NewTaskService(env.client)
		ctx := context.Background()

		in := domain.TaskInput{
			Title:       "Write guide",
			Description: "Getting started",
			ProjectID:   pid,
			Priority:    domain.PriorityHigh,
			DueDate:     "2026-11-30",
			AssignedTo:  env.userID,
		}
		created, err := svc.Create(ctx, in)
		require.NoError(t, err)

		fetched, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)

		assert.Equal(t, in.Title, fetched.Title)
		assert.Equal(t, in.Description, fetched.Description)
		assert.Equal(t, in.ProjectID, fetched.ProjectID)
		assert.Equal(t, in.Priority, fetched.Priority)
		assert.Equal(t, in.DueDate, fetched.DueDate)
		assert.Equal(t, in.AssignedTo, fetched.AssignedTo)
		assert.Equal(t, domain.TaskTodo, fetched.Status)
		require.NotNil(t, fetched.Project)
		assert.Equal(t, "Docs", fetched.Project.Name)
		require.NotNil(t, fetched.Assignee)
		assert.Equal(t, "ann@example.com", fetched.Assignee.Email)

		rec, ok := env.backend.TaskRecord(created.ID)
		require.True(t, ok)
		assert.Equal(t, "2026-11-30", rec.DueDate)
	}
}

func TestTaskService_CreateDefaultsPriority(t *testing.T) {
	env := newTestEnv(t)
	pid := env.backend.AddProject(testutil.NewTestProject(""))

	task, err := NewTaskService(env.client).Create(context.Background(), domain.TaskInput{Title: "x", ProjectID: pid})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
}

func TestTaskService_CreateRejectsBadDueDate(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewTaskService(env.client).Create(context.Background(), domain.TaskInput{Title: "x", ProjectID: "p", DueDate: "30/11/2026"})
	require.Error(t, err)
	assert.Zero(t, env.backend.CountRequests(http.MethodPost, "/tasks"))
}

func TestTaskService_CreateUnknownProject(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewTaskService(env.client).Create(context.Background(), domain.TaskInput{Title: "x", ProjectID: "missing"})
	require.Error(t, err)
	assert.Equal(t, "project does not exist", api.UserMessage(err))
}

func TestTaskService_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	pid := env.backend.AddProject(testutil.NewTestProject(""))
	tid := env.backend.AddTask(testutil.NewTestTask(pid, "flip"))
	svc := NewTaskService(env.client)

	task, err := svc.UpdateStatus(context.Background(), tid, "in-progress")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, task.Status)
	assert.Equal(t, 1, env.backend.CountRequests(http.MethodPatch, "/tasks/"+tid+"/status"))

	_, err = svc.UpdateStatus(context.Background(), tid, "DONE")
	assert.Error(t, err)
}

func TestTaskService_UpdatePartial(t *testing.T) {
	env := newTestEnv(t)
	pid := env.backend.AddProject(testutil.NewTestProject(""))
	tid := env.backend.AddTask(testutil.NewTestTask(pid, "keep title", testutil.WithDueDate("2026-01-01")))

	prio := domain.PriorityUrgent
	task, err := NewTaskService(env.client).Update(context.Background(), tid, domain.TaskPatch{Priority: &prio})
	require.NoError(t, err)
	assert.Equal(t, "keep title", task.Title)
	assert.Equal(t, domain.PriorityUrgent, task.Priority)
	assert.Equal(t, "2026-01-01", task.DueDate)
}

func TestTaskService_ListFilters(t *testing.T) {
	env := newTestEnv(t)
	p1 := env.backend.AddProject(testutil.NewTestProject("one"))
	p2 := env.backend.AddProject(testutil.NewTestProject("two"))
	env.backend.AddTask(testutil.NewTestTask(p1, "a", testutil.WithTaskStatus("COMPLETED")))
	env.backend.AddTask(testutil.NewTestTask(p1, "b", testutil.WithPriority("HIGH")))
	env.backend.AddTask(testutil.NewTestTask(p2, "c", testutil.WithAssignee(env.userID)))
	svc := NewTaskService(env.client)
	ctx := context.Background()

	page, err := svc.List(ctx, domain.TaskFilter{ProjectID: p1})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = svc.List(ctx, domain.TaskFilter{Status: domain.TaskCompleted})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].Title)

	page, err = svc.List(ctx, domain.TaskFilter{Priority: domain.PriorityHigh, ProjectID: p1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b", page.Items[0].Title)

	page, err = svc.List(ctx, domain.TaskFilter{AssignedTo: env.userID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "c", page.Items[0].Title)
}

func TestTaskService_Delete(t *testing.T) {
	env := newTestEnv(t)
	pid := env.backend.AddProject(testutil.NewTestProject(""))
	tid := env.backend.AddTask(testutil.NewTestTask(pid, ""))
	svc := NewTaskService(env.client)

	require.NoError(t, svc.Delete(context.Background(), tid))
	err := svc.Delete(context.Background(), tid)
	assert.True(t, api.IsNotFound(err))
}

func TestTaskService_ServerErrorPassesThrough(t *testing.T) {
	env := newTestEnv(t)
	env.backend.FailNext(http.MethodGet, "/tasks", http.StatusInternalServerError, "db down")

	_, err := NewTaskService(env.client).List(context.Background(), domain.TaskFilter{})
	require.Error(t, err)
	assert.Equal(t, "Internal server error. Try again later.", api.UserMessage(err))
}
