package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskboard/internal/api"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/route"
	"github.com/alexanderramin/taskboard/internal/testutil"
)

func TestProjectService_CreateGetUpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProjectService(env.client)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.ProjectInput{Name: "  Launch  ", Description: "Q3 launch"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Launch", created.Name)
	assert.Equal(t, domain.ProjectActive, created.Status, "status should default to active")

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q3 launch", fetched.Description)
	assert.Empty(t, fetched.Tasks)

	status := domain.ProjectOnHold
	updated, err := svc.Update(ctx, created.ID, domain.ProjectPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectOnHold, updated.Status)
	assert.Equal(t, "Launch", updated.Name)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.True(t, api.IsNotFound(err))
}

func TestProjectService_CreateRequiresName(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewProjectService(env.client).Create(context.Background(), domain.ProjectInput{Name: "   "})
	require.Error(t, err)
	assert.Zero(t, env.backend.CountRequests(http.MethodPost, "/projects"))
}

func TestProjectService_UpdateRejectsEmptyPatch(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewProjectService(env.client).Update(context.Background(), "p1", domain.ProjectPatch{})
	assert.Error(t, err)
}

func TestProjectService_ListSendsOnlySetParams(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 12; i++ {
		env.backend.AddProject(testutil.NewTestProject(""))
	}
	svc := NewProjectService(env.client)

	page, err := svc.List(context.Background(), domain.ProjectFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext())

	reqs := env.backend.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, []string{"1"}, last.Query["page"])
	assert.Equal(t, []string{"10"}, last.Query["limit"])
	_, hasSearch := last.Query["search"]
	assert.False(t, hasSearch)
	assert.Contains(t, last.Authorization, "Bearer ")
}

func TestProjectService_ListSearch(t *testing.T) {
	env := newTestEnv(t)
	env.backend.AddProject(testutil.NewTestProject("Website redesign"))
	env.backend.AddProject(testutil.NewTestProject("Mobile app"))

	page, err := NewProjectService(env.client).List(context.Background(), domain.ProjectFilter{Search: "website"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Website redesign", page.Items[0].Name)
}

func TestProjectService_ExpiredSessionForcesLogout(t *testing.T) {
	env := newTestEnv(t)
	env.nav.Navigate(route.Projects)
	env.backend.RevokeAll()

	_, err := NewProjectService(env.client).List(context.Background(), domain.ProjectFilter{})
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, route.Login, env.nav.Current())

	token, err := env.store.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestProjectService_GetIncludesTasks(t *testing.T) {
	env := newTestEnv(t)
	pid := env.backend.AddProject(testutil.NewTestProject("With tasks"))
	env.backend.AddTask(testutil.NewTestTask(pid, "one"))
	env.backend.AddTask(testutil.NewTestTask(pid, "two"))

	p, err := NewProjectService(env.client).Get(context.Background(), pid)
	require.NoError(t, err)
	require.Len(t, p.Tasks, 2)
	assert.Equal(t, "one", p.Tasks[0].Title)
}
