package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskboard/internal/api"
	"github.com/alexanderramin/taskboard/internal/testutil"
)

func TestTeamService_MembersAndTasks(t *testing.T) {
	env := newTestEnv(t)
	bob := env.backend.AddUser("bob@example.com", "x", "Bob")
	pid := env.backend.AddProject(testutil.NewTestProject(""))
	env.backend.AddTask(testutil.NewTestTask(pid, "bob's", testutil.WithAssignee(bob)))
	env.backend.AddTask(testutil.NewTestTask(pid, "unassigned"))
	svc := NewTeamService(env.client)

	members, err := svc.Members(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "ann@example.com", members[0].Email)
	assert.Equal(t, "Bob", members[1].Name)

	tasks, err := svc.MemberTasks(context.Background(), bob)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "bob's", tasks[0].Title)

	tasks, err = svc.MemberTasks(context.Background(), env.userID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTeamService_UnknownMember(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewTeamService(env.client).MemberTasks(context.Background(), "nobody")
	assert.True(t, api.IsNotFound(err))
}
