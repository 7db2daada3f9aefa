package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/route"
	"github.com/alexanderramin/taskboard/internal/testutil"
)

// runCLI executes args against env's app and returns stdout, stderr and
// the exit code.
func runCLI(t *testing.T, env *testEnv, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(env.app, args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestCommandRoute(t *testing.T) {
	show := withRoute(&cobra.Command{Use: "show"}, route.ProjectDetail)
	list := withRoute(&cobra.Command{Use: "list"}, route.Projects)
	bare := &cobra.Command{Use: "logout"}

	path, ok := commandRoute(show, []string{"p-1"})
	assert.True(t, ok)
	assert.Equal(t, "/projects/p-1", path)

	path, ok = commandRoute(show, nil)
	assert.True(t, ok)
	assert.Equal(t, route.Projects, path)

	path, ok = commandRoute(list, nil)
	assert.True(t, ok)
	assert.Equal(t, route.Projects, path)

	_, ok = commandRoute(bare, nil)
	assert.False(t, ok)
}

func TestCLI_ProtectedCommandWithoutSession(t *testing.T) {
	env := newTestEnv(t, route.Default)

	_, stderr, code := runCLI(t, env, "project", "list")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error: not logged in")
	assert.Contains(t, stderr, "taskboard login")
	assert.Equal(t, route.Login, env.nav.Current())
	assert.Empty(t, env.backend.Requests())
}

func TestCLI_LoginWhileSignedIn(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)

	_, stderr, code := runCLI(t, env, "login", "--email", "bob@example.com", "--password", "secret")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "already logged in as User ann@example.com")
	assert.Equal(t, route.Dashboard, env.nav.Current())
	assert.Zero(t, env.backend.CountRequests("POST", "/auth/login"))
}

func TestCLI_Login(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.backend.AddUser("ann@example.com", "secret", "Ann")

	stdout, _, code := runCLI(t, env, "login", "--email", "ann@example.com", "--password", "secret")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Signed in as Ann")
	assert.NotEmpty(t, env.token(t))
	assert.Equal(t, route.Dashboard, env.nav.Current())
}

func TestCLI_LoginBadPassword(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.backend.AddUser("ann@example.com", "secret", "Ann")

	_, stderr, code := runCLI(t, env, "login", "--email", "ann@example.com", "--password", "nope")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Invalid credentials or session expired.")
	assert.NotContains(t, stderr, "sign in again", "no hint on the login page itself")
	assert.Empty(t, env.token(t))
}

func TestCLI_RegisterDoesNotSignIn(t *testing.T) {
	env := newTestEnv(t, route.Default)

	stdout, _, code := runCLI(t, env, "register", "--email", "new@example.com", "--password", "secret", "--name", "New")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Account created for new@example.com")
	assert.Empty(t, env.token(t))
	assert.Equal(t, route.Login, env.nav.Current())
}

func TestCLI_LogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)

	stdout, _, code := runCLI(t, env, "logout")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Signed out")
	assert.Empty(t, env.token(t))

	_, _, code = runCLI(t, env, "logout")
	assert.Equal(t, 0, code)
}

func TestCLI_ProjectListQuery(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)
	env.backend.AddProject(testutil.NewTestProject("Apollo"))

	stdout, _, code := runCLI(t, env, "project", "list", "--page", "1", "--limit", "10", "--search", "")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Apollo")

	reqs := env.backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/projects", reqs[0].Path)
	assert.Equal(t, []string{"1"}, reqs[0].Query["page"])
	assert.Equal(t, []string{"10"}, reqs[0].Query["limit"])
	assert.NotContains(t, reqs[0].Query, "search")
}

func TestCLI_ProjectListSearch(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)

	stdout, _, code := runCLI(t, env, "project", "list", "--search", "apo")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "No projects found.")
	reqs := env.backend.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, []string{"apo"}, reqs[0].Query["search"])
}

func TestCLI_InvalidPageRejectedLocally(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)

	_, stderr, code := runCLI(t, env, "project", "list", "--page", "0")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "--page must be at least 1")
	assert.Empty(t, env.backend.Requests())
}

func TestCLI_RevokedSessionAddsLoginHint(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)
	env.backend.RevokeAll()

	_, stderr, code := runCLI(t, env, "project", "list")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Invalid credentials or session expired.")
	assert.Contains(t, stderr, "Run `taskboard login` to sign in again.")
	assert.Empty(t, env.token(t))
	assert.Equal(t, route.Login, env.nav.Current())
}

func TestCLI_ProjectCreateAndShow(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)

	stdout, _, code := runCLI(t, env, "project", "create", "--name", "Apollo", "--description", "Moonshot")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Created project Apollo")

	reqs := env.backend.Requests()
	require.NotEmpty(t, reqs)
	assert.Equal(t, "POST", reqs[len(reqs)-1].Method)

	id := env.backend.AddProject(testutil.NewTestProject("Zephyr"))
	stdout, _, code = runCLI(t, env, "project", "show", id)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Zephyr")
	assert.Contains(t, stdout, "No tasks in this project.")
	assert.Equal(t, route.ProjectPath(id), env.nav.Current())
}

func TestCLI_ProjectCreateNeedsNameWhenNotInteractive(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)

	_, stderr, code := runCLI(t, env, "project", "create")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "name")
	assert.Zero(t, env.backend.CountRequests("POST", "/projects"))
}

func TestCLI_ProjectUpdateNeedsAField(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)
	id := env.backend.AddProject(testutil.NewTestProject("Apollo"))

	_, stderr, code := runCLI(t, env, "project", "update", id)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "nothing to update")
	assert.Zero(t, env.backend.CountRequests("PUT", "/projects/"+id))
}

func TestCLI_ProjectShowMissing(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)

	_, stderr, code := runCLI(t, env, "project", "show", "does-not-exist")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Resource not found.")
	assert.NotEmpty(t, env.token(t), "a 404 keeps the session")
}

func TestCLI_ProjectDeleteWithoutPromptWhenNotInteractive(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)
	id := env.backend.AddProject(testutil.NewTestProject("Apollo"))

	stdout, _, code := runCLI(t, env, "project", "delete", id)

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Deleted project "+id)
	assert.Equal(t, 1, env.backend.CountRequests("DELETE", "/projects/"+id))
}

func TestCLI_TaskStatus(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)
	pid := env.backend.AddProject(testutil.NewTestProject("Apollo"))
	tid := env.backend.AddTask(testutil.NewTestTask(pid, "Write launch plan"))

	stdout, _, code := runCLI(t, env, "task", "status", tid, "in-progress")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Write launch plan is now")
	rec, ok := env.backend.TaskRecord(tid)
	require.True(t, ok)
	assert.Equal(t, string(domain.TaskInProgress), rec.Status)
}

func TestCLI_TaskStatusRejectsUnknownValue(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)

	_, stderr, code := runCLI(t, env, "task", "status", "t-1", "blocked")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid task status")
	assert.Empty(t, env.backend.Requests())
}

func TestCLI_TaskCreateAndFilteredList(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)
	pid := env.backend.AddProject(testutil.NewTestProject("Apollo"))

	stdout, _, code := runCLI(t, env, "task", "create", "--title", "Draft brief", "--project", pid, "--priority", "high", "--due", "2026-03-12")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Created task Draft brief")

	stdout, _, code = runCLI(t, env, "task", "list", "--project", pid, "--priority", "HIGH")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Draft brief")

	reqs := env.backend.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, "/tasks", last.Path)
	assert.Equal(t, []string{pid}, last.Query["project_id"])
	assert.Equal(t, []string{"HIGH"}, last.Query["priority"])
}

func TestCLI_TaskCreateRejectsBadDueDate(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)
	pid := env.backend.AddProject(testutil.NewTestProject("Apollo"))

	_, _, code := runCLI(t, env, "task", "create", "--title", "Draft brief", "--project", pid, "--due", "next week")

	assert.Equal(t, 1, code)
	assert.Zero(t, env.backend.CountRequests("POST", "/tasks"))
}

func TestCLI_TeamMembers(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)
	env.backend.AddUser("bob@example.com", "secret", "Bob")

	stdout, _, code := runCLI(t, env, "team", "members")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Bob")
	assert.Contains(t, stdout, "ann@example.com")
}

func TestCLI_Profile(t *testing.T) {
	env := newTestEnv(t, route.Default)
	env.signIn(t)

	stdout, _, code := runCLI(t, env, "profile")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "ann@example.com")
	assert.Contains(t, stdout, "Session expires")
}

func TestCLI_RootShowsHelpWhenNotInteractive(t *testing.T) {
	env := newTestEnv(t, route.Default)

	stdout, _, code := runCLI(t, env)

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Usage:")
	assert.Empty(t, env.backend.Requests())
}

func TestErrorMessage_LocalErrorsShownVerbatim(t *testing.T) {
	env := newTestEnv(t, route.Default)
	assert.Equal(t, "boom", env.app.ErrorMessage(errors.New("boom")))
}
