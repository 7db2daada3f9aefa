package cli

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskboard/internal/route"
	"github.com/alexanderramin/taskboard/internal/service"
	"github.com/alexanderramin/taskboard/internal/session"
	"github.com/alexanderramin/taskboard/internal/storage"
	"github.com/alexanderramin/taskboard/internal/teatest"
	"github.com/alexanderramin/taskboard/internal/testutil"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// testEnv is a fully wired App talking to an in-process fake backend.
type testEnv struct {
	backend *testutil.FakeBackend
	store   *storage.SQLiteSessionStorage
	nav     *route.Navigator
	app     *App
}

func newTestEnv(t *testing.T, start string) *testEnv {
	t.Helper()
	b := testutil.NewFakeBackend(t)
	store := testutil.NewTestStorage(t)
	nav := route.NewNavigator(start)
	client := testutil.NewTestClient(t, b.URL(), store, nav)

	sess := session.New(store, service.NewAuthService(client), nav)
	t.Cleanup(sess.Close)
	require.NoError(t, sess.Init(context.Background()))

	return &testEnv{
		backend: b,
		store:   store,
		nav:     nav,
		app: &App{
			Session:  sess,
			Projects: service.NewProjectService(client),
			Tasks:    service.NewTaskService(client),
			Team:     service.NewTeamService(client),
			Nav:      nav,
			Now:      func() time.Time { return testNow },
		},
	}
}

// signIn persists a valid session for a fresh user and returns its id.
func (e *testEnv) signIn(t *testing.T) string {
	t.Helper()
	return testutil.SignIn(t, e.backend, e.store, "ann@example.com")
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	token, err := e.store.Token(context.Background())
	require.NoError(t, err)
	return token
}

// TestDriver wraps teatest.Driver with app-specific accessors.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver runs Init, then sizes the terminal, like tea.Program does.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	d := &TestDriver{Driver: teatest.New(t, newAppModel(app))}
	d.DrainInit()
	d.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return d
}

func (d *TestDriver) appModel() *appModel {
	return d.Model.(*appModel)
}

// ActiveViewID returns the view receiving input: the top modal or the
// routed view.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.appModel().activeView()
	if v == nil {
		return -1
	}
	return v.ID()
}
