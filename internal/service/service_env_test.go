package service

import (
	"testing"

	"github.com/alexanderramin/taskboard/internal/api"
	"github.com/alexanderramin/taskboard/internal/route"
	"github.com/alexanderramin/taskboard/internal/storage"
	"github.com/alexanderramin/taskboard/internal/testutil"
)

type testEnv struct {
	backend *testutil.FakeBackend
	store   *storage.SQLiteSessionStorage
	nav     *route.Navigator
	client  *api.Client
	userID  string
}

// newTestEnv starts a fake backend with a signed-in user on the dashboard.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	b := testutil.NewFakeBackend(t)
	store := testutil.NewTestStorage(t)
	nav := route.NewNavigator(route.Dashboard)
	userID := testutil.SignIn(t, b, store, "ann@example.com")
	return &testEnv{
		backend: b,
		store:   store,
		nav:     nav,
		client:  testutil.NewTestClient(t, b.URL(), store, nav),
		userID:  userID,
	}
}
