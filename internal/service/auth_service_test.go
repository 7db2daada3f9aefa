package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskboard/internal/api"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/route"
	"github.com/alexanderramin/taskboard/internal/testutil"
)

func TestAuthService_Login(t *testing.T) {
	b := testutil.NewFakeBackend(t)
	b.AddUser("bob@example.com", "hunter2", "Bob")
	store := testutil.NewTestStorage(t)
	nav := route.NewNavigator(route.Login)
	svc := NewAuthService(testutil.NewTestClient(t, b.URL(), store, nav))

	res, err := svc.Login(context.Background(), domain.LoginRequest{Email: " bob@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Bob", res.User.Name)
	assert.Equal(t, "bob@example.com", res.User.Email)
}

func TestAuthService_LoginRejectedOnPublicRoute(t *testing.T) {
	b := testutil.NewFakeBackend(t)
	b.AddUser("bob@example.com", "hunter2", "Bob")
	store := testutil.NewTestStorage(t)
	nav := route.NewNavigator(route.Login)
	svc := NewAuthService(testutil.NewTestClient(t, b.URL(), store, nav))

	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "bob@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials or session expired.", api.UserMessage(err))
	assert.Equal(t, route.Login, nav.Current())
}

func TestAuthService_LoginValidatesBeforeCalling(t *testing.T) {
	b := testutil.NewFakeBackend(t)
	store := testutil.NewTestStorage(t)
	svc := NewAuthService(testutil.NewTestClient(t, b.URL(), store, route.NewNavigator(route.Login)))

	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "", Password: "x"})
	require.Error(t, err)
	assert.Empty(t, b.Requests())
}

func TestAuthService_RegisterConflict(t *testing.T) {
	b := testutil.NewFakeBackend(t)
	b.AddUser("bob@example.com", "hunter2", "Bob")
	store := testutil.NewTestStorage(t)
	svc := NewAuthService(testutil.NewTestClient(t, b.URL(), store, route.NewNavigator(route.Register)))

	err := svc.Register(context.Background(), domain.RegisterRequest{Email: "bob@example.com", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, "Email already registered", api.UserMessage(err))

	require.NoError(t, svc.Register(context.Background(), domain.RegisterRequest{Email: "new@example.com", Password: "x"}))
}

func TestAuthService_Profile(t *testing.T) {
	env := newTestEnv(t)
	env.backend.WrapEntities(true)
	svc := NewAuthService(env.client)

	u, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, env.userID, u.ID)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.NotNil(t, u.CreatedAt)
}

func TestAuthService_ObservesUseCases(t *testing.T) {
	b := testutil.NewFakeBackend(t)
	store := testutil.NewTestStorage(t)
	var buf bytes.Buffer
	svc := NewAuthService(testutil.NewTestClient(t, b.URL(), store, route.NewNavigator(route.Login)), NewLogUseCaseObserver(&buf))

	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "nobody@example.com", Password: "x"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "use_case=login")
	assert.Contains(t, buf.String(), "success=false")
}
