package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/taskboard/internal/config"
	"github.com/alexanderramin/taskboard/internal/route"
)

type memCredentials struct {
	mu      sync.Mutex
	token   string
	clears  int
	tokErr  error
	clearErr error
}

func (m *memCredentials) Token(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.tokErr
}

func (m *memCredentials) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.token = ""
	return m.clearErr
}

func (m *memCredentials) clearCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}

type recordingObserver struct {
	mu     sync.Mutex
	events []RequestEvent
}

func (o *recordingObserver) OnRequestComplete(e RequestEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func testClient(baseURL string, creds Credentials, nav Router, opts ...Option) *Client {
	cfg := config.DefaultConfig()
	cfg.BaseURL = baseURL + "/v1"
	return New(cfg, creds, nav, opts...)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get(HeaderRequestID)
		assert.Equal(t, "/v1/projects", r.URL.Path)
		w.Write([]byte(`{"projects":[]}`))
	}))
	defer srv.Close()

	creds := &memCredentials{token: "abc"}
	c := testClient(srv.URL, creds, route.NewNavigator(route.Dashboard))

	var out map[string]any
	require.NoError(t, c.Get(context.Background(), "projects", nil, &out))
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := testClient(srv.URL, &memCredentials{}, route.NewNavigator(route.Login))
	require.NoError(t, c.Get(context.Background(), "auth/profile", nil, nil))
	assert.False(t, hasAuth)
}

func TestClient_BodyAndMethodUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/v1/tasks/t1/status", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"COMPLETED"}`, string(body))
		w.Write([]byte(`{"id":"t1","status":"COMPLETED"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, &memCredentials{token: "abc"}, route.NewNavigator(route.Tasks))
	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, c.Patch(context.Background(), "tasks/t1/status", map[string]string{"status": "COMPLETED"}, &out))
	assert.Equal(t, "t1", out.ID)
	assert.Equal(t, "COMPLETED", out.Status)
}

func TestClient_QueryEncoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.False(t, r.URL.Query().Has("search"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, &memCredentials{token: "abc"}, route.NewNavigator(route.Projects))
	q := map[string][]string{"page": {"1"}, "limit": {"10"}}
	require.NoError(t, c.Get(context.Background(), "projects", q, nil))
}

func TestClient_401OnProtectedRouteForcesLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthorized"}`))
	}))
	defer srv.Close()

	creds := &memCredentials{token: "expired"}
	nav := route.NewNavigator(route.Projects)
	c := testClient(srv.URL, creds, nav)

	err := c.Get(context.Background(), "projects", nil, nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, creds.clearCount())
	assert.Equal(t, route.Login, nav.Current())

	tok, _ := creds.Token(context.Background())
	assert.Empty(t, tok)
}

func TestClient_401OnPublicRouteHasNoSideEffects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	for _, start := range []string{route.Login, route.Register} {
		t.Run(start, func(t *testing.T) {
			creds := &memCredentials{token: "keep"}
			nav := route.NewNavigator(start)
			c := testClient(srv.URL, creds, nav)

			err := c.Post(context.Background(), "auth/login", map[string]string{"email": "a@b.c"}, nil)
			require.Error(t, err)
			assert.True(t, IsUnauthorized(err))
			assert.Equal(t, 0, creds.clearCount())
			assert.Equal(t, start, nav.Current())
		})
	}
}

func TestClient_401ClearFailureStillNavigates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	creds := &memCredentials{token: "x", clearErr: errors.New("disk full")}
	nav := route.NewNavigator(route.Dashboard)
	var reported error
	c := testClient(srv.URL, creds, nav, WithErrorHandler(func(err error) { reported = err }))

	err := c.Get(context.Background(), "projects", nil, nil)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, route.Login, nav.Current())
	require.Error(t, reported)
	assert.Contains(t, reported.Error(), "disk full")
}

func TestClient_OtherErrorsPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Project not found"}`))
	}))
	defer srv.Close()

	creds := &memCredentials{token: "abc"}
	nav := route.NewNavigator(route.ProjectPath("p1"))
	c := testClient(srv.URL, creds, nav)

	err := c.Get(context.Background(), "projects/p1", nil, nil)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Project not found", apiErr.Message)
	assert.Equal(t, KindClient, apiErr.Kind())
	assert.True(t, IsNotFound(err))
	assert.Equal(t, 0, creds.clearCount())
	assert.Equal(t, "/projects/p1", nav.Current())
}

func TestClient_NoResponse(t *testing.T) {
	c := testClient("http://127.0.0.1:1", &memCredentials{}, route.NewNavigator(route.Login))
	err := c.Get(context.Background(), "projects", nil, nil)
	assert.ErrorIs(t, err, ErrNoResponse)
	assert.Equal(t, "No response from the server. Check your connection.", UserMessage(err))
}

func TestClient_TimeoutIsNoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.RequestTimeoutMs = 30
	c := New(cfg, &memCredentials{}, route.NewNavigator(route.Login))

	err := c.Get(context.Background(), "projects", nil, nil)
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestClient_CallerCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := testClient(srv.URL, &memCredentials{}, route.NewNavigator(route.Login))
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := c.Get(ctx, "projects", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrNoResponse)
}

func TestClient_TokenReadFailure(t *testing.T) {
	c := testClient("http://127.0.0.1:1", &memCredentials{tokErr: errors.New("locked")}, route.NewNavigator(route.Dashboard))
	err := c.Get(context.Background(), "projects", nil, nil)
	assert.ErrorIs(t, err, ErrRequestSetup)
}

func TestClient_DecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, &memCredentials{}, route.NewNavigator(route.Login))
	var out map[string]any
	err := c.Get(context.Background(), "projects", nil, &out)
	assert.ErrorIs(t, err, ErrDecodeResponse)
}

func TestClient_ObserverReceivesEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := testClient(srv.URL, &memCredentials{}, route.NewNavigator(route.Login), WithObserver(obs))

	require.NoError(t, c.Get(context.Background(), "projects", nil, nil))
	require.Error(t, c.Get(context.Background(), "missing", nil, nil))

	require.Len(t, obs.events, 2)
	assert.Equal(t, http.StatusOK, obs.events[0].Status)
	assert.Empty(t, obs.events[0].ErrorCode)
	assert.NotEmpty(t, obs.events[0].RequestID)
	assert.Equal(t, "HTTP_404", obs.events[1].ErrorCode)
	assert.Equal(t, "missing", obs.events[1].Path)
}

func TestClient_RequestIDSentAndObserved(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(HeaderRequestID))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := testClient(srv.URL, &memCredentials{}, route.NewNavigator(route.Login), WithObserver(obs))

	require.NoError(t, c.Get(context.Background(), "projects", nil, nil))
	require.NoError(t, c.Get(context.Background(), "projects", nil, nil))

	require.Len(t, seen, 2)
	require.Len(t, obs.events, 2)
	assert.NotEmpty(t, seen[0])
	assert.NotEqual(t, seen[0], seen[1])
	assert.Equal(t, seen[0], obs.events[0].RequestID)
	assert.Equal(t, seen[1], obs.events[1].RequestID)
}

func TestLogObserver_WritesLine(t *testing.T) {
	var sb strings.Builder
	NewLogObserver(&sb).OnRequestComplete(RequestEvent{
		Method: "GET", Path: "projects", Status: 500, LatencyMs: 12, RequestID: "r1", ErrorCode: "HTTP_500",
	})
	line := sb.String()
	assert.Contains(t, line, "method=GET")
	assert.Contains(t, line, "status=500")
	assert.Contains(t, line, "request_id=r1")
	assert.Contains(t, line, "result=err:HTTP_500")
}
