package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/alexanderramin/taskboard/internal/route"
)

// HeaderRequestID carries a per-call correlation ID.
const HeaderRequestID = "X-Request-ID"

// Credentials supplies the bearer token and discards the persisted session
// when the backend rejects it.
type Credentials interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Router exposes the current logical route and lets the client redirect.
type Router interface {
	Current() string
	Navigate(path string)
}

// requestIDTransport stamps every request with an X-Request-ID. A
// caller-supplied ID is kept. The response always points back at the stamped
// request so the ID can be read from resp.Request.
type requestIDTransport struct {
	next http.RoundTripper
}

func (t requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req
	if req.Header.Get(HeaderRequestID) == "" {
		r = req.Clone(req.Context())
		r.Header.Set(HeaderRequestID, uuid.NewString())
	}
	resp, err := t.next.RoundTrip(r)
	if resp != nil {
		resp.Request = r
	}
	return resp, err
}

// requestID returns the correlation ID sent with resp's request.
func requestID(resp *http.Response) string {
	if resp == nil || resp.Request == nil {
		return ""
	}
	return resp.Request.Header.Get(HeaderRequestID)
}

// bearerTransport attaches the persisted token, if any. Method, URL and body
// pass through untouched.
type bearerTransport struct {
	creds Credentials
	next  http.RoundTripper
}

func (t bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.creds.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("%w: reading token: %v", ErrRequestSetup, err)
	}
	if token == "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(r)
	return t.next.RoundTrip(r)
}

// unauthorizedTransport ends the session when the backend answers 401 while
// the user is on a protected route. The response is always returned as-is so
// the caller still sees the failure.
type unauthorizedTransport struct {
	creds  Credentials
	router Router
	onErr  func(error)
	next   http.RoundTripper
}

func (t unauthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	if resp.StatusCode != http.StatusUnauthorized || route.IsPublic(t.router.Current()) {
		return resp, nil
	}
	// The caller's context may be cancelled the moment the response lands.
	if err := t.creds.Clear(context.WithoutCancel(req.Context())); err != nil && t.onErr != nil {
		t.onErr(fmt.Errorf("clearing session after 401: %w", err))
	}
	t.router.Navigate(route.Login)
	return resp, nil
}
