package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/taskboard/internal/config"
)

// Client is the single HTTP entry point to the task-management backend.
// Every call carries the persisted bearer token, and a 401 on a protected
// route forces a logout.
type Client struct {
	baseURL  string
	timeout  time.Duration
	http     *http.Client
	observer Observer
}

type options struct {
	base     http.RoundTripper
	observer Observer
	onErr    func(error)
}

// Option configures a Client.
type Option func(*options)

// WithObserver sets the observer notified after every call.
func WithObserver(o Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// WithBaseTransport replaces the innermost transport.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(opts *options) { opts.base = rt }
}

// WithErrorHandler receives background failures, such as a failed session
// clear after a 401.
func WithErrorHandler(fn func(error)) Option {
	return func(opts *options) { opts.onErr = fn }
}

// New creates a Client for the backend configured in cfg.
func New(cfg config.Config, creds Credentials, router Router, opts ...Option) *Client {
	o := options{observer: NoopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.base == nil {
		o.base = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		}
	}
	if o.observer == nil {
		o.observer = NoopObserver{}
	}

	var rt http.RoundTripper = unauthorizedTransport{creds: creds, router: router, onErr: o.onErr, next: o.base}
	rt = bearerTransport{creds: creds, next: rt}
	rt = requestIDTransport{next: rt}

	timeout := cfg.RequestTimeout()
	if timeout <= 0 {
		timeout = config.DefaultConfig().RequestTimeout()
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		timeout:  timeout,
		http:     &http.Client{Transport: rt},
		observer: o.observer,
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, in, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, in, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, in, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do sends one request. path is relative to the base URL. in, when non-nil,
// is encoded as JSON; a 2xx body is decoded into out when out is non-nil.
// Non-2xx responses return *Error; transport failures wrap ErrNoResponse.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	start := time.Now()
	reqID := ""
	status := 0

	err := func() error {
		parent := ctx
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		var body io.Reader
		if in != nil {
			data, err := json.Marshal(in)
			if err != nil {
				return fmt.Errorf("%w: encoding body: %v", ErrRequestSetup, err)
			}
			body = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRequestSetup, err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if parent.Err() != nil {
				return fmt.Errorf("%s %s: %w", method, path, parent.Err())
			}
			if errors.Is(err, ErrRequestSetup) {
				return err
			}
			return fmt.Errorf("%w: %s %s: %v", ErrNoResponse, method, path, err)
		}
		defer resp.Body.Close()
		status = resp.StatusCode
		reqID = requestID(resp)

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%w: reading %s %s: %v", ErrNoResponse, method, path, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return newError(method, path, resp.StatusCode, data)
		}

		if out == nil || len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %s %s: %v", ErrDecodeResponse, method, path, err)
		}
		return nil
	}()

	c.observer.OnRequestComplete(RequestEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		RequestID: reqID,
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *Client) resolve(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
