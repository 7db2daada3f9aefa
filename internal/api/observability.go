package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// RequestEvent records metadata about a single backend call.
type RequestEvent struct {
	Method    string
	Path      string
	Status    int
	LatencyMs int64
	RequestID string
	ErrorCode string
}

// Observer receives events about backend calls for logging.
type Observer interface {
	OnRequestComplete(event RequestEvent)
}

// LogObserver writes one line per call to an io.Writer.
type LogObserver struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnRequestComplete(e RequestEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if e.ErrorCode != "" {
		status = "err:" + e.ErrorCode
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.w, "[%s] api_call method=%s path=%s status=%d latency_ms=%d request_id=%s result=%s\n",
		ts, e.Method, e.Path, e.Status, e.LatencyMs, e.RequestID, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnRequestComplete(RequestEvent) {}

func errorCode(err error) string {
	var apiErr *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return fmt.Sprintf("HTTP_%d", apiErr.Status)
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	case errors.Is(err, ErrNoResponse):
		return "NO_RESPONSE"
	case errors.Is(err, ErrDecodeResponse):
		return "DECODE"
	case errors.Is(err, ErrRequestSetup):
		return "SETUP"
	default:
		return "UNKNOWN"
	}
}
