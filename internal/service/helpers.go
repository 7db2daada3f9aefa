package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/alexanderramin/taskboard/internal/api"
)

// raw collects a response body for decoding by the wire package.
type raw = json.RawMessage

func entityPath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

func requireID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s id is required", kind)
	}
	return nil
}

func requireBody(body raw, what string) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty %s response", api.ErrDecodeResponse, what)
	}
	return nil
}

// observe reports a finished use case. Call via defer with a pointer to the
// named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err *error) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *err == nil,
		Err:       *err,
		Fields:    fields,
	})
}
