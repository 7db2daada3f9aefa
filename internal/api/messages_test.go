package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	withMsg := func(status int, msg string) error {
		return &Error{Method: "GET", Path: "x", Status: status, Message: msg}
	}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"400 server message", withMsg(400, "name must not be empty"), "name must not be empty"},
		{"400 fallback", withMsg(400, ""), "Invalid request."},
		{"401", withMsg(401, "whatever"), "Invalid credentials or session expired."},
		{"403", withMsg(403, ""), "You do not have permission to perform this action."},
		{"404", withMsg(404, "gone"), "Resource not found."},
		{"409 server message", withMsg(409, "Email already registered"), "Email already registered"},
		{"409 fallback", withMsg(409, ""), "Conflict with existing data."},
		{"422 fallback", withMsg(422, ""), "Invalid data."},
		{"500", withMsg(500, "stack trace"), "Internal server error. Try again later."},
		{"503", withMsg(503, ""), "Server error. Try again later."},
		{"418 server message", withMsg(418, "teapot"), "teapot"},
		{"418 fallback", withMsg(418, ""), "An unexpected error occurred."},
		{"wrapped api error", fmt.Errorf("loading: %w", withMsg(404, "")), "Resource not found."},
		{"no response", fmt.Errorf("%w: dial", ErrNoResponse), "No response from the server. Check your connection."},
		{"setup", ErrRequestSetup, "Could not send the request."},
		{"other", errors.New("boom"), "Unexpected error."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestServerMessage_Shapes(t *testing.T) {
	assert.Equal(t, "bad", serverMessage([]byte(`{"message":"bad"}`)))
	assert.Equal(t, "a; b", serverMessage([]byte(`{"message":["a","b"]}`)))
	assert.Equal(t, "Bad Request", serverMessage([]byte(`{"error":"Bad Request"}`)))
	assert.Empty(t, serverMessage([]byte(`<html>`)))
	assert.Empty(t, serverMessage(nil))
}

func TestError_Kind(t *testing.T) {
	assert.Equal(t, KindUnauthorized, (&Error{Status: 401}).Kind())
	assert.Equal(t, KindServer, (&Error{Status: 502}).Kind())
	assert.Equal(t, KindClient, (&Error{Status: 422}).Kind())
	assert.Equal(t, "GET projects: 404 Not Found: nope", (&Error{Method: "GET", Path: "projects", Status: 404, Message: "nope"}).Error())
}
