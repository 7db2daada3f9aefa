package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNoResponse indicates the request never reached the backend or no
	// response arrived (connection refused, DNS failure, timeout).
	ErrNoResponse = errors.New("no response from server")

	// ErrRequestSetup indicates the request could not be built or sent.
	ErrRequestSetup = errors.New("could not prepare request")

	// ErrDecodeResponse indicates a 2xx response body could not be decoded.
	ErrDecodeResponse = errors.New("invalid response body")
)

// ErrorKind classifies an HTTP error response.
type ErrorKind string

const (
	KindClient       ErrorKind = "client"
	KindUnauthorized ErrorKind = "unauthorized"
	KindServer       ErrorKind = "server"
)

// Error is a non-2xx response from the backend.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string // server-supplied message, if any
	Body    []byte
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Kind classifies the error by status code.
func (e *Error) Kind() ErrorKind {
	switch {
	case e.Status == http.StatusUnauthorized:
		return KindUnauthorized
	case e.Status >= 500:
		return KindServer
	default:
		return KindClient
	}
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// errorBody covers the shapes backends use for error payloads:
// {"message":"..."}, {"message":["a","b"]}, {"error":"..."}.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

func newError(method, path string, status int, body []byte) *Error {
	return &Error{
		Method:  method,
		Path:    path,
		Status:  status,
		Message: serverMessage(body),
		Body:    body,
	}
}

func serverMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if len(eb.Message) > 0 {
		var s string
		if err := json.Unmarshal(eb.Message, &s); err == nil {
			return strings.TrimSpace(s)
		}
		var list []string
		if err := json.Unmarshal(eb.Message, &list); err == nil {
			return strings.Join(list, "; ")
		}
	}
	return strings.TrimSpace(eb.Error)
}
