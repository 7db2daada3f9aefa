package api

import (
	"errors"
	"net/http"
)

// UserMessage maps any error returned by the client to a short message fit
// for display. Server-supplied messages win for 400, 409, 422 and unmapped
// statuses.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusBadRequest:
			return orDefault(apiErr.Message, "Invalid request.")
		case http.StatusUnauthorized:
			return "Invalid credentials or session expired."
		case http.StatusForbidden:
			return "You do not have permission to perform this action."
		case http.StatusNotFound:
			return "Resource not found."
		case http.StatusConflict:
			return orDefault(apiErr.Message, "Conflict with existing data.")
		case http.StatusUnprocessableEntity:
			return orDefault(apiErr.Message, "Invalid data.")
		case http.StatusInternalServerError:
			return "Internal server error. Try again later."
		}
		if apiErr.Status > 500 {
			return "Server error. Try again later."
		}
		return orDefault(apiErr.Message, "An unexpected error occurred.")
	}

	switch {
	case errors.Is(err, ErrNoResponse):
		return "No response from the server. Check your connection."
	case errors.Is(err, ErrRequestSetup):
		return "Could not send the request."
	case errors.Is(err, ErrDecodeResponse):
		return "The server sent an unexpected response."
	}
	return "Unexpected error."
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
