package optimizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCancelled ends a session stopped by its caller
	ErrCancelled     = errors.New("cancelled")
	ErrNoCommits     = errors.New("no commits to optimize")
	ErrMissingAPIKey = errors.New("API key is required")
	ErrNoEndpoint    = errors.New("no API endpoint configured")
)

// StatusError is a non-2xx response from the completion endpoint
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

// IsCancelled reports whether err ends a cancelled session
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// newStatusError derives the message from the response body when it carries one
func newStatusError(code int, body []byte) *StatusError {
	return &StatusError{StatusCode: code, Message: errorMessage(code, body)}
}

func errorMessage(code int, body []byte) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.Error) > 0 {
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(payload.Error, &nested) == nil && nested.Message != "" {
				return nested.Message
			}
			var flat string
			if json.Unmarshal(payload.Error, &flat) == nil && strings.TrimSpace(flat) != "" {
				return flat
			}
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("%d call failed", code)
}
