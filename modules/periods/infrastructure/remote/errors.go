package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport marks calls that never produced an HTTP response.
	ErrTransport = errors.New("remote api unreachable")
	// ErrMalformedResponse marks 2xx responses whose body could not be used.
	ErrMalformedResponse = errors.New("remote api returned a malformed response")
)

// APIError is a response the API answered with success:false or a non-2xx status.
type APIError struct {
	StatusCode int
	// Errors is the raw "errors" member of the response, if any.
	Errors json.RawMessage
	// Message is the human text extracted from Errors; empty when the server sent none.
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote api: status %d: %s", e.StatusCode, e.Message)
}

// Message returns the server-supplied text carried by err. ok is false for
// transport failures and for server errors without an errors payload.
func Message(err error) (msg string, ok bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// payloadMessage flattens an errors payload into display text. Strings are
// used verbatim, arrays are joined, objects use their "message" member or
// fall back to their compact JSON.
func payloadMessage(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if m := payloadMessage(item); m != "" {
				parts = append(parts, m)
			}
		}
		return strings.Join(parts, "; ")
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, key := range []string{"message", "msg", "error"} {
			if v, ok := obj[key]; ok {
				if m := payloadMessage(v); m != "" {
					return m
				}
			}
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err == nil {
		return compact.String()
	}
	return string(raw)
}
