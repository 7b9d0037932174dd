// internal/client/errors.go
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed backend call.
type Kind int

const (
	// KindTransport means no response was received.
	KindTransport Kind = iota + 1
	// KindUnauthorized is a 401; the session must be dropped.
	KindUnauthorized
	// KindValidation covers every other 4xx.
	KindValidation
	// KindServer covers 5xx and unreadable responses.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method that reached (or failed to reach)
// the backend.
type Error struct {
	Kind   Kind
	Status int
	Method string
	Path   string
	// Detail is the human readable message sent by the backend, if any.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == KindTransport {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func classify(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

func kindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

func IsUnauthorized(err error) bool { return kindOf(err) == KindUnauthorized }
func IsTransport(err error) bool    { return kindOf(err) == KindTransport }
func IsServer(err error) bool       { return kindOf(err) == KindServer }

// Detail returns the backend message carried by err, or "".
func Detail(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// errorBody covers the FastAPI shapes: {"detail": "..."} and
// {"detail": [{"loc": [...], "msg": "..."}]}, plus {"error"} / {"message"}.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			return s
		}
		var fields []fieldError
		if err := json.Unmarshal(eb.Detail, &fields); err == nil {
			msgs := make([]string, 0, len(fields))
			for _, f := range fields {
				if len(f.Loc) > 0 {
					msgs = append(msgs, fmt.Sprintf("%v: %s", f.Loc[len(f.Loc)-1], f.Msg))
				} else {
					msgs = append(msgs, f.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	if eb.Error != "" {
		return eb.Error
	}
	return eb.Message
}
