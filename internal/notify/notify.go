// Package notify turns outcomes into the transient messages shown to the user.
package notify

import (
	"errors"

	"tusep-web/internal/client"
	"tusep-web/internal/validation"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a non-blocking toast.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Success(msg string) Notification { return Notification{Level: LevelSuccess, Message: msg} }

// Error builds the error toast for err: the backend detail when one was sent,
// the local validation message for form errors, otherwise fallback.
func Error(err error, fallback string) Notification {
	return Notification{Level: LevelError, Message: Message(err, fallback)}
}

// Message picks the text shown for err.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Message
	}
	if d := client.Detail(err); d != "" {
		return d
	}
	if client.IsUnauthorized(err) {
		return SessionExpired
	}
	return fallback
}
