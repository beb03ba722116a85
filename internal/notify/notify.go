// Package notify is the user-visible notification sink. The portal surfaces
// outcomes here instead of rendering them; a UI would map kinds onto its
// snack-bar styles.
package notify

import (
	"errors"

	xerrors "github.com/tomraj007/txnportal/internal/pkg/errors"
	"go.uber.org/zap"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// Notifier receives user-facing notices.
type Notifier interface {
	Notify(kind Kind, message string)
}

// Logger surfaces notices through zap, for headless runs.
type Logger struct {
	log *zap.Logger
}

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Notify(kind Kind, message string) {
	switch kind {
	case KindError:
		l.log.Error(message, zap.String("kind", string(kind)))
	default:
		l.log.Info(message, zap.String("kind", string(kind)))
	}
}

// ErrorMessage translates an error into a human-readable message. Server
// supplied messages win over wrapper text.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var terr *xerrors.TransportError
	if errors.As(err, &terr) && terr.Message != "" {
		return terr.Message
	}
	if errors.Is(err, xerrors.ErrSessionExpired) {
		return "Your session has expired. Please login again."
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "An unexpected error occurred. Please try again."
}
